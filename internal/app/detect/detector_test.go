package detect

import "testing"

func TestDetectEnglish(t *testing.T) {
	d := NewWhatlangDetector(0)
	text := "The quick brown fox jumps over the lazy dog while the sun sets " +
		"behind the hills and the evening grows quiet around the village."

	lang, conf := d.Detect(text)
	if lang != "en" {
		t.Errorf("Expected en, got %q (confidence %f)", lang, conf)
	}
	if conf <= 0 {
		t.Errorf("Expected positive confidence, got %f", conf)
	}
}

func TestDetectBlankInput(t *testing.T) {
	d := NewWhatlangDetector(0)
	for _, text := range []string{"", "   ", "\n"} {
		lang, conf := d.Detect(text)
		if lang != Undetermined {
			t.Errorf("Expected %q for blank input, got %q", Undetermined, lang)
		}
		if conf != 0 {
			t.Errorf("Expected zero confidence for blank input, got %f", conf)
		}
	}
}

func TestDetectConfidenceFloor(t *testing.T) {
	// A floor above any reachable confidence forces the undetermined code
	// while still reporting what the detector saw.
	d := &WhatlangDetector{minConfidence: 1.1}
	lang, _ := d.Detect("The quick brown fox jumps over the lazy dog.")
	if lang != Undetermined {
		t.Errorf("Expected %q under an unreachable floor, got %q", Undetermined, lang)
	}
}

func TestNewWhatlangDetectorClampsFloor(t *testing.T) {
	for _, bad := range []float64{-1, 0, 1.5} {
		d := NewWhatlangDetector(bad)
		if d.minConfidence != DefaultMinConfidence {
			t.Errorf("Expected default floor for %f, got %f", bad, d.minConfidence)
		}
	}
}
