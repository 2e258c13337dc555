package local

import (
	"context"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"polycap/internal/app/model"
)

// dictionaries hold the core English vocabulary per target language. Word
// lookup is the whole translation model; anything missing passes through.
var dictionaries = map[string]map[string]string{
	"es": {
		"the": "el", "a": "un", "and": "y", "or": "o", "of": "de",
		"to": "a", "in": "en", "is": "es", "are": "son", "was": "era",
		"be": "ser", "it": "eso", "this": "esto", "that": "eso", "with": "con",
		"for": "para", "on": "en", "at": "en", "by": "por", "from": "de",
		"not": "no", "yes": "sí", "no": "no", "hello": "hola", "world": "mundo",
		"good": "bueno", "bad": "malo", "day": "día", "night": "noche", "time": "tiempo",
		"text": "texto", "system": "sistema", "language": "idioma", "you": "tú", "please": "por favor",
		"new": "nuevo", "old": "viejo", "big": "grande", "small": "pequeño", "one": "uno",
		"two": "dos", "three": "tres", "house": "casa", "water": "agua", "friend": "amigo",
		"book": "libro", "work": "trabajo", "city": "ciudad",
	},
	"fr": {
		"the": "le", "a": "un", "and": "et", "or": "ou", "of": "de",
		"to": "à", "in": "dans", "is": "est", "are": "sont", "was": "était",
		"be": "être", "it": "il", "this": "ceci", "that": "cela", "with": "avec",
		"for": "pour", "on": "sur", "at": "à", "by": "par", "from": "de",
		"not": "pas", "yes": "oui", "no": "non", "hello": "bonjour", "world": "monde",
		"good": "bon", "bad": "mauvais", "day": "jour", "night": "nuit", "time": "temps",
		"text": "texte", "system": "système", "language": "langue", "you": "vous", "please": "s'il vous plaît",
		"new": "nouveau", "old": "vieux", "big": "grand", "small": "petit", "one": "un",
		"two": "deux", "three": "trois", "house": "maison", "water": "eau", "friend": "ami",
		"book": "livre", "work": "travail", "city": "ville",
	},
	"de": {
		"the": "der", "a": "ein", "and": "und", "or": "oder", "of": "von",
		"to": "zu", "in": "in", "is": "ist", "are": "sind", "was": "war",
		"be": "sein", "it": "es", "this": "dies", "that": "das", "with": "mit",
		"for": "für", "on": "auf", "at": "bei", "by": "von", "from": "aus",
		"not": "nicht", "yes": "ja", "no": "nein", "hello": "hallo", "world": "welt",
		"good": "gut", "bad": "schlecht", "day": "tag", "night": "nacht", "time": "zeit",
		"text": "text", "system": "system", "language": "sprache", "you": "du", "please": "bitte",
		"new": "neu", "old": "alt", "big": "groß", "small": "klein", "one": "eins",
		"two": "zwei", "three": "drei", "house": "haus", "water": "wasser", "friend": "freund",
		"book": "buch", "work": "arbeit", "city": "stadt",
	},
}

// DictionaryTranslator renders text word by word from a core vocabulary.
// Language pairs outside en→{es,fr,de} come back tagged with the uppercase
// target code so the chain still terminates with usable output.
type DictionaryTranslator struct {
	priority int
}

// NewDictionaryTranslator creates the translator at the given chain priority.
func NewDictionaryTranslator(priority int) *DictionaryTranslator {
	return &DictionaryTranslator{priority: priority}
}

func (t *DictionaryTranslator) Descriptor() model.EngineDescriptor {
	return model.EngineDescriptor{
		ID:            "local-dictionary",
		Name:          "Dictionary Translator",
		Capability:    model.CapabilityTranslate,
		Priority:      t.priority,
		Timeout:       5 * time.Second,
		Deterministic: true,
	}
}

func (t *DictionaryTranslator) Invoke(ctx context.Context, request *model.CapabilityRequest) model.EngineOutcome {
	text := strings.TrimSpace(request.InputText())
	if text == "" {
		return model.Failure(model.FailureInvalidOutput, "translator received empty text")
	}

	target := strings.ToLower(request.TargetLanguage)
	vocab, ok := dictionaries[target]
	if !ok || !sourceIsEnglish(request.SourceLanguage) {
		return model.SuccessText(taggedPassthrough(target, text))
	}
	return model.SuccessText(translateWords(text, vocab))
}

func sourceIsEnglish(source string) bool {
	return source == "" || strings.ToLower(source) == "en"
}

// taggedPassthrough is the ultimate rendering for unmapped pairs: the target
// code in brackets, then the untouched text.
func taggedPassthrough(target, text string) string {
	code := strings.ToUpper(target)
	if code == "" {
		code = "??"
	}
	return "[" + code + "] " + text
}

func translateWords(text string, vocab map[string]string) string {
	words := strings.Fields(text)
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = translateWord(w, vocab)
	}
	return strings.Join(out, " ")
}

// translateWord swaps the letter core of a token, keeping surrounding
// punctuation and leading capitalization.
func translateWord(word string, vocab map[string]string) string {
	core := strings.TrimFunc(word, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	if core == "" {
		return word
	}
	replacement, ok := vocab[strings.ToLower(core)]
	if !ok {
		return word
	}
	if first, _ := utf8.DecodeRuneInString(core); unicode.IsUpper(first) {
		replacement = capitalize(replacement)
	}
	return strings.Replace(word, core, replacement, 1)
}

func capitalize(word string) string {
	r, size := utf8.DecodeRuneInString(word)
	if r == utf8.RuneError {
		return word
	}
	return string(unicode.ToUpper(r)) + word[size:]
}
