package speak

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"polycap/cmd/polycap/cmd/cmdutil"
	"polycap/internal/app"
	"polycap/internal/app/audio"
	"polycap/internal/app/model"
)

var (
	inputFile  string
	text       string
	language   string
	rate       string
	outputFile string
)

func init() {
	Cmd.Flags().StringVarP(&text, "text", "t", "", "text to synthesize")
	Cmd.Flags().StringVarP(&inputFile, "file", "f", "", "text file to synthesize (alternative to --text)")
	Cmd.Flags().StringVar(&language, "language", "", "text language code (ISO 639-1); empty auto-detects")
	Cmd.Flags().StringVar(&rate, "rate", "", "speech rate: normal or slow")
	Cmd.Flags().StringVarP(&outputFile, "output", "o", "speech.wav", "WAV file to write")
}

// Cmd represents the speak command
var Cmd = &cobra.Command{
	Use:   "speak",
	Short: "Synthesize speech from text into a WAV file",
	Long: `Synthesize speech from text into a WAV file.

Long texts are chunked on sentence boundaries, each chunk walks the
text-to-speech engine chain, and the rendered audio concatenates back in
input order with a short silence between chunks.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := cmdutil.ReadText(text, inputFile)
		if err != nil {
			return err
		}

		application, err := app.InitializeApplication(cmdutil.Options(cmd))
		if err != nil {
			return err
		}
		defer application.Close()

		result, err := application.Orchestrator.Execute(cmd.Context(), &model.CapabilityRequest{
			Capability: model.CapabilityTextToSpeech,
			Text: &model.TextPayload{
				Content: content,
			},
			SourceLanguage: language,
			Rate:           model.SpeechRate(rate),
		})
		if err != nil {
			return err
		}

		cmdutil.ReportOutcome(cmd, result)
		if result.Status == model.StatusFailed {
			return fmt.Errorf("request failed: every engine in the chain was exhausted")
		}

		if err := os.WriteFile(outputFile, result.Audio, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", outputFile, err)
		}
		if samples, sampleRate, err := audio.ParseWAV(result.Audio); err == nil {
			fmt.Fprintf(os.Stderr, "🔊 wrote %s (%.1fs at %d Hz)\n",
				outputFile, audio.Duration(samples, sampleRate), sampleRate)
		} else {
			fmt.Fprintf(os.Stderr, "🔊 wrote %s\n", outputFile)
		}
		return nil
	},
}
