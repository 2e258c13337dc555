package transcribe

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
	language   string
	outputFile string
)

func init() {
	Cmd.Flags().StringVarP(&inputFile, "file", "f", "", "WAV file to transcribe")
	Cmd.Flags().StringVar(&language, "language", "", "spoken language code (ISO 639-1)")
	Cmd.Flags().StringVarP(&outputFile, "output", "o", "", "write the transcript to this file instead of stdout")
	Cmd.MarkFlagRequired("file")
}

// Cmd represents the transcribe command
var Cmd = &cobra.Command{
	Use:   "transcribe",
	Short: "Transcribe a WAV recording to text",
	Long: `Transcribe a WAV recording to text.

Recordings longer than the configured window are segmented at detected
silences, each segment walks the speech-to-text engine chain, and the
segment transcripts join back in recording order.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(inputFile)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", inputFile, err)
		}
		samples, sampleRate, err := audio.ParseWAV(data)
		if err != nil {
			return fmt.Errorf("failed to decode %s: %w", inputFile, err)
		}

		application, err := app.InitializeApplication(cmdutil.Options(cmd))
		if err != nil {
			return err
		}
		defer application.Close()

		result, err := application.Orchestrator.Execute(cmd.Context(), &model.CapabilityRequest{
			Capability: model.CapabilitySpeechToText,
			Audio: &model.AudioPayload{
				Samples:    samples,
				SampleRate: sampleRate,
			},
			SourceLanguage: language,
		})
		if err != nil {
			return err
		}

		return cmdutil.WriteTextResult(cmd, result, outputFile)
	},
}
