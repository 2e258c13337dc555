package translate

import (
	"github.com/spf13/cobra"

	"polycap/cmd/polycap/cmd/cmdutil"
	"polycap/internal/app"
	"polycap/internal/app/model"
)

var (
	inputFile  string
	text       string
	fromLang   string
	toLang     string
	format     string
	outputFile string
)

func init() {
	Cmd.Flags().StringVarP(&inputFile, "file", "f", "", "text file to translate")
	Cmd.Flags().StringVarP(&text, "text", "t", "", "text to translate (alternative to --file)")
	Cmd.Flags().StringVar(&fromLang, "from", "", "source language code (ISO 639-1); empty auto-detects")
	Cmd.Flags().StringVar(&toLang, "to", "", "target language code (ISO 639-1)")
	Cmd.Flags().StringVar(&format, "format", "", "input format: plain or html")
	Cmd.Flags().StringVarP(&outputFile, "output", "o", "", "write the translation to this file instead of stdout")
	Cmd.MarkFlagRequired("to")
}

// Cmd represents the translate command
var Cmd = &cobra.Command{
	Use:   "translate",
	Short: "Translate a text into a target language",
	Long: `Translate a text into a target language.

The source language comes from --from or, when omitted, from language
detection over the input. Oversized inputs are chunked on sentence
boundaries and the per-chunk translations merge back in input order.`,
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
			Capability: model.CapabilityTranslate,
			Text: &model.TextPayload{
				Content: content,
				Format:  model.InputFormat(format),
			},
			SourceLanguage: fromLang,
			TargetLanguage: toLang,
		})
		if err != nil {
			return err
		}

		return cmdutil.WriteTextResult(cmd, result, outputFile)
	},
}
