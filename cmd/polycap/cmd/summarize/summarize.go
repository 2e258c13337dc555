package summarize

import (
	"github.com/spf13/cobra"

	"polycap/cmd/polycap/cmd/cmdutil"
	"polycap/internal/app"
	"polycap/internal/app/model"
)

var (
	inputFile   string
	text        string
	maxLength   int
	lengthClass string
	style       string
	format      string
	language    string
	outputFile  string
)

func init() {
	Cmd.Flags().StringVarP(&inputFile, "file", "f", "", "text file to summarize")
	Cmd.Flags().StringVarP(&text, "text", "t", "", "text to summarize (alternative to --file)")
	Cmd.Flags().IntVar(&maxLength, "max-length", 0, "summary length cap in characters (overrides --length)")
	Cmd.Flags().StringVar(&lengthClass, "length", "", "summary length class: short, medium or long")
	Cmd.Flags().StringVar(&style, "style", "", "summary style: paragraph, bullets or abstract")
	Cmd.Flags().StringVar(&format, "format", "", "input format: plain or html")
	Cmd.Flags().StringVar(&language, "language", "", "source language code (ISO 639-1); empty auto-detects")
	Cmd.Flags().StringVarP(&outputFile, "output", "o", "", "write the summary to this file instead of stdout")
}

// Cmd represents the summarize command
var Cmd = &cobra.Command{
	Use:   "summarize",
	Short: "Condense a text into a summary",
	Long: `Condense a text into a summary.

Long inputs are split into chunks, each chunk walks the summarize engine
chain, and the chunk summaries merge back in input order. When the merged
summary still exceeds the requested length a single refinement pass
condenses it once more.`,
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
			Capability: model.CapabilitySummarize,
			Text: &model.TextPayload{
				Content: content,
				Format:  model.InputFormat(format),
			},
			SourceLanguage: language,
			MaxLength:      maxLength,
			LengthClass:    model.LengthClass(lengthClass),
			Style:          model.SummaryStyle(style),
		})
		if err != nil {
			return err
		}

		return cmdutil.WriteTextResult(cmd, result, outputFile)
	},
}
