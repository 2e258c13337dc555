package batch

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"polycap/cmd/polycap/cmd/cmdutil"
	"polycap/internal/app"
	appbatch "polycap/internal/app/batch"
	"polycap/internal/app/model"
)

var (
	capability string
	inputDir   string
	outputDir  string
	extension  string
	limit      int
	parallel   int
	fromLang   string
	toLang     string
	maxLength  int
	style      string
	rate       string
	reportPath string
	noProgress bool
)

func init() {
	Cmd.Flags().StringVarP(&capability, "capability", "c", "", "capability to run: summarize, translate, transcribe or speak")
	Cmd.Flags().StringVarP(&inputDir, "input", "i", "", "directory of input files")
	Cmd.Flags().StringVar(&outputDir, "output-dir", "", "directory for outputs (default: the input directory)")
	Cmd.Flags().StringVar(&extension, "ext", "", "input extension to match (default: .wav for transcribe, .txt otherwise)")
	Cmd.Flags().IntVar(&limit, "limit", 0, "process at most this many files (0 means all)")
	Cmd.Flags().IntVar(&parallel, "parallel", 4, "number of files processed concurrently")
	Cmd.Flags().StringVar(&fromLang, "from", "", "source language code (ISO 639-1)")
	Cmd.Flags().StringVar(&toLang, "to", "", "target language code for translate")
	Cmd.Flags().IntVar(&maxLength, "max-length", 0, "summary length cap in characters")
	Cmd.Flags().StringVar(&style, "style", "", "summary style: paragraph, bullets or abstract")
	Cmd.Flags().StringVar(&rate, "rate", "", "speech rate for speak: normal or slow")
	Cmd.Flags().StringVar(&reportPath, "report", "", "write an xlsx report of the run to this path")
	Cmd.Flags().BoolVar(&noProgress, "no-progress", false, "disable the terminal progress bar")
	Cmd.MarkFlagRequired("capability")
	Cmd.MarkFlagRequired("input")
}

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Run one capability over every matching file in a directory",
	Long: `Run one capability over every matching file in a directory.

Files are processed oldest first through a bounded worker pool, outputs
land next to the inputs (or in --output-dir), already-processed files are
skipped, and --report writes a per-file xlsx summary of the run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		selected, err := capabilityFromFlag(capability)
		if err != nil {
			return err
		}

		processor, err := app.InitializeBatchProcessor(cmdutil.Options(cmd))
		if err != nil {
			return err
		}

		results, summary, err := processor.Run(cmd.Context(), appbatch.Options{
			Capability:     selected,
			InputDir:       inputDir,
			OutputDir:      outputDir,
			Extension:      extension,
			Limit:          limit,
			Parallel:       parallel,
			SourceLanguage: fromLang,
			TargetLanguage: toLang,
			MaxLength:      maxLength,
			Style:          model.SummaryStyle(style),
			Rate:           model.SpeechRate(rate),
			ReportPath:     reportPath,
			Progress:       appbatch.ProgressConfig{Enabled: !noProgress},
		})
		if err != nil {
			return err
		}

		for _, r := range results {
			if r.Err != nil {
				fmt.Fprintf(os.Stderr, "❌ %s: %v\n", r.Name, r.Err)
			}
		}
		fmt.Printf("Processed %d file(s): %d full, %d degraded, %d failed\n",
			summary.Total, summary.Full, summary.Degraded, summary.Failed)

		if summary.Failed > 0 {
			return fmt.Errorf("%d file(s) failed", summary.Failed)
		}
		return nil
	},
}

func capabilityFromFlag(name string) (model.Capability, error) {
	switch name {
	case "summarize":
		return model.CapabilitySummarize, nil
	case "translate":
		return model.CapabilityTranslate, nil
	case "transcribe":
		return model.CapabilitySpeechToText, nil
	case "speak":
		return model.CapabilityTextToSpeech, nil
	default:
		return "", fmt.Errorf("unknown capability %q (use summarize, translate, transcribe or speak)", name)
	}
}
