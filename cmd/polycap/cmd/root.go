package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"polycap/cmd/polycap/cmd/batch"
	"polycap/cmd/polycap/cmd/engines"
	"polycap/cmd/polycap/cmd/serve"
	"polycap/cmd/polycap/cmd/speak"
	"polycap/cmd/polycap/cmd/summarize"
	"polycap/cmd/polycap/cmd/transcribe"
	"polycap/cmd/polycap/cmd/translate"
	"polycap/cmd/polycap/cmd/version"
)

var Verbose bool
var ConfigPath string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "polycap",
	Short: "Summarize, translate, transcribe and synthesize text and audio through prioritized engine chains",
	Long: `polycap runs four content capabilities behind one orchestration layer.
- Oversized inputs are chunked and resolved under bounded concurrency
- Each chunk walks its engine chain in priority order, falling back on failure
- A deterministic local engine terminates every chain, so requests degrade
  instead of failing when cloud engines are down`,
	TraverseChildren: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(summarize.Cmd)
	rootCmd.AddCommand(translate.Cmd)
	rootCmd.AddCommand(transcribe.Cmd)
	rootCmd.AddCommand(speak.Cmd)
	rootCmd.AddCommand(batch.Cmd)
	rootCmd.AddCommand(engines.Cmd)
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "V", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&ConfigPath, "config", "",
		"engine configuration file (default: config/engines.yaml, then ~/.polycap/engines.yaml)")
}
