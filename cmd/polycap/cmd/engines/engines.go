package engines

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"polycap/cmd/polycap/cmd/cmdutil"
	"polycap/internal/app"
	appconfig "polycap/internal/app/config"
)

var (
	initPath  string
	initForce bool
)

func init() {
	initCmd.Flags().StringVar(&initPath, "path", "", "where to write the config (default: the resolved config path)")
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config file")
	Cmd.AddCommand(initCmd)
}

// Cmd represents the engines command
var Cmd = &cobra.Command{
	Use:   "engines",
	Short: "List the configured engines and their health",
	Long: `List the configured engines and their health.

Engines print grouped by capability in attempt order, with the success
rate and average latency recorded for this process so far.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := app.InitializeApplication(cmdutil.Options(cmd))
		if err != nil {
			return err
		}
		defer application.Close()

		descriptors := application.Registry.Snapshot()
		if len(descriptors) == 0 {
			fmt.Println("No engines configured.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCAPABILITY\tPRIORITY\tTIMEOUT\tLANGUAGES\tHEALTH")
		for _, d := range descriptors {
			stats := application.Metrics.EngineStats(d.ID)

			languages := "all"
			if len(d.Languages) > 0 {
				languages = strings.Join(d.Languages, ",")
			}

			health := "unused"
			if stats.TotalAttempts > 0 {
				health = fmt.Sprintf("%.0f%% of %d (%.0fms avg)",
					stats.SuccessRate*100, stats.TotalAttempts, stats.AverageLatencyMs)
			}

			fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\n",
				d.ID, d.Capability, d.Priority, d.Timeout, languages, health)
		}
		return w.Flush()
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default engine configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := initPath
		if path == "" {
			if configPath, _ := cmd.Flags().GetString("config"); configPath != "" {
				path = configPath
			} else {
				path = appconfig.GetDefaultConfigPath()
			}
		}

		if _, err := os.Stat(path); err == nil && !initForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}

		if err := appconfig.CreateDefaultConfig(path); err != nil {
			return err
		}
		fmt.Printf("✅ Wrote default engine configuration to %s\n", path)
		fmt.Println("💡 Cloud engines stay disabled until their API keys are set in the environment")
		return nil
	},
}
