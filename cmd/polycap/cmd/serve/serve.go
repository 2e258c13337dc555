package serve

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"polycap/cmd/polycap/cmd/cmdutil"
	"polycap/internal/api/server"
	"polycap/internal/app"
	"polycap/internal/config"
)

var (
	host string
	port string
)

func init() {
	Cmd.Flags().StringVar(&host, "host", "", "listen host (default: HTTP_HOST or 0.0.0.0)")
	Cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (default: HTTP_PORT or 8080)")
}

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the capability HTTP API",
	Long: `Run the capability HTTP API.

The server exposes the capabilities under /api/v1, Swagger documentation
under /swagger/index.html and Prometheus metrics under /metrics. It shuts
down gracefully on SIGINT and SIGTERM.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		serverConfig := config.GetServerConfig()
		if host != "" {
			serverConfig.Host = host
		}
		if port != "" {
			serverConfig.Port = port
		}

		environment := "development"
		if serverConfig.Mode == "release" {
			environment = "production"
		}

		srv, err := app.InitializeServer(cmdutil.Options(cmd), server.Config{
			Host:        serverConfig.Host,
			Port:        serverConfig.Port,
			Environment: environment,
		})
		if err != nil {
			return err
		}

		if err := srv.Start(); err != nil {
			return err
		}
		fmt.Printf("🚀 Listening on http://%s\n", serverConfig.Address())

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	},
}
