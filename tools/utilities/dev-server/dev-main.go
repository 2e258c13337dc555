package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"polycap/internal/api/server"
	"polycap/internal/app"
	"polycap/internal/config"
)

// Minimal dev entry: boots the API server with whatever engine configuration
// resolves, without the CLI around it.
func main() {
	if _, err := config.InitializeConfig(); err != nil {
		log.Printf("configuration warning: %v", err)
	}

	serverConfig := config.GetServerConfig()
	srv, err := app.InitializeServer(app.Options{Verbose: true}, server.Config{
		Host:        serverConfig.Host,
		Port:        serverConfig.Port,
		Environment: "development",
	})
	if err != nil {
		log.Fatal("failed to build server: ", err)
	}

	if err := srv.Start(); err != nil {
		log.Fatal("failed to start server: ", err)
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	log.Println("shutting down dev server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		os.Exit(1)
	}
}
