package main

import (
	"fmt"
	"os"

	"github.com/elC0mpa/storage-doctor/cmd/mcp/tools"
	"github.com/elC0mpa/storage-doctor/logger"
	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
)

func main() {
	_ = godotenv.Load()
	log := logger.Init()
	cfg := LoadConfig()

	s := server.NewMCPServer(
		"storage-doctor-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	tools.RegisterAzureTools(s, cfg, log)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
