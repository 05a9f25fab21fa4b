// Command martian runs Martian Robots missions.
//
// Subcommands:
//  1. "simulate" – runs a mission from a file, stdin or the library and prints the report
//  2. "validate" – checks every mission file in a directory
//  3. "serve" – runs the HTTP server exposing REST API, WebSocket, and an /mcp HTTP endpoint
//  4. "mcp" – runs an MCP stdio server and spins up an internal HTTP API if none is available
//
// Flags control host/port, the missions directory, debug logging, run
// retention, and optional ngrok tunneling for external access during development.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
	"github.com/wricardo/martian-robots/game/config"
	"github.com/wricardo/martian-robots/game/service"
	"github.com/wricardo/martian-robots/game/session"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Martian Robots"
)

// main loads the environment and runs the selected subcommand.
func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil {
		// Only log if it's not a "file not found" error
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	} else {
		log.Println("Loaded environment variables from .env file")
	}

	if err := newApp().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

// newApp builds the command tree. Root flags are visible to every subcommand.
func newApp() *cli.Command {
	return &cli.Command{
		Name:    "martian",
		Usage:   "simulate robots exploring the surface of Mars",
		Version: Version,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "Enable debug logging",
				Sources: cli.EnvVars("DEBUG"),
			},
			&cli.StringFlag{
				Name:    "missions-dir",
				Value:   "missions",
				Usage:   "Directory containing mission files",
				Sources: cli.EnvVars("MISSIONS_DIR"),
			},
		},
		Before: setupLogging,
		Commands: []*cli.Command{
			simulateCommand(),
			validateCommand(),
			serveCommand(),
			mcpCommand(),
		},
	}
}

// setupLogging adds file and line to log output in debug mode.
func setupLogging(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.Bool("debug") {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	} else {
		log.SetFlags(log.LstdFlags)
	}
	return ctx, nil
}

// initializeServices wires the run store, the mission library and the
// simulation service.
func initializeServices(missionsDir string) (service.SimulationService, *session.Manager, error) {
	missionManager, err := config.NewManager(missionsDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create mission library: %w", err)
	}

	runManager := session.NewManager()
	simService := service.NewSimulationService(runManager, missionManager)

	return simService, runManager, nil
}
