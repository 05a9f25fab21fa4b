package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
	"github.com/wricardo/martian-robots/game/config"
	"github.com/wricardo/martian-robots/game/engine"
	"github.com/wricardo/martian-robots/game/mission"
)

// simulateCommand runs a single mission and prints one line per robot.
func simulateCommand() *cli.Command {
	return &cli.Command{
		Name:      "simulate",
		Usage:     "run a mission and print the final position of every robot",
		ArgsUsage: "[FILE]  (reads stdin when FILE is missing or -)",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "mission",
				Usage: "Run a mission from the library instead of a file",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print results and scents as JSON",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			m, err := readMission(cmd)
			if err != nil {
				return err
			}

			results, scents, err := m.Run()
			if err != nil {
				return err
			}

			out := cmd.Root().Writer
			if cmd.Bool("json") {
				return writeJSON(out, results, scents)
			}

			if report := mission.FormatReport(results); report != "" {
				fmt.Fprintln(out, report)
			}
			return nil
		},
	}
}

// readMission loads the mission named by --mission, or parses the file
// argument or stdin.
func readMission(cmd *cli.Command) (*mission.Mission, error) {
	if name := cmd.String("mission"); name != "" {
		if cmd.Args().Present() {
			return nil, errors.New("provide either a file or --mission, not both")
		}
		library, err := config.NewManager(cmd.String("missions-dir"))
		if err != nil {
			return nil, err
		}
		return library.LoadMission(name)
	}

	var (
		data []byte
		err  error
	)
	switch path := cmd.Args().First(); path {
	case "", "-":
		data, err = io.ReadAll(cmd.Root().Reader)
	default:
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read mission: %w", err)
	}

	return mission.Parse(string(data))
}

func writeJSON(w io.Writer, results []engine.Result, scents []engine.ScentEntry) error {
	lines := make([]string, 0, len(results))
	for _, res := range results {
		lines = append(lines, mission.FormatOutcome(res.Outcome))
	}
	if scents == nil {
		scents = []engine.ScentEntry{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]interface{}{
		"results": results,
		"scents":  scents,
		"report":  lines,
	})
}

// validateCommand checks every mission file in a directory.
func validateCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "check every mission file in a directory",
		ArgsUsage: "[DIR]  (defaults to --missions-dir)",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir := cmd.Args().First()
			if dir == "" {
				dir = cmd.String("missions-dir")
			}

			failures, checked, err := config.ValidateDir(dir)
			if err != nil {
				return err
			}

			out := cmd.Root().Writer
			if len(checked) == 0 {
				fmt.Fprintf(out, "No mission files found in %s\n", dir)
				return nil
			}

			for _, file := range checked {
				fmt.Fprintf(out, "\n%s %s\n", strings.Repeat("=", 20), file)
				if err, failed := failures[file]; failed {
					fmt.Fprintln(out, "❌ INVALID")
					fmt.Fprintln(out, "  ❌ "+err.Error())
				} else {
					fmt.Fprintln(out, "✅ VALID")
				}
			}

			fmt.Fprintf(out, "\n%s\n", strings.Repeat("=", 40))
			if len(failures) > 0 {
				fmt.Fprintln(out, "❌ Some missions have errors")
				return fmt.Errorf("%d of %d mission files are invalid", len(failures), len(checked))
			}
			fmt.Fprintln(out, "✅ All missions are valid!")
			return nil
		},
	}
}
