package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	app "github.com/rocketscienceinc/boardgames-backend/internal"
	"github.com/rocketscienceinc/boardgames-backend/internal/config"
)

// main - is the entry point of the application. It parses the command line, loads the configuration and
// runs the selected command.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	cmd := &cli.Command{
		Name:  "boardgames",
		Usage: "Go (weiqi) and Xiangqi rule engines behind a text command protocol",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to the yaml config file",
				Value:   "config.yml",
				Sources: cli.EnvVars("BOARDGAMES_CONFIG"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "play",
				Usage: "read commands from stdin and answer on stdout",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					conf := config.MustLoad(cmd.String("config"))

					return app.RunApp(ctx, initLogger(conf), conf, os.Stdin, os.Stdout)
				},
			},
			{
				Name:      "replay",
				Usage:     "rebuild a stored session from its action log and print it",
				ArgsUsage: "<session-id>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() != 1 {
						return cli.Exit("replay needs exactly one session id", 2)
					}

					conf := config.MustLoad(cmd.String("config"))

					return app.ShowSession(ctx, initLogger(conf), conf, cmd.Args().First(), os.Stdout)
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		panic(fmt.Errorf("app run failed: %w", err))
	}
}

// initialize logger. Logs go to stderr so they never mix with protocol answers on stdout.
func initLogger(conf *config.Config) *slog.Logger {
	var level slog.Level

	switch conf.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
