package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Black-And-White-Club/clubhouse/app"
	"github.com/Black-And-White-Club/clubhouse/config"
	"github.com/urfave/cli/v2"
)

func main() {
	cliApp := &cli.App{
		Name:    "clubhouse",
		Usage:   "club membership and event attendance service",
		Version: config.Version,
		Commands: []*cli.Command{
			newServeCommand(),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the message handlers and the ops server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Value:   "config.yaml",
				Usage:   "path to the configuration file",
				EnvVars: []string{"CONFIG_PATH"},
			},
			&cli.BoolFlag{
				Name:  "in-memory",
				Usage: "use a process-local event bus instead of NATS",
			},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.LoadConfigWith(c.String("config"), func(cfg *config.Config) {
				if c.Bool("in-memory") {
					cfg.NATS.InMemory = true
				}
			})
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			application, err := app.NewApp(ctx, cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}
			defer func() {
				if err := application.Close(); err != nil {
					application.Observability.Logger.Error("Shutdown finished with errors", "error", err)
				}
			}()

			if err := application.Run(ctx); err != nil && ctx.Err() == nil {
				return err
			}
			return nil
		},
	}
}
