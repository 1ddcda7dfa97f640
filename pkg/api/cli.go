package api

import (
	"github.com/urfave/cli/v2"

	"github.com/wayfare/wayfare/pkg/config"
	"github.com/wayfare/wayfare/pkg/snapshot"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the core web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "config",
						Value: "wayfare.yaml",
						Usage: "path to the config file",
					},
					&cli.StringFlag{
						Name:  "listen",
						Usage: "listen target for the web server (default from config)",
					},
				},
				Action: func(c *cli.Context) error {
					cfg, err := config.Load(c.String("config"))
					if err != nil {
						return err
					}

					stopover, err := cfg.StopoverDuration()
					if err != nil {
						return err
					}

					ms := snapshot.NewEngine(cfg.SnapshotPath, cfg.Passphrase).Load(stopover)

					listen := cfg.Listen
					if c.IsSet("listen") {
						listen = c.String("listen")
					}

					return SetupServer(listen, ms)
				},
			},
		},
	}
}
