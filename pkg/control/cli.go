package control

import (
	"context"
	"fmt"
	"os"

	"github.com/kr/pretty"
	"github.com/urfave/cli/v2"

	"github.com/wayfare/wayfare/pkg/config"
	"github.com/wayfare/wayfare/pkg/travel"
	"github.com/wayfare/wayfare/pkg/user"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "catalogue",
		Usage: "Manage & query the travel catalogue",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Value: "wayfare.yaml",
				Usage: "path to the config file",
			},
			&cli.StringFlag{
				Name:  "as",
				Usage: "email of the registered account to act as (default: local system operator)",
			},
		},
		Subcommands: []*cli.Command{
			{
				Name:      "import-travel",
				Usage:     "Import flat travel record files",
				ArgsUsage: "FILE [FILE...]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "category",
						Value: "flight",
						Usage: "travel category of the records",
					},
				},
				Action: func(c *cli.Context) error {
					ctl, err := newControl(c)
					if err != nil {
						return err
					}
					category, err := travel.ParseCategory(c.String("category"))
					if err != nil {
						return err
					}

					parsed, err := ctl.ImportSegments(c.Args().Slice(), category)
					if err != nil {
						return err
					}
					fmt.Printf("imported %d %s records\n", parsed, category)

					return ctl.Save()
				},
			},
			{
				Name:      "import-users",
				Usage:     "Import flat user record files",
				ArgsUsage: "FILE [FILE...]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "type",
						Value: "client",
						Usage: "account type of the records",
					},
				},
				Action: func(c *cli.Context) error {
					ctl, err := newControl(c)
					if err != nil {
						return err
					}
					accountType, err := user.ParseType(c.String("type"))
					if err != nil {
						return err
					}

					parsed, err := ctl.ImportAccounts(c.Args().Slice(), accountType)
					if err != nil {
						return err
					}
					fmt.Printf("imported %d %s accounts\n", parsed, accountType)

					return ctl.Save()
				},
			},
			{
				Name:  "search",
				Usage: "Search single travel segments",
				Flags: append(searchFlags(),
					&cli.StringFlag{
						Name:  "category",
						Usage: "restrict the search to one travel category",
					},
				),
				Action: func(c *cli.Context) error {
					ctl, err := newControl(c)
					if err != nil {
						return err
					}

					var category *travel.Category
					if c.IsSet("category") {
						parsed, err := travel.ParseCategory(c.String("category"))
						if err != nil {
							return err
						}
						category = &parsed
					}

					segments, err := ctl.SearchSegments(c.String("date"), c.String("origin"), c.String("destination"), category)
					if err != nil {
						return err
					}
					if filter := c.String("filter"); filter != "" {
						if segments, err = FilterSegments(segments, filter); err != nil {
							return err
						}
					}
					if err := sortSegmentsFlag(c, segments); err != nil {
						return err
					}

					for _, segment := range segments {
						fmt.Println(segment)
					}

					return nil
				},
			},
			{
				Name:  "plan",
				Usage: "Enumerate itineraries between two locations",
				Flags: append(searchFlags(),
					&cli.DurationFlag{
						Name:  "timeout",
						Value: 0,
						Usage: "bound the enumeration time (0 means unbounded)",
					},
				),
				Action: func(c *cli.Context) error {
					ctl, err := newControl(c)
					if err != nil {
						return err
					}

					ctx := context.Background()
					if timeout := c.Duration("timeout"); timeout > 0 {
						var cancel context.CancelFunc
						ctx, cancel = context.WithTimeout(ctx, timeout)
						defer cancel()
					}

					itineraries, err := ctl.SearchItineraries(ctx, c.String("date"), c.String("origin"), c.String("destination"))
					if err != nil {
						return err
					}
					if filter := c.String("filter"); filter != "" {
						if itineraries, err = FilterItineraries(itineraries, filter); err != nil {
							return err
						}
					}
					if err := sortItinerariesFlag(c, itineraries); err != nil {
						return err
					}

					for _, itinerary := range itineraries {
						fmt.Println(itinerary)
						fmt.Println()
					}

					return nil
				},
			},
			{
				Name:  "book",
				Usage: "Book an itinerary from a search result",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "user", Required: true, Usage: "email of the booking account"},
					&cli.StringFlag{Name: "date", Required: true, Usage: "departure day (YYYY-MM-DD)"},
					&cli.StringFlag{Name: "origin", Required: true},
					&cli.StringFlag{Name: "destination", Required: true},
					&cli.IntFlag{Name: "index", Usage: "index of the itinerary in the search results"},
				},
				Action: func(c *cli.Context) error {
					ctl, err := newControl(c)
					if err != nil {
						return err
					}

					itinerary, err := ctl.Book(context.Background(), c.String("user"),
						c.String("date"), c.String("origin"), c.String("destination"), c.Int("index"))
					if err != nil {
						return err
					}
					fmt.Println(itinerary)

					return ctl.Save()
				},
			},
			{
				Name:  "users",
				Usage: "Search registered accounts by name",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "first", Usage: "substring of the first names"},
					&cli.StringFlag{Name: "last", Usage: "substring of the last name"},
				},
				Action: func(c *cli.Context) error {
					ctl, err := newControl(c)
					if err != nil {
						return err
					}

					accounts, err := ctl.SearchUsers(c.String("first"), c.String("last"))
					if err != nil {
						return err
					}
					for _, account := range accounts {
						fmt.Println(account)
					}

					return nil
				},
			},
			{
				Name:  "export-travel",
				Usage: "Export travel records in the flat ingestion format",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "category", Value: "flight"},
					&cli.StringFlag{Name: "out", Usage: "output file (default: stdout)"},
				},
				Action: func(c *cli.Context) error {
					ctl, err := newControl(c)
					if err != nil {
						return err
					}
					category, err := travel.ParseCategory(c.String("category"))
					if err != nil {
						return err
					}

					writer := os.Stdout
					if path := c.String("out"); path != "" {
						file, err := os.Create(path)
						if err != nil {
							return err
						}
						defer file.Close()
						writer = file
					}

					return ctl.ExportSegments(writer, category)
				},
			},
			{
				Name:  "export-users",
				Usage: "Export user records in the flat ingestion format",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Usage: "output file (default: stdout)"},
				},
				Action: func(c *cli.Context) error {
					ctl, err := newControl(c)
					if err != nil {
						return err
					}

					writer := os.Stdout
					if path := c.String("out"); path != "" {
						file, err := os.Create(path)
						if err != nil {
							return err
						}
						defer file.Close()
						writer = file
					}

					return ctl.ExportAccounts(writer)
				},
			},
			{
				Name:  "save",
				Usage: "Write the catalogue snapshot to disk",
				Action: func(c *cli.Context) error {
					ctl, err := newControl(c)
					if err != nil {
						return err
					}

					return ctl.Save()
				},
			},
			{
				Name:  "inspect",
				Usage: "Dump a summary of the stored catalogue",
				Action: func(c *cli.Context) error {
					ctl, err := newControl(c)
					if err != nil {
						return err
					}

					type summary struct {
						SnapshotPath string
						Segments     map[string]int
						Accounts     int
						Bookings     int
					}

					dump := summary{
						SnapshotPath: ctl.Config.SnapshotPath,
						Segments:     map[string]int{},
					}
					for _, category := range travel.Categories() {
						dump.Segments[category.String()] = len(ctl.Store.Travels(category))
					}
					accounts := ctl.Store.Users()
					dump.Accounts = len(accounts)
					for _, account := range accounts {
						dump.Bookings += len(account.Booked())
					}

					fmt.Printf("%# v\n", pretty.Formatter(dump))

					return nil
				},
			},
		},
	}
}

func searchFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "date", Required: true, Usage: "departure day (YYYY-MM-DD)"},
		&cli.StringFlag{Name: "origin", Required: true},
		&cli.StringFlag{Name: "destination", Usage: "destination location (search: optional, plan: required)"},
		&cli.StringFlag{Name: "sort", Usage: "order results by cost or duration"},
		&cli.BoolFlag{Name: "descending", Usage: "sort in descending order"},
		&cli.StringFlag{Name: "filter", Usage: "boolean filter expression over the results"},
	}
}

func sortSegmentsFlag(c *cli.Context, segments []travel.Segment) error {
	if !c.IsSet("sort") {
		return nil
	}

	criterion, err := travel.ParseCriterion(c.String("sort"))
	if err != nil {
		return err
	}
	travel.SortSegments(segments, criterion, c.Bool("descending"))

	return nil
}

func sortItinerariesFlag(c *cli.Context, itineraries []*travel.Itinerary) error {
	if !c.IsSet("sort") {
		return nil
	}

	criterion, err := travel.ParseCriterion(c.String("sort"))
	if err != nil {
		return err
	}
	travel.SortItineraries(itineraries, criterion, c.Bool("descending"))

	return nil
}

func newControl(c *cli.Context) (*Control, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}

	ctl, err := New(cfg)
	if err != nil {
		return nil, err
	}

	if as := c.String("as"); as != "" {
		if err := ctl.ActAs(as); err != nil {
			return nil, err
		}
	}

	return ctl, nil
}
