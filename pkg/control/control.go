// Package control is the session layer: it owns the store, the snapshot
// engine, and the acting account, and gates every operation on the acting
// account's privilege level. It replaces any notion of a process-wide
// singleton; construct one Control at startup and pass it around.
package control

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"

	"github.com/wayfare/wayfare/pkg/config"
	"github.com/wayfare/wayfare/pkg/ingest"
	"github.com/wayfare/wayfare/pkg/snapshot"
	"github.com/wayfare/wayfare/pkg/store"
	"github.com/wayfare/wayfare/pkg/travel"
	"github.com/wayfare/wayfare/pkg/user"
)

var (
	ErrPrivilege      = errors.New("insufficient privileges")
	ErrUnknownAccount = errors.New("no account registered under that email")
)

type Control struct {
	Config *config.Config
	Store  *store.MainStore

	engine *snapshot.Engine

	// account is the acting account; nil means the local system operator,
	// which is not subject to privilege checks
	account *user.Account
}

func New(cfg *config.Config) (*Control, error) {
	stopover, err := cfg.StopoverDuration()
	if err != nil {
		return nil, err
	}

	engine := snapshot.NewEngine(cfg.SnapshotPath, cfg.Passphrase)

	return &Control{
		Config: cfg,
		Store:  engine.Load(stopover),
		engine: engine,
	}, nil
}

// ActAs switches the acting account to a registered one.
func (c *Control) ActAs(email string) error {
	account, ok := c.Store.User(email)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAccount, email)
	}
	c.account = account

	return nil
}

func (c *Control) Account() *user.Account {
	return c.account
}

func (c *Control) require(operation string, level int) error {
	if c.account == nil || c.account.HasPrivilege(level) {
		return nil
	}

	return fmt.Errorf("%w: %s requires level %d", ErrPrivilege, operation, level)
}

// ImportSegments parses every file concurrently, then feeds the records to
// the store in path order. Returns how many records parsed cleanly.
func (c *Control) ImportSegments(paths []string, category travel.Category) (int, error) {
	if err := c.require("import travel records", user.PrivilegeUploadTravel); err != nil {
		return 0, err
	}

	p := pool.NewWithResults[[]travel.Segment]()
	for _, path := range paths {
		p.Go(func() []travel.Segment {
			segments, err := ingest.ReadSegmentsFile(path, category)
			if err != nil {
				log.Error().Err(err).Str("path", path).Msg("Failed to read travel records")

				return nil
			}

			return segments
		})
	}

	parsed := 0
	for _, segments := range p.Wait() {
		c.Store.AddSegments(segments)
		parsed += len(segments)
	}

	return parsed, nil
}

// ImportAccounts parses every file concurrently, then registers the accounts.
func (c *Control) ImportAccounts(paths []string, accountType user.Type) (int, error) {
	if err := c.require("import user records", user.PrivilegeUploadUsers); err != nil {
		return 0, err
	}

	p := pool.NewWithResults[[]*user.Account]()
	for _, path := range paths {
		p.Go(func() []*user.Account {
			accounts, err := ingest.ReadAccountsFile(path, accountType)
			if err != nil {
				log.Error().Err(err).Str("path", path).Msg("Failed to read user records")

				return nil
			}

			return accounts
		})
	}

	parsed := 0
	for _, accounts := range p.Wait() {
		c.Store.AddUsers(accounts)
		parsed += len(accounts)
	}

	return parsed, nil
}

func (c *Control) SearchSegments(day string, origin, destination string, category *travel.Category) ([]travel.Segment, error) {
	if err := c.require("search travel records", user.PrivilegeSearchSegments); err != nil {
		return nil, err
	}

	date, err := time.Parse(travel.DateFormat, day)
	if err != nil {
		return nil, fmt.Errorf("incorrect date format: %w", err)
	}

	return c.Store.SearchSegments(date, origin, destination, category), nil
}

func (c *Control) SearchItineraries(ctx context.Context, day string, origin, destination string) ([]*travel.Itinerary, error) {
	if err := c.require("search itineraries", user.PrivilegeSearchItineraries); err != nil {
		return nil, err
	}

	date, err := time.Parse(travel.DateFormat, day)
	if err != nil {
		return nil, fmt.Errorf("incorrect date format: %w", err)
	}

	return c.Store.SearchItineraries(ctx, date, origin, destination), nil
}

func (c *Control) SearchUsers(firstNames, lastName string) ([]*user.Account, error) {
	if err := c.require("search user records", user.PrivilegeViewOther); err != nil {
		return nil, err
	}

	return c.Store.SearchUsersByName(firstNames, lastName), nil
}

// Book runs an itinerary search and books the index-th result for the
// account registered under email.
func (c *Control) Book(ctx context.Context, email string, day string, origin, destination string, index int) (*travel.Itinerary, error) {
	if err := c.require("book an itinerary", user.PrivilegeBookTravel); err != nil {
		return nil, err
	}

	account, ok := c.Store.User(email)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAccount, email)
	}

	itineraries, err := c.SearchItineraries(ctx, day, origin, destination)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(itineraries) {
		return nil, fmt.Errorf("itinerary %d does not exist, the search returned %d", index, len(itineraries))
	}

	account.Book(itineraries[index])

	return itineraries[index], nil
}

func (c *Control) ExportSegments(writer io.Writer, category travel.Category) error {
	if err := c.require("export travel records", user.PrivilegeExportRecords); err != nil {
		return err
	}

	return ingest.WriteSegments(writer, c.Store.Travels(category))
}

func (c *Control) ExportAccounts(writer io.Writer) error {
	if err := c.require("export user records", user.PrivilegeExportRecords); err != nil {
		return err
	}

	return ingest.WriteAccounts(writer, c.Store.Users())
}

// Save snapshots the store to the configured path.
func (c *Control) Save() error {
	return c.engine.Save(c.Store)
}
