// Package snapshot persists the main store's full object graph through a
// keyed-encryption envelope and rebuilds it, origin index and booked
// itineraries included, on the way back in.
package snapshot

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/wayfare/wayfare/pkg/store"
)

type Engine struct {
	path       string
	passphrase string
}

func NewEngine(path string, passphrase string) *Engine {
	return &Engine{
		path:       path,
		passphrase: passphrase,
	}
}

func (e *Engine) Path() string {
	return e.path
}

// Save writes the store to disk. The snapshot goes to a temporary file first
// and is renamed over the previous one only once fully written, so a failed
// save leaves the prior snapshot untouched.
func (e *Engine) Save(ms *store.MainStore) error {
	envelope, err := seal(e.passphrase, encodeStore(ms))
	if err != nil {
		log.Error().Err(err).Msg("Failed to encrypt snapshot")

		return err
	}

	tempPath := e.path + ".tmp"
	if err := os.WriteFile(tempPath, envelope, 0o600); err != nil {
		log.Error().Err(err).Str("path", tempPath).Msg("Failed to write snapshot")

		return err
	}
	if err := os.Rename(tempPath, e.path); err != nil {
		log.Error().Err(err).Str("path", e.path).Msg("Failed to move snapshot into place")
		os.Remove(tempPath)

		return err
	}

	log.Info().Str("path", e.path).Msg("Saved snapshot")

	return nil
}

// Load rebuilds a store from disk. A missing snapshot file is not an error
// and yields a fresh empty store, as does any I/O, decryption, or payload
// failure (which is additionally logged).
func (e *Engine) Load(maxStopover time.Duration) *store.MainStore {
	ms := store.NewMainStore(maxStopover)

	file, err := os.ReadFile(e.path)
	if errors.Is(err, fs.ErrNotExist) {
		return ms
	}
	if err != nil {
		log.Error().Err(err).Str("path", e.path).Msg("Failed to read snapshot")

		return ms
	}

	payload, err := open(e.passphrase, file)
	if err != nil {
		log.Error().Err(err).Str("path", e.path).Msg("Failed to decrypt snapshot")

		return store.NewMainStore(maxStopover)
	}

	if err := decodeInto(payload, ms); err != nil {
		log.Error().Err(err).Str("path", e.path).Msg("Failed to decode snapshot")

		return store.NewMainStore(maxStopover)
	}

	return ms
}
