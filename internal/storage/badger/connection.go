package badger

import (
	"fmt"
	"os"

	"github.com/timshannon/badgerhold/v4"

	"github.com/bobmcallan/canvas-mcp/internal/common"
	"github.com/bobmcallan/canvas-mcp/internal/config"
)

// BadgerDB manages the Badger database connection.
type BadgerDB struct {
	store  *badgerhold.Store
	logger *common.Logger
	path   string
}

// NewBadgerDB opens (or creates) the settings database at cfg.Path.
func NewBadgerDB(logger *common.Logger, cfg *config.BadgerConfig) (*BadgerDB, error) {
	if err := os.MkdirAll(cfg.Path, 0700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	logger.Debug().Str("path", cfg.Path).Msg("opening Badger database")

	options := badgerhold.DefaultOptions
	options.Dir = cfg.Path
	options.ValueDir = cfg.Path
	options.Logger = nil // badger's own logger writes to stdout

	store, err := badgerhold.Open(options)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger database: %w", err)
	}

	return &BadgerDB{
		store:  store,
		logger: logger,
		path:   cfg.Path,
	}, nil
}

// Store returns the underlying badgerhold store.
func (b *BadgerDB) Store() *badgerhold.Store {
	return b.store
}

// Path returns the on-disk directory of the database.
func (b *BadgerDB) Path() string {
	return b.path
}

// Close closes the database connection.
func (b *BadgerDB) Close() error {
	if b.store != nil {
		return b.store.Close()
	}
	return nil
}
