package badger

import (
	"github.com/bobmcallan/canvas-mcp/internal/common"
	"github.com/bobmcallan/canvas-mcp/internal/config"
	"github.com/bobmcallan/canvas-mcp/internal/interfaces"
)

// Manager implements the StorageManager interface for Badger.
type Manager struct {
	db *BadgerDB
	kv interfaces.KeyValueStorage
}

// NewManager creates a new Badger storage manager.
func NewManager(logger *common.Logger, cfg *config.BadgerConfig) (interfaces.StorageManager, error) {
	db, err := NewBadgerDB(logger, cfg)
	if err != nil {
		return nil, err
	}

	logger.Debug().Msg("Badger storage manager initialized")

	return &Manager{
		db: db,
		kv: NewSettingsStore(db, logger),
	}, nil
}

// KeyValueStorage returns the KeyValue storage interface.
func (m *Manager) KeyValueStorage() interfaces.KeyValueStorage {
	return m.kv
}

// Path returns the database directory.
func (m *Manager) Path() string {
	return m.db.Path()
}

// Close closes the database connection.
func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}
