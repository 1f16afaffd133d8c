package storage

import (
	"github.com/bobmcallan/canvas-mcp/internal/common"
	"github.com/bobmcallan/canvas-mcp/internal/config"
	"github.com/bobmcallan/canvas-mcp/internal/interfaces"
	"github.com/bobmcallan/canvas-mcp/internal/storage/badger"
)

// NewStorageManager creates the settings storage manager based on config.
func NewStorageManager(logger *common.Logger, cfg *config.Config) (interfaces.StorageManager, error) {
	return badger.NewManager(logger, &cfg.Storage.Badger)
}
