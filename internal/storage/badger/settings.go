package badger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/timshannon/badgerhold/v4"

	"github.com/bobmcallan/canvas-mcp/internal/common"
)

// ErrSettingNotFound is returned by Get for a key that was never saved.
var ErrSettingNotFound = errors.New("setting not found")

// Setting is one saved configuration value, keyed by its environment
// variable name (CANVAS_API_TOKEN, CANVAS_API_DOMAIN).
type Setting struct {
	Key       string `badgerhold:"key"`
	Value     string
	UpdatedAt time.Time
}

// SettingsStore keeps Settings in badger. It implements
// interfaces.KeyValueStorage.
type SettingsStore struct {
	store  *badgerhold.Store
	logger *common.Logger
	now    func() time.Time
}

// NewSettingsStore returns a store over db.
func NewSettingsStore(db *BadgerDB, logger *common.Logger) *SettingsStore {
	return &SettingsStore{store: db.Store(), logger: logger, now: time.Now}
}

func (s *SettingsStore) lookup(key string) (Setting, error) {
	var setting Setting
	if err := s.store.Get(key, &setting); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return Setting{}, fmt.Errorf("%w: %s", ErrSettingNotFound, key)
		}
		return Setting{}, fmt.Errorf("failed to read setting %s: %w", key, err)
	}
	return setting, nil
}

// Get returns the saved value for key.
func (s *SettingsStore) Get(_ context.Context, key string) (string, error) {
	setting, err := s.lookup(key)
	if err != nil {
		return "", err
	}
	return setting.Value, nil
}

// Set saves value under key. Surrounding whitespace is dropped; a blank value
// removes the setting so it no longer shadows the config file.
func (s *SettingsStore) Set(ctx context.Context, key, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return s.Delete(ctx, key)
	}
	setting := Setting{Key: key, Value: value, UpdatedAt: s.now().UTC()}
	if err := s.store.Upsert(key, &setting); err != nil {
		return fmt.Errorf("failed to save setting %s: %w", key, err)
	}
	s.logger.Debug().Str("key", key).Int("length", len(value)).Msg("setting saved")
	return nil
}

// Delete removes key. Removing an unsaved key is not an error.
func (s *SettingsStore) Delete(_ context.Context, key string) error {
	err := s.store.Delete(key, Setting{})
	if err != nil && !errors.Is(err, badgerhold.ErrNotFound) {
		return fmt.Errorf("failed to delete setting %s: %w", key, err)
	}
	s.logger.Debug().Str("key", key).Msg("setting removed")
	return nil
}

// GetAll returns every saved setting as key/value pairs.
func (s *SettingsStore) GetAll(_ context.Context) (map[string]string, error) {
	out := make(map[string]string)
	err := s.store.ForEach(nil, func(setting *Setting) error {
		out[setting.Key] = setting.Value
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	return out, nil
}

// UpdatedAt reports when key was last saved.
func (s *SettingsStore) UpdatedAt(_ context.Context, key string) (time.Time, error) {
	setting, err := s.lookup(key)
	if err != nil {
		return time.Time{}, err
	}
	return setting.UpdatedAt, nil
}
