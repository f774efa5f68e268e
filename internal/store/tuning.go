package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ayusman/handpong/internal/game"
)

// activeTuningKey is the settings key naming the tuning profile in use.
const activeTuningKey = "active_tuning"

// defaultTuningName is the profile used when no active profile is set.
const defaultTuningName = "default"

// TuningRepository provides CRUD operations for named game tuning profiles.
type TuningRepository struct {
	db       *sql.DB
	settings *SettingsRepository
}

// Tunings returns the tuning repository for this store.
func (s *Store) Tunings() *TuningRepository {
	return &TuningRepository{
		db:       s.db,
		settings: s.Settings(),
	}
}

// Save stores a tuning profile under the given name, replacing any existing
// profile with that name.
func (r *TuningRepository) Save(name string, cfg game.Config) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode tuning: %w", err)
	}

	_, err = r.db.Exec(
		`INSERT INTO tunings (name, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		name, string(data), time.Now(),
	)
	return err
}

// Get retrieves a tuning profile by name.
func (r *TuningRepository) Get(name string) (game.Config, error) {
	var data string

	err := r.db.QueryRow(`SELECT data FROM tunings WHERE name = ?`, name).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return game.Config{}, ErrNotFound
		}
		return game.Config{}, err
	}

	var cfg game.Config
	if err := json.Unmarshal([]byte(data), &cfg); err != nil {
		return game.Config{}, fmt.Errorf("failed to decode tuning %q: %w", name, err)
	}

	return cfg, nil
}

// List returns the names of all stored tuning profiles.
func (r *TuningRepository) List() ([]string, error) {
	rows, err := r.db.Query(`SELECT name FROM tunings ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	return names, rows.Err()
}

// Delete removes a tuning profile by name.
func (r *TuningRepository) Delete(name string) error {
	result, err := r.db.Exec(`DELETE FROM tunings WHERE name = ?`, name)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// Active retrieves the tuning profile currently in use.
func (r *TuningRepository) Active() (game.Config, error) {
	name, err := r.settings.Get(activeTuningKey)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			name = defaultTuningName
		} else {
			return game.Config{}, err
		}
	}

	return r.Get(name)
}

// SaveActive stores the given tuning as the profile in use.
func (r *TuningRepository) SaveActive(cfg game.Config) error {
	name, err := r.settings.Get(activeTuningKey)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return err
		}
		name = defaultTuningName
		if err := r.settings.Set(activeTuningKey, name); err != nil {
			return err
		}
	}

	return r.Save(name, cfg)
}

// SetActive marks an existing profile as the one in use.
func (r *TuningRepository) SetActive(name string) error {
	if _, err := r.Get(name); err != nil {
		return err
	}
	return r.settings.Set(activeTuningKey, name)
}
