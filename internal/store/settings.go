package store

import (
	"database/sql"
	"errors"
	"strconv"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// SettingsRepository provides access to application settings.
type SettingsRepository struct {
	db *sql.DB
}

// Settings returns the settings repository for this store.
func (s *Store) Settings() *SettingsRepository {
	return &SettingsRepository{db: s.db}
}

// Get retrieves a setting value by key.
func (r *SettingsRepository) Get(key string) (string, error) {
	var value string

	err := r.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}

	return value, nil
}

// Set stores a setting value, replacing any existing value for the key.
func (r *SettingsRepository) Set(key, value string) error {
	_, err := r.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

// GetBool retrieves a setting as a boolean. Missing keys return the fallback.
func (r *SettingsRepository) GetBool(key string, fallback bool) (bool, error) {
	value, err := r.Get(key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fallback, nil
		}
		return fallback, err
	}

	b, err := strconv.ParseBool(value)
	if err != nil {
		return fallback, err
	}
	return b, nil
}

// SetBool stores a boolean setting.
func (r *SettingsRepository) SetBool(key string, value bool) error {
	return r.Set(key, strconv.FormatBool(value))
}

// GetInt retrieves a setting as an integer. Missing keys return the fallback.
func (r *SettingsRepository) GetInt(key string, fallback int) (int, error) {
	value, err := r.Get(key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fallback, nil
		}
		return fallback, err
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback, err
	}
	return n, nil
}

// SetInt stores an integer setting.
func (r *SettingsRepository) SetInt(key string, value int) error {
	return r.Set(key, strconv.Itoa(value))
}

// GetFloat retrieves a setting as a float. Missing keys return the fallback.
func (r *SettingsRepository) GetFloat(key string, fallback float64) (float64, error) {
	value, err := r.Get(key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fallback, nil
		}
		return fallback, err
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback, err
	}
	return f, nil
}

// SetFloat stores a float setting.
func (r *SettingsRepository) SetFloat(key string, value float64) error {
	return r.Set(key, strconv.FormatFloat(value, 'g', -1, 64))
}

// Delete removes a setting. Deleting a missing key is not an error.
func (r *SettingsRepository) Delete(key string) error {
	_, err := r.db.Exec(`DELETE FROM settings WHERE key = ?`, key)
	return err
}
