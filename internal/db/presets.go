package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/VoidMesh/galaxy/internal/params"
)

var (
	ErrPresetNotFound    = errors.New("preset not found")
	ErrInvalidPresetName = errors.New("invalid preset name")
)

const maxPresetNameLength = 64

// Preset is a saved parameter set.
type Preset struct {
	Name       string     `json:"name"`
	Parameters params.Set `json:"parameters"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// PresetStore reads and writes presets, logging every query.
type PresetStore struct {
	db *sql.DB
}

func NewPresetStore(database *sql.DB) *PresetStore {
	return &PresetStore{db: database}
}

// Helper function to log query execution
func (s *PresetStore) logQuery(queryName string, start time.Time, err error, args ...interface{}) {
	duration := time.Since(start)

	if err != nil {
		log.Debug("Database query failed",
			"query", queryName,
			"duration", duration,
			"error", err,
			"args", args,
		)
	} else {
		log.Debug("Database query executed",
			"query", queryName,
			"duration", duration,
			"args", args,
		)
	}
}

// ValidatePresetName trims name and checks its length.
func ValidatePresetName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidPresetName)
	}
	if len(name) > maxPresetNameLength {
		return "", fmt.Errorf("%w: longer than %d bytes", ErrInvalidPresetName, maxPresetNameLength)
	}
	return name, nil
}

// SavePreset inserts or overwrites a preset.
func (s *PresetStore) SavePreset(ctx context.Context, name string, set params.Set) (*Preset, error) {
	name, err := ValidatePresetName(name)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(set)
	if err != nil {
		return nil, fmt.Errorf("failed to encode parameters: %w", err)
	}

	start := time.Now()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO presets (name, parameters)
		VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET
			parameters = excluded.parameters,
			updated_at = CURRENT_TIMESTAMP
	`, name, string(payload))
	s.logQuery("SavePreset", start, err, name)
	if err != nil {
		return nil, fmt.Errorf("failed to save preset: %w", err)
	}

	return s.GetPreset(ctx, name)
}

// GetPreset loads one preset by name.
func (s *PresetStore) GetPreset(ctx context.Context, name string) (*Preset, error) {
	start := time.Now()
	row := s.db.QueryRowContext(ctx, `
		SELECT name, parameters, created_at, updated_at
		FROM presets
		WHERE name = ?
	`, strings.TrimSpace(name))

	preset, err := scanPreset(row)
	s.logQuery("GetPreset", start, err, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrPresetNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get preset: %w", err)
	}
	return preset, nil
}

// ListPresets returns every preset ordered by name.
func (s *PresetStore) ListPresets(ctx context.Context) ([]Preset, error) {
	start := time.Now()
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, parameters, created_at, updated_at
		FROM presets
		ORDER BY name
	`)
	if err != nil {
		s.logQuery("ListPresets", start, err)
		return nil, fmt.Errorf("failed to list presets: %w", err)
	}
	defer rows.Close()

	presets := []Preset{}
	for rows.Next() {
		preset, err := scanPreset(rows)
		if err != nil {
			s.logQuery("ListPresets", start, err)
			return nil, fmt.Errorf("failed to scan preset: %w", err)
		}
		presets = append(presets, *preset)
	}
	err = rows.Err()
	s.logQuery("ListPresets", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to list presets: %w", err)
	}

	log.Debug("ListPresets result", "preset_count", len(presets))
	return presets, nil
}

// DeletePreset removes a preset.
func (s *PresetStore) DeletePreset(ctx context.Context, name string) error {
	start := time.Now()
	result, err := s.db.ExecContext(ctx, `DELETE FROM presets WHERE name = ?`, strings.TrimSpace(name))
	s.logQuery("DeletePreset", start, err, name)
	if err != nil {
		return fmt.Errorf("failed to delete preset: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete preset: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %q", ErrPresetNotFound, name)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPreset(row scanner) (*Preset, error) {
	var (
		preset  Preset
		payload string
	)
	if err := row.Scan(&preset.Name, &payload, &preset.CreatedAt, &preset.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(payload), &preset.Parameters); err != nil {
		return nil, fmt.Errorf("corrupt parameters for preset %q: %w", preset.Name, err)
	}
	return &preset, nil
}
