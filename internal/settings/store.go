// README: Pricing settings store backed by PostgreSQL (single jsonb row).
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"skyfare/internal/types"
)

const settingsRowID = 1

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Load(ctx context.Context) (Configuration, error) {
	var data []byte
	err := s.db.QueryRow(ctx, `SELECT settings FROM pricing_settings WHERE id = $1`, settingsRowID).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return Configuration{}, fmt.Errorf("%w: no pricing settings stored", types.ErrConfiguration)
	}
	if err != nil {
		return Configuration{}, fmt.Errorf("loading pricing settings: %w", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Configuration{}, fmt.Errorf("%w: decoding stored settings: %v", types.ErrConfiguration, err)
	}
	return FromRecord(raw)
}

func (s *Store) Save(ctx context.Context, cfg Configuration) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(cfg.Record())
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	_, err = s.db.Exec(ctx, `
        INSERT INTO pricing_settings (id, settings, updated_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (id) DO UPDATE SET settings = EXCLUDED.settings, updated_at = NOW()`,
		settingsRowID, data,
	)
	return err
}
