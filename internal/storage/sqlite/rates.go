package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/mmynk/tripsplit/internal/models"
)

// SaveRateTable replaces the stored table for table.Base.
func (s *SQLiteStore) SaveRateTable(ctx context.Context, table *models.RateTable) error {
	rates, err := json.Marshal(table.Rates)
	if err != nil {
		return fmt.Errorf("failed to encode rates: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO rate_tables (base, date, rates, fetched_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(base) DO UPDATE SET date = excluded.date, rates = excluded.rates, fetched_at = excluded.fetched_at`,
		table.Base, table.Date, string(rates), table.FetchedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save rate table: %w", err)
	}
	return nil
}

// LatestRateTable returns the stored table for base, or nil when none was saved.
func (s *SQLiteStore) LatestRateTable(ctx context.Context, base string) (*models.RateTable, error) {
	table := &models.RateTable{}
	var rates string
	err := s.db.QueryRowContext(ctx,
		"SELECT base, date, rates, fetched_at FROM rate_tables WHERE base = ?",
		base,
	).Scan(&table.Base, &table.Date, &rates, &table.FetchedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get rate table: %w", err)
	}

	if err := json.Unmarshal([]byte(rates), &table.Rates); err != nil {
		return nil, fmt.Errorf("failed to decode rates: %w", err)
	}
	return table, nil
}
