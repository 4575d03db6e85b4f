// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Foreign keys are a per-connection setting, so they go in the DSN
	// to apply to every pooled connection.
	dsn := fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateTrip persists a new trip to the database.
func (s *SQLiteStore) CreateTrip(ctx context.Context, trip *models.Trip) error {
	if trip.ID == "" {
		trip.ID = uuid.New().String()
	}
	if trip.CreatedAt == 0 {
		trip.CreatedAt = time.Now().Unix()
	}
	if trip.BaseCurrency == "" {
		trip.BaseCurrency = models.DefaultBaseCurrency
	}
	if trip.Name == "" {
		trip.Name = fmt.Sprintf("Trip - %s", time.Unix(trip.CreatedAt, 0).Format("Jan 2, 2006"))
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO trips (id, owner_id, name, base_currency, created_at) VALUES (?, ?, ?, ?, ?)",
		trip.ID, trip.OwnerID, trip.Name, trip.BaseCurrency, trip.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert trip: %w", err)
	}
	return nil
}

// GetTrip retrieves a trip by ID.
func (s *SQLiteStore) GetTrip(ctx context.Context, tripID string) (*models.Trip, error) {
	trip := &models.Trip{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, owner_id, name, base_currency, created_at FROM trips WHERE id = ?",
		tripID,
	).Scan(&trip.ID, &trip.OwnerID, &trip.Name, &trip.BaseCurrency, &trip.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("trip %s: %w", tripID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}
	return trip, nil
}

// ListTripsByOwner retrieves all trips owned by a user, newest first.
func (s *SQLiteStore) ListTripsByOwner(ctx context.Context, ownerID string) ([]*models.Trip, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, owner_id, name, base_currency, created_at
		 FROM trips WHERE owner_id = ? ORDER BY created_at DESC, rowid DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}
	defer rows.Close()

	trips := []*models.Trip{}
	for rows.Next() {
		trip := &models.Trip{}
		if err := rows.Scan(&trip.ID, &trip.OwnerID, &trip.Name, &trip.BaseCurrency, &trip.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan trip: %w", err)
		}
		trips = append(trips, trip)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate trips: %w", err)
	}
	return trips, nil
}

// TripContents reads a trip's participants and expenses in one read-only
// transaction, so every expense payer is among the returned participants.
func (s *SQLiteStore) TripContents(ctx context.Context, tripID string) ([]models.Participant, []models.Expense, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	participants, err := listParticipants(ctx, tx, tripID)
	if err != nil {
		return nil, nil, err
	}
	expenses, err := listExpenses(ctx, tx, tripID)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return participants, expenses, nil
}

// UpdateTrip saves the trip's name and base currency.
func (s *SQLiteStore) UpdateTrip(ctx context.Context, trip *models.Trip) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE trips SET name = ?, base_currency = ? WHERE id = ?",
		trip.Name, trip.BaseCurrency, trip.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update trip: %w", err)
	}
	return expectRow(result, "trip", trip.ID)
}

// DeleteTrip removes a trip and everything it contains.
func (s *SQLiteStore) DeleteTrip(ctx context.Context, tripID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM expenses WHERE trip_id = ?", tripID); err != nil {
		return fmt.Errorf("failed to delete expenses: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM participants WHERE trip_id = ?", tripID); err != nil {
		return fmt.Errorf("failed to delete participants: %w", err)
	}
	result, err := tx.ExecContext(ctx, "DELETE FROM trips WHERE id = ?", tripID)
	if err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}
	if err := expectRow(result, "trip", tripID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ClearTrip removes every participant and expense and resets the base currency.
func (s *SQLiteStore) ClearTrip(ctx context.Context, tripID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		"UPDATE trips SET base_currency = ? WHERE id = ?",
		models.DefaultBaseCurrency, tripID,
	)
	if err != nil {
		return fmt.Errorf("failed to reset trip: %w", err)
	}
	if err := expectRow(result, "trip", tripID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM expenses WHERE trip_id = ?", tripID); err != nil {
		return fmt.Errorf("failed to delete expenses: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM participants WHERE trip_id = ?", tripID); err != nil {
		return fmt.Errorf("failed to delete participants: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// expectRow turns an update or delete that touched nothing into storage.ErrNotFound.
func expectRow(result sql.Result, kind, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, storage.ErrNotFound)
	}
	return nil
}
