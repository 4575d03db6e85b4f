package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
)

// AddParticipant persists a new participant.
func (s *SQLiteStore) AddParticipant(ctx context.Context, participant *models.Participant) error {
	if participant.ID == "" {
		participant.ID = uuid.New().String()
	}
	if participant.CreatedAt == 0 {
		participant.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO participants (id, trip_id, name, created_at) VALUES (?, ?, ?, ?)",
		participant.ID, participant.TripID, participant.Name, participant.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert participant: %w", err)
	}
	return nil
}

// GetParticipant retrieves a participant by ID.
func (s *SQLiteStore) GetParticipant(ctx context.Context, participantID string) (*models.Participant, error) {
	p := &models.Participant{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, trip_id, name, created_at FROM participants WHERE id = ?",
		participantID,
	).Scan(&p.ID, &p.TripID, &p.Name, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("participant %s: %w", participantID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}
	return p, nil
}

// RenameParticipant changes a participant's display name.
func (s *SQLiteStore) RenameParticipant(ctx context.Context, participantID, name string) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE participants SET name = ? WHERE id = ?",
		name, participantID,
	)
	if err != nil {
		return fmt.Errorf("failed to rename participant: %w", err)
	}
	return expectRow(result, "participant", participantID)
}

// DeleteParticipant removes a participant together with every expense they paid,
// so no expense is left pointing at a missing payer. It returns the number of
// expenses removed.
func (s *SQLiteStore) DeleteParticipant(ctx context.Context, participantID string) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	expenses, err := tx.ExecContext(ctx, "DELETE FROM expenses WHERE payer_id = ?", participantID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete participant expenses: %w", err)
	}
	removed, err := expenses.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check affected rows: %w", err)
	}
	result, err := tx.ExecContext(ctx, "DELETE FROM participants WHERE id = ?", participantID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete participant: %w", err)
	}
	if err := expectRow(result, "participant", participantID); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return int(removed), nil
}

// ListParticipants returns a trip's participants in the order they were added.
func (s *SQLiteStore) ListParticipants(ctx context.Context, tripID string) ([]models.Participant, error) {
	return listParticipants(ctx, s.db, tripID)
}

func listParticipants(ctx context.Context, q querier, tripID string) ([]models.Participant, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT id, trip_id, name, created_at FROM participants WHERE trip_id = ? ORDER BY created_at, rowid",
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer rows.Close()

	participants := []models.Participant{}
	for rows.Next() {
		var p models.Participant
		if err := rows.Scan(&p.ID, &p.TripID, &p.Name, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}
	return participants, nil
}
