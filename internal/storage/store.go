// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/tripsplit/internal/models"
)

// ErrNotFound is wrapped by every lookup that finds no row.
var ErrNotFound = errors.New("not found")

// Store defines the interface for trip storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	UserStore
	TripStore
	RateStore

	// Close releases any resources held by the store.
	Close() error
}

// UserStore persists registered accounts.
// Lookups return nil and no error when the user does not exist.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// TripStore persists trips and everything they contain.
type TripStore interface {
	// CreateTrip persists a new trip.
	// The trip.ID, CreatedAt and empty BaseCurrency fields are populated by the store.
	CreateTrip(ctx context.Context, trip *models.Trip) error

	// GetTrip retrieves a trip by its ID.
	GetTrip(ctx context.Context, tripID string) (*models.Trip, error)

	// ListTripsByOwner returns the trips a user owns, newest first.
	ListTripsByOwner(ctx context.Context, ownerID string) ([]*models.Trip, error)

	// UpdateTrip saves the trip name and base currency.
	UpdateTrip(ctx context.Context, trip *models.Trip) error

	// DeleteTrip removes a trip with its participants and expenses.
	DeleteTrip(ctx context.Context, tripID string) error

	// ClearTrip removes every participant and expense and resets the base currency.
	ClearTrip(ctx context.Context, tripID string) error

	// AddParticipant persists a new participant of participant.TripID.
	AddParticipant(ctx context.Context, participant *models.Participant) error

	// GetParticipant retrieves a participant by its ID.
	GetParticipant(ctx context.Context, participantID string) (*models.Participant, error)

	// RenameParticipant changes a participant's display name.
	RenameParticipant(ctx context.Context, participantID, name string) error

	// DeleteParticipant removes a participant and every expense they paid.
	// It returns the number of expenses removed.
	DeleteParticipant(ctx context.Context, participantID string) (int, error)

	// ListParticipants returns a trip's participants in the order they were added.
	ListParticipants(ctx context.Context, tripID string) ([]models.Participant, error)

	// CreateExpense persists a new expense.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense by its ID.
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// UpdateExpense saves an edited expense and bumps its UpdatedAt.
	UpdateExpense(ctx context.Context, expense *models.Expense) error

	// DeleteExpense removes an expense.
	DeleteExpense(ctx context.Context, expenseID string) error

	// ListExpenses returns a trip's expenses in the order they were recorded.
	ListExpenses(ctx context.Context, tripID string) ([]models.Expense, error)

	// TripContents returns a trip's participants and expenses read as one
	// consistent snapshot.
	TripContents(ctx context.Context, tripID string) ([]models.Participant, []models.Expense, error)
}

// RateStore keeps the last fetched rate table per base currency.
type RateStore interface {
	// SaveRateTable replaces the stored table for table.Base.
	SaveRateTable(ctx context.Context, table *models.RateTable) error

	// LatestRateTable returns the stored table for base, or nil and no error when none exists.
	LatestRateTable(ctx context.Context, base string) (*models.RateTable, error)
}
