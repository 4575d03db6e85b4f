package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/internal/calculator"
	"github.com/mmynk/tripsplit/internal/middleware"
	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/rates"
	"github.com/mmynk/tripsplit/internal/storage"
	"github.com/mmynk/tripsplit/internal/validation"
	"github.com/mmynk/tripsplit/pkg/api"
)

// RateProvider supplies the rate snapshot a settlement is computed with.
type RateProvider interface {
	Rates(ctx context.Context, base string) rates.Snapshot
}

// TripService implements the Connect TripService.
// Every call acts on trips owned by the authenticated user.
type TripService struct {
	api.UnimplementedTripServiceHandler
	store storage.TripStore
	rates RateProvider
}

// NewTripService creates a TripService backed by store and rates.
func NewTripService(store storage.TripStore, rates RateProvider) *TripService {
	return &TripService{store: store, rates: rates}
}

// CreateTrip starts an empty trip.
func (s *TripService) CreateTrip(ctx context.Context, req *connect.Request[api.CreateTripRequest]) (*connect.Response[api.CreateTripResponse], error) {
	userID := middleware.GetUserID(ctx)
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	slog.Info("CreateTrip request received", "user_id", userID, "name", req.Msg.Name)

	trip := &models.Trip{
		OwnerID:      userID,
		Name:         strings.TrimSpace(req.Msg.Name),
		BaseCurrency: req.Msg.BaseCurrency,
	}
	if trip.BaseCurrency != "" {
		if err := validation.Currency(trip.BaseCurrency); err != nil {
			return nil, invalid(err)
		}
	}
	if err := s.store.CreateTrip(ctx, trip); err != nil {
		return nil, storeError("CreateTrip", err, "user_id", userID)
	}

	slog.Info("Trip created", "trip_id", trip.ID, "base_currency", trip.BaseCurrency)
	return connect.NewResponse(&api.CreateTripResponse{Trip: toAPITrip(trip)}), nil
}

// GetTrip returns a trip with its participants and expenses.
func (s *TripService) GetTrip(ctx context.Context, req *connect.Request[api.GetTripRequest]) (*connect.Response[api.GetTripResponse], error) {
	trip, err := s.ownedTrip(ctx, req.Msg.TripID)
	if err != nil {
		return nil, err
	}

	participants, expenses, err := s.contents(ctx, trip.ID)
	if err != nil {
		return nil, err
	}

	resp := &api.GetTripResponse{
		Trip:         toAPITrip(trip),
		Participants: make([]api.Participant, len(participants)),
		Expenses:     make([]api.Expense, len(expenses)),
	}
	for i := range participants {
		resp.Participants[i] = *toAPIParticipant(&participants[i])
	}
	for i := range expenses {
		resp.Expenses[i] = *toAPIExpense(&expenses[i])
	}

	slog.Info("GetTrip successful", "trip_id", trip.ID, "participants", len(participants), "expenses", len(expenses))
	return connect.NewResponse(resp), nil
}

// ListTrips returns the caller's trips, newest first.
func (s *TripService) ListTrips(ctx context.Context, req *connect.Request[api.ListTripsRequest]) (*connect.Response[api.ListTripsResponse], error) {
	userID := middleware.GetUserID(ctx)
	if err := requireUser(userID); err != nil {
		return nil, err
	}

	trips, err := s.store.ListTripsByOwner(ctx, userID)
	if err != nil {
		return nil, storeError("ListTrips", err, "user_id", userID)
	}

	out := make([]api.Trip, len(trips))
	for i, t := range trips {
		out[i] = *toAPITrip(t)
	}

	slog.Info("ListTrips successful", "user_id", userID, "count", len(out))
	return connect.NewResponse(&api.ListTripsResponse{Trips: out}), nil
}

// DeleteTrip removes a trip and everything in it.
func (s *TripService) DeleteTrip(ctx context.Context, req *connect.Request[api.DeleteTripRequest]) (*connect.Response[api.DeleteTripResponse], error) {
	trip, err := s.ownedTrip(ctx, req.Msg.TripID)
	if err != nil {
		return nil, err
	}

	if err := s.store.DeleteTrip(ctx, trip.ID); err != nil {
		return nil, storeError("DeleteTrip", err, "trip_id", trip.ID)
	}

	slog.Info("Trip deleted", "trip_id", trip.ID)
	return connect.NewResponse(&api.DeleteTripResponse{}), nil
}

// SetBaseCurrency changes the currency settlements are computed in.
// Recorded expenses keep their own currencies.
func (s *TripService) SetBaseCurrency(ctx context.Context, req *connect.Request[api.SetBaseCurrencyRequest]) (*connect.Response[api.SetBaseCurrencyResponse], error) {
	if err := validation.Currency(req.Msg.Currency); err != nil {
		return nil, invalid(err)
	}
	trip, err := s.ownedTrip(ctx, req.Msg.TripID)
	if err != nil {
		return nil, err
	}

	trip.BaseCurrency = req.Msg.Currency
	if err := s.store.UpdateTrip(ctx, trip); err != nil {
		return nil, storeError("SetBaseCurrency", err, "trip_id", trip.ID)
	}

	slog.Info("Base currency changed", "trip_id", trip.ID, "base_currency", trip.BaseCurrency)
	return connect.NewResponse(&api.SetBaseCurrencyResponse{Trip: toAPITrip(trip)}), nil
}

// ClearTrip removes all participants and expenses and resets the base currency.
func (s *TripService) ClearTrip(ctx context.Context, req *connect.Request[api.ClearTripRequest]) (*connect.Response[api.ClearTripResponse], error) {
	trip, err := s.ownedTrip(ctx, req.Msg.TripID)
	if err != nil {
		return nil, err
	}

	if err := s.store.ClearTrip(ctx, trip.ID); err != nil {
		return nil, storeError("ClearTrip", err, "trip_id", trip.ID)
	}
	trip.BaseCurrency = models.DefaultBaseCurrency

	slog.Info("Trip cleared", "trip_id", trip.ID)
	return connect.NewResponse(&api.ClearTripResponse{Trip: toAPITrip(trip)}), nil
}

// AddParticipant adds a person to the trip.
func (s *TripService) AddParticipant(ctx context.Context, req *connect.Request[api.AddParticipantRequest]) (*connect.Response[api.AddParticipantResponse], error) {
	if err := validation.ParticipantName(req.Msg.Name); err != nil {
		return nil, invalid(err)
	}
	trip, err := s.ownedTrip(ctx, req.Msg.TripID)
	if err != nil {
		return nil, err
	}

	participant := &models.Participant{TripID: trip.ID, Name: strings.TrimSpace(req.Msg.Name)}
	if err := s.store.AddParticipant(ctx, participant); err != nil {
		return nil, storeError("AddParticipant", err, "trip_id", trip.ID)
	}

	slog.Info("Participant added", "trip_id", trip.ID, "participant_id", participant.ID)
	return connect.NewResponse(&api.AddParticipantResponse{Participant: toAPIParticipant(participant)}), nil
}

// RenameParticipant changes a participant's name.
func (s *TripService) RenameParticipant(ctx context.Context, req *connect.Request[api.RenameParticipantRequest]) (*connect.Response[api.RenameParticipantResponse], error) {
	if err := validation.ParticipantName(req.Msg.Name); err != nil {
		return nil, invalid(err)
	}
	participant, err := s.tripParticipant(ctx, req.Msg.TripID, req.Msg.ParticipantID)
	if err != nil {
		return nil, err
	}

	participant.Name = strings.TrimSpace(req.Msg.Name)
	if err := s.store.RenameParticipant(ctx, participant.ID, participant.Name); err != nil {
		return nil, storeError("RenameParticipant", err, "participant_id", participant.ID)
	}

	slog.Info("Participant renamed", "trip_id", participant.TripID, "participant_id", participant.ID)
	return connect.NewResponse(&api.RenameParticipantResponse{Participant: toAPIParticipant(participant)}), nil
}

// RemoveParticipant removes a participant and every expense they paid,
// so no expense is left pointing at a missing payer.
func (s *TripService) RemoveParticipant(ctx context.Context, req *connect.Request[api.RemoveParticipantRequest]) (*connect.Response[api.RemoveParticipantResponse], error) {
	participant, err := s.tripParticipant(ctx, req.Msg.TripID, req.Msg.ParticipantID)
	if err != nil {
		return nil, err
	}

	removed, err := s.store.DeleteParticipant(ctx, participant.ID)
	if err != nil {
		return nil, storeError("RemoveParticipant", err, "participant_id", participant.ID)
	}

	slog.Info("Participant removed", "trip_id", participant.TripID, "participant_id", participant.ID, "removed_expenses", removed)
	return connect.NewResponse(&api.RemoveParticipantResponse{RemovedExpenses: removed}), nil
}

// AddExpense records a payment. An empty currency means the trip's base currency.
func (s *TripService) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	trip, err := s.ownedTrip(ctx, req.Msg.TripID)
	if err != nil {
		return nil, err
	}

	expense := &models.Expense{
		TripID:      trip.ID,
		PayerID:     req.Msg.PayerID,
		Amount:      req.Msg.Amount,
		Currency:    req.Msg.Currency,
		Description: strings.TrimSpace(req.Msg.Description),
		Date:        req.Msg.Date,
	}
	if expense.Currency == "" {
		expense.Currency = trip.BaseCurrency
	}
	if err := s.checkExpense(ctx, expense); err != nil {
		return nil, err
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return nil, storeError("AddExpense", err, "trip_id", trip.ID)
	}

	slog.Info("Expense added", "trip_id", trip.ID, "expense_id", expense.ID, "amount", expense.Amount, "currency", expense.Currency)
	return connect.NewResponse(&api.AddExpenseResponse{Expense: toAPIExpense(expense)}), nil
}

// UpdateExpense applies the set fields and re-validates the result.
func (s *TripService) UpdateExpense(ctx context.Context, req *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error) {
	trip, err := s.ownedTrip(ctx, req.Msg.TripID)
	if err != nil {
		return nil, err
	}
	expense, err := s.tripExpense(ctx, trip.ID, req.Msg.ExpenseID)
	if err != nil {
		return nil, err
	}

	if req.Msg.PayerID != nil {
		expense.PayerID = *req.Msg.PayerID
	}
	if req.Msg.Amount != nil {
		expense.Amount = *req.Msg.Amount
	}
	if req.Msg.Currency != nil {
		expense.Currency = *req.Msg.Currency
	}
	if req.Msg.Description != nil {
		expense.Description = strings.TrimSpace(*req.Msg.Description)
	}
	if req.Msg.Date != nil {
		expense.Date = *req.Msg.Date
	}
	if err := s.checkExpense(ctx, expense); err != nil {
		return nil, err
	}

	if err := s.store.UpdateExpense(ctx, expense); err != nil {
		return nil, storeError("UpdateExpense", err, "expense_id", expense.ID)
	}

	slog.Info("Expense updated", "trip_id", trip.ID, "expense_id", expense.ID)
	return connect.NewResponse(&api.UpdateExpenseResponse{Expense: toAPIExpense(expense)}), nil
}

// DeleteExpense removes an expense.
func (s *TripService) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	trip, err := s.ownedTrip(ctx, req.Msg.TripID)
	if err != nil {
		return nil, err
	}
	expense, err := s.tripExpense(ctx, trip.ID, req.Msg.ExpenseID)
	if err != nil {
		return nil, err
	}

	if err := s.store.DeleteExpense(ctx, expense.ID); err != nil {
		return nil, storeError("DeleteExpense", err, "expense_id", expense.ID)
	}

	slog.Info("Expense deleted", "trip_id", trip.ID, "expense_id", expense.ID)
	return connect.NewResponse(&api.DeleteExpenseResponse{}), nil
}

// GetSettlement loads the trip snapshot, obtains rates for its base currency,
// and computes balances and the transfers that settle them.
func (s *TripService) GetSettlement(ctx context.Context, req *connect.Request[api.GetSettlementRequest]) (*connect.Response[api.GetSettlementResponse], error) {
	trip, err := s.ownedTrip(ctx, req.Msg.TripID)
	if err != nil {
		return nil, err
	}
	participants, expenses, err := s.contents(ctx, trip.ID)
	if err != nil {
		return nil, err
	}

	snap := s.rates.Rates(ctx, trip.BaseCurrency)
	summary := calculator.Settle(participants, expenses, trip.BaseCurrency, snap.Table)
	if len(summary.Unconverted) > 0 {
		slog.Warn("Expenses counted without conversion", "trip_id", trip.ID, "base_currency", trip.BaseCurrency, "currencies", summary.Unconverted, "rates_date", snap.Table.Date)
	}

	slog.Info("GetSettlement successful",
		"trip_id", trip.ID,
		"total", calculator.Round2(summary.Total),
		"transfers", len(summary.Transfers),
		"rates_origin", snap.Origin,
	)
	return connect.NewResponse(toAPISettlement(summary, participants, snap)), nil
}

// ownedTrip loads a trip and checks the caller owns it.
func (s *TripService) ownedTrip(ctx context.Context, tripID string) (*models.Trip, error) {
	userID := middleware.GetUserID(ctx)
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if tripID == "" {
		return nil, invalid(errors.New("trip id is required"))
	}

	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return nil, storeError("GetTrip", err, "trip_id", tripID)
	}
	if trip.OwnerID != userID {
		slog.Warn("Trip access denied", "trip_id", tripID, "user_id", userID)
		return nil, connect.NewError(connect.CodePermissionDenied, errTripForbidden)
	}
	return trip, nil
}

// tripParticipant loads a participant of an owned trip.
func (s *TripService) tripParticipant(ctx context.Context, tripID, participantID string) (*models.Participant, error) {
	trip, err := s.ownedTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	participant, err := s.store.GetParticipant(ctx, participantID)
	if err != nil {
		return nil, storeError("GetParticipant", err, "participant_id", participantID)
	}
	if participant.TripID != trip.ID {
		return nil, connect.NewError(connect.CodeNotFound, fmt.Errorf("participant %s: %w", participantID, errWrongTrip))
	}
	return participant, nil
}

// tripExpense loads an expense of the given trip.
func (s *TripService) tripExpense(ctx context.Context, tripID, expenseID string) (*models.Expense, error) {
	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return nil, storeError("GetExpense", err, "expense_id", expenseID)
	}
	if expense.TripID != tripID {
		return nil, connect.NewError(connect.CodeNotFound, fmt.Errorf("expense %s: %w", expenseID, errWrongTrip))
	}
	return expense, nil
}

// checkExpense validates the fields and that the payer is a participant of the expense's trip.
func (s *TripService) checkExpense(ctx context.Context, expense *models.Expense) error {
	if err := validation.Expense(validation.ExpenseInput{
		PayerID:     expense.PayerID,
		Amount:      expense.Amount,
		Currency:    expense.Currency,
		Description: expense.Description,
		Date:        expense.Date,
	}); err != nil {
		return invalid(err)
	}

	payer, err := s.store.GetParticipant(ctx, expense.PayerID)
	if errors.Is(err, storage.ErrNotFound) || (err == nil && payer.TripID != expense.TripID) {
		return invalid(errPayerUnknown)
	}
	if err != nil {
		return storeError("GetParticipant", err, "participant_id", expense.PayerID)
	}
	return nil
}

// contents loads a trip's participants and expenses as one snapshot.
// Expenses whose payer is not among the participants are left out.
func (s *TripService) contents(ctx context.Context, tripID string) ([]models.Participant, []models.Expense, error) {
	participants, expenses, err := s.store.TripContents(ctx, tripID)
	if err != nil {
		return nil, nil, storeError("TripContents", err, "trip_id", tripID)
	}

	live := make(map[string]bool, len(participants))
	for _, p := range participants {
		live[p.ID] = true
	}
	kept := expenses[:0]
	for _, e := range expenses {
		if !live[e.PayerID] {
			slog.Warn("Expense payer is not a trip participant", "trip_id", tripID, "expense_id", e.ID, "payer_id", e.PayerID)
			continue
		}
		kept = append(kept, e)
	}
	return participants, kept, nil
}
