package service

import (
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/internal/auth"
	"github.com/mmynk/tripsplit/internal/storage"
)

var (
	errTripForbidden = errors.New("trip belongs to another user")
	errWrongTrip     = errors.New("record belongs to another trip")
	errPayerUnknown  = errors.New("payer is not a participant of this trip")
)

// invalid wraps a validation failure.
func invalid(err error) error {
	return connect.NewError(connect.CodeInvalidArgument, err)
}

// storeError maps a storage failure to a Connect error and logs unexpected ones.
func storeError(op string, err error, args ...any) error {
	if errors.Is(err, storage.ErrNotFound) {
		return connect.NewError(connect.CodeNotFound, err)
	}
	slog.Error(op+" failed", append(args, "error", err)...)
	return connect.NewError(connect.CodeInternal, err)
}

func requireUser(userID string) error {
	if userID == "" {
		return connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return nil
}
