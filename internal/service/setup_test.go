package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/internal/auth"
	"github.com/mmynk/tripsplit/internal/middleware"
	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/rates"
	"github.com/mmynk/tripsplit/internal/storage/sqlite"
	"github.com/mmynk/tripsplit/pkg/api"
)

// stubSource serves a fixed USD table, or fails when err is set.
type stubSource struct {
	mu  sync.Mutex
	err error
}

func (s *stubSource) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *stubSource) Fetch(ctx context.Context, base string) (*models.RateTable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return &models.RateTable{
		Base:      "USD",
		Date:      "2026-10-16",
		Rates:     map[string]float64{"USD": 1, "EUR": 0.9, "JPY": 150},
		FetchedAt: time.Now().Unix(),
	}, nil
}

type testServer struct {
	auth   api.AuthServiceClient
	trips  api.TripServiceClient
	rates  api.RateServiceClient
	source *stubSource
}

// setupTestServer wires every service behind the real auth interceptor on a temp database.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	source := &stubSource{}
	supplier := rates.NewSupplier(source, store, time.Hour)
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	public := append(append([]string{}, api.AuthPublicProcedures...), api.RatePublicProcedures...)
	interceptors := connect.WithInterceptors(middleware.RequireAuth(jwtManager, public...))

	mux := http.NewServeMux()
	mux.Handle(api.NewAuthServiceHandler(NewAuthService(auth.NewPasswordAuthenticator(store), jwtManager, logger), interceptors))
	mux.Handle(api.NewTripServiceHandler(NewTripService(store, supplier), interceptors))
	mux.Handle(api.NewRateServiceHandler(NewRateService(supplier), interceptors))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return &testServer{
		auth:   api.NewAuthServiceClient(http.DefaultClient, server.URL),
		trips:  api.NewTripServiceClient(http.DefaultClient, server.URL),
		rates:  api.NewRateServiceClient(http.DefaultClient, server.URL),
		source: source,
	}
}

// register creates a user named after the test and returns its token.
func (s *testServer) register(t *testing.T, name string) string {
	t.Helper()
	resp, err := s.auth.Register(context.Background(), connect.NewRequest(&api.RegisterRequest{
		Email:       name + "@example.com",
		DisplayName: name,
		Password:    "password123",
	}))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	return resp.Msg.Token
}

// authed builds a request carrying a bearer token.
func authed[T any](token string, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("Authorization", "Bearer "+token)
	return req
}

func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		t.Fatalf("expected connect error, got %T: %v", err, err)
	}
	if connectErr.Code() != want {
		t.Errorf("code = %v, want %v (%v)", connectErr.Code(), want, err)
	}
}
