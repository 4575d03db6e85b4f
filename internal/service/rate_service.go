package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/internal/currency"
	"github.com/mmynk/tripsplit/internal/rates"
	"github.com/mmynk/tripsplit/internal/validation"
	"github.com/mmynk/tripsplit/pkg/api"
)

// RateService exposes exchange rates and the currency catalog.
type RateService struct {
	api.UnimplementedRateServiceHandler
	supplier *rates.Supplier
}

// NewRateService creates a RateService serving tables from supplier.
func NewRateService(supplier *rates.Supplier) *RateService {
	return &RateService{supplier: supplier}
}

// GetRates returns the best available table; it never fails for a supported base.
func (s *RateService) GetRates(ctx context.Context, req *connect.Request[api.GetRatesRequest]) (*connect.Response[api.GetRatesResponse], error) {
	base, err := baseOrDefault(req.Msg.Base)
	if err != nil {
		return nil, err
	}

	snap := s.supplier.Rates(ctx, base)
	return connect.NewResponse(&api.GetRatesResponse{Table: toAPIRateTable(snap)}), nil
}

// RefreshRates forces a fetch and reports provider failures as Unavailable.
func (s *RateService) RefreshRates(ctx context.Context, req *connect.Request[api.RefreshRatesRequest]) (*connect.Response[api.RefreshRatesResponse], error) {
	base, err := baseOrDefault(req.Msg.Base)
	if err != nil {
		return nil, err
	}

	table, err := s.supplier.Refresh(ctx, base)
	if err != nil {
		slog.Warn("RefreshRates failed", "base", base, "error", err)
		return nil, connect.NewError(connect.CodeUnavailable, err)
	}

	slog.Info("RefreshRates successful", "base", table.Base, "date", table.Date)
	return connect.NewResponse(&api.RefreshRatesResponse{
		Table: toAPIRateTable(rates.Snapshot{Table: table, Origin: rates.OriginFresh}),
	}), nil
}

// ListCurrencies returns the supported currencies in display order.
func (s *RateService) ListCurrencies(ctx context.Context, req *connect.Request[api.ListCurrenciesRequest]) (*connect.Response[api.ListCurrenciesResponse], error) {
	all := currency.All()
	out := make([]api.Currency, len(all))
	for i, c := range all {
		out[i] = api.Currency{Code: c.Code, Name: c.Name, Symbol: c.Symbol, Fraction: c.Fraction}
	}
	return connect.NewResponse(&api.ListCurrenciesResponse{Currencies: out}), nil
}

func baseOrDefault(base string) (string, error) {
	if base == "" {
		return currency.Default, nil
	}
	if err := validation.Currency(base); err != nil {
		return "", invalid(err)
	}
	return base, nil
}
