package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// RateServiceName is the fully-qualified name of the RateService service.
const RateServiceName = "tripsplit.v1.RateService"

// Procedure paths of RateService.
const (
	RateServiceGetRatesProcedure       = "/tripsplit.v1.RateService/GetRates"
	RateServiceRefreshRatesProcedure   = "/tripsplit.v1.RateService/RefreshRates"
	RateServiceListCurrenciesProcedure = "/tripsplit.v1.RateService/ListCurrencies"
)

// RatePublicProcedures may be called without a session token.
var RatePublicProcedures = []string{
	RateServiceGetRatesProcedure,
	RateServiceListCurrenciesProcedure,
}

// RateServiceClient is a client for the tripsplit.v1.RateService service.
type RateServiceClient interface {
	GetRates(context.Context, *connect.Request[GetRatesRequest]) (*connect.Response[GetRatesResponse], error)
	RefreshRates(context.Context, *connect.Request[RefreshRatesRequest]) (*connect.Response[RefreshRatesResponse], error)
	ListCurrencies(context.Context, *connect.Request[ListCurrenciesRequest]) (*connect.Response[ListCurrenciesResponse], error)
}

// NewRateServiceClient returns a client for the service mounted at baseURL.
func NewRateServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) RateServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &rateServiceClient{
		getRates:       connect.NewClient[GetRatesRequest, GetRatesResponse](httpClient, baseURL+RateServiceGetRatesProcedure, opts...),
		refreshRates:   connect.NewClient[RefreshRatesRequest, RefreshRatesResponse](httpClient, baseURL+RateServiceRefreshRatesProcedure, opts...),
		listCurrencies: connect.NewClient[ListCurrenciesRequest, ListCurrenciesResponse](httpClient, baseURL+RateServiceListCurrenciesProcedure, opts...),
	}
}

type rateServiceClient struct {
	getRates       *connect.Client[GetRatesRequest, GetRatesResponse]
	refreshRates   *connect.Client[RefreshRatesRequest, RefreshRatesResponse]
	listCurrencies *connect.Client[ListCurrenciesRequest, ListCurrenciesResponse]
}

func (c *rateServiceClient) GetRates(ctx context.Context, req *connect.Request[GetRatesRequest]) (*connect.Response[GetRatesResponse], error) {
	return c.getRates.CallUnary(ctx, req)
}

func (c *rateServiceClient) RefreshRates(ctx context.Context, req *connect.Request[RefreshRatesRequest]) (*connect.Response[RefreshRatesResponse], error) {
	return c.refreshRates.CallUnary(ctx, req)
}

func (c *rateServiceClient) ListCurrencies(ctx context.Context, req *connect.Request[ListCurrenciesRequest]) (*connect.Response[ListCurrenciesResponse], error) {
	return c.listCurrencies.CallUnary(ctx, req)
}

// RateServiceHandler is implemented by the server side of RateService.
type RateServiceHandler interface {
	// GetRates returns the best available rate table for a base currency.
	GetRates(context.Context, *connect.Request[GetRatesRequest]) (*connect.Response[GetRatesResponse], error)
	// RefreshRates forces a fetch from the rate provider.
	RefreshRates(context.Context, *connect.Request[RefreshRatesRequest]) (*connect.Response[RefreshRatesResponse], error)
	// ListCurrencies returns the supported currencies.
	ListCurrencies(context.Context, *connect.Request[ListCurrenciesRequest]) (*connect.Response[ListCurrenciesResponse], error)
}

// NewRateServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewRateServiceHandler(svc RateServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	handlers := map[string]http.Handler{
		RateServiceGetRatesProcedure:       connect.NewUnaryHandler(RateServiceGetRatesProcedure, svc.GetRates, opts...),
		RateServiceRefreshRatesProcedure:   connect.NewUnaryHandler(RateServiceRefreshRatesProcedure, svc.RefreshRates, opts...),
		RateServiceListCurrenciesProcedure: connect.NewUnaryHandler(RateServiceListCurrenciesProcedure, svc.ListCurrencies, opts...),
	}
	return "/" + RateServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := handlers[r.URL.Path]; ok {
			h.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	})
}

// UnimplementedRateServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedRateServiceHandler struct{}

func (UnimplementedRateServiceHandler) GetRates(context.Context, *connect.Request[GetRatesRequest]) (*connect.Response[GetRatesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tripsplit.v1.RateService.GetRates is not implemented"))
}

func (UnimplementedRateServiceHandler) RefreshRates(context.Context, *connect.Request[RefreshRatesRequest]) (*connect.Response[RefreshRatesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tripsplit.v1.RateService.RefreshRates is not implemented"))
}

func (UnimplementedRateServiceHandler) ListCurrencies(context.Context, *connect.Request[ListCurrenciesRequest]) (*connect.Response[ListCurrenciesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tripsplit.v1.RateService.ListCurrencies is not implemented"))
}
