package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// TripServiceName is the fully-qualified name of the TripService service.
const TripServiceName = "tripsplit.v1.TripService"

// Procedure paths of TripService.
const (
	TripServiceCreateTripProcedure        = "/tripsplit.v1.TripService/CreateTrip"
	TripServiceGetTripProcedure           = "/tripsplit.v1.TripService/GetTrip"
	TripServiceListTripsProcedure         = "/tripsplit.v1.TripService/ListTrips"
	TripServiceDeleteTripProcedure        = "/tripsplit.v1.TripService/DeleteTrip"
	TripServiceSetBaseCurrencyProcedure   = "/tripsplit.v1.TripService/SetBaseCurrency"
	TripServiceClearTripProcedure         = "/tripsplit.v1.TripService/ClearTrip"
	TripServiceAddParticipantProcedure    = "/tripsplit.v1.TripService/AddParticipant"
	TripServiceRenameParticipantProcedure = "/tripsplit.v1.TripService/RenameParticipant"
	TripServiceRemoveParticipantProcedure = "/tripsplit.v1.TripService/RemoveParticipant"
	TripServiceAddExpenseProcedure        = "/tripsplit.v1.TripService/AddExpense"
	TripServiceUpdateExpenseProcedure     = "/tripsplit.v1.TripService/UpdateExpense"
	TripServiceDeleteExpenseProcedure     = "/tripsplit.v1.TripService/DeleteExpense"
	TripServiceGetSettlementProcedure     = "/tripsplit.v1.TripService/GetSettlement"
)

// TripServiceClient is a client for the tripsplit.v1.TripService service.
type TripServiceClient interface {
	CreateTrip(context.Context, *connect.Request[CreateTripRequest]) (*connect.Response[CreateTripResponse], error)
	GetTrip(context.Context, *connect.Request[GetTripRequest]) (*connect.Response[GetTripResponse], error)
	ListTrips(context.Context, *connect.Request[ListTripsRequest]) (*connect.Response[ListTripsResponse], error)
	DeleteTrip(context.Context, *connect.Request[DeleteTripRequest]) (*connect.Response[DeleteTripResponse], error)
	SetBaseCurrency(context.Context, *connect.Request[SetBaseCurrencyRequest]) (*connect.Response[SetBaseCurrencyResponse], error)
	ClearTrip(context.Context, *connect.Request[ClearTripRequest]) (*connect.Response[ClearTripResponse], error)
	AddParticipant(context.Context, *connect.Request[AddParticipantRequest]) (*connect.Response[AddParticipantResponse], error)
	RenameParticipant(context.Context, *connect.Request[RenameParticipantRequest]) (*connect.Response[RenameParticipantResponse], error)
	RemoveParticipant(context.Context, *connect.Request[RemoveParticipantRequest]) (*connect.Response[RemoveParticipantResponse], error)
	AddExpense(context.Context, *connect.Request[AddExpenseRequest]) (*connect.Response[AddExpenseResponse], error)
	UpdateExpense(context.Context, *connect.Request[UpdateExpenseRequest]) (*connect.Response[UpdateExpenseResponse], error)
	DeleteExpense(context.Context, *connect.Request[DeleteExpenseRequest]) (*connect.Response[DeleteExpenseResponse], error)
	GetSettlement(context.Context, *connect.Request[GetSettlementRequest]) (*connect.Response[GetSettlementResponse], error)
}

// NewTripServiceClient returns a client for the service mounted at baseURL.
func NewTripServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) TripServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &tripServiceClient{
		createTrip:        connect.NewClient[CreateTripRequest, CreateTripResponse](httpClient, baseURL+TripServiceCreateTripProcedure, opts...),
		getTrip:           connect.NewClient[GetTripRequest, GetTripResponse](httpClient, baseURL+TripServiceGetTripProcedure, opts...),
		listTrips:         connect.NewClient[ListTripsRequest, ListTripsResponse](httpClient, baseURL+TripServiceListTripsProcedure, opts...),
		deleteTrip:        connect.NewClient[DeleteTripRequest, DeleteTripResponse](httpClient, baseURL+TripServiceDeleteTripProcedure, opts...),
		setBaseCurrency:   connect.NewClient[SetBaseCurrencyRequest, SetBaseCurrencyResponse](httpClient, baseURL+TripServiceSetBaseCurrencyProcedure, opts...),
		clearTrip:         connect.NewClient[ClearTripRequest, ClearTripResponse](httpClient, baseURL+TripServiceClearTripProcedure, opts...),
		addParticipant:    connect.NewClient[AddParticipantRequest, AddParticipantResponse](httpClient, baseURL+TripServiceAddParticipantProcedure, opts...),
		renameParticipant: connect.NewClient[RenameParticipantRequest, RenameParticipantResponse](httpClient, baseURL+TripServiceRenameParticipantProcedure, opts...),
		removeParticipant: connect.NewClient[RemoveParticipantRequest, RemoveParticipantResponse](httpClient, baseURL+TripServiceRemoveParticipantProcedure, opts...),
		addExpense:        connect.NewClient[AddExpenseRequest, AddExpenseResponse](httpClient, baseURL+TripServiceAddExpenseProcedure, opts...),
		updateExpense:     connect.NewClient[UpdateExpenseRequest, UpdateExpenseResponse](httpClient, baseURL+TripServiceUpdateExpenseProcedure, opts...),
		deleteExpense:     connect.NewClient[DeleteExpenseRequest, DeleteExpenseResponse](httpClient, baseURL+TripServiceDeleteExpenseProcedure, opts...),
		getSettlement:     connect.NewClient[GetSettlementRequest, GetSettlementResponse](httpClient, baseURL+TripServiceGetSettlementProcedure, opts...),
	}
}

type tripServiceClient struct {
	createTrip        *connect.Client[CreateTripRequest, CreateTripResponse]
	getTrip           *connect.Client[GetTripRequest, GetTripResponse]
	listTrips         *connect.Client[ListTripsRequest, ListTripsResponse]
	deleteTrip        *connect.Client[DeleteTripRequest, DeleteTripResponse]
	setBaseCurrency   *connect.Client[SetBaseCurrencyRequest, SetBaseCurrencyResponse]
	clearTrip         *connect.Client[ClearTripRequest, ClearTripResponse]
	addParticipant    *connect.Client[AddParticipantRequest, AddParticipantResponse]
	renameParticipant *connect.Client[RenameParticipantRequest, RenameParticipantResponse]
	removeParticipant *connect.Client[RemoveParticipantRequest, RemoveParticipantResponse]
	addExpense        *connect.Client[AddExpenseRequest, AddExpenseResponse]
	updateExpense     *connect.Client[UpdateExpenseRequest, UpdateExpenseResponse]
	deleteExpense     *connect.Client[DeleteExpenseRequest, DeleteExpenseResponse]
	getSettlement     *connect.Client[GetSettlementRequest, GetSettlementResponse]
}

func (c *tripServiceClient) CreateTrip(ctx context.Context, req *connect.Request[CreateTripRequest]) (*connect.Response[CreateTripResponse], error) {
	return c.createTrip.CallUnary(ctx, req)
}

func (c *tripServiceClient) GetTrip(ctx context.Context, req *connect.Request[GetTripRequest]) (*connect.Response[GetTripResponse], error) {
	return c.getTrip.CallUnary(ctx, req)
}

func (c *tripServiceClient) ListTrips(ctx context.Context, req *connect.Request[ListTripsRequest]) (*connect.Response[ListTripsResponse], error) {
	return c.listTrips.CallUnary(ctx, req)
}

func (c *tripServiceClient) DeleteTrip(ctx context.Context, req *connect.Request[DeleteTripRequest]) (*connect.Response[DeleteTripResponse], error) {
	return c.deleteTrip.CallUnary(ctx, req)
}

func (c *tripServiceClient) SetBaseCurrency(ctx context.Context, req *connect.Request[SetBaseCurrencyRequest]) (*connect.Response[SetBaseCurrencyResponse], error) {
	return c.setBaseCurrency.CallUnary(ctx, req)
}

func (c *tripServiceClient) ClearTrip(ctx context.Context, req *connect.Request[ClearTripRequest]) (*connect.Response[ClearTripResponse], error) {
	return c.clearTrip.CallUnary(ctx, req)
}

func (c *tripServiceClient) AddParticipant(ctx context.Context, req *connect.Request[AddParticipantRequest]) (*connect.Response[AddParticipantResponse], error) {
	return c.addParticipant.CallUnary(ctx, req)
}

func (c *tripServiceClient) RenameParticipant(ctx context.Context, req *connect.Request[RenameParticipantRequest]) (*connect.Response[RenameParticipantResponse], error) {
	return c.renameParticipant.CallUnary(ctx, req)
}

func (c *tripServiceClient) RemoveParticipant(ctx context.Context, req *connect.Request[RemoveParticipantRequest]) (*connect.Response[RemoveParticipantResponse], error) {
	return c.removeParticipant.CallUnary(ctx, req)
}

func (c *tripServiceClient) AddExpense(ctx context.Context, req *connect.Request[AddExpenseRequest]) (*connect.Response[AddExpenseResponse], error) {
	return c.addExpense.CallUnary(ctx, req)
}

func (c *tripServiceClient) UpdateExpense(ctx context.Context, req *connect.Request[UpdateExpenseRequest]) (*connect.Response[UpdateExpenseResponse], error) {
	return c.updateExpense.CallUnary(ctx, req)
}

func (c *tripServiceClient) DeleteExpense(ctx context.Context, req *connect.Request[DeleteExpenseRequest]) (*connect.Response[DeleteExpenseResponse], error) {
	return c.deleteExpense.CallUnary(ctx, req)
}

func (c *tripServiceClient) GetSettlement(ctx context.Context, req *connect.Request[GetSettlementRequest]) (*connect.Response[GetSettlementResponse], error) {
	return c.getSettlement.CallUnary(ctx, req)
}

// TripServiceHandler is implemented by the server side of TripService.
type TripServiceHandler interface {
	// CreateTrip starts an empty trip owned by the caller.
	CreateTrip(context.Context, *connect.Request[CreateTripRequest]) (*connect.Response[CreateTripResponse], error)
	// GetTrip returns a trip with its participants and expenses.
	GetTrip(context.Context, *connect.Request[GetTripRequest]) (*connect.Response[GetTripResponse], error)
	// ListTrips returns the caller's trips, newest first.
	ListTrips(context.Context, *connect.Request[ListTripsRequest]) (*connect.Response[ListTripsResponse], error)
	// DeleteTrip removes a trip and everything in it.
	DeleteTrip(context.Context, *connect.Request[DeleteTripRequest]) (*connect.Response[DeleteTripResponse], error)
	// SetBaseCurrency changes the currency settlements are computed in.
	SetBaseCurrency(context.Context, *connect.Request[SetBaseCurrencyRequest]) (*connect.Response[SetBaseCurrencyResponse], error)
	// ClearTrip removes all participants and expenses and resets the base currency.
	ClearTrip(context.Context, *connect.Request[ClearTripRequest]) (*connect.Response[ClearTripResponse], error)
	// AddParticipant adds a person to the trip.
	AddParticipant(context.Context, *connect.Request[AddParticipantRequest]) (*connect.Response[AddParticipantResponse], error)
	// RenameParticipant changes a participant's name.
	RenameParticipant(context.Context, *connect.Request[RenameParticipantRequest]) (*connect.Response[RenameParticipantResponse], error)
	// RemoveParticipant removes a participant together with the expenses they paid.
	RemoveParticipant(context.Context, *connect.Request[RemoveParticipantRequest]) (*connect.Response[RemoveParticipantResponse], error)
	// AddExpense records a payment split evenly among all participants.
	AddExpense(context.Context, *connect.Request[AddExpenseRequest]) (*connect.Response[AddExpenseResponse], error)
	// UpdateExpense edits the set fields of an expense.
	UpdateExpense(context.Context, *connect.Request[UpdateExpenseRequest]) (*connect.Response[UpdateExpenseResponse], error)
	// DeleteExpense removes an expense.
	DeleteExpense(context.Context, *connect.Request[DeleteExpenseRequest]) (*connect.Response[DeleteExpenseResponse], error)
	// GetSettlement computes balances and the transfers that settle them.
	GetSettlement(context.Context, *connect.Request[GetSettlementRequest]) (*connect.Response[GetSettlementResponse], error)
}

// NewTripServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewTripServiceHandler(svc TripServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	handlers := map[string]http.Handler{
		TripServiceCreateTripProcedure:        connect.NewUnaryHandler(TripServiceCreateTripProcedure, svc.CreateTrip, opts...),
		TripServiceGetTripProcedure:           connect.NewUnaryHandler(TripServiceGetTripProcedure, svc.GetTrip, opts...),
		TripServiceListTripsProcedure:         connect.NewUnaryHandler(TripServiceListTripsProcedure, svc.ListTrips, opts...),
		TripServiceDeleteTripProcedure:        connect.NewUnaryHandler(TripServiceDeleteTripProcedure, svc.DeleteTrip, opts...),
		TripServiceSetBaseCurrencyProcedure:   connect.NewUnaryHandler(TripServiceSetBaseCurrencyProcedure, svc.SetBaseCurrency, opts...),
		TripServiceClearTripProcedure:         connect.NewUnaryHandler(TripServiceClearTripProcedure, svc.ClearTrip, opts...),
		TripServiceAddParticipantProcedure:    connect.NewUnaryHandler(TripServiceAddParticipantProcedure, svc.AddParticipant, opts...),
		TripServiceRenameParticipantProcedure: connect.NewUnaryHandler(TripServiceRenameParticipantProcedure, svc.RenameParticipant, opts...),
		TripServiceRemoveParticipantProcedure: connect.NewUnaryHandler(TripServiceRemoveParticipantProcedure, svc.RemoveParticipant, opts...),
		TripServiceAddExpenseProcedure:        connect.NewUnaryHandler(TripServiceAddExpenseProcedure, svc.AddExpense, opts...),
		TripServiceUpdateExpenseProcedure:     connect.NewUnaryHandler(TripServiceUpdateExpenseProcedure, svc.UpdateExpense, opts...),
		TripServiceDeleteExpenseProcedure:     connect.NewUnaryHandler(TripServiceDeleteExpenseProcedure, svc.DeleteExpense, opts...),
		TripServiceGetSettlementProcedure:     connect.NewUnaryHandler(TripServiceGetSettlementProcedure, svc.GetSettlement, opts...),
	}
	return "/" + TripServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := handlers[r.URL.Path]; ok {
			h.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	})
}

// UnimplementedTripServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedTripServiceHandler struct{}

func (UnimplementedTripServiceHandler) CreateTrip(context.Context, *connect.Request[CreateTripRequest]) (*connect.Response[CreateTripResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tripsplit.v1.TripService.CreateTrip is not implemented"))
}

func (UnimplementedTripServiceHandler) GetTrip(context.Context, *connect.Request[GetTripRequest]) (*connect.Response[GetTripResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tripsplit.v1.TripService.GetTrip is not implemented"))
}

func (UnimplementedTripServiceHandler) ListTrips(context.Context, *connect.Request[ListTripsRequest]) (*connect.Response[ListTripsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tripsplit.v1.TripService.ListTrips is not implemented"))
}

func (UnimplementedTripServiceHandler) DeleteTrip(context.Context, *connect.Request[DeleteTripRequest]) (*connect.Response[DeleteTripResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tripsplit.v1.TripService.DeleteTrip is not implemented"))
}

func (UnimplementedTripServiceHandler) SetBaseCurrency(context.Context, *connect.Request[SetBaseCurrencyRequest]) (*connect.Response[SetBaseCurrencyResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tripsplit.v1.TripService.SetBaseCurrency is not implemented"))
}

func (UnimplementedTripServiceHandler) ClearTrip(context.Context, *connect.Request[ClearTripRequest]) (*connect.Response[ClearTripResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tripsplit.v1.TripService.ClearTrip is not implemented"))
}

func (UnimplementedTripServiceHandler) AddParticipant(context.Context, *connect.Request[AddParticipantRequest]) (*connect.Response[AddParticipantResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tripsplit.v1.TripService.AddParticipant is not implemented"))
}

func (UnimplementedTripServiceHandler) RenameParticipant(context.Context, *connect.Request[RenameParticipantRequest]) (*connect.Response[RenameParticipantResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tripsplit.v1.TripService.RenameParticipant is not implemented"))
}

func (UnimplementedTripServiceHandler) RemoveParticipant(context.Context, *connect.Request[RemoveParticipantRequest]) (*connect.Response[RemoveParticipantResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tripsplit.v1.TripService.RemoveParticipant is not implemented"))
}

func (UnimplementedTripServiceHandler) AddExpense(context.Context, *connect.Request[AddExpenseRequest]) (*connect.Response[AddExpenseResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tripsplit.v1.TripService.AddExpense is not implemented"))
}

func (UnimplementedTripServiceHandler) UpdateExpense(context.Context, *connect.Request[UpdateExpenseRequest]) (*connect.Response[UpdateExpenseResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tripsplit.v1.TripService.UpdateExpense is not implemented"))
}

func (UnimplementedTripServiceHandler) DeleteExpense(context.Context, *connect.Request[DeleteExpenseRequest]) (*connect.Response[DeleteExpenseResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tripsplit.v1.TripService.DeleteExpense is not implemented"))
}

func (UnimplementedTripServiceHandler) GetSettlement(context.Context, *connect.Request[GetSettlementRequest]) (*connect.Response[GetSettlementResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tripsplit.v1.TripService.GetSettlement is not implemented"))
}
