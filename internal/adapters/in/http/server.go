// Package http exposes the fulfillment use cases over a JSON API. Handlers
// translate requests into commands and queries and map the domain error
// taxonomy onto HTTP status codes; no business rules live here.
package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// Server implements the HTTP API for order fulfillment.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler    commands.CreateOrderCommandHandler
	transitionHandler     commands.TransitionOrderCommandHandler
	processPaymentHandler commands.ProcessPaymentCommandHandler
	assignVendorHandler   commands.AssignVendorCommandHandler
	markShippedHandler    commands.MarkShippedCommandHandler
	markPickedUpHandler   commands.MarkPickedUpCommandHandler
	putOnHoldHandler      commands.PutOnHoldCommandHandler
	resumeFromHoldHandler commands.ResumeFromHoldCommandHandler

	// Query handlers
	getHistoryHandler  queries.GetOrderHistoryQueryHandler
	getByStatusHandler queries.GetOrdersByStatusQueryHandler
	getOverdueHandler  queries.GetOverdueProductionOrdersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	transitionHandler commands.TransitionOrderCommandHandler,
	processPaymentHandler commands.ProcessPaymentCommandHandler,
	assignVendorHandler commands.AssignVendorCommandHandler,
	markShippedHandler commands.MarkShippedCommandHandler,
	markPickedUpHandler commands.MarkPickedUpCommandHandler,
	putOnHoldHandler commands.PutOnHoldCommandHandler,
	resumeFromHoldHandler commands.ResumeFromHoldCommandHandler,
	getHistoryHandler queries.GetOrderHistoryQueryHandler,
	getByStatusHandler queries.GetOrdersByStatusQueryHandler,
	getOverdueHandler queries.GetOverdueProductionOrdersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:    createOrderHandler,
		transitionHandler:     transitionHandler,
		processPaymentHandler: processPaymentHandler,
		assignVendorHandler:   assignVendorHandler,
		markShippedHandler:    markShippedHandler,
		markPickedUpHandler:   markPickedUpHandler,
		putOnHoldHandler:      putOnHoldHandler,
		resumeFromHoldHandler: resumeFromHoldHandler,
		getHistoryHandler:     getHistoryHandler,
		getByStatusHandler:    getByStatusHandler,
		getOverdueHandler:     getOverdueHandler,
	}
}

// RegisterRoutes wires all API routes onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.GetOrdersByStatus)
	api.GET("/orders/overdue-production", s.GetOverdueProductionOrders)
	api.POST("/orders/:id/transition", s.TransitionOrder)
	api.POST("/orders/:id/assign-vendor", s.AssignVendor)
	api.POST("/orders/:id/shipped", s.MarkShipped)
	api.POST("/orders/:id/picked-up", s.MarkPickedUp)
	api.POST("/orders/:id/hold", s.PutOnHold)
	api.POST("/orders/:id/resume", s.ResumeFromHold)
	api.GET("/orders/:id/history", s.GetOrderHistory)
	api.POST("/payments/webhook", s.ProcessPayment)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// writeError maps the domain error taxonomy onto HTTP status codes:
// unknown order 404, lost races 409, disallowed transitions 422, bad
// input 400, everything else 500.
func writeError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrStateConflict):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrInvalidTransition):
		code = http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrValueIsInvalid), errors.Is(err, errs.ErrValueIsRequired):
		code = http.StatusBadRequest
	}

	return ctx.JSON(code, errorResponse{Code: code, Message: err.Error()})
}

func bindJSON(ctx echo.Context, target any) error {
	if err := ctx.Bind(target); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	return nil
}

func orderIDParam(ctx echo.Context) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	return id, nil
}

type lineItemRequest struct {
	ProductName    string `json:"productName"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unitPriceCents"`
}

type createOrderRequest struct {
	OrderNumber   string            `json:"orderNumber"`
	CustomerName  string            `json:"customerName"`
	CustomerEmail string            `json:"customerEmail"`
	TotalCents    int64             `json:"totalCents"`
	Currency      string            `json:"currency"`
	Items         []lineItemRequest `json:"items"`
	LandingPageID string            `json:"landingPageId,omitempty"`
}

// CreateOrder handles POST /api/v1/orders - registers a new paid-for print order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req createOrderRequest
	if err := bindJSON(ctx, &req); err != nil {
		return writeError(ctx, err)
	}

	var landingPageID *kernel.UUID
	if req.LandingPageID != "" {
		id, err := kernel.UUIDFromString(req.LandingPageID)
		if err != nil {
			return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("landingPageId", err))
		}
		landingPageID = &id
	}

	items := make([]order.LineItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, order.LineItem{
			ProductName:    item.ProductName,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
		})
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID,
		req.OrderNumber,
		req.CustomerName,
		req.CustomerEmail,
		req.TotalCents,
		req.Currency,
		items,
		landingPageID,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": orderID.String()})
}

type transitionRequest struct {
	FromStatus string `json:"fromStatus"`
	ToStatus   string `json:"toStatus"`
	Actor      string `json:"actor"`
	Notes      string `json:"notes"`
}

// TransitionOrder handles POST /api/v1/orders/:id/transition - applies a
// generic status transition conditional on the status the caller observed.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req transitionRequest
	if err = bindJSON(ctx, &req); err != nil {
		return writeError(ctx, err)
	}

	fromStatus, err := order.StatusFromString(req.FromStatus)
	if err != nil {
		return writeError(ctx, err)
	}
	toStatus, err := order.StatusFromString(req.ToStatus)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, fromStatus, toStatus, req.Actor, req.Notes)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.transitionHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type paymentWebhookRequest struct {
	OrderID          string `json:"orderId"`
	PaymentReference string `json:"paymentReference"`
	AmountCents      int64  `json:"amountCents"`
}

// ProcessPayment handles POST /api/v1/payments/webhook - confirms an order
// after the payment gateway reports success. Retried webhooks for an already
// confirmed order answer 409; the gateway treats that as final.
func (s *Server) ProcessPayment(ctx echo.Context) error {
	var req paymentWebhookRequest
	if err := bindJSON(ctx, &req); err != nil {
		return writeError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("orderId", err))
	}

	cmd, err := commands.NewProcessPaymentCommand(orderID, req.PaymentReference, req.AmountCents)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.processPaymentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type assignVendorRequest struct {
	VendorID           string    `json:"vendorId"`
	ProductionDeadline time.Time `json:"productionDeadline"`
	Actor              string    `json:"actor"`
	Notes              string    `json:"notes"`
}

// AssignVendor handles POST /api/v1/orders/:id/assign-vendor - sends a
// confirmed order into production at the chosen vendor shop.
func (s *Server) AssignVendor(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req assignVendorRequest
	if err = bindJSON(ctx, &req); err != nil {
		return writeError(ctx, err)
	}

	vendorID, err := kernel.UUIDFromString(req.VendorID)
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("vendorId", err))
	}

	cmd, err := commands.NewAssignVendorCommand(orderID, vendorID, req.ProductionDeadline, req.Actor, req.Notes)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.assignVendorHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type markShippedRequest struct {
	TrackingNumber    string     `json:"trackingNumber"`
	Carrier           string     `json:"carrier"`
	ServiceCode       string     `json:"serviceCode"`
	LabelURL          string     `json:"labelUrl"`
	EstimatedDelivery *time.Time `json:"estimatedDelivery"`
	Actor             string     `json:"actor"`
	Notes             string     `json:"notes"`
}

// MarkShipped handles POST /api/v1/orders/:id/shipped - records a vendor's
// shipping report and moves the order to Shipped.
func (s *Server) MarkShipped(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req markShippedRequest
	if err = bindJSON(ctx, &req); err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewMarkShippedCommand(
		orderID,
		req.TrackingNumber,
		req.Carrier,
		req.ServiceCode,
		req.LabelURL,
		req.EstimatedDelivery,
		req.Actor,
		req.Notes,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.markShippedHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type markPickedUpRequest struct {
	PickedUpAt time.Time `json:"pickedUpAt"`
	PickedUpBy string    `json:"pickedUpBy"`
	Actor      string    `json:"actor"`
	Notes      string    `json:"notes"`
}

// MarkPickedUp handles POST /api/v1/orders/:id/picked-up - records a
// completed customer pickup.
func (s *Server) MarkPickedUp(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req markPickedUpRequest
	if err = bindJSON(ctx, &req); err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewMarkPickedUpCommand(orderID, req.PickedUpAt, req.PickedUpBy, req.Actor, req.Notes)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.markPickedUpHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type putOnHoldRequest struct {
	Reason     string `json:"reason"`
	AdminNotes string `json:"adminNotes"`
	Actor      string `json:"actor"`
}

// PutOnHold handles POST /api/v1/orders/:id/hold - pauses an order pending
// issue resolution.
func (s *Server) PutOnHold(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req putOnHoldRequest
	if err = bindJSON(ctx, &req); err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewPutOnHoldCommand(orderID, req.Reason, req.AdminNotes, req.Actor)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.putOnHoldHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type resumeFromHoldRequest struct {
	ResumeStatus string `json:"resumeStatus"`
	Actor        string `json:"actor"`
}

// ResumeFromHold handles POST /api/v1/orders/:id/resume - returns a held
// order to Confirmation or Production.
func (s *Server) ResumeFromHold(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req resumeFromHoldRequest
	if err = bindJSON(ctx, &req); err != nil {
		return writeError(ctx, err)
	}

	resumeStatus, err := order.StatusFromString(req.ResumeStatus)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewResumeFromHoldCommand(orderID, resumeStatus, req.Actor)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.resumeFromHoldHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type historyEntryResponse struct {
	FromStatus string    `json:"fromStatus"`
	ToStatus   string    `json:"toStatus"`
	Notes      string    `json:"notes,omitempty"`
	ChangedBy  string    `json:"changedBy"`
	CreatedAt  time.Time `json:"createdAt"`
}

// GetOrderHistory handles GET /api/v1/orders/:id/history - returns the
// order's transition audit trail, oldest first.
func (s *Server) GetOrderHistory(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetOrderHistoryQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	history, err := s.getHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]historyEntryResponse, len(history))
	for i, entry := range history {
		response[i] = historyEntryResponse{
			FromStatus: entry.FromStatus.String(),
			ToStatus:   entry.ToStatus.String(),
			Notes:      entry.Notes,
			ChangedBy:  entry.ChangedBy,
			CreatedAt:  entry.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

type orderSummaryResponse struct {
	ID            string `json:"id"`
	OrderNumber   string `json:"orderNumber"`
	Status        string `json:"status"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	TotalCents    int64  `json:"totalCents"`
	Currency      string `json:"currency"`
	VendorID      string `json:"vendorId,omitempty"`
}

// GetOrdersByStatus handles GET /api/v1/orders?status=... - lists the work
// queue for one status.
func (s *Server) GetOrdersByStatus(ctx echo.Context) error {
	status, err := order.StatusFromString(ctx.QueryParam("status"))
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetOrdersByStatusQuery(status)
	if err != nil {
		return writeError(ctx, err)
	}

	orders, err := s.getByStatusHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]orderSummaryResponse, len(orders))
	for i, o := range orders {
		summary := orderSummaryResponse{
			ID:            o.ID.String(),
			OrderNumber:   o.OrderNumber,
			Status:        o.Status.String(),
			CustomerName:  o.CustomerName,
			CustomerEmail: o.CustomerEmail,
			TotalCents:    o.TotalCents,
			Currency:      o.Currency,
		}
		if o.VendorID != nil {
			summary.VendorID = o.VendorID.String()
		}
		response[i] = summary
	}

	return ctx.JSON(http.StatusOK, response)
}

type overdueOrderResponse struct {
	ID                 string     `json:"id"`
	OrderNumber        string     `json:"orderNumber"`
	VendorID           string     `json:"vendorId,omitempty"`
	ProductionDeadline time.Time  `json:"productionDeadline"`
	VendorNotifiedAt   *time.Time `json:"vendorNotifiedAt,omitempty"`
}

// GetOverdueProductionOrders handles GET /api/v1/orders/overdue-production -
// lists production orders past their deadline, most overdue first.
func (s *Server) GetOverdueProductionOrders(ctx echo.Context) error {
	query := queries.NewGetOverdueProductionOrdersQuery(time.Now().UTC())

	overdue, err := s.getOverdueHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]overdueOrderResponse, len(overdue))
	for i, o := range overdue {
		entry := overdueOrderResponse{
			ID:                 o.ID.String(),
			OrderNumber:        o.OrderNumber,
			ProductionDeadline: o.ProductionDeadline,
			VendorNotifiedAt:   o.VendorNotifiedAt,
		}
		if o.VendorID != nil {
			entry.VendorID = o.VendorID.String()
		}
		response[i] = entry
	}

	return ctx.JSON(http.StatusOK, response)
}
