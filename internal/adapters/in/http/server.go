// Package http exposes the dispatch coordinator over a REST API built on
// echo. It translates HTTP requests into commands and queries and maps
// domain errors onto status codes.
package http

import (
	"errors"
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler       commands.CreateOrderCommandHandler
	createPartnerHandler     commands.CreatePartnerCommandHandler
	assignPartnerHandler     commands.AssignPartnerCommandHandler
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler

	// Query handlers
	getAllOrdersHandler      queries.GetAllOrdersQueryHandler
	getOrdersByStatusHandler queries.GetOrdersByStatusQueryHandler
	getAllPartnersHandler    queries.GetAllPartnersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	createPartnerHandler commands.CreatePartnerCommandHandler,
	assignPartnerHandler commands.AssignPartnerCommandHandler,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	getAllOrdersHandler queries.GetAllOrdersQueryHandler,
	getOrdersByStatusHandler queries.GetOrdersByStatusQueryHandler,
	getAllPartnersHandler queries.GetAllPartnersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		createPartnerHandler:     createPartnerHandler,
		assignPartnerHandler:     assignPartnerHandler,
		updateOrderStatusHandler: updateOrderStatusHandler,
		getAllOrdersHandler:      getAllOrdersHandler,
		getOrdersByStatusHandler: getOrdersByStatusHandler,
		getAllPartnersHandler:    getAllPartnersHandler,
	}
}

// RegisterRoutes binds every API route onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")

	api.GET("/orders", s.GetOrders)
	api.GET("/orders/status/:status", s.GetOrdersByStatus)
	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/:orderId/assign/:partnerId", s.AssignPartner)
	api.PUT("/orders/:orderId/status", s.UpdateOrderStatus)

	api.GET("/partners", s.GetPartners)
	api.POST("/partners", s.CreatePartner)
}

// CreateOrder handles POST /api/orders - accepts a new order into the system.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req NewOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), req.Items, req.PrepTime)
	if err != nil {
		return domainErrorJSON(ctx, err)
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainErrorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderToResponse(created))
}

// GetOrders handles GET /api/orders - retrieves the full order book.
func (s *Server) GetOrders(ctx echo.Context) error {
	query := queries.NewGetAllOrdersQuery()

	orders, err := s.getAllOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainErrorJSON(ctx, err)
	}

	response := make([]OrderResponse, len(orders))
	for i, o := range orders {
		response[i] = orderReadModelToResponse(o)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrdersByStatus handles GET /api/orders/status/:status - retrieves all
// orders in one lifecycle status. The status path segment uses the wire names
// (PREP, READY, PICKED, ON_ROUTE, DELIVERED).
func (s *Server) GetOrdersByStatus(ctx echo.Context) error {
	status, err := order.StatusFromString(ctx.Param("status"))
	if err != nil {
		return domainErrorJSON(ctx, err)
	}

	query, err := queries.NewGetOrdersByStatusQuery(status)
	if err != nil {
		return domainErrorJSON(ctx, err)
	}

	orders, err := s.getOrdersByStatusHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainErrorJSON(ctx, err)
	}

	response := make([]OrderResponse, len(orders))
	for i, o := range orders {
		response[i] = orderReadModelToResponse(o)
	}

	return ctx.JSON(http.StatusOK, response)
}

// AssignPartner handles POST /api/orders/:orderId/assign/:partnerId - binds a
// delivery partner to an order.
func (s *Server) AssignPartner(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return domainErrorJSON(ctx, err)
	}

	partnerID, err := kernel.UUIDFromString(ctx.Param("partnerId"))
	if err != nil {
		return domainErrorJSON(ctx, err)
	}

	cmd, err := commands.NewAssignPartnerCommand(orderID, partnerID)
	if err != nil {
		return domainErrorJSON(ctx, err)
	}

	assigned, err := s.assignPartnerHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainErrorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(assigned))
}

// UpdateOrderStatus handles PUT /api/orders/:orderId/status?status=READY -
// advances an order along its lifecycle.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return domainErrorJSON(ctx, err)
	}

	status, err := order.StatusFromString(ctx.QueryParam("status"))
	if err != nil {
		return domainErrorJSON(ctx, err)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, status)
	if err != nil {
		return domainErrorJSON(ctx, err)
	}

	updated, err := s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainErrorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(updated))
}

// CreatePartner handles POST /api/partners - registers a delivery partner.
func (s *Server) CreatePartner(ctx echo.Context) error {
	var req NewPartnerRequest
	if err := ctx.Bind(&req); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewCreatePartnerCommand(kernel.NewUUID(), req.Name, req.ETA)
	if err != nil {
		return domainErrorJSON(ctx, err)
	}

	created, err := s.createPartnerHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainErrorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, partnerToResponse(created))
}

// GetPartners handles GET /api/partners - retrieves all delivery partners.
func (s *Server) GetPartners(ctx echo.Context) error {
	query := queries.NewGetAllPartnersQuery()

	partners, err := s.getAllPartnersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainErrorJSON(ctx, err)
	}

	response := make([]PartnerResponse, len(partners))
	for i, p := range partners {
		response[i] = partnerReadModelToResponse(p)
	}

	return ctx.JSON(http.StatusOK, response)
}

// statusCodeFor maps domain errors onto HTTP status codes. Validation
// failures are client errors, missing objects are 404, lifecycle and
// assignment violations are conflicts, and lock contention is a retryable
// 503.
func statusCodeFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrConflict),
		errors.Is(err, order.ErrPrematureTransition):
		return http.StatusConflict
	case errors.Is(err, errs.ErrContention):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func domainErrorJSON(ctx echo.Context, err error) error {
	code := statusCodeFor(err)

	message := err.Error()
	if code == http.StatusInternalServerError {
		// Internal details stay in the logs, not in the response body.
		message = "Internal server error"
	}

	return errorJSON(ctx, code, message)
}

func errorJSON(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, ErrorResponse{
		Code:    code,
		Message: message,
	})
}
