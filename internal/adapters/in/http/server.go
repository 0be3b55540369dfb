// Package http exposes the marketplace over a JSON API. The adapter binds
// requests, resolves the acting party from headers and translates the error
// taxonomy to HTTP status codes; all behavior lives in the use case handlers.
package http

import (
	"errors"
	"net/http"

	"medmarket/internal/core/application/usecases/commands"
	"medmarket/internal/core/application/usecases/queries"
	"medmarket/internal/core/domain/model/inventory"
	"medmarket/internal/core/domain/model/kernel"
	"medmarket/internal/core/domain/model/order"
	"medmarket/internal/core/domain/services"
	"medmarket/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Actor identity headers. Authentication happens upstream at the gateway;
// the API trusts these headers.
const (
	headerActorID   = "X-Actor-ID"
	headerActorRole = "X-Actor-Role"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	placeOrderHandler     commands.PlaceOrderCommandHandler
	transitionHandler     commands.TransitionOrderStatusCommandHandler
	assignCourierHandler  commands.AssignCourierCommandHandler
	respondHandler        commands.RespondToAssignmentCommandHandler
	addMedicineHandler    commands.AddMedicineCommandHandler
	updateMedicineHandler commands.UpdateMedicineCommandHandler
	removeMedicineHandler commands.RemoveMedicineCommandHandler

	listOrdersHandler  queries.ListOrdersQueryHandler
	getCouriersHandler queries.GetCouriersQueryHandler
	getStockHandler    queries.GetStockQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	placeOrderHandler commands.PlaceOrderCommandHandler,
	transitionHandler commands.TransitionOrderStatusCommandHandler,
	assignCourierHandler commands.AssignCourierCommandHandler,
	respondHandler commands.RespondToAssignmentCommandHandler,
	addMedicineHandler commands.AddMedicineCommandHandler,
	updateMedicineHandler commands.UpdateMedicineCommandHandler,
	removeMedicineHandler commands.RemoveMedicineCommandHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	getCouriersHandler queries.GetCouriersQueryHandler,
	getStockHandler queries.GetStockQueryHandler,
) *Server {
	return &Server{
		placeOrderHandler:     placeOrderHandler,
		transitionHandler:     transitionHandler,
		assignCourierHandler:  assignCourierHandler,
		respondHandler:        respondHandler,
		addMedicineHandler:    addMedicineHandler,
		updateMedicineHandler: updateMedicineHandler,
		removeMedicineHandler: removeMedicineHandler,
		listOrdersHandler:     listOrdersHandler,
		getCouriersHandler:    getCouriersHandler,
		getStockHandler:       getStockHandler,
	}
}

// RegisterRoutes attaches every endpoint to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.PlaceOrder)
	api.GET("/orders", s.ListOrders)
	api.PUT("/orders/:id/status", s.TransitionOrder)
	api.PUT("/orders/:id/assign", s.AssignCourier)
	api.PUT("/orders/:id/respond", s.RespondToAssignment)

	api.GET("/couriers", s.GetCouriers)

	api.POST("/medicines", s.AddMedicine)
	api.PUT("/medicines/:id", s.UpdateMedicine)
	api.DELETE("/medicines/:id", s.RemoveMedicine)
	api.GET("/pharmacies/:pharmacyId/medicines/:medicineId/stock", s.GetStock)
}

// PlaceOrder handles POST /api/v1/orders.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req PlaceOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	pharmacyID, err := kernel.UUIDFromString(req.PharmacyID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	lines := make([]commands.OrderLine, 0, len(req.Lines))
	for _, line := range req.Lines {
		medicineID, lineErr := kernel.UUIDFromString(line.MedicineID)
		if lineErr != nil {
			return badRequest(ctx, lineErr.Error())
		}
		lines = append(lines, commands.OrderLine{MedicineID: medicineID, Quantity: line.Quantity})
	}

	address, err := kernel.NewAddress(req.Address.Street, req.Address.City,
		req.Address.State, req.Address.PostalCode, req.Address.Country)
	if err != nil {
		return writeError(ctx, err)
	}

	paymentMethod, err := order.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return writeError(ctx, err)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewPlaceOrderCommand(orderID, actor.ID(), pharmacyID,
		lines, address, paymentMethod, req.PrescriptionRef)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.placeOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, PlaceOrderResponse{OrderID: orderID.String()})
}

// ListOrders handles GET /api/v1/orders. The optional status query parameter
// narrows the listing.
func (s *Server) ListOrders(ctx echo.Context) error {
	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var statusFilter *order.Status
	if raw := ctx.QueryParam("status"); raw != "" {
		status, parseErr := order.ParseStatus(raw)
		if parseErr != nil {
			return writeError(ctx, parseErr)
		}
		statusFilter = &status
	}

	query, err := queries.NewListOrdersQuery(actor, statusFilter)
	if err != nil {
		return writeError(ctx, err)
	}

	summaries, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]OrderSummaryResponse, len(summaries))
	for i, summary := range summaries {
		var courierID *string
		if summary.CourierID != nil {
			id := summary.CourierID.String()
			courierID = &id
		}
		response[i] = OrderSummaryResponse{
			ID:          summary.ID.String(),
			OrderNumber: summary.OrderNumber,
			Status:      summary.Status.String(),
			Total:       summary.Total,
			CourierID:   courierID,
			CreatedAt:   summary.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// TransitionOrder handles PUT /api/v1/orders/:id/status.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var req TransitionRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	target, err := order.ParseStatus(req.Status)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewTransitionOrderStatusCommand(orderID, actor, target, req.Note)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.transitionHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AssignCourier handles PUT /api/v1/orders/:id/assign.
func (s *Server) AssignCourier(ctx echo.Context) error {
	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var req AssignRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewAssignCourierCommand(orderID, actor, courierID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.assignCourierHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RespondToAssignment handles PUT /api/v1/orders/:id/respond.
func (s *Server) RespondToAssignment(ctx echo.Context) error {
	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var req RespondRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewRespondToAssignmentCommand(orderID, actor, req.Accept, req.Note)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.respondHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetCouriers handles GET /api/v1/couriers.
func (s *Server) GetCouriers(ctx echo.Context) error {
	couriers, err := s.getCouriersHandler.Handle(ctx.Request().Context(), queries.NewGetCouriersQuery())
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]CourierResponse, len(couriers))
	for i, summary := range couriers {
		response[i] = CourierResponse{
			ID:     summary.ID.String(),
			Name:   summary.Name,
			Phone:  summary.Phone,
			IsBusy: summary.IsBusy,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// AddMedicine handles POST /api/v1/medicines.
func (s *Server) AddMedicine(ctx echo.Context) error {
	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req MedicineRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	medicineID := kernel.NewUUID()
	if req.MedicineID != "" {
		if medicineID, err = kernel.UUIDFromString(req.MedicineID); err != nil {
			return badRequest(ctx, err.Error())
		}
	}

	cmd, err := commands.NewAddMedicineCommand(medicineID, actor, req.Name,
		req.GenericName, req.Price, req.Stock, req.Discount, req.ExpiryDate, req.BatchNumber)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.addMedicineHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// UpdateMedicine handles PUT /api/v1/medicines/:id.
func (s *Server) UpdateMedicine(ctx echo.Context) error {
	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	medicineID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var req MedicineRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewUpdateMedicineCommand(medicineID, actor, req.Name,
		req.GenericName, req.Price, req.Stock, req.Discount, req.Available,
		req.ExpiryDate, req.BatchNumber)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.updateMedicineHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RemoveMedicine handles DELETE /api/v1/medicines/:id.
func (s *Server) RemoveMedicine(ctx echo.Context) error {
	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	medicineID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewRemoveMedicineCommand(medicineID, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.removeMedicineHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetStock handles GET /api/v1/pharmacies/:pharmacyId/medicines/:medicineId/stock.
func (s *Server) GetStock(ctx echo.Context) error {
	pharmacyID, err := kernel.UUIDFromString(ctx.Param("pharmacyId"))
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	medicineID, err := kernel.UUIDFromString(ctx.Param("medicineId"))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	query, err := queries.NewGetStockQuery(medicineID, pharmacyID)
	if err != nil {
		return writeError(ctx, err)
	}

	info, err := s.getStockHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, StockResponse{
		MedicineID: info.MedicineID.String(),
		Name:       info.Name,
		Price:      info.Price,
		Discount:   info.Discount,
		FinalPrice: info.FinalPrice,
		Stock:      info.Stock,
		Available:  info.Available,
	})
}

// actorFromHeaders resolves the acting party from the identity headers.
func actorFromHeaders(ctx echo.Context) (kernel.Actor, error) {
	rawID := ctx.Request().Header.Get(headerActorID)
	if rawID == "" {
		return kernel.Actor{}, errs.NewValueIsRequiredError(headerActorID)
	}

	id, err := kernel.UUIDFromString(rawID)
	if err != nil {
		return kernel.Actor{}, errs.NewValueIsInvalidErrorWithCause(headerActorID, err)
	}

	role, err := kernel.ParseRole(ctx.Request().Header.Get(headerActorRole))
	if err != nil {
		return kernel.Actor{}, err
	}

	return kernel.NewActor(id, role)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// writeError translates the error taxonomy to HTTP responses. Insufficient
// stock gets its own body so clients can show the complete shortfall.
func writeError(ctx echo.Context, err error) error {
	var stockErr *inventory.InsufficientStockError
	if errors.As(err, &stockErr) {
		items := make([]ShortItemResponse, len(stockErr.Items))
		for i, item := range stockErr.Items {
			items[i] = ShortItemResponse{
				MedicineID: item.MedicineID.String(),
				Name:       item.Name,
				Required:   item.Required,
				Available:  item.Available,
			}
		}
		return ctx.JSON(http.StatusBadRequest, InsufficientStockResponse{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
			Items:   items,
		})
	}

	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrNotAuthorized):
		code = http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrConcurrencyConflict), errors.Is(err, services.ErrCourierBusy):
		code = http.StatusConflict
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusBadRequest
	}

	return ctx.JSON(code, Error{Code: code, Message: err.Error()})
}
