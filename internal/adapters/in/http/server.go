package http

import (
	"context"
	"net/http"
	"time"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/application/usecases/queries"
	"laundry/internal/core/domain/model/batch"
	"laundry/internal/core/domain/model/branch"
	"laundry/internal/core/domain/model/feerule"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/route"
	"laundry/internal/core/domain/services"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Handler runs a use case that returns nothing but an error.
type Handler[C any] interface {
	Handle(ctx context.Context, cmd C) error
}

// ResultHandler runs a use case that returns a value.
type ResultHandler[C, R any] interface {
	Handle(ctx context.Context, cmd C) (R, error)
}

// Handlers are the use cases behind the API, one per operation.
type Handlers struct {
	// Command handlers
	CreateOrder           Handler[commands.CreateOrderCommand]
	TransitionOrderStatus ResultHandler[commands.TransitionOrderStatusCommand, commands.TransitionOrderStatusResult]
	RecordArrival         ResultHandler[commands.RecordArrivalCommand, time.Time]
	CompleteSorting       Handler[commands.CompleteSortingCommand]
	CreateFeeRule         Handler[commands.CreateFeeRuleCommand]
	CreateBranch          Handler[commands.CreateBranchCommand]
	CreateDriver          Handler[commands.CreateDriverCommand]
	SetDriverAvailability Handler[commands.SetDriverAvailabilityCommand]
	CreateBatch           ResultHandler[commands.CreateBatchCommand, *batch.Batch]
	AssignDriver          Handler[commands.AssignDriverCommand]
	AutoAssignDriver      ResultHandler[commands.AutoAssignDriverCommand, *kernel.UUID]
	OptimizeBatchRoute    ResultHandler[commands.OptimizeBatchRouteCommand, route.Plan]
	CompleteBatch         Handler[commands.CompleteBatchCommand]

	// Query handlers
	GetStatuses           ResultHandler[queries.GetStatusesQuery, []queries.GetStatusesQueryResponse]
	GetSortingWindow      ResultHandler[queries.GetSortingWindowQuery, queries.GetSortingWindowQueryResponse]
	ValidateDeliveryTime  ResultHandler[queries.ValidateDeliveryTimeQuery, services.WindowValidation]
	QuoteDeliveryFee      ResultHandler[queries.QuoteDeliveryFeeQuery, services.FeeQuote]
	ListBranchOrders      ResultHandler[queries.ListBranchOrdersQuery, []queries.ListBranchOrdersQueryResponse]
	GetPipelineStatistics ResultHandler[queries.GetPipelineStatisticsQuery, services.PipelineStatistics]
	GetSortingMetrics     ResultHandler[queries.GetSortingMetricsQuery, services.SortingMetrics]
	GetDrivers            ResultHandler[queries.GetAllDriversQuery, []queries.GetAllDriversQueryResponse]
}

// Server implements ServerInterface by translating HTTP bodies into commands
// and queries. Handler errors are returned as is and rendered by the handler
// from NewErrorHandler.
type Server struct {
	h   Handlers
	now func() time.Time
}

var _ ServerInterface = (*Server)(nil)

// NewServer creates the server. now stamps commands and queries; nil means
// time.Now.
func NewServer(handlers Handlers, now func() time.Time) *Server {
	if now == nil {
		now = time.Now
	}
	return &Server{h: handlers, now: now}
}

// GetStatuses handles GET /api/v1/statuses.
func (s *Server) GetStatuses(ctx echo.Context) error {
	statuses, err := s.h.GetStatuses.Handle(ctx.Request().Context(), queries.NewGetStatusesQuery())
	if err != nil {
		return err
	}

	response := make([]StatusInfo, 0, len(statuses))
	for _, st := range statuses {
		successors := make([]string, 0, len(st.Successors))
		for _, next := range st.Successors {
			successors = append(successors, next.String())
		}
		response = append(response, StatusInfo{
			Status:               st.Status.String(),
			Position:             st.Position,
			Successors:           successors,
			Terminal:             st.Terminal,
			NotificationTemplate: st.NotificationTemplate,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body NewOrder
	if err := bindBody(ctx, &body); err != nil {
		return err
	}

	address, err := deliveryAddress(body.DeliveryAddress)
	if err != nil {
		return invalidInput(err)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(order.NewOrderParams{
		ID:                  orderID,
		BranchID:            toKernelUUID(body.BranchId),
		Customer:            order.Customer{Name: body.CustomerName, Phone: body.CustomerPhone},
		CollectionMethod:    order.CollectionMethod(body.CollectionMethod),
		ReturnMethod:        order.ReturnMethod(body.ReturnMethod),
		DeliveryAddress:     address,
		TotalAmount:         body.TotalAmount,
		CreatedAt:           s.now(),
		EstimatedCompletion: body.EstimatedCompletion,
		ActorID:             body.ActorId,
	})
	if err != nil {
		return invalidInput(err)
	}

	if err = s.h.CreateOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, Created{Id: orderID.Bytes()})
}

// TransitionOrderStatus handles POST /api/v1/orders/{orderId}/transitions.
func (s *Server) TransitionOrderStatus(ctx echo.Context, orderId openapi_types.UUID) error {
	var body TransitionRequest
	if err := bindBody(ctx, &body); err != nil {
		return err
	}

	next, err := order.ParseStatus(body.Status)
	if err != nil {
		return invalidInput(err)
	}

	cmd, err := commands.NewTransitionOrderStatusCommand(toKernelUUID(orderId), next, body.ActorId, s.now())
	if err != nil {
		return invalidInput(err)
	}

	result, err := s.h.TransitionOrderStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	history := make([]HistoryEntry, 0, len(result.History))
	for _, e := range result.History {
		history = append(history, HistoryEntry{
			Status:  e.Status().String(),
			At:      e.Timestamp(),
			ActorId: e.ActorID(),
		})
	}

	return ctx.JSON(http.StatusOK, TransitionResult{
		OrderId:              orderId,
		From:                 result.From.String(),
		To:                   result.To.String(),
		NotificationTemplate: result.NotificationTemplate,
		History:              history,
	})
}

// RecordArrival handles POST /api/v1/orders/{orderId}/arrival.
func (s *Server) RecordArrival(ctx echo.Context, orderId openapi_types.UUID) error {
	var body ArrivalRequest
	if err := bindBody(ctx, &body); err != nil {
		return err
	}

	cmd, err := commands.NewRecordArrivalCommand(toKernelUUID(orderId), toKernelUUID(body.BranchId), s.now())
	if err != nil {
		return invalidInput(err)
	}

	earliest, err := s.h.RecordArrival.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, ArrivalResult{EarliestReturnTime: earliest})
}

// CompleteSorting handles POST /api/v1/orders/{orderId}/sorting/complete.
func (s *Server) CompleteSorting(ctx echo.Context, orderId openapi_types.UUID) error {
	cmd, err := commands.NewCompleteSortingCommand(toKernelUUID(orderId), s.now())
	if err != nil {
		return invalidInput(err)
	}

	if err = s.h.CompleteSorting.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetSortingWindow handles GET /api/v1/orders/{orderId}/sorting-window.
func (s *Server) GetSortingWindow(ctx echo.Context, orderId openapi_types.UUID) error {
	query, err := queries.NewGetSortingWindowQuery(toKernelUUID(orderId), s.now())
	if err != nil {
		return invalidInput(err)
	}

	window, err := s.h.GetSortingWindow.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, SortingWindow{
		OrderId:            window.OrderID.Bytes(),
		BranchId:           window.BranchID.Bytes(),
		WindowHours:        window.WindowHours,
		Arrived:            window.Arrived,
		ArrivedAt:          window.ArrivedAt,
		EarliestReturnTime: window.EarliestReturnTime,
		SortingCompleted:   window.SortingCompleted,
		SortingCompletedAt: window.SortingCompletedAt,
		RemainingMinutes:   window.RemainingMinutes,
	})
}

// ValidateDeliveryTime handles POST /api/v1/orders/{orderId}/delivery-time/validate.
// A time inside the window is a normal 200 answer with valid=false.
func (s *Server) ValidateDeliveryTime(ctx echo.Context, orderId openapi_types.UUID) error {
	var body DeliveryTimeRequest
	if err := bindBody(ctx, &body); err != nil {
		return err
	}

	query, err := queries.NewValidateDeliveryTimeQuery(toKernelUUID(orderId), body.ProposedTime, s.now())
	if err != nil {
		return invalidInput(err)
	}

	verdict, err := s.h.ValidateDeliveryTime.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, DeliveryTimeValidation{
		Valid:        verdict.Valid,
		EarliestTime: verdict.EarliestTime,
	})
}

// QuoteDeliveryFee handles POST /api/v1/delivery-fees/quote.
func (s *Server) QuoteDeliveryFee(ctx echo.Context) error {
	var body FeeQuoteRequest
	if err := bindBody(ctx, &body); err != nil {
		return err
	}

	query, err := queries.NewQuoteDeliveryFeeQuery(
		toKernelUUID(body.BranchId),
		body.OrderAmount,
		body.CustomerSegment,
		body.DistanceKm,
		s.now(),
	)
	if err != nil {
		return invalidInput(err)
	}

	quote, err := s.h.QuoteDeliveryFee.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	response := FeeQuote{
		Fee:     quote.Fee,
		IsFree:  quote.IsFree,
		FeeType: string(quote.FeeType),
		Reason:  quote.Reason,
	}
	if applied := quote.RuleApplied; applied != nil {
		response.RuleApplied = &AppliedRule{
			Id:       applied.ID.Bytes(),
			Name:     applied.Name,
			Priority: applied.Priority,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateFeeRule handles POST /api/v1/fee-rules.
func (s *Server) CreateFeeRule(ctx echo.Context) error {
	var body NewFeeRule
	if err := bindBody(ctx, &body); err != nil {
		return err
	}

	params, err := feeRuleParams(body)
	if err != nil {
		return invalidInput(err)
	}

	cmd, err := commands.NewCreateFeeRuleCommand(params)
	if err != nil {
		return invalidInput(err)
	}

	if err = s.h.CreateFeeRule.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, Created{Id: params.ID.Bytes()})
}

// CreateBranch handles POST /api/v1/branches.
func (s *Server) CreateBranch(ctx echo.Context) error {
	var body NewBranch
	if err := bindBody(ctx, &body); err != nil {
		return err
	}

	var mainStoreID *kernel.UUID
	if body.MainStoreId != nil {
		id := toKernelUUID(*body.MainStoreId)
		mainStoreID = &id
	}

	location, err := coordinates(body.Location)
	if err != nil {
		return invalidInput(err)
	}

	branchID := kernel.NewUUID()
	cmd, err := commands.NewCreateBranchCommand(
		branchID,
		body.Name,
		branch.Type(body.Type),
		mainStoreID,
		body.SortingWindowHours,
		location,
	)
	if err != nil {
		return invalidInput(err)
	}

	if err = s.h.CreateBranch.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, Created{Id: branchID.Bytes()})
}

// ListBranchOrders handles GET /api/v1/branches/{branchId}/orders.
func (s *Server) ListBranchOrders(ctx echo.Context, branchId openapi_types.UUID, params ListBranchOrdersParams) error {
	var statuses []order.Status
	if params.Status != nil {
		for _, name := range *params.Status {
			st, err := order.ParseStatus(name)
			if err != nil {
				return invalidInput(err)
			}
			statuses = append(statuses, st)
		}
	}

	query, err := queries.NewListBranchOrdersQuery(toKernelUUID(branchId), statuses, s.now())
	if err != nil {
		return invalidInput(err)
	}

	orders, err := s.h.ListBranchOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]BranchOrder, 0, len(orders))
	for _, o := range orders {
		response = append(response, BranchOrder{
			Id:                  o.ID.Bytes(),
			CustomerName:        o.CustomerName,
			Status:              o.Status.String(),
			ReturnMethod:        string(o.ReturnMethod),
			TotalAmount:         o.TotalAmount,
			CreatedAt:           o.CreatedAt,
			EstimatedCompletion: o.EstimatedCompletion,
			UrgencyScore:        o.UrgencyScore,
			DwellMinutes:        o.DwellMinutes,
			Overdue:             o.Overdue,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetPipelineStatistics handles GET /api/v1/branches/{branchId}/pipeline.
func (s *Server) GetPipelineStatistics(ctx echo.Context, branchId openapi_types.UUID) error {
	query, err := queries.NewGetPipelineStatisticsQuery(toKernelUUID(branchId), s.now())
	if err != nil {
		return invalidInput(err)
	}

	stats, err := s.h.GetPipelineStatistics.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	counts := make(map[string]int, len(stats.CountsByStatus))
	for st, n := range stats.CountsByStatus {
		counts[st.String()] = n
	}

	bottlenecks := make([]StageAverage, 0, len(stats.Bottlenecks))
	for _, b := range stats.Bottlenecks {
		bottlenecks = append(bottlenecks, StageAverage{
			Status:         b.Status.String(),
			AverageMinutes: b.AverageMinutes,
			Samples:        b.Samples,
		})
	}

	return ctx.JSON(http.StatusOK, PipelineStatistics{
		Total:                    stats.Total,
		CountsByStatus:           counts,
		TodayOrders:              stats.TodayOrders,
		TodayCompleted:           stats.TodayCompleted,
		TodayRevenue:             stats.TodayRevenue,
		AverageProcessingMinutes: stats.AverageProcessingMinutes,
		Bottlenecks:              bottlenecks,
		OverdueCount:             stats.OverdueCount,
	})
}

// GetSortingMetrics handles GET /api/v1/branches/{branchId}/sorting-metrics.
func (s *Server) GetSortingMetrics(ctx echo.Context, branchId openapi_types.UUID) error {
	query, err := queries.NewGetSortingMetricsQuery(toKernelUUID(branchId), s.now())
	if err != nil {
		return invalidInput(err)
	}

	metrics, err := s.h.GetSortingMetrics.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, SortingMetrics{
		Total:                 metrics.Total,
		PendingSort:           metrics.PendingSort,
		ExpiringSoon:          metrics.ExpiringSoon,
		ReadyForScheduling:    metrics.ReadyForScheduling,
		AverageSortingMinutes: metrics.AverageSortingMinutes,
	})
}

// GetDrivers handles GET /api/v1/drivers.
func (s *Server) GetDrivers(ctx echo.Context, params GetDriversParams) error {
	var branchID *kernel.UUID
	if params.BranchId != nil {
		id := toKernelUUID(*params.BranchId)
		branchID = &id
	}

	query, err := queries.NewGetAllDriversQuery(branchID, params.Available != nil && *params.Available)
	if err != nil {
		return invalidInput(err)
	}

	drivers, err := s.h.GetDrivers.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]Driver, 0, len(drivers))
	for _, d := range drivers {
		response = append(response, Driver{
			Id:            d.ID.Bytes(),
			Name:          d.Name,
			Phone:         d.Phone,
			BranchId:      d.BranchID.Bytes(),
			Available:     d.Available,
			ActiveBatches: d.ActiveBatches,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateDriver handles POST /api/v1/drivers.
func (s *Server) CreateDriver(ctx echo.Context) error {
	var body NewDriver
	if err := bindBody(ctx, &body); err != nil {
		return err
	}

	cmd, err := commands.NewCreateDriverCommand(body.Name, body.Phone, toKernelUUID(body.BranchId))
	if err != nil {
		return invalidInput(err)
	}

	if err = s.h.CreateDriver.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, Created{Id: cmd.DriverID().Bytes()})
}

// SetDriverAvailability handles PUT /api/v1/drivers/{driverId}/availability.
func (s *Server) SetDriverAvailability(ctx echo.Context, driverId openapi_types.UUID) error {
	var body DriverAvailability
	if err := bindBody(ctx, &body); err != nil {
		return err
	}

	cmd, err := commands.NewSetDriverAvailabilityCommand(toKernelUUID(driverId), body.Available)
	if err != nil {
		return invalidInput(err)
	}

	if err = s.h.SetDriverAvailability.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreateBatch handles POST /api/v1/batches. Ineligible orders answer 409 with
// every offending id in details.
func (s *Server) CreateBatch(ctx echo.Context) error {
	var body NewBatch
	if err := bindBody(ctx, &body); err != nil {
		return err
	}

	orderIDs := make([]kernel.UUID, 0, len(body.OrderIds))
	for _, id := range body.OrderIds {
		orderIDs = append(orderIDs, toKernelUUID(id))
	}

	cmd, err := commands.NewCreateBatchCommand(
		kernel.NewUUID(),
		toKernelUUID(body.OriginBranchId),
		toKernelUUID(body.DestinationBranchId),
		orderIDs,
		body.CreatedBy,
		s.now(),
	)
	if err != nil {
		return invalidInput(err)
	}

	created, err := s.h.CreateBatch.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, toBatch(created))
}

// AssignDriver handles PUT /api/v1/batches/{batchId}/driver.
func (s *Server) AssignDriver(ctx echo.Context, batchId openapi_types.UUID) error {
	var body DriverAssignment
	if err := bindBody(ctx, &body); err != nil {
		return err
	}

	cmd, err := commands.NewAssignDriverCommand(toKernelUUID(batchId), toKernelUUID(body.DriverId))
	if err != nil {
		return invalidInput(err)
	}

	if err = s.h.AssignDriver.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AutoAssignDriver handles POST /api/v1/batches/{batchId}/driver/auto. When
// nobody is available the answer is 200 with a null driverId.
func (s *Server) AutoAssignDriver(ctx echo.Context, batchId openapi_types.UUID) error {
	cmd, err := commands.NewAutoAssignDriverCommand(toKernelUUID(batchId))
	if err != nil {
		return invalidInput(err)
	}

	driverID, err := s.h.AutoAssignDriver.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	var response AutoAssignment
	if driverID != nil {
		id := openapi_types.UUID(driverID.Bytes())
		response.DriverId = &id
	}

	return ctx.JSON(http.StatusOK, response)
}

// CompleteBatch handles POST /api/v1/batches/{batchId}/complete.
func (s *Server) CompleteBatch(ctx echo.Context, batchId openapi_types.UUID) error {
	cmd, err := commands.NewCompleteBatchCommand(toKernelUUID(batchId))
	if err != nil {
		return invalidInput(err)
	}

	if err = s.h.CompleteBatch.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusNoContent)
}

// OptimizeBatchRoute handles POST /api/v1/batches/{batchId}/route.
func (s *Server) OptimizeBatchRoute(ctx echo.Context, batchId openapi_types.UUID) error {
	var body RouteRequest
	if err := bindBody(ctx, &body); err != nil {
		return err
	}

	cmd, err := commands.NewOptimizeBatchRouteCommand(toKernelUUID(batchId), body.ReturnToStart)
	if err != nil {
		return invalidInput(err)
	}

	plan, err := s.h.OptimizeBatchRoute.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	stops := make([]RouteStop, 0, len(plan.Stops))
	for _, stop := range plan.Stops {
		stops = append(stops, RouteStop{
			Sequence:      stop.Sequence,
			OrderId:       stop.OrderID.Bytes(),
			Address:       stop.Address,
			CustomerName:  stop.CustomerName,
			CustomerPhone: stop.CustomerPhone,
			Location:      Coordinates{Lat: stop.Coordinates.Lat(), Lng: stop.Coordinates.Lng()},
		})
	}

	return ctx.JSON(http.StatusOK, RoutePlan{
		Stops:                stops,
		TotalDistanceKm:      plan.TotalDistanceKm,
		TotalDurationMinutes: plan.TotalDuration.Minutes(),
		ReturnToStart:        plan.ReturnToStart,
		Optimized:            plan.Optimized,
	})
}

func bindBody(ctx echo.Context, dst any) error {
	if err := ctx.Bind(dst); err != nil {
		return &echo.HTTPError{Code: http.StatusBadRequest, Message: "invalid request body", Internal: err}
	}
	return nil
}

// invalidInput turns a constructor failure into a 400 answer.
func invalidInput(err error) error {
	return &echo.HTTPError{Code: http.StatusBadRequest, Message: err.Error(), Internal: err}
}

// toKernelUUID converts a bound id. The nil uuid yields the zero kernel.UUID,
// which every command and query constructor rejects.
func toKernelUUID(id openapi_types.UUID) kernel.UUID {
	converted, _ := kernel.UUIDFromBytes(id[:])
	return converted
}

func coordinates(c *Coordinates) (*kernel.Coordinates, error) {
	if c == nil {
		return nil, nil //nolint:nilnil // no location is a valid state
	}
	location, err := kernel.NewCoordinates(c.Lat, c.Lng)
	if err != nil {
		return nil, err
	}
	return &location, nil
}

func deliveryAddress(a *DeliveryAddress) (*order.Address, error) {
	if a == nil {
		return nil, nil //nolint:nilnil // collection orders carry no address
	}
	location, err := coordinates(a.Location)
	if err != nil {
		return nil, err
	}
	return &order.Address{Street: a.Street, Coordinates: location}, nil
}

func feeRuleParams(body NewFeeRule) (feerule.Params, error) {
	params := feerule.Params{
		ID:         kernel.NewUUID(),
		Name:       body.Name,
		Priority:   body.Priority,
		Active:     body.Active,
		ValidFrom:  body.ValidFrom,
		ValidUntil: body.ValidUntil,
		Calculation: feerule.Calculation{
			Type:   feerule.FeeType(body.Calculation.Type),
			Value:  body.Calculation.Value,
			MinFee: body.Calculation.MinFee,
			MaxFee: body.Calculation.MaxFee,
		},
	}
	if body.BranchId != nil {
		id := toKernelUUID(*body.BranchId)
		params.BranchID = &id
	}

	if c := body.Conditions; c != nil {
		params.Conditions.MinOrderAmount = c.MinOrderAmount
		params.Conditions.CustomerSegments = c.CustomerSegments
		params.Conditions.MaxDistanceKm = c.MaxDistanceKm
		for _, d := range c.DaysOfWeek {
			params.Conditions.DaysOfWeek = append(params.Conditions.DaysOfWeek, time.Weekday(d))
		}

		var err error
		if params.Conditions.StartTime, err = optionalClock(c.StartTime); err != nil {
			return feerule.Params{}, err
		}
		if params.Conditions.EndTime, err = optionalClock(c.EndTime); err != nil {
			return feerule.Params{}, err
		}
	}

	return params, nil
}

func optionalClock(s *string) (*feerule.Clock, error) {
	if s == nil {
		return nil, nil //nolint:nilnil // an open bound is a valid state
	}
	clock, err := feerule.ParseClock(*s)
	if err != nil {
		return nil, err
	}
	return &clock, nil
}

func toBatch(b *batch.Batch) Batch {
	ids := b.OrderIDs()
	orderIDs := make([]openapi_types.UUID, 0, len(ids))
	for _, id := range ids {
		orderIDs = append(orderIDs, id.Bytes())
	}

	response := Batch{
		Id:                  b.ID().Bytes(),
		OriginBranchId:      b.OriginBranchID().Bytes(),
		DestinationBranchId: b.DestinationBranchID().Bytes(),
		OrderIds:            orderIDs,
		Status:              string(b.Status()),
		CreatedBy:           b.CreatedBy(),
		CreatedAt:           b.CreatedAt(),
	}
	if driverID := b.DriverID(); driverID != nil {
		id := openapi_types.UUID(driverID.Bytes())
		response.DriverId = &id
	}
	return response
}
