package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface lists the operations of openapi.yml.
type ServerInterface interface {
	// (GET /api/v1/statuses)
	GetStatuses(ctx echo.Context) error
	// (POST /api/v1/orders)
	CreateOrder(ctx echo.Context) error
	// (POST /api/v1/orders/{orderId}/transitions)
	TransitionOrderStatus(ctx echo.Context, orderId openapi_types.UUID) error
	// (POST /api/v1/orders/{orderId}/arrival)
	RecordArrival(ctx echo.Context, orderId openapi_types.UUID) error
	// (POST /api/v1/orders/{orderId}/sorting/complete)
	CompleteSorting(ctx echo.Context, orderId openapi_types.UUID) error
	// (GET /api/v1/orders/{orderId}/sorting-window)
	GetSortingWindow(ctx echo.Context, orderId openapi_types.UUID) error
	// (POST /api/v1/orders/{orderId}/delivery-time/validate)
	ValidateDeliveryTime(ctx echo.Context, orderId openapi_types.UUID) error
	// (POST /api/v1/delivery-fees/quote)
	QuoteDeliveryFee(ctx echo.Context) error
	// (POST /api/v1/fee-rules)
	CreateFeeRule(ctx echo.Context) error
	// (POST /api/v1/branches)
	CreateBranch(ctx echo.Context) error
	// (GET /api/v1/branches/{branchId}/orders)
	ListBranchOrders(ctx echo.Context, branchId openapi_types.UUID, params ListBranchOrdersParams) error
	// (GET /api/v1/branches/{branchId}/pipeline)
	GetPipelineStatistics(ctx echo.Context, branchId openapi_types.UUID) error
	// (GET /api/v1/branches/{branchId}/sorting-metrics)
	GetSortingMetrics(ctx echo.Context, branchId openapi_types.UUID) error
	// (GET /api/v1/drivers)
	GetDrivers(ctx echo.Context, params GetDriversParams) error
	// (POST /api/v1/drivers)
	CreateDriver(ctx echo.Context) error
	// (PUT /api/v1/drivers/{driverId}/availability)
	SetDriverAvailability(ctx echo.Context, driverId openapi_types.UUID) error
	// (POST /api/v1/batches)
	CreateBatch(ctx echo.Context) error
	// (PUT /api/v1/batches/{batchId}/driver)
	AssignDriver(ctx echo.Context, batchId openapi_types.UUID) error
	// (POST /api/v1/batches/{batchId}/driver/auto)
	AutoAssignDriver(ctx echo.Context, batchId openapi_types.UUID) error
	// (POST /api/v1/batches/{batchId}/route)
	OptimizeBatchRoute(ctx echo.Context, batchId openapi_types.UUID) error
	// (POST /api/v1/batches/{batchId}/complete)
	CompleteBatch(ctx echo.Context, batchId openapi_types.UUID) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) GetStatuses(ctx echo.Context) error {
	return w.Handler.GetStatuses(ctx)
}

func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

func (w *ServerInterfaceWrapper) TransitionOrderStatus(ctx echo.Context) error {
	orderId, err := bindPathUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.TransitionOrderStatus(ctx, orderId)
}

func (w *ServerInterfaceWrapper) RecordArrival(ctx echo.Context) error {
	orderId, err := bindPathUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.RecordArrival(ctx, orderId)
}

func (w *ServerInterfaceWrapper) CompleteSorting(ctx echo.Context) error {
	orderId, err := bindPathUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.CompleteSorting(ctx, orderId)
}

func (w *ServerInterfaceWrapper) GetSortingWindow(ctx echo.Context) error {
	orderId, err := bindPathUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.GetSortingWindow(ctx, orderId)
}

func (w *ServerInterfaceWrapper) ValidateDeliveryTime(ctx echo.Context) error {
	orderId, err := bindPathUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.ValidateDeliveryTime(ctx, orderId)
}

func (w *ServerInterfaceWrapper) QuoteDeliveryFee(ctx echo.Context) error {
	return w.Handler.QuoteDeliveryFee(ctx)
}

func (w *ServerInterfaceWrapper) CreateFeeRule(ctx echo.Context) error {
	return w.Handler.CreateFeeRule(ctx)
}

func (w *ServerInterfaceWrapper) CreateBranch(ctx echo.Context) error {
	return w.Handler.CreateBranch(ctx)
}

func (w *ServerInterfaceWrapper) ListBranchOrders(ctx echo.Context) error {
	branchId, err := bindPathUUID(ctx, "branchId")
	if err != nil {
		return err
	}

	var params ListBranchOrdersParams
	err = runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &params.Status)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter status: %s", err))
	}

	return w.Handler.ListBranchOrders(ctx, branchId, params)
}

func (w *ServerInterfaceWrapper) GetPipelineStatistics(ctx echo.Context) error {
	branchId, err := bindPathUUID(ctx, "branchId")
	if err != nil {
		return err
	}
	return w.Handler.GetPipelineStatistics(ctx, branchId)
}

func (w *ServerInterfaceWrapper) GetSortingMetrics(ctx echo.Context) error {
	branchId, err := bindPathUUID(ctx, "branchId")
	if err != nil {
		return err
	}
	return w.Handler.GetSortingMetrics(ctx, branchId)
}

func (w *ServerInterfaceWrapper) GetDrivers(ctx echo.Context) error {
	var params GetDriversParams

	err := runtime.BindQueryParameter("form", true, false, "branchId", ctx.QueryParams(), &params.BranchId)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter branchId: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "available", ctx.QueryParams(), &params.Available)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter available: %s", err))
	}

	return w.Handler.GetDrivers(ctx, params)
}

func (w *ServerInterfaceWrapper) CreateDriver(ctx echo.Context) error {
	return w.Handler.CreateDriver(ctx)
}

func (w *ServerInterfaceWrapper) SetDriverAvailability(ctx echo.Context) error {
	driverId, err := bindPathUUID(ctx, "driverId")
	if err != nil {
		return err
	}
	return w.Handler.SetDriverAvailability(ctx, driverId)
}

func (w *ServerInterfaceWrapper) CreateBatch(ctx echo.Context) error {
	return w.Handler.CreateBatch(ctx)
}

func (w *ServerInterfaceWrapper) AssignDriver(ctx echo.Context) error {
	batchId, err := bindPathUUID(ctx, "batchId")
	if err != nil {
		return err
	}
	return w.Handler.AssignDriver(ctx, batchId)
}

func (w *ServerInterfaceWrapper) AutoAssignDriver(ctx echo.Context) error {
	batchId, err := bindPathUUID(ctx, "batchId")
	if err != nil {
		return err
	}
	return w.Handler.AutoAssignDriver(ctx, batchId)
}

func (w *ServerInterfaceWrapper) OptimizeBatchRoute(ctx echo.Context) error {
	batchId, err := bindPathUUID(ctx, "batchId")
	if err != nil {
		return err
	}
	return w.Handler.OptimizeBatchRoute(ctx, batchId)
}

func (w *ServerInterfaceWrapper) CompleteBatch(ctx echo.Context) error {
	batchId, err := bindPathUUID(ctx, "batchId")
	if err != nil {
		return err
	}
	return w.Handler.CompleteBatch(ctx, batchId)
}

func bindPathUUID(ctx echo.Context, name string) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return id, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return id, nil
}

// EchoRouter is satisfied by both *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds every route of openapi.yml to router.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers the routes with baseURL prepended.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{Handler: si}

	router.GET(baseURL+"/api/v1/statuses", wrapper.GetStatuses)
	router.POST(baseURL+"/api/v1/orders", wrapper.CreateOrder)
	router.POST(baseURL+"/api/v1/orders/:orderId/transitions", wrapper.TransitionOrderStatus)
	router.POST(baseURL+"/api/v1/orders/:orderId/arrival", wrapper.RecordArrival)
	router.POST(baseURL+"/api/v1/orders/:orderId/sorting/complete", wrapper.CompleteSorting)
	router.GET(baseURL+"/api/v1/orders/:orderId/sorting-window", wrapper.GetSortingWindow)
	router.POST(baseURL+"/api/v1/orders/:orderId/delivery-time/validate", wrapper.ValidateDeliveryTime)
	router.POST(baseURL+"/api/v1/delivery-fees/quote", wrapper.QuoteDeliveryFee)
	router.POST(baseURL+"/api/v1/fee-rules", wrapper.CreateFeeRule)
	router.POST(baseURL+"/api/v1/branches", wrapper.CreateBranch)
	router.GET(baseURL+"/api/v1/branches/:branchId/orders", wrapper.ListBranchOrders)
	router.GET(baseURL+"/api/v1/branches/:branchId/pipeline", wrapper.GetPipelineStatistics)
	router.GET(baseURL+"/api/v1/branches/:branchId/sorting-metrics", wrapper.GetSortingMetrics)
	router.GET(baseURL+"/api/v1/drivers", wrapper.GetDrivers)
	router.POST(baseURL+"/api/v1/drivers", wrapper.CreateDriver)
	router.PUT(baseURL+"/api/v1/drivers/:driverId/availability", wrapper.SetDriverAvailability)
	router.POST(baseURL+"/api/v1/batches", wrapper.CreateBatch)
	router.PUT(baseURL+"/api/v1/batches/:batchId/driver", wrapper.AssignDriver)
	router.POST(baseURL+"/api/v1/batches/:batchId/driver/auto", wrapper.AutoAssignDriver)
	router.POST(baseURL+"/api/v1/batches/:batchId/route", wrapper.OptimizeBatchRoute)
	router.POST(baseURL+"/api/v1/batches/:batchId/complete", wrapper.CompleteBatch)
}
