package queries

import (
	"context"

	"laundry/internal/core/domain/services"
)

// GetPipelineStatisticsQueryHandler aggregates every order of a branch.
type GetPipelineStatisticsQueryHandler struct {
	orders OrderReader
}

func NewGetPipelineStatisticsQueryHandler(orders OrderReader) GetPipelineStatisticsQueryHandler {
	return GetPipelineStatisticsQueryHandler{orders: orders}
}

func (h GetPipelineStatisticsQueryHandler) Handle(
	ctx context.Context,
	query GetPipelineStatisticsQuery,
) (services.PipelineStatistics, error) {
	if err := query.Validate(); err != nil {
		return services.PipelineStatistics{}, err
	}

	orders, err := h.orders.ListByBranchAndStatus(ctx, query.BranchID(), nil)
	if err != nil {
		return services.PipelineStatistics{}, err
	}

	return services.NewLifecycleAnalytics(query.At()).PipelineStatistics(orders), nil
}

// GetSortingMetricsQueryHandler counts sorting window states at a branch.
type GetSortingMetricsQueryHandler struct {
	orders OrderReader
	window services.SortingWindow
}

func NewGetSortingMetricsQueryHandler(orders OrderReader, window services.SortingWindow) GetSortingMetricsQueryHandler {
	return GetSortingMetricsQueryHandler{orders: orders, window: window}
}

func (h GetSortingMetricsQueryHandler) Handle(
	ctx context.Context,
	query GetSortingMetricsQuery,
) (services.SortingMetrics, error) {
	if err := query.Validate(); err != nil {
		return services.SortingMetrics{}, err
	}

	orders, err := h.orders.ListByBranchAndStatus(ctx, query.BranchID(), nil)
	if err != nil {
		return services.SortingMetrics{}, err
	}

	return h.window.FleetMetrics(orders, query.At()), nil
}
