package queries

import (
	"context"

	"laundry/internal/core/domain/model/order"
)

// GetStatusesQueryHandler answers from the configured transition table; it
// touches no storage.
type GetStatusesQueryHandler struct {
	graph order.Graph
}

// NewGetStatusesQueryHandler creates the handler for graph.
func NewGetStatusesQueryHandler(graph order.Graph) GetStatusesQueryHandler {
	return GetStatusesQueryHandler{graph: graph}
}

// Handle returns the statuses in forward order.
func (h GetStatusesQueryHandler) Handle(_ context.Context, query GetStatusesQuery) ([]GetStatusesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	all := order.AllStatuses()
	result := make([]GetStatusesQueryResponse, 0, len(all))
	for i, s := range all {
		template, _ := s.CustomerNotification()
		result = append(result, GetStatusesQueryResponse{
			Status:               s,
			Position:             i,
			Successors:           h.graph.Successors(s),
			Terminal:             s.IsTerminal(),
			NotificationTemplate: template,
		})
	}

	return result, nil
}
