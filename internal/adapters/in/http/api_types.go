package http

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

// Request and response bodies of openapi.yml. Money travels as a decimal
// string; ids as canonical uuid text.

// Error is the body of every non-2xx response.
type Error struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Created struct {
	Id openapi_types.UUID `json:"id"`
}

type StatusInfo struct {
	Status               string   `json:"status"`
	Position             int      `json:"position"`
	Successors           []string `json:"successors"`
	Terminal             bool     `json:"terminal"`
	NotificationTemplate string   `json:"notificationTemplate,omitempty"`
}

type DeliveryAddress struct {
	Street   string       `json:"street"`
	Location *Coordinates `json:"location,omitempty"`
}

type NewOrder struct {
	BranchId            openapi_types.UUID `json:"branchId"`
	CustomerName        string             `json:"customerName"`
	CustomerPhone       string             `json:"customerPhone,omitempty"`
	CollectionMethod    string             `json:"collectionMethod"`
	ReturnMethod        string             `json:"returnMethod"`
	DeliveryAddress     *DeliveryAddress   `json:"deliveryAddress,omitempty"`
	TotalAmount         decimal.Decimal    `json:"totalAmount"`
	EstimatedCompletion time.Time          `json:"estimatedCompletion"`
	ActorId             string             `json:"actorId"`
}

type TransitionRequest struct {
	Status  string `json:"status"`
	ActorId string `json:"actorId"`
}

type HistoryEntry struct {
	Status  string    `json:"status"`
	At      time.Time `json:"at"`
	ActorId string    `json:"actorId"`
}

type TransitionResult struct {
	OrderId              openapi_types.UUID `json:"orderId"`
	From                 string             `json:"from"`
	To                   string             `json:"to"`
	NotificationTemplate string             `json:"notificationTemplate,omitempty"`
	History              []HistoryEntry     `json:"history"`
}

type ArrivalRequest struct {
	BranchId openapi_types.UUID `json:"branchId"`
}

type ArrivalResult struct {
	EarliestReturnTime time.Time `json:"earliestReturnTime"`
}

type SortingWindow struct {
	OrderId            openapi_types.UUID `json:"orderId"`
	BranchId           openapi_types.UUID `json:"branchId"`
	WindowHours        float64            `json:"windowHours"`
	Arrived            bool               `json:"arrived"`
	ArrivedAt          *time.Time         `json:"arrivedAt"`
	EarliestReturnTime time.Time          `json:"earliestReturnTime"`
	SortingCompleted   bool               `json:"sortingCompleted"`
	SortingCompletedAt *time.Time         `json:"sortingCompletedAt"`
	RemainingMinutes   int                `json:"remainingMinutes"`
}

type DeliveryTimeRequest struct {
	ProposedTime time.Time `json:"proposedTime"`
}

type DeliveryTimeValidation struct {
	Valid        bool      `json:"valid"`
	EarliestTime time.Time `json:"earliestTime"`
}

type FeeQuoteRequest struct {
	BranchId        openapi_types.UUID `json:"branchId"`
	OrderAmount     decimal.Decimal    `json:"orderAmount"`
	CustomerSegment string             `json:"customerSegment,omitempty"`
	DistanceKm      *float64           `json:"distanceKm,omitempty"`
}

type AppliedRule struct {
	Id       openapi_types.UUID `json:"id"`
	Name     string             `json:"name"`
	Priority int                `json:"priority"`
}

type FeeQuote struct {
	Fee         decimal.Decimal `json:"fee"`
	IsFree      bool            `json:"isFree"`
	FeeType     string          `json:"feeType"`
	Reason      string          `json:"reason"`
	RuleApplied *AppliedRule    `json:"ruleApplied"`
}

type FeeRuleConditions struct {
	MinOrderAmount   *decimal.Decimal `json:"minOrderAmount,omitempty"`
	CustomerSegments []string         `json:"customerSegments,omitempty"`
	MaxDistanceKm    *float64         `json:"maxDistanceKm,omitempty"`
	DaysOfWeek       []int            `json:"daysOfWeek,omitempty"`
	StartTime        *string          `json:"startTime,omitempty"`
	EndTime          *string          `json:"endTime,omitempty"`
}

type FeeRuleCalculation struct {
	Type   string           `json:"type"`
	Value  decimal.Decimal  `json:"value"`
	MinFee *decimal.Decimal `json:"minFee,omitempty"`
	MaxFee *decimal.Decimal `json:"maxFee,omitempty"`
}

type NewFeeRule struct {
	Name        string              `json:"name"`
	BranchId    *openapi_types.UUID `json:"branchId,omitempty"`
	Priority    int                 `json:"priority"`
	Active      bool                `json:"active"`
	ValidFrom   time.Time           `json:"validFrom"`
	ValidUntil  *time.Time          `json:"validUntil,omitempty"`
	Conditions  *FeeRuleConditions  `json:"conditions,omitempty"`
	Calculation FeeRuleCalculation  `json:"calculation"`
}

type NewBranch struct {
	Name               string              `json:"name"`
	Type               string              `json:"type"`
	MainStoreId        *openapi_types.UUID `json:"mainStoreId,omitempty"`
	SortingWindowHours *int                `json:"sortingWindowHours,omitempty"`
	Location           *Coordinates        `json:"location,omitempty"`
}

type NewDriver struct {
	Name     string             `json:"name"`
	Phone    string             `json:"phone"`
	BranchId openapi_types.UUID `json:"branchId"`
}

type Driver struct {
	Id            openapi_types.UUID `json:"id"`
	Name          string             `json:"name"`
	Phone         string             `json:"phone"`
	BranchId      openapi_types.UUID `json:"branchId"`
	Available     bool               `json:"available"`
	ActiveBatches int                `json:"activeBatches"`
}

// GetDriversParams are the query parameters of GET /drivers.
type GetDriversParams struct {
	BranchId  *openapi_types.UUID `form:"branchId" json:"branchId,omitempty"`
	Available *bool               `form:"available" json:"available,omitempty"`
}

type DriverAvailability struct {
	Available bool `json:"available"`
}

type NewBatch struct {
	OriginBranchId      openapi_types.UUID   `json:"originBranchId"`
	DestinationBranchId openapi_types.UUID   `json:"destinationBranchId"`
	OrderIds            []openapi_types.UUID `json:"orderIds"`
	CreatedBy           string               `json:"createdBy"`
}

type Batch struct {
	Id                  openapi_types.UUID   `json:"id"`
	OriginBranchId      openapi_types.UUID   `json:"originBranchId"`
	DestinationBranchId openapi_types.UUID   `json:"destinationBranchId"`
	OrderIds            []openapi_types.UUID `json:"orderIds"`
	DriverId            *openapi_types.UUID  `json:"driverId"`
	Status              string               `json:"status"`
	CreatedBy           string               `json:"createdBy"`
	CreatedAt           time.Time            `json:"createdAt"`
}

type DriverAssignment struct {
	DriverId openapi_types.UUID `json:"driverId"`
}

type AutoAssignment struct {
	DriverId *openapi_types.UUID `json:"driverId"`
}

type RouteRequest struct {
	ReturnToStart bool `json:"returnToStart"`
}

type RouteStop struct {
	Sequence      int                `json:"sequence"`
	OrderId       openapi_types.UUID `json:"orderId"`
	Address       string             `json:"address"`
	CustomerName  string             `json:"customerName,omitempty"`
	CustomerPhone string             `json:"customerPhone,omitempty"`
	Location      Coordinates        `json:"location"`
}

type RoutePlan struct {
	Stops                []RouteStop `json:"stops"`
	TotalDistanceKm      float64     `json:"totalDistanceKm"`
	TotalDurationMinutes float64     `json:"totalDurationMinutes"`
	ReturnToStart        bool        `json:"returnToStart"`
	Optimized            bool        `json:"optimized"`
}

// ListBranchOrdersParams are the query parameters of GET /branches/{branchId}/orders.
type ListBranchOrdersParams struct {
	Status *[]string `form:"status,omitempty" json:"status,omitempty"`
}

type BranchOrder struct {
	Id                  openapi_types.UUID `json:"id"`
	CustomerName        string             `json:"customerName"`
	Status              string             `json:"status"`
	ReturnMethod        string             `json:"returnMethod"`
	TotalAmount         decimal.Decimal    `json:"totalAmount"`
	CreatedAt           time.Time          `json:"createdAt"`
	EstimatedCompletion time.Time          `json:"estimatedCompletion"`
	UrgencyScore        int                `json:"urgencyScore"`
	DwellMinutes        float64            `json:"dwellMinutes"`
	Overdue             bool               `json:"overdue"`
}

type StageAverage struct {
	Status         string  `json:"status"`
	AverageMinutes float64 `json:"averageMinutes"`
	Samples        int     `json:"samples"`
}

type PipelineStatistics struct {
	Total                    int             `json:"total"`
	CountsByStatus           map[string]int  `json:"countsByStatus"`
	TodayOrders              int             `json:"todayOrders"`
	TodayCompleted           int             `json:"todayCompleted"`
	TodayRevenue             decimal.Decimal `json:"todayRevenue"`
	AverageProcessingMinutes float64         `json:"averageProcessingMinutes"`
	Bottlenecks              []StageAverage  `json:"bottlenecks"`
	OverdueCount             int             `json:"overdueCount"`
}

type SortingMetrics struct {
	Total                 int     `json:"total"`
	PendingSort           int     `json:"pendingSort"`
	ExpiringSoon          int     `json:"expiringSoon"`
	ReadyForScheduling    int     `json:"readyForScheduling"`
	AverageSortingMinutes float64 `json:"averageSortingMinutes"`
}
