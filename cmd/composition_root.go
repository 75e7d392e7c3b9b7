package cmd

import (
	"fmt"
	"log/slog"
	"time"

	apihttp "laundry/internal/adapters/in/http"
	"laundry/internal/adapters/out/postgres"
	"laundry/internal/adapters/out/postgres/feerulerepo"
	"laundry/internal/adapters/out/routing"
	"laundry/internal/adapters/out/yamlrules"
	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/application/usecases/queries"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/services"
	"laundry/internal/core/ports"
	"laundry/internal/jobs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Integrations are the optional outbound adapters main connects. A nil field
// switches the feature off.
type Integrations struct {
	Locker    ports.OrderLocker
	Publisher ports.EventPublisher
}

type CompositionRoot struct {
	cfg          Config
	gormDB       *gorm.DB
	uowFactory   *postgres.GormUnitOfWorkFactory
	integrations Integrations
	logger       *slog.Logger

	graph     order.Graph
	window    services.SortingWindow
	feeEngine services.DeliveryFeeEngine
	feeRules  queries.FeeRuleReader
	feeStore  *feerulerepo.GormFeeRuleRepository
	optimizer ports.RouteOptimizer
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, integrations Integrations, logger *slog.Logger) (*CompositionRoot, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	defaultFee, err := decimal.NewFromString(cfg.DefaultDeliveryFee)
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_DELIVERY_FEE %q: %w", cfg.DefaultDeliveryFee, err)
	}

	var graphOpts []order.GraphOption
	if cfg.AllowRewash {
		graphOpts = append(graphOpts, order.WithRewash())
	}

	feeStore := feerulerepo.NewGormFeeRuleRepository(gormDB)
	var feeRules queries.FeeRuleReader = feeStore
	if cfg.FeeRulesFile != "" {
		fileRules, loadErr := yamlrules.Load(cfg.FeeRulesFile)
		if loadErr != nil {
			return nil, loadErr
		}
		feeRules = fileRules
		logger.Info("Fee rules loaded from file", "path", cfg.FeeRulesFile)
	}

	return &CompositionRoot{
		cfg:          cfg,
		gormDB:       gormDB,
		uowFactory:   postgres.NewGormUnitOfWorkFactory(gormDB),
		integrations: integrations,
		logger:       logger,
		graph:        order.NewGraph(graphOpts...),
		window: services.NewSortingWindow(
			time.Duration(cfg.DefaultSortingWindowHours)*time.Hour,
			time.Duration(cfg.ExpiringSoonHours)*time.Hour,
		),
		feeEngine: services.NewDeliveryFeeEngine(services.FeeEngineConfig{
			DefaultFee:        defaultFee,
			DefaultDistanceKm: cfg.DefaultDistanceKm,
			Location:          loc,
		}),
		feeRules: feeRules,
		feeStore: feeStore,
		optimizer: routing.NewOSRMClient(routing.Config{
			BaseURL: cfg.RoutingBaseURL,
			Profile: cfg.RoutingProfile,
			APIKey:  cfg.RoutingAPIKey,
			Timeout: cfg.RoutingTimeout,
		}, nil),
	}, nil
}

// HTTPHandlers assembles every use case the HTTP server exposes.
func (c *CompositionRoot) HTTPHandlers() apihttp.Handlers {
	return apihttp.Handlers{
		CreateOrder:           c.CreateCreateOrderCommandHandler(),
		TransitionOrderStatus: c.CreateTransitionOrderStatusCommandHandler(),
		RecordArrival:         c.CreateRecordArrivalCommandHandler(),
		CompleteSorting:       c.CreateCompleteSortingCommandHandler(),
		CreateFeeRule:         commands.NewCreateFeeRuleCommandHandler(c.feeStore),
		CreateBranch:          c.CreateCreateBranchCommandHandler(),
		CreateDriver:          c.CreateCreateDriverCommandHandler(),
		SetDriverAvailability: c.CreateSetDriverAvailabilityCommandHandler(),
		CreateBatch:           commands.NewCreateBatchCommandHandler(c.batchUoWFactory()),
		AssignDriver:          commands.NewAssignDriverCommandHandler(c.batchUoWFactory()),
		AutoAssignDriver:      commands.NewAutoAssignDriverCommandHandler(c.batchUoWFactory()),
		CompleteBatch:         commands.NewCompleteBatchCommandHandler(c.batchUoWFactory()),
		OptimizeBatchRoute: commands.NewOptimizeBatchRouteCommandHandler(
			c.batchUoWFactory(),
			services.NewRoutePlanner(c.optimizer),
			c.logger.With("component", "route_optimization"),
		),

		GetStatuses:           queries.NewGetStatusesQueryHandler(c.graph),
		GetSortingWindow:      queries.NewGetSortingWindowQueryHandler(c.orderReader(), c.branchReader(), c.window),
		ValidateDeliveryTime:  queries.NewValidateDeliveryTimeQueryHandler(c.orderReader(), c.branchReader(), c.window),
		QuoteDeliveryFee:      queries.NewQuoteDeliveryFeeQueryHandler(c.feeRules, c.feeEngine),
		ListBranchOrders:      queries.NewListBranchOrdersQueryHandler(c.orderReader()),
		GetPipelineStatistics: queries.NewGetPipelineStatisticsQueryHandler(c.orderReader()),
		GetSortingMetrics:     c.CreateGetSortingMetricsQueryHandler(),
		GetDrivers:            queries.NewGetAllDriversQueryHandler(c.gormDB),
	}
}

// JobManager wires the background jobs.
func (c *CompositionRoot) JobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		commands.NewAssignPendingBatchesCommandHandler(c.batchUoWFactory()),
		c.uowFactory.Create().BranchRepository(),
		c.CreateGetSortingMetricsQueryHandler(),
		jobs.Schedules{
			BatchAssignment: c.cfg.BatchAssignmentCron,
			SortingReport:   c.cfg.SortingReportCron,
		},
		c.cfg.BatchAssignmentLimit,
		c.logger,
	)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() *commands.CreateOrderCommandHandler {
	h := commands.NewCreateOrderCommandHandler(c.orderUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateTransitionOrderStatusCommandHandler() *commands.TransitionOrderStatusCommandHandler {
	h := commands.NewTransitionOrderStatusCommandHandler(
		c.orderUoWFactory(),
		c.graph,
		c.integrations.Locker,
		c.integrations.Publisher,
		c.logger.With("component", "status_transitions"),
	)
	return &h
}

func (c *CompositionRoot) CreateRecordArrivalCommandHandler() *commands.RecordArrivalCommandHandler {
	h := commands.NewRecordArrivalCommandHandler(c.orderUoWFactory(), c.window)
	return &h
}

func (c *CompositionRoot) CreateCompleteSortingCommandHandler() *commands.CompleteSortingCommandHandler {
	h := commands.NewCompleteSortingCommandHandler(c.orderUoWFactory(), c.window)
	return &h
}

func (c *CompositionRoot) CreateCreateBranchCommandHandler() *commands.CreateBranchCommandHandler {
	var f commands.BranchUoWFactory = FuncBranchUoWFactory(func() commands.BranchUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewCreateBranchCommandHandler(f)
	return &h
}

func (c *CompositionRoot) CreateCreateDriverCommandHandler() *commands.CreateDriverCommandHandler {
	h := commands.NewCreateDriverCommandHandler(c.driverUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateSetDriverAvailabilityCommandHandler() *commands.SetDriverAvailabilityCommandHandler {
	h := commands.NewSetDriverAvailabilityCommandHandler(c.driverUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateGetSortingMetricsQueryHandler() queries.GetSortingMetricsQueryHandler {
	return queries.NewGetSortingMetricsQueryHandler(c.orderReader(), c.window)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) driverUoWFactory() commands.DriverUoWFactory {
	return FuncDriverUoWFactory(func() commands.DriverUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) batchUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

// Queries read through repositories of a unit of work that is never begun,
// so every call goes straight to the pool.
func (c *CompositionRoot) orderReader() queries.OrderReader {
	return c.uowFactory.Create().OrderRepository()
}

func (c *CompositionRoot) branchReader() queries.BranchReader {
	return c.uowFactory.Create().BranchRepository()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncBranchUoWFactory func() commands.BranchUoW

func (f FuncBranchUoWFactory) Create() commands.BranchUoW {
	return f()
}

type FuncDriverUoWFactory func() commands.DriverUoW

func (f FuncDriverUoWFactory) Create() commands.DriverUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
