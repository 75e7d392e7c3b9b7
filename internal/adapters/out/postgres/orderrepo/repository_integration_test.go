package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"laundry/internal/adapters/out/postgres/orderrepo"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for OrderRepository
// using PostgreSQL containers to verify database persistence behavior.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
	graph      order.Graph
	start      time.Time
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.StatusHistoryDTO{}))

	suite.graph = order.NewGraph()
	suite.start = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_status_history").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ThenGet_RoundTripsAggregate() {
	ctx := context.Background()
	branchID := kernel.NewUUID()
	original := suite.newDeliveryOrder(branchID)

	err := suite.repository.Add(ctx, original)
	suite.Require().NoError(err)
	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", original.ID(), original)

	retrieved, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.Equal(original.ID(), retrieved.ID())
	suite.Equal(branchID, retrieved.BranchID())
	suite.Equal(order.Received, retrieved.Status())
	suite.Equal("Amina", retrieved.Customer().Name)
	suite.Equal(order.ReturnDelivery, retrieved.ReturnMethod())
	suite.True(decimal.NewFromInt(1500).Equal(retrieved.TotalAmount()))
	suite.Require().NotNil(retrieved.DeliveryAddress())
	suite.Equal("12 Ngong Rd", retrieved.DeliveryAddress().Street)
	suite.True(retrieved.DeliveryAddress().IsResolvable())
	suite.Require().Len(retrieved.History(), 1)
	suite.True(suite.start.Equal(retrieved.History()[0].Timestamp()))
	suite.Equal("clerk-1", retrieved.History()[0].ActorID())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_CollectOrderWithoutAddress() {
	ctx := context.Background()
	o, err := order.NewOrder(order.NewOrderParams{
		ID:                  kernel.NewUUID(),
		BranchID:            kernel.NewUUID(),
		Customer:            order.Customer{Name: "Brian"},
		CollectionMethod:    order.CollectionPickup,
		ReturnMethod:        order.ReturnCollect,
		TotalAmount:         decimal.NewFromInt(700),
		CreatedAt:           suite.start,
		EstimatedCompletion: suite.start.Add(24 * time.Hour),
	})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	retrieved, err := suite.repository.Get(ctx, o.ID())

	suite.Require().NoError(err)
	suite.Nil(retrieved.DeliveryAddress())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	retrieved, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Nil(retrieved)
	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsSortingWindow() {
	ctx := context.Background()
	o := suite.newDeliveryOrder(kernel.NewUUID())
	suite.Require().NoError(suite.repository.Add(ctx, o))

	processing := kernel.NewUUID()
	arrived := suite.start.Add(time.Hour)
	suite.Require().NoError(o.RecordArrival(processing, arrived, arrived.Add(6*time.Hour)))
	suite.Require().NoError(o.CompleteSorting(arrived.Add(2 * time.Hour)))

	err := suite.repository.Update(ctx, o)
	suite.Require().NoError(err)

	retrieved, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(processing, retrieved.ProcessingBranchID())
	suite.Require().NotNil(retrieved.ArrivedAt())
	suite.True(arrived.Equal(*retrieved.ArrivedAt()))
	suite.Require().NotNil(retrieved.EarliestReturnTime())
	suite.True(arrived.Add(6 * time.Hour).Equal(*retrieved.EarliestReturnTime()))
	suite.True(retrieved.SortingCompleted())
	suite.Equal(order.Received, retrieved.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsNotFoundError() {
	o := suite.newDeliveryOrder(kernel.NewUUID())

	err := suite.repository.Update(context.Background(), o)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateStatus_AppendsLedgerEntry() {
	ctx := context.Background()
	o := suite.newDeliveryOrder(kernel.NewUUID())
	suite.Require().NoError(suite.repository.Add(ctx, o))

	_, err := o.AppendTransition(suite.graph, order.Queued, "staff-7", suite.start.Add(30*time.Minute))
	suite.Require().NoError(err)

	err = suite.repository.UpdateStatus(ctx, o, order.Received, o.LastEntry())
	suite.Require().NoError(err)

	retrieved, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Queued, retrieved.Status())
	suite.Require().Len(retrieved.History(), 2)
	suite.Equal(order.Queued, retrieved.LastEntry().Status())
	suite.Equal("staff-7", retrieved.LastEntry().ActorID())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateStatus_StaleExpectedStatus_ReturnsVersionError() {
	ctx := context.Background()
	o := suite.newDeliveryOrder(kernel.NewUUID())
	suite.Require().NoError(suite.repository.Add(ctx, o))

	// Two writers load the same order and both try to move it on
	first, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	_, err = first.AppendTransition(suite.graph, order.Queued, "staff-1", suite.start.Add(time.Minute))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.UpdateStatus(ctx, first, order.Received, first.LastEntry()))

	_, err = second.AppendTransition(suite.graph, order.Queued, "staff-2", suite.start.Add(2*time.Minute))
	suite.Require().NoError(err)
	err = suite.repository.UpdateStatus(ctx, second, order.Received, second.LastEntry())

	suite.Require().ErrorIs(err, errs.ErrVersionIsInvalid)

	retrieved, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Len(retrieved.History(), 2)
	suite.Equal("staff-1", retrieved.LastEntry().ActorID())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetMany_SkipsMissingAndKeepsRequestedOrder() {
	ctx := context.Background()
	branchID := kernel.NewUUID()
	a := suite.newDeliveryOrder(branchID)
	b := suite.newDeliveryOrder(branchID)
	suite.Require().NoError(suite.repository.Add(ctx, a))
	suite.Require().NoError(suite.repository.Add(ctx, b))

	orders, err := suite.repository.GetMany(ctx, []kernel.UUID{b.ID(), kernel.NewUUID(), a.ID()})

	suite.Require().NoError(err)
	suite.Require().Len(orders, 2)
	suite.Equal(b.ID(), orders[0].ID())
	suite.Equal(a.ID(), orders[1].ID())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetMany_EmptyIDs_ReturnsEmptySlice() {
	orders, err := suite.repository.GetMany(context.Background(), nil)

	suite.Require().NoError(err)
	suite.NotNil(orders)
	suite.Empty(orders)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestListByBranchAndStatus_FiltersByBranchAndStatus() {
	ctx := context.Background()
	satellite, main := kernel.NewUUID(), kernel.NewUUID()

	received := suite.newDeliveryOrder(satellite)
	suite.Require().NoError(suite.repository.Add(ctx, received))

	queued := suite.newDeliveryOrder(satellite)
	suite.Require().NoError(suite.repository.Add(ctx, queued))
	_, err := queued.AppendTransition(suite.graph, order.Queued, "staff-1", suite.start.Add(time.Hour))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.UpdateStatus(ctx, queued, order.Received, queued.LastEntry()))

	forwarded := suite.newDeliveryOrder(satellite)
	suite.Require().NoError(suite.repository.Add(ctx, forwarded))
	suite.Require().NoError(forwarded.RecordArrival(main, suite.start.Add(time.Hour), suite.start.Add(7*time.Hour)))
	suite.Require().NoError(suite.repository.Update(ctx, forwarded))

	other := suite.newDeliveryOrder(kernel.NewUUID())
	suite.Require().NoError(suite.repository.Add(ctx, other))

	all, err := suite.repository.ListByBranchAndStatus(ctx, satellite, nil)
	suite.Require().NoError(err)
	suite.Len(all, 3)

	onlyQueued, err := suite.repository.ListByBranchAndStatus(ctx, satellite, []order.Status{order.Queued})
	suite.Require().NoError(err)
	suite.Require().Len(onlyQueued, 1)
	suite.Equal(queued.ID(), onlyQueued[0].ID())
	suite.Len(onlyQueued[0].History(), 2)

	atMain, err := suite.repository.ListByBranchAndStatus(ctx, main, []order.Status{order.Received, order.Queued})
	suite.Require().NoError(err)
	suite.Require().Len(atMain, 1)
	suite.Equal(forwarded.ID(), atMain[0].ID())
}

func (suite *OrderRepositoryIntegrationTestSuite) newDeliveryOrder(branchID kernel.UUID) *order.Order {
	c, err := kernel.NewCoordinates(-1.3001, 36.7833)
	suite.Require().NoError(err)

	o, err := order.NewOrder(order.NewOrderParams{
		ID:                  kernel.NewUUID(),
		BranchID:            branchID,
		Customer:            order.Customer{Name: "Amina", Phone: "+254700000001"},
		CollectionMethod:    order.CollectionDropOff,
		ReturnMethod:        order.ReturnDelivery,
		DeliveryAddress:     &order.Address{Street: "12 Ngong Rd", Coordinates: &c},
		TotalAmount:         decimal.NewFromInt(1500),
		CreatedAt:           suite.start,
		EstimatedCompletion: suite.start.Add(48 * time.Hour),
		ActorID:             "clerk-1",
	})
	suite.Require().NoError(err)
	return o
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
