package cmd

import (
	"github.com/TienDattttt/shoppi-sub004/internal/adapters/in/events"
	httpserver "github.com/TienDattttt/shoppi-sub004/internal/adapters/in/http"
	"github.com/TienDattttt/shoppi-sub004/internal/adapters/out/notifier"
	"github.com/TienDattttt/shoppi-sub004/internal/adapters/out/platform"
	"github.com/TienDattttt/shoppi-sub004/internal/adapters/out/postgres"
	"github.com/TienDattttt/shoppi-sub004/internal/adapters/out/postgres/codledgerrepo"
	"github.com/TienDattttt/shoppi-sub004/internal/adapters/out/postgres/notificationrepo"
	"github.com/TienDattttt/shoppi-sub004/internal/adapters/out/postgres/orderrepo"
	"github.com/TienDattttt/shoppi-sub004/internal/adapters/out/postgres/shipmentrepo"
	"github.com/TienDattttt/shoppi-sub004/internal/adapters/out/postgres/suborderrepo"
	"github.com/TienDattttt/shoppi-sub004/internal/adapters/out/rabbit"
	"github.com/TienDattttt/shoppi-sub004/internal/consumers"
	"github.com/TienDattttt/shoppi-sub004/internal/core/application/usecases/commands"
	"github.com/TienDattttt/shoppi-sub004/internal/core/application/usecases/queries"
	"github.com/TienDattttt/shoppi-sub004/internal/jobs"
	"github.com/TienDattttt/shoppi-sub004/internal/pkg/logger"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters into the application's command handlers,
// consumers, jobs and the HTTP surface.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	broker     *rabbit.Client
	publisher  *rabbit.Publisher
	notifier   *notifier.Coordinator
	platform   *platform.Client
	log        logger.Logger
}

// NewCompositionRoot creates the composition root from the already-opened
// infrastructure handles.
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	broker *rabbit.Client,
	platformClient *platform.Client,
	log logger.Logger,
) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		broker:     broker,
		publisher:  rabbit.NewPublisher(broker, log),
		notifier:   notifier.NewCoordinator(broker, log),
		platform:   platformClient,
		log:        log,
	}
}

// MigrateDB creates or updates the database schema.
func (cr CompositionRoot) MigrateDB() error {
	return cr.gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&suborderrepo.SubOrderDTO{},
		&shipmentrepo.ShipmentDTO{},
		&codledgerrepo.CODLedgerDTO{},
		&notificationrepo.NotificationDTO{},
	)
}

func (cr CompositionRoot) CreateConfirmPaymentCommandHandler() commands.ConfirmPaymentCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return cr.uowFactory.Create()
	})
	return commands.NewConfirmPaymentCommandHandler(f, cr.publisher, cr.notifier)
}

func (cr CompositionRoot) CreateFailPaymentCommandHandler() commands.FailPaymentCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return cr.uowFactory.Create()
	})
	return commands.NewFailPaymentCommandHandler(f, cr.platform, cr.notifier)
}

func (cr CompositionRoot) CreateRefundPaymentCommandHandler() commands.RefundPaymentCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return cr.uowFactory.Create()
	})
	return commands.NewRefundPaymentCommandHandler(f, cr.notifier)
}

func (cr CompositionRoot) CreateCreateShipmentCommandHandler() commands.CreateShipmentCommandHandler {
	return commands.NewCreateShipmentCommandHandler(
		cr.shipmentUoWFactory(), cr.platform, cr.platform, cr.publisher, cr.notifier,
	)
}

func (cr CompositionRoot) CreateApplyShipmentStatusCommandHandler() commands.ApplyShipmentStatusCommandHandler {
	return commands.NewApplyShipmentStatusCommandHandler(cr.shipmentUoWFactory(), cr.notifier, nil)
}

func (cr CompositionRoot) CreateCompleteDeliveryCommandHandler() commands.CompleteDeliveryCommandHandler {
	var f commands.SettlementUoWFactory = FuncSettlementUoWFactory(func() commands.SettlementUoW {
		return cr.uowFactory.Create()
	})
	return commands.NewCompleteDeliveryCommandHandler(f, cr.notifier, cr.config.RatingPromptDelay, nil)
}

func (cr CompositionRoot) CreateFailDeliveryCommandHandler() commands.FailDeliveryCommandHandler {
	return commands.NewFailDeliveryCommandHandler(cr.shipmentUoWFactory(), cr.notifier, nil)
}

func (cr CompositionRoot) CreateReassignShipperCommandHandler() commands.ReassignShipperCommandHandler {
	return commands.NewReassignShipperCommandHandler(
		cr.shipmentUoWFactory(), cr.platform, cr.publisher, cr.notifier,
	)
}

func (cr CompositionRoot) CreateFlagOfflineShipperCommandHandler() commands.FlagOfflineShipperCommandHandler {
	return commands.NewFlagOfflineShipperCommandHandler(cr.shipmentUoWFactory(), cr.notifier)
}

func (cr CompositionRoot) CreateDispatchRedeliveriesCommandHandler() commands.DispatchRedeliveriesCommandHandler {
	return commands.NewDispatchRedeliveriesCommandHandler(
		cr.shipmentUoWFactory(), cr.publisher, cr.notifier, nil,
	)
}

func (cr CompositionRoot) CreateDispatchScheduledNotificationsCommandHandler() commands.DispatchScheduledNotificationsCommandHandler {
	var f commands.NotificationUoWFactory = FuncNotificationUoWFactory(func() commands.NotificationUoW {
		return cr.uowFactory.Create()
	})
	return commands.NewDispatchScheduledNotificationsCommandHandler(f, cr.notifier, nil)
}

func (cr CompositionRoot) CreateGetOrderFulfillmentQueryHandler() queries.GetOrderFulfillmentQueryHandler {
	return queries.NewGetOrderFulfillmentQueryHandler(cr.gormDB)
}

func (cr CompositionRoot) CreateGetShipperCODBalanceQueryHandler() queries.GetShipperCODBalanceQueryHandler {
	return queries.NewGetShipperCODBalanceQueryHandler(cr.gormDB)
}

// CreateConsumerManager builds both broker consumers and registers them.
func (cr CompositionRoot) CreateConsumerManager() *consumers.Manager {
	manager := consumers.NewManager(cr.log)

	shipmentHandlers := events.ShipmentHandlers{
		CreateShipment:   cr.CreateCreateShipmentCommandHandler(),
		ApplyStatus:      cr.CreateApplyShipmentStatusCommandHandler(),
		CompleteDelivery: cr.CreateCompleteDeliveryCommandHandler(),
		FailDelivery:     cr.CreateFailDeliveryCommandHandler(),
		ReassignShipper:  cr.CreateReassignShipperCommandHandler(),
		FlagOffline:      cr.CreateFlagOfflineShipperCommandHandler(),
	}
	manager.Register(events.NewShipmentConsumer(
		cr.broker, shipmentHandlers, cr.shipmentUoWFactory(), cr.notifier,
		cr.config.HandlerTimeout, cr.log,
	))

	paymentHandlers := events.PaymentHandlers{
		ConfirmPayment: cr.CreateConfirmPaymentCommandHandler(),
		FailPayment:    cr.CreateFailPaymentCommandHandler(),
		RefundPayment:  cr.CreateRefundPaymentCommandHandler(),
	}
	manager.Register(events.NewPaymentConsumer(
		cr.broker, paymentHandlers, cr.config.HandlerTimeout, cr.log,
	))

	return manager
}

// CreateJobManager builds the cron job manager.
func (cr CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		cr.CreateDispatchRedeliveriesCommandHandler(),
		cr.CreateDispatchScheduledNotificationsCommandHandler(),
		cr.log,
	)
}

// CreateHTTPServer builds the HTTP surface.
func (cr CompositionRoot) CreateHTTPServer(manager *consumers.Manager) *httpserver.Server {
	return httpserver.NewServer(
		manager,
		cr.CreateGetOrderFulfillmentQueryHandler(),
		cr.CreateGetShipperCODBalanceQueryHandler(),
	)
}

func (cr CompositionRoot) shipmentUoWFactory() commands.ShipmentUoWFactory {
	return FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return cr.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}

type FuncSettlementUoWFactory func() commands.SettlementUoW

func (f FuncSettlementUoWFactory) Create() commands.SettlementUoW {
	return f()
}

type FuncNotificationUoWFactory func() commands.NotificationUoW

func (f FuncNotificationUoWFactory) Create() commands.NotificationUoW {
	return f()
}
