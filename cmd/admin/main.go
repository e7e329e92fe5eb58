package main

import (
	"courtly/internal/bookings/events"
	bookingshandler "courtly/internal/bookings/handler"
	bookingsrepo "courtly/internal/bookings/repository"
	bookingsservice "courtly/internal/bookings/service"
	bookingsvalidator "courtly/internal/bookings/validator"
	courtshandler "courtly/internal/courts/handler"
	courtsrepo "courtly/internal/courts/repository"
	courtsservice "courtly/internal/courts/service"
	courtsvalidator "courtly/internal/courts/validator"
	tenantshandler "courtly/internal/tenants/handler"
	tenantsrepo "courtly/internal/tenants/repository"
	tenantsservice "courtly/internal/tenants/service"
	tenantsvalidator "courtly/internal/tenants/validator"
	"courtly/pkg/app"
	"courtly/pkg/config"
	"courtly/pkg/contracts"
	"courtly/pkg/kafka"
)

const ServiceName = "courtly-admin"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	cfg.SetRedis()
	defer cfg.Client.GracefulShutdown(cfg.Log, cfg.ShutdownTimeout)

	cfg.Log.Info("Starting admin service")

	publisher := initPublisher(cfg)
	defer func() {
		if err := publisher.Close(); err != nil {
			cfg.Log.Error("Failed to close booking publisher", "error", err)
		}
	}()

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(initHandlers(cfg, publisher))
	serverApp.Run()
}

func initPublisher(cfg *config.Config) events.Publisher {
	if !cfg.EventsEnabled {
		cfg.Log.Info("Booking events disabled")
		return events.NoopPublisher{}
	}

	kafkaCfg, err := kafka.LoadConfig()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}

	publisher, err := events.NewKafkaPublisher(kafkaCfg, cfg.BookingEventsTopic, &kafka.Metrics{}, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create booking publisher", "error", err)
	}
	return publisher
}

func initHandlers(cfg *config.Config, publisher events.Publisher) contracts.Handlers {
	bookingRepo := bookingsrepo.NewMongoBookingRepository(cfg)

	tenantService := tenantsservice.NewTenantService(
		tenantsrepo.NewMongoTenantRepository(cfg),
		bookingRepo,
		tenantsvalidator.NewTenantValidator(cfg.Log),
		cfg,
	)
	courtService := courtsservice.NewCourtService(
		courtsrepo.NewMongoCourtRepository(cfg),
		bookingRepo,
		courtsvalidator.NewCourtValidator(cfg.Log),
		cfg,
	)
	bookingService := bookingsservice.NewBookingService(
		bookingRepo,
		bookingsrepo.NewBookingLockRepository(cfg),
		tenantService,
		courtService,
		publisher,
		bookingsvalidator.NewBookingValidator(cfg.Log),
		cfg,
	)

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)
	return contracts.Handlers{
		tenantshandler.NewTenantHandler(tenantService, cfg.Log),
		courtshandler.NewCourtHandler(courtService, cfg.Log),
		bookingshandler.NewBookingHandler(bookingService, cfg.Log),
	}
}
