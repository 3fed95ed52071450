package main

import (
	"context"
	"log"

	"tableside/config"
	httpapi "tableside/internal/api/http"
	"tableside/internal/cart"
	"tableside/internal/domain"
	"tableside/internal/service"
	"tableside/internal/storage"
)

const orderEventsTopic = "order-events"

func main() {
	var menuRepo service.MenuRepository
	var orderRepo service.OrderRepository
	var ranker service.SalesRanker

	switch driver := config.StoreDriver(); driver {
	case "postgres":
		db := config.MustInitPostgres()
		defer db.Close()
		store := storage.NewPostgresStore(db)
		if err := store.EnsureSchema(); err != nil {
			log.Fatal("Failed to ensure schema:", err)
		}
		menuRepo, orderRepo = store, store
	case "redis":
		store := storage.NewRedisStore(config.MustInitRedis())
		menuRepo, orderRepo = store, store
		ranker = store
	default:
		store := storage.NewFileStore(config.StorePath())
		menuRepo, orderRepo = store, store
	}

	var publisher service.OrderPublisher
	if config.KafkaBroker() != "" {
		publisher = storage.NewKafkaPublisher(config.NewKafkaWriter(orderEventsTopic))

		if ranker != nil {
			consumer := service.NewEventConsumer(
				config.NewKafkaReader(orderEventsTopic, "tableside-rankings"), ranker)
			go consumer.Start(context.Background())
		}
	}

	menuService := service.NewMenuService(menuRepo)
	orderService := service.NewOrderService(orderRepo, publisher, config.PaymentDelay())
	analyticsService := service.NewAnalyticsService(orderRepo)

	poller := service.NewOrderPoller(orderRepo, config.PollInterval())
	poller.Start(context.Background())
	defer poller.Stop()

	qr := service.QRResolver{BaseURL: config.BaseURL()}
	handler := httpapi.NewHandler(menuService, orderService, analyticsService,
		cart.NewRegistry(), qr, domain.SeedTables(config.BaseURL()), poller)
	if store, ok := ranker.(service.PopularityRanking); ok {
		handler.Rankings = store
	}

	httpapi.StartServer(":"+config.Port(), httpapi.NewRouter(handler))
}
