package service

import (
	"context"
	"encoding/json"
	"log"

	"tableside/internal/domain"

	"github.com/segmentio/kafka-go"
)

// EventConsumer folds placed-order events into the sales ranking.
type EventConsumer struct {
	Reader *kafka.Reader
	Ranker SalesRanker
}

func NewEventConsumer(reader *kafka.Reader, ranker SalesRanker) *EventConsumer {
	return &EventConsumer{
		Reader: reader,
		Ranker: ranker,
	}
}

func (c *EventConsumer) Start(ctx context.Context) {
	log.Println("Starting order event consumer...")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("Error reading message: %v", err)
			continue
		}

		var event domain.OrderEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			log.Printf("Error unmarshaling event: %v", err)
			continue
		}

		c.ProcessEvent(ctx, event)
	}
}

func (c *EventConsumer) ProcessEvent(ctx context.Context, event domain.OrderEvent) {
	if event.Type != domain.EventOrderPlaced {
		return
	}

	for _, item := range event.Items {
		if err := c.Ranker.IncrementItemSales(ctx, item.MenuItemName, item.Quantity); err != nil {
			log.Printf("Error ranking item %q: %v", item.MenuItemName, err)
		}
	}
}
