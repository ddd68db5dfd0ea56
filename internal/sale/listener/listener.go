package listener

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/logger"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

// Refresher is satisfied by the sale scheduler.
type Refresher interface {
	Trigger()
}

type SaleListener struct {
	consumer  MessageReader
	refresher Refresher
	logger    logger.ZapLogger
}

func NewSaleListener(consumer MessageReader, refresher Refresher, logger logger.ZapLogger) *SaleListener {
	return &SaleListener{
		consumer:  consumer,
		refresher: refresher,
		logger:    logger,
	}
}

func (l *SaleListener) Start(ctx context.Context) {
	l.logger.Info("Starting Sale Kafka Listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping Sale Kafka Listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				time.Sleep(1 * time.Second)
				continue
			}
			l.processMessage(msg.Value)
		}
	}
}

type SaleEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	ModelID   int64     `json:"model_id"`
	Timestamp time.Time `json:"timestamp"`
}

func (l *SaleListener) processMessage(value []byte) {
	var event SaleEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("Failed to unmarshal event", zap.Error(err))
		return
	}

	switch event.EventType {
	case "SaleCreated", "SaleUpdated", "SaleCancelled":
		l.logger.Info("Sale event received, scheduling refresh",
			zap.String("event_type", event.EventType),
			zap.Int64("model_id", event.ModelID),
		)
		l.refresher.Trigger()
	}
}
