package out_amqp

import (
	"context"
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/donor/application/ports/out"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/logger"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/mq"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// DonorEventPublisher публикует события донора в RabbitMQ
type DonorEventPublisher struct {
	mq  *mq.RabbitMQ
	log *logger.Logger
}

// NewDonorEventPublisher создает новый publisher
func NewDonorEventPublisher(mqConn *mq.RabbitMQ, log *logger.Logger) *DonorEventPublisher {
	return &DonorEventPublisher{
		mq:  mqConn,
		log: log,
	}
}

// PublishDonorResponse публикует ответ донора в donor_topic exchange.
// Request-service слушает donor.response.* и записывает ответ.
func (p *DonorEventPublisher) PublishDonorResponse(ctx context.Context, event out.DonorResponseEvent) error {
	payload, err := jsonAPI.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal donor response: %w", err)
	}

	routingKey := fmt.Sprintf("donor.response.%s", event.RequestID)
	if err := p.mq.Publish(ctx, mq.DonorExchange, routingKey, payload); err != nil {
		return fmt.Errorf("publish donor response: %w", err)
	}

	p.log.Info(logger.Entry{
		Action:    "donor_response_published",
		Message:   routingKey,
		RequestID: event.RequestID,
		DonorID:   event.DonorID,
	})
	return nil
}

// PublishDonorStatusChanged публикует смену доступности донора
func (p *DonorEventPublisher) PublishDonorStatusChanged(ctx context.Context, data out.StatusEventData) error {
	payload, err := jsonAPI.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal donor status: %w", err)
	}

	if err := p.mq.Publish(ctx, mq.DonorExchange, "donor.status_changed", payload); err != nil {
		return fmt.Errorf("publish donor status: %w", err)
	}
	return nil
}
