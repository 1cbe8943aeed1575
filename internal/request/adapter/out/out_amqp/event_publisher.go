package out_amqp

import (
	"context"
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/request/application/ports/out"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/logger"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/mq"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// RequestEventPublisher публикует события заявок в RabbitMQ
type RequestEventPublisher struct {
	mq  *mq.RabbitMQ
	log *logger.Logger
}

// NewRequestEventPublisher создает новый publisher
func NewRequestEventPublisher(mqConn *mq.RabbitMQ, log *logger.Logger) *RequestEventPublisher {
	return &RequestEventPublisher{
		mq:  mqConn,
		log: log,
	}
}

// PublishRequestEvent публикует событие заявки в RabbitMQ
func (p *RequestEventPublisher) PublishRequestEvent(ctx context.Context, eventType string, data out.RequestEventData) error {
	payload, err := jsonAPI.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal event data: %w", err)
	}

	routingKey := getRoutingKey(eventType)

	if err := p.mq.Publish(ctx, mq.RequestExchange, routingKey, payload); err != nil {
		p.log.Error(logger.Entry{
			Action:    "publish_request_event_failed",
			Message:   err.Error(),
			RequestID: data.RequestID,
			Error:     &logger.ErrObj{Msg: err.Error()},
			Additional: map[string]any{
				"event_type":  eventType,
				"routing_key": routingKey,
			},
		})
		return fmt.Errorf("publish to rabbitmq: %w", err)
	}

	p.log.Debug(logger.Entry{
		Action:    "request_event_published",
		Message:   eventType,
		RequestID: data.RequestID,
		Additional: map[string]any{
			"routing_key": routingKey,
		},
	})

	return nil
}

// getRoutingKey возвращает routing key для события
func getRoutingKey(eventType string) string {
	switch eventType {
	case "REQUEST_CREATED":
		return "request.created"
	case "REQUEST_CANCELLED":
		return "request.cancelled"
	case "REQUEST_FULFILLED":
		return "request.fulfilled"
	default:
		return "request.event"
	}
}
