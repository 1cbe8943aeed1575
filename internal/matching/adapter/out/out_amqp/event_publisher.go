package out_amqp

import (
	"context"
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/matching/application/ports/out"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/logger"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/mq"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// MatchEventPublisher публикует события подбора в RabbitMQ
type MatchEventPublisher struct {
	mq  *mq.RabbitMQ
	log *logger.Logger
}

// NewMatchEventPublisher создает новый publisher
func NewMatchEventPublisher(mqConn *mq.RabbitMQ, log *logger.Logger) *MatchEventPublisher {
	return &MatchEventPublisher{
		mq:  mqConn,
		log: log,
	}
}

// PublishMatchEvent публикует событие подбора в RabbitMQ
func (p *MatchEventPublisher) PublishMatchEvent(ctx context.Context, eventType string, data out.MatchEventData) error {
	payload, err := jsonAPI.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal event data: %w", err)
	}

	routingKey := getRoutingKey(eventType)

	// Публикуем в request_topic exchange
	if err := p.mq.Publish(ctx, mq.RequestExchange, routingKey, payload); err != nil {
		p.log.Error(logger.Entry{
			Action:    "publish_match_event_failed",
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
		Action:    "match_event_published",
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
	case "DONORS_MATCHED":
		return "request.matched"
	case "DONOR_RESPONSE_RECORDED":
		return "request.donor_response"
	case "REQUEST_APPROVED":
		return "request.approved"
	default:
		return "request.event"
	}
}
