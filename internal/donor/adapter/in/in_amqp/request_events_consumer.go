package in_amqp

import (
	"context"
	"strings"

	jsoniter "github.com/json-iterator/go"
	amqp091 "github.com/rabbitmq/amqp091-go"

	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/donor/application/ports/out"
	matchdomain "github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/matching/domain"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/logger"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/mq"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/ws"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// requestEventMessage — общий конверт событий request-service.
// Консьюмер читает только нужные ему поля.
type requestEventMessage struct {
	RequestID string `json:"request_id"`
	Urgency   string `json:"urgency,omitempty"`
	Status    string `json:"status,omitempty"`
}

// RequestEventsConsumer слушает события заявок и проталкивает их
// подключенным донорам через WebSocket. Персистентные in-app
// уведомления пишет request-service; здесь только real-time пуш.
type RequestEventsConsumer struct {
	mq          *mq.RabbitMQ
	matchReader out.MatchReader
	donorRepo   out.DonorRepository
	hub         *ws.Hub
	log         *logger.Logger
}

// NewRequestEventsConsumer создает новый consumer
func NewRequestEventsConsumer(
	mqConn *mq.RabbitMQ,
	matchReader out.MatchReader,
	donorRepo out.DonorRepository,
	hub *ws.Hub,
	log *logger.Logger,
) *RequestEventsConsumer {
	return &RequestEventsConsumer{
		mq:          mqConn,
		matchReader: matchReader,
		donorRepo:   donorRepo,
		hub:         hub,
		log:         log,
	}
}

// Start запускает consumer для request.*
func (c *RequestEventsConsumer) Start(ctx context.Context) error {
	c.log.Info(logger.Entry{
		Action:  "request_events_consumer_starting",
		Message: "starting request events consumer",
	})

	return c.mq.Consume(ctx, mq.RequestEventsQueue, "donor-service", func(msg amqp091.Delivery) {
		c.handleEvent(ctx, msg)
	})
}

func (c *RequestEventsConsumer) handleEvent(ctx context.Context, msg amqp091.Delivery) {
	var event requestEventMessage
	if err := jsonAPI.Unmarshal(msg.Body, &event); err != nil {
		c.log.Error(logger.Entry{
			Action:  "request_event_unmarshal_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		_ = msg.Nack(false, false)
		return
	}

	if event.RequestID == "" {
		_ = msg.Nack(false, false)
		return
	}

	switch {
	case msg.RoutingKey == "request.matched":
		c.pushToMatchedDonors(ctx, event.RequestID, "match_found", map[string]any{
			"request_id": event.RequestID,
		})

	case msg.RoutingKey == "request.cancelled":
		c.pushToMatchedDonors(ctx, event.RequestID, "request_cancelled", map[string]any{
			"request_id": event.RequestID,
		})

	case strings.HasPrefix(msg.RoutingKey, "request."):
		// Остальные события заявок доноров не касаются

	default:
		c.log.Warn(logger.Entry{
			Action:    "request_event_unexpected_key",
			Message:   msg.RoutingKey,
			RequestID: event.RequestID,
		})
	}

	_ = msg.Ack(false)
}

// pushToMatchedDonors шлет WS сообщение каждому донору, связанному
// с заявкой. Ответившие доноры о ее отмене тоже узнают.
func (c *RequestEventsConsumer) pushToMatchedDonors(ctx context.Context, requestID, msgType string, data map[string]any) {
	matches, err := c.matchReader.FindByRequest(ctx, requestID)
	if err != nil {
		c.log.Error(logger.Entry{
			Action:    "load_request_matches_failed",
			Message:   err.Error(),
			RequestID: requestID,
			Error:     &logger.ErrObj{Msg: err.Error()},
		})
		return
	}

	pushed := 0
	for _, m := range matches {
		if msgType == "request_cancelled" && m.Response == matchdomain.ResponseRejected {
			continue
		}

		donor, err := c.donorRepo.FindByID(ctx, m.DonorID)
		if err != nil {
			c.log.Warn(logger.Entry{
				Action:    "resolve_matched_donor_failed",
				Message:   err.Error(),
				RequestID: requestID,
				DonorID:   m.DonorID,
			})
			continue
		}

		if !c.hub.IsUserConnected(donor.UserID) {
			continue
		}
		if err := c.hub.SendTypedMessage(donor.UserID, msgType, data); err != nil {
			c.log.Warn(logger.Entry{
				Action:    "push_to_donor_failed",
				Message:   err.Error(),
				RequestID: requestID,
				DonorID:   m.DonorID,
			})
			continue
		}
		pushed++
	}

	c.log.Debug(logger.Entry{
		Action:    "request_event_pushed",
		Message:   msgType,
		RequestID: requestID,
		Additional: map[string]any{
			"pushed": pushed,
		},
	})
}
