package inamqp

import (
	"context"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	jsoniter "github.com/json-iterator/go"

	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/matching/application/ports/in"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/matching/domain"
	reqdomain "github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/request/domain"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/logger"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/mq"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// DonorResponseMessage — сообщение с ответом донора из donor-service
type DonorResponseMessage struct {
	RequestID     string `json:"request_id"`
	DonorID       string `json:"donor_id"`
	Response      string `json:"response"` // ACCEPTED | REJECTED
	CorrelationID string `json:"correlation_id,omitempty"`
}

// DonorResponseConsumer обрабатывает ответы доноров на предложения по заявкам
type DonorResponseConsumer struct {
	mqConn   *mq.RabbitMQ
	recorder in.RecordDonorResponseUseCase
	log      *logger.Logger
}

// NewDonorResponseConsumer создает новый consumer
func NewDonorResponseConsumer(
	mqConn *mq.RabbitMQ,
	recorder in.RecordDonorResponseUseCase,
	log *logger.Logger,
) *DonorResponseConsumer {
	return &DonorResponseConsumer{
		mqConn:   mqConn,
		recorder: recorder,
		log:      log,
	}
}

// Start запускает consumer для donor.response.*
func (c *DonorResponseConsumer) Start(ctx context.Context) error {
	ch := c.mqConn.Channel()
	if ch == nil {
		return fmt.Errorf("failed to get RabbitMQ channel")
	}

	msgs, err := ch.Consume(
		mq.DonorResponsesQueue, // queue
		"",                     // consumer tag
		false,                  // auto-ack
		false,                  // exclusive
		false,                  // no-local
		false,                  // no-wait
		nil,                    // args
	)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	c.log.Info(logger.Entry{
		Action:  "donor_response_consumer_started",
		Message: fmt.Sprintf("listening on %s (queue: %s, pattern: donor.response.*)", mq.DonorExchange, mq.DonorResponsesQueue),
	})

	for {
		select {
		case <-ctx.Done():
			c.log.Info(logger.Entry{Action: "donor_response_consumer_stopping", Message: "context cancelled"})
			return ctx.Err()

		case msg, ok := <-msgs:
			if !ok {
				c.log.Warn(logger.Entry{Action: "donor_response_consumer_channel_closed", Message: "message channel closed"})
				return fmt.Errorf("message channel closed")
			}

			if err := c.handleDonorResponse(ctx, msg); err != nil {
				c.log.Error(logger.Entry{
					Action:  "handle_donor_response_failed",
					Message: err.Error(),
					Error:   &logger.ErrObj{Msg: err.Error()},
				})
				// Повторная доставка только для временных сбоев: битые
				// сообщения и неизвестные заявки перекладывать бессмысленно
				_ = msg.Nack(false, requeueable(err))
			} else {
				_ = msg.Ack(false)
			}
		}
	}
}

// handleDonorResponse обрабатывает один ответ донора
func (c *DonorResponseConsumer) handleDonorResponse(ctx context.Context, msg amqp.Delivery) error {
	var response DonorResponseMessage
	if err := jsonAPI.Unmarshal(msg.Body, &response); err != nil {
		return fmt.Errorf("parse donor response: %w: %w", errBadMessage, err)
	}
	if response.RequestID == "" || response.DonorID == "" {
		return fmt.Errorf("%w: missing request_id or donor_id", errBadMessage)
	}

	c.log.Info(logger.Entry{
		Action:    "donor_response_received",
		Message:   fmt.Sprintf("request=%s, donor=%s, response=%s", response.RequestID, response.DonorID, response.Response),
		RequestID: response.RequestID,
		DonorID:   response.DonorID,
		Additional: map[string]any{
			"routing_key": msg.RoutingKey,
		},
	})

	out, err := c.recorder.Execute(ctx, in.RecordDonorResponseInput{
		RequestID: response.RequestID,
		DonorID:   response.DonorID,
		Response:  response.Response,
	})
	if err != nil {
		return fmt.Errorf("record donor response: %w", err)
	}

	if !out.Recorded {
		c.log.Warn(logger.Entry{
			Action:    "donor_response_ignored",
			Message:   "no pending match for this donor, response dropped",
			RequestID: response.RequestID,
			DonorID:   response.DonorID,
		})
	}

	return nil
}

var errBadMessage = errors.New("malformed donor response message")

// requeueable сообщает, имеет ли смысл вернуть сообщение в очередь
func requeueable(err error) bool {
	switch {
	case errors.Is(err, errBadMessage),
		errors.Is(err, reqdomain.ErrRequestNotFound),
		errors.Is(err, domain.ErrDonorNotFound),
		errors.Is(err, domain.ErrInvalidResponse):
		return false
	}
	return true
}
