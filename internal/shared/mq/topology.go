package mq

import (
	"context"
	"fmt"

	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/logger"
)

// Имена exchanges и очередей, общие для всех сервисов.
const (
	RequestExchange = "request_topic"
	DonorExchange   = "donor_topic"

	RequestEventsQueue  = "donor_service_request_events"
	DonorResponsesQueue = "request_service_donor_responses"
)

// SetupTopology создает все exchanges, queues и bindings.
// Вызывается каждым сервисом при старте — объявления идемпотентны.
func SetupTopology(ctx context.Context, mq *RabbitMQ, log *logger.Logger) error {
	ch := mq.Channel()
	if ch == nil {
		return fmt.Errorf("rabbitmq channel not available")
	}

	// 1. Exchange: request_topic (topic) — события жизненного цикла заявок
	if err := ch.ExchangeDeclare(
		RequestExchange, // name
		"topic",         // type
		true,            // durable
		false,           // auto-deleted
		false,           // internal
		false,           // no-wait
		nil,             // args
	); err != nil {
		return fmt.Errorf("declare request_topic: %w", err)
	}

	// 2. Exchange: donor_topic (topic) — ответы и статусы доноров
	if err := ch.ExchangeDeclare(
		DonorExchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("declare donor_topic: %w", err)
	}

	// 3. Queue: donor_service_request_events — donor-service слушает новые заявки
	if _, err := ch.QueueDeclare(
		RequestEventsQueue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	); err != nil {
		return fmt.Errorf("declare donor_service_request_events: %w", err)
	}
	if err := ch.QueueBind(
		RequestEventsQueue,
		"request.*", // request.created | request.cancelled | request.approved
		RequestExchange,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("bind donor_service_request_events: %w", err)
	}

	// 4. Queue: request_service_donor_responses — request-service слушает ответы доноров
	if _, err := ch.QueueDeclare(
		DonorResponsesQueue,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("declare request_service_donor_responses: %w", err)
	}
	if err := ch.QueueBind(
		DonorResponsesQueue,
		"donor.response.*", // donor.response.{request_id}
		DonorExchange,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("bind request_service_donor_responses: %w", err)
	}

	log.Info(logger.Entry{
		Action:  "rabbitmq_topology_ready",
		Message: "exchanges and queues declared",
		Additional: map[string]any{
			"exchanges": []string{"request_topic", "donor_topic"},
			"queues":    []string{"donor_service_request_events", "request_service_donor_responses"},
		},
	})

	return nil
}
