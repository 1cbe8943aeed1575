package notify

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/config"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/logger"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// SMSGateway отправляет SMS через внешний HTTP-шлюз.
type SMSGateway struct {
	cfg    config.NotifyConfig
	client *http.Client
	log    *logger.Logger
}

// NewSMSGateway создает новый SMS-шлюз
func NewSMSGateway(cfg config.NotifyConfig, log *logger.Logger) *SMSGateway {
	return &SMSGateway{
		cfg: cfg,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

type smsPayload struct {
	Sender  string `json:"sender"`
	To      string `json:"to"`
	Message string `json:"message"`
}

// Send отправляет SMS на номер. Пустой URL шлюза означает, что канал
// выключен: сообщение только логируется.
func (g *SMSGateway) Send(ctx context.Context, phone, message string) error {
	if phone == "" {
		return fmt.Errorf("empty phone number")
	}

	if g.cfg.SMSAPIURL == "" {
		g.log.Debug(logger.Entry{
			Action:  "sms_channel_disabled",
			Message: fmt.Sprintf("to=%s len=%d", phone, len(message)),
		})
		return nil
	}

	body, err := jsonAPI.Marshal(smsPayload{
		Sender:  g.cfg.SMSSender,
		To:      phone,
		Message: message,
	})
	if err != nil {
		return fmt.Errorf("marshal sms payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.SMSAPIURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.cfg.SMSAPIKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("sms gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("sms gateway returned %d", resp.StatusCode)
	}

	g.log.Debug(logger.Entry{
		Action:  "sms_sent",
		Message: fmt.Sprintf("to=%s", phone),
	})
	return nil
}
