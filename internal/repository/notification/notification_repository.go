package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"pricedeck/domain"
	"pricedeck/pkg/logger"
)

type MailjetConfig struct {
	MailjetBaseURL           string
	MailjetBasicAuthUsername string
	MailjetBasicAuthPassword string
	MailjetSenderEmail       string
	MailjetSenderName        string
	AlertRecipientEmail      string
	AlertRecipientName       string
}

type MailjetRepository struct {
	mailjetConfig MailjetConfig
}

func NewMailjetRepository(cfg MailjetConfig) *MailjetRepository {
	return &MailjetRepository{
		cfg,
	}
}

type payloadSendEmail struct {
	Messages []Messages `json:"Messages"`
}

type From struct {
	Email string `json:"Email"`
	Name  string `json:"Name"`
}

type To struct {
	Email string `json:"Email"`
	Name  string `json:"Name"`
}

type Messages struct {
	From     From   `json:"From"`
	To       []To   `json:"To"`
	Subject  string `json:"Subject"`
	TextPart string `json:"TextPart"`
	HTMLPart string `json:"HTMLPart"`
}

func (r MailjetRepository) SendEmail(toName, toEmail, subject, message string) (err error) {
	url := r.mailjetConfig.MailjetBaseURL + "/v3.1/send"

	toBody := []To{{
		Email: toEmail,
		Name:  toName,
	}}

	messageBody := Messages{
		To: toBody,
		From: From{
			Email: r.mailjetConfig.MailjetSenderEmail,
			Name:  r.mailjetConfig.MailjetSenderName,
		},
		Subject:  subject,
		TextPart: message,
		HTMLPart: message,
	}

	payload := payloadSendEmail{
		Messages: []Messages{messageBody},
	}

	payloadByte, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal json payload: %w", err)
	}

	client := &http.Client{Timeout: 5 * time.Second}
	req, err := http.NewRequest(http.MethodPost, url, strings.NewReader(string(payloadByte)))
	if err != nil {
		return err
	}

	req.Header.Add("Content-Type", "application/json")
	req.SetBasicAuth(r.mailjetConfig.MailjetBasicAuthUsername, r.mailjetConfig.MailjetBasicAuthPassword)

	res, err := client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 200 && res.StatusCode <= 299 {
		return nil
	}
	bodyBytes, _ := io.ReadAll(res.Body)
	logger.Warn("mailer service response", "status", res.StatusCode, "body", string(bodyBytes))

	return fmt.Errorf("mailer service return negative response %v", res.StatusCode)
}

const subjectCriticalAlerts = "Pricing Alerts: critical margin issues"

// SendAlertEmail delivers the critical alert digest to the configured
// pricing-team recipient.
func (r MailjetRepository) SendAlertEmail(ctx context.Context, alerts []domain.Alert) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if r.mailjetConfig.AlertRecipientEmail == "" {
		return fmt.Errorf("no alert recipient configured")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d critical pricing alert(s):<br/><br/>", len(alerts))
	for _, alert := range alerts {
		fmt.Fprintf(&b, "[%s] %s: %s<br/>", alert.Type, alert.SKU, alert.Message)
	}

	return r.SendEmail(
		r.mailjetConfig.AlertRecipientName,
		r.mailjetConfig.AlertRecipientEmail,
		subjectCriticalAlerts,
		b.String(),
	)
}
