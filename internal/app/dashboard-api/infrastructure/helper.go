package infrastructure

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

const alertSubject = "Mining dashboard alert"

var ErrMailNotConfigured = errors.New("mail is not configured")

func NewHelper(config *Config) *Helper {
	return &Helper{config: *config}
}

type Helper struct {
	config Config
}

func (h *Helper) Now() time.Time {
	return time.Now()
}

// SendMail delivers an alert through sendgrid. Without an API key the message is only logged.
func (h *Helper) SendMail(message string) error {
	if h.config.SendgridApiKey == "" || h.config.MailToAddress == "" {
		log.Warn().Msgf("mail alert not sent, %s: %s", ErrMailNotConfigured, message)
		return nil
	}

	from := mail.NewEmail("", h.config.MailFromAddress)
	to := mail.NewEmail("", h.config.MailToAddress)
	email := mail.NewSingleEmail(from, alertSubject, to, message, "")

	client := sendgrid.NewSendClient(h.config.SendgridApiKey)
	res, err := client.Send(email)
	if err != nil {
		return err
	}

	if res.StatusCode >= 300 {
		return fmt.Errorf("sendgrid responded with status %d: %s", res.StatusCode, res.Body)
	}

	return nil
}
