package messaging

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

const twilioAPIBase = "https://api.twilio.com/2010-04-01"

// Config holds Twilio credentials and sender settings.
type Config struct {
	AccountSID     string `envconfig:"TWILIO_ACCOUNT_SID" default:""`
	AuthToken      string `envconfig:"TWILIO_AUTH_TOKEN" default:""`
	WhatsAppNumber string `envconfig:"TWILIO_WHATSAPP_NUMBER" default:""`
	TestMode       bool   `envconfig:"WHATSAPP_TEST_MODE" default:"false"`
}

// Enabled reports whether credentials are present.
func (c Config) Enabled() bool {
	return c.AccountSID != "" && c.AuthToken != "" && c.WhatsAppNumber != ""
}

// Sender delivers WhatsApp notifications through the Twilio REST API.
// All failures are logged and returned as errors; callers invoke Sender
// in the background so delivery problems never affect the booking path.
type Sender struct {
	cfg    Config
	client *fasthttp.Client
	logger zerolog.Logger
}

// NewSender creates a WhatsApp sender. With TestMode set, messages are
// logged instead of sent, which keeps development off the sandbox quota.
func NewSender(cfg Config, logger zerolog.Logger) *Sender {
	return &Sender{
		cfg: cfg,
		client: &fasthttp.Client{
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		logger: logger.With().Str("component", "whatsapp").Logger(),
	}
}

// SendWhatsApp sends one WhatsApp message to the given number.
func (s *Sender) SendWhatsApp(toNumber, body string) error {
	if toNumber == "" || body == "" {
		return fmt.Errorf("phone number and message body are required")
	}
	if !s.cfg.Enabled() {
		return fmt.Errorf("twilio credentials not configured")
	}

	to := CleanPhoneNumber(toNumber)

	if s.cfg.TestMode {
		s.logger.Info().
			Str("to", to).
			Str("preview", preview(body)).
			Msg("test mode, whatsapp message logged instead of sent")
		return nil
	}

	form := url.Values{}
	form.Set("From", "whatsapp:"+s.cfg.WhatsAppNumber)
	form.Set("To", "whatsapp:"+to)
	form.Set("Body", body)

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fmt.Sprintf("%s/Accounts/%s/Messages.json", twilioAPIBase, s.cfg.AccountSID))
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Basic "+basicAuth(s.cfg.AccountSID, s.cfg.AuthToken))
	req.SetBodyString(form.Encode())

	if err := s.client.Do(req, resp); err != nil {
		s.logger.Error().Err(err).Str("to", to).Msg("twilio request failed")
		return fmt.Errorf("twilio request: %w", err)
	}

	if resp.StatusCode() >= 300 {
		apiErr := parseTwilioError(resp.Body())
		s.logger.Error().
			Int("status", resp.StatusCode()).
			Int("error_code", apiErr.Code).
			Str("to", to).
			Str("message", apiErr.Message).
			Msg("twilio rejected message")
		return fmt.Errorf("twilio error %d: %s", apiErr.Code, apiErr.Message)
	}

	s.logger.Info().Str("to", to).Msg("whatsapp message sent")
	return nil
}

// SendConfirmation sends the booking confirmation template.
func (s *Sender) SendConfirmation(patientName, phoneNumber, appointmentTime, reason string, appointmentID int64) error {
	return s.SendWhatsApp(phoneNumber, ConfirmationMessage(patientName, appointmentTime, reason, appointmentID))
}

// SendCancellation sends the booking cancellation template.
func (s *Sender) SendCancellation(patientName, phoneNumber, appointmentTime string, appointmentID int64) error {
	return s.SendWhatsApp(phoneNumber, CancellationMessage(patientName, appointmentTime, appointmentID))
}

type twilioError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func parseTwilioError(body []byte) twilioError {
	var e twilioError
	if err := json.Unmarshal(body, &e); err != nil {
		e.Message = string(body)
	}
	return e
}

func basicAuth(user, pass string) string {
	return base64.StdEncoding.EncodeToString([]byte(user + ":" + pass))
}

func preview(body string) string {
	const max = 80
	if len(body) <= max {
		return body
	}
	return body[:max] + "..."
}
