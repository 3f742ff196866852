package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ContactMessage is the payload handed to the notifier (directly or through
// the dispatch queue) after a contact submission is persisted.
type ContactMessage struct {
	ContactID    uint      `json:"contact_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Organization string    `json:"organization"`
	Message      string    `json:"message"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

// WhatsAppSender delivers contact notifications through the Twilio
// Messages API.
type WhatsAppSender struct {
	baseURL    string
	accountSID string
	authToken  string
	from       string
	to         string
	httpClient *http.Client
}

func NewWhatsAppSender(accountSID, authToken, from, to string) *WhatsAppSender {
	return &WhatsAppSender{
		baseURL:    "https://api.twilio.com",
		accountSID: accountSID,
		authToken:  authToken,
		from:       from,
		to:         to,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// NewWhatsAppSenderWithBaseURL exists for tests pointing at a fake Twilio.
func NewWhatsAppSenderWithBaseURL(baseURL, accountSID, authToken, from, to string) *WhatsAppSender {
	s := NewWhatsAppSender(accountSID, authToken, from, to)
	s.baseURL = strings.TrimRight(baseURL, "/")
	return s
}

func (s *WhatsAppSender) Notify(ctx context.Context, msg ContactMessage) error {
	form := url.Values{}
	form.Set("From", "whatsapp:"+s.from)
	form.Set("To", "whatsapp:"+s.to)
	form.Set("Body", formatBody(msg))

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", s.baseURL, s.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build whatsapp request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(s.accountSID, s.authToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("whatsapp response status %d: %s", resp.StatusCode, string(raw))
	}
	return nil
}

func formatBody(msg ContactMessage) string {
	var b strings.Builder
	b.WriteString("New AtmosAether contact submission\n")
	b.WriteString("Name: " + msg.Name + "\n")
	b.WriteString("Email: " + msg.Email + "\n")
	if msg.Organization != "" {
		b.WriteString("Organization: " + msg.Organization + "\n")
	}
	b.WriteString("Message: " + msg.Message)
	return b.String()
}
