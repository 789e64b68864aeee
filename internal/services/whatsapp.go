package services

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

// Button is one quick-reply button (WhatsApp allows at most 3)
type Button struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// ListRow is one selectable row inside a list-message section
type ListRow struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// ListSection groups rows under a section title
type ListSection struct {
	Title string    `json:"title"`
	Rows  []ListRow `json:"rows"`
}

// MessageSender sends outbound WhatsApp messages. Implementations must not
// retry on failure: a duplicate message is worse than a dropped reply.
type MessageSender interface {
	SendText(to, body string) error
	SendButtons(to, body string, buttons []Button) error
	SendList(to, body, buttonText string, sections []ListSection, headerText, footerText string) error
}

// WhatsAppClient talks to the WhatsApp Cloud API
// (https://graph.facebook.com/v22.0/<PHONE_NUMBER_ID>)
type WhatsAppClient struct {
	apiURL string
	token  string
	client *http.Client
}

// NewWhatsAppClient creates a client for the given Graph API URL and token
func NewWhatsAppClient(apiURL, token string) *WhatsAppClient {
	return &WhatsAppClient{
		apiURL: strings.TrimRight(apiURL, "/"),
		token:  token,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// NewWhatsAppClientFromEnv builds the client from WHATSAPP_API_URL and
// WHATSAPP_TOKEN. Returns nil when either is missing: the webhook still
// accepts events, replies are just impossible.
func NewWhatsAppClientFromEnv() *WhatsAppClient {
	apiURL := os.Getenv("WHATSAPP_API_URL")
	token := os.Getenv("WHATSAPP_TOKEN")
	if apiURL == "" || token == "" {
		return nil
	}
	return NewWhatsAppClient(apiURL, token)
}

type textContent struct {
	Body string `json:"body"`
}

type textPayload struct {
	MessagingProduct string      `json:"messaging_product"`
	To               string      `json:"to"`
	Type             string      `json:"type"`
	Text             textContent `json:"text"`
}

type replyButton struct {
	Type  string `json:"type"`
	Reply Button `json:"reply"`
}

type interactiveHeader struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type interactiveFooter struct {
	Text string `json:"text"`
}

type interactiveAction struct {
	Buttons  []replyButton `json:"buttons,omitempty"`
	Button   string        `json:"button,omitempty"`
	Sections []ListSection `json:"sections,omitempty"`
}

type interactiveContent struct {
	Type   string             `json:"type"`
	Header *interactiveHeader `json:"header,omitempty"`
	Body   textContent        `json:"body"`
	Footer *interactiveFooter `json:"footer,omitempty"`
	Action interactiveAction  `json:"action"`
}

type interactivePayload struct {
	MessagingProduct string             `json:"messaging_product"`
	To               string             `json:"to"`
	Type             string             `json:"type"`
	Interactive      interactiveContent `json:"interactive"`
}

// SendText sends a plain text message
func (w *WhatsAppClient) SendText(to, body string) error {
	return w.post(to, textPayload{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "text",
		Text:             textContent{Body: body},
	})
}

// SendButtons sends an interactive message with up to 3 quick-reply
// buttons; extra buttons are dropped silently.
func (w *WhatsAppClient) SendButtons(to, body string, buttons []Button) error {
	if len(buttons) > 3 {
		buttons = buttons[:3]
	}
	mapped := make([]replyButton, 0, len(buttons))
	for _, btn := range buttons {
		mapped = append(mapped, replyButton{Type: "reply", Reply: btn})
	}

	return w.post(to, interactivePayload{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "interactive",
		Interactive: interactiveContent{
			Type:   "button",
			Body:   textContent{Body: body},
			Action: interactiveAction{Buttons: mapped},
		},
	})
}

// SendList sends an interactive list message. headerText and footerText are
// optional and omitted when empty.
func (w *WhatsAppClient) SendList(to, body, buttonText string, sections []ListSection, headerText, footerText string) error {
	interactive := interactiveContent{
		Type: "list",
		Body: textContent{Body: body},
		Action: interactiveAction{
			Button:   buttonText,
			Sections: sections,
		},
	}
	if headerText != "" {
		interactive.Header = &interactiveHeader{Type: "text", Text: headerText}
	}
	if footerText != "" {
		interactive.Footer = &interactiveFooter{Text: footerText}
	}

	return w.post(to, interactivePayload{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "interactive",
		Interactive:      interactive,
	})
}

// post sends one payload to the /messages endpoint. Any transport failure
// or non-2xx response becomes a *GatewayError; the token is never logged.
func (w *WhatsAppClient) post(to string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return &GatewayError{Err: err}
	}

	req, err := http.NewRequest(http.MethodPost, w.apiURL+"/messages", bytes.NewReader(data))
	if err != nil {
		return &GatewayError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+w.token)

	resp, err := w.client.Do(req)
	if err != nil {
		log.Printf("WhatsApp API request to %s failed: %v", to, err)
		return &GatewayError{Err: err}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	log.Printf("WhatsApp API response to=%s status=%d body=%s", to, resp.StatusCode, string(body))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &GatewayError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return nil
}

// TextFallbackSender wraps a MessageSender for deployments that cannot
// show interactive messages: buttons and lists degrade to plain text, so
// call sites stay uniform.
type TextFallbackSender struct {
	Sender MessageSender
}

func (t *TextFallbackSender) SendText(to, body string) error {
	return t.Sender.SendText(to, body)
}

func (t *TextFallbackSender) SendButtons(to, body string, buttons []Button) error {
	var sb strings.Builder
	sb.WriteString(body)
	for i, btn := range buttons {
		if i == 3 {
			break
		}
		sb.WriteString("\n")
		sb.WriteString(btn.Title)
	}
	return t.Sender.SendText(to, sb.String())
}

func (t *TextFallbackSender) SendList(to, body, buttonText string, sections []ListSection, headerText, footerText string) error {
	var sb strings.Builder
	if headerText != "" {
		sb.WriteString(headerText)
		sb.WriteString("\n")
	}
	sb.WriteString(body)
	for _, section := range sections {
		sb.WriteString("\n")
		sb.WriteString(section.Title)
		for _, row := range section.Rows {
			sb.WriteString("\n- ")
			sb.WriteString(row.Title)
		}
	}
	if footerText != "" {
		sb.WriteString("\n")
		sb.WriteString(footerText)
	}
	return t.Sender.SendText(to, sb.String())
}
