// Package telegram implements the Telegram Bot API transport: webhook update
// parsing and outbound send calls.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// DefaultAPIBase is the production Bot API endpoint.
const DefaultAPIBase = "https://api.telegram.org"

// Update is one webhook delivery. Only message updates are consumed;
// anything else is acknowledged and ignored.
type Update struct {
	UpdateID int64            `json:"update_id"`
	Message  *IncomingMessage `json:"message"`
}

// IncomingMessage is the message payload of an update.
type IncomingMessage struct {
	MessageID int64  `json:"message_id"`
	From      *User  `json:"from"`
	Chat      *Chat  `json:"chat"`
	Text      string `json:"text"`
	Caption   string `json:"caption"`
}

// User identifies the sender.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// Chat identifies the conversation.
type Chat struct {
	ID int64 `json:"id"`
}

// ChatID returns the chat identifier as a string conversation key component.
func (m *IncomingMessage) ChatID() string {
	if m.Chat == nil {
		return ""
	}
	return strconv.FormatInt(m.Chat.ID, 10)
}

// Body returns the user text, falling back to the media caption.
func (m *IncomingMessage) Body() string {
	if m.Text != "" {
		return m.Text
	}
	return m.Caption
}

// Client calls the Telegram Bot API.
type Client struct {
	Token      string
	APIBase    string
	HTTPClient *http.Client
}

// NewClient creates a Bot API client for the given token.
func NewClient(token string) *Client {
	return &Client{
		Token:      token,
		APIBase:    DefaultAPIBase,
		HTTPClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// SendMessage sends plain text to a chat. When actionURL is non-empty, the
// message carries a single inline "View in store" button.
func (c *Client) SendMessage(ctx context.Context, chatID, text, actionURL string) error {
	params := map[string]any{
		"chat_id": chatID,
		"text":    text,
	}
	if actionURL != "" {
		params["reply_markup"] = inlineLinkButton("View in store", actionURL)
	}
	return c.apiCall(ctx, "sendMessage", params)
}

// SendPhoto sends one photo, optionally with a caption and action button.
func (c *Client) SendPhoto(ctx context.Context, chatID, photoURL, caption, actionURL string) error {
	params := map[string]any{
		"chat_id": chatID,
		"photo":   photoURL,
	}
	if caption != "" {
		params["caption"] = caption
	}
	if actionURL != "" {
		params["reply_markup"] = inlineLinkButton("View in store", actionURL)
	}
	return c.apiCall(ctx, "sendPhoto", params)
}

func inlineLinkButton(label, url string) map[string]any {
	return map[string]any{
		"inline_keyboard": [][]map[string]any{
			{{"text": label, "url": url}},
		},
	}
}

func (c *Client) apiCall(ctx context.Context, method string, params map[string]any) error {
	url := fmt.Sprintf("%s/bot%s/%s", c.APIBase, c.Token, method)
	body, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("marshal %s params: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	defer resp.Body.Close()

	var result struct {
		OK          bool   `json:"ok"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode %s response: %w", method, err)
	}
	if !result.OK {
		return fmt.Errorf("%s: telegram: %s", method, result.Description)
	}
	return nil
}
