package telegram

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdate_ParseTextMessage(t *testing.T) {
	raw := `{
		"update_id": 42,
		"message": {
			"message_id": 7,
			"from": {"id": 99, "username": "alice"},
			"chat": {"id": 12345},
			"text": "where is my order?"
		}
	}`

	var update Update
	require.NoError(t, json.Unmarshal([]byte(raw), &update))
	require.NotNil(t, update.Message)
	assert.Equal(t, "12345", update.Message.ChatID())
	assert.Equal(t, "where is my order?", update.Message.Body())
}

func TestUpdate_CaptionFallback(t *testing.T) {
	raw := `{"update_id": 1, "message": {"chat": {"id": 5}, "caption": "look at this"}}`

	var update Update
	require.NoError(t, json.Unmarshal([]byte(raw), &update))
	assert.Equal(t, "look at this", update.Message.Body())
}

func TestUpdate_NonMessageUpdate(t *testing.T) {
	raw := `{"update_id": 1, "edited_message": {"chat": {"id": 5}}}`

	var update Update
	require.NoError(t, json.Unmarshal([]byte(raw), &update))
	assert.Nil(t, update.Message)
}

// recordedCall captures one Bot API invocation.
type recordedCall struct {
	method string
	params map[string]any
}

// newTestClient returns a Client pointed at a fake Bot API that records calls.
func newTestClient(t *testing.T, fail map[string]bool) (*Client, *[]recordedCall) {
	t.Helper()
	var calls []recordedCall

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var params map[string]any
		_ = json.Unmarshal(body, &params)

		// Path shape: /bot<token>/<method>
		method := r.URL.Path[len("/bottest-token/"):]
		calls = append(calls, recordedCall{method: method, params: params})

		if fail[method] {
			json.NewEncoder(w).Encode(map[string]any{"ok": false, "description": "Bad Request"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}))
	t.Cleanup(server.Close)

	client := NewClient("test-token")
	client.APIBase = server.URL
	return client, &calls
}

func TestClient_SendMessage(t *testing.T) {
	client, calls := newTestClient(t, nil)

	err := client.SendMessage(context.Background(), "123", "hello", "")
	require.NoError(t, err)
	require.Len(t, *calls, 1)
	assert.Equal(t, "sendMessage", (*calls)[0].method)
	assert.Equal(t, "hello", (*calls)[0].params["text"])
	assert.NotContains(t, (*calls)[0].params, "reply_markup")
}

func TestClient_SendMessageWithActionButton(t *testing.T) {
	client, calls := newTestClient(t, nil)

	err := client.SendMessage(context.Background(), "123", "check this out", "https://shop/item")
	require.NoError(t, err)
	require.Len(t, *calls, 1)
	assert.Contains(t, (*calls)[0].params, "reply_markup")
}

func TestClient_SendPhoto(t *testing.T) {
	client, calls := newTestClient(t, nil)

	err := client.SendPhoto(context.Background(), "123", "https://img/p.jpg", "nice phone", "")
	require.NoError(t, err)
	require.Len(t, *calls, 1)
	assert.Equal(t, "sendPhoto", (*calls)[0].method)
	assert.Equal(t, "https://img/p.jpg", (*calls)[0].params["photo"])
	assert.Equal(t, "nice phone", (*calls)[0].params["caption"])
}

func TestClient_APIError(t *testing.T) {
	client, _ := newTestClient(t, map[string]bool{"sendMessage": true})

	err := client.SendMessage(context.Background(), "123", "hello", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Bad Request")
}

func TestDispatcher_TextOnly(t *testing.T) {
	client, calls := newTestClient(t, nil)
	d := &Dispatcher{Client: client}

	err := d.Deliver(context.Background(), "123", "hi there", nil, "")
	require.NoError(t, err)
	require.Len(t, *calls, 1)
	assert.Equal(t, "sendMessage", (*calls)[0].method)
}

func TestDispatcher_FirstImageCarriesCaption(t *testing.T) {
	client, calls := newTestClient(t, nil)
	d := &Dispatcher{Client: client}

	images := []string{"img1", "img2", "img3"}
	err := d.Deliver(context.Background(), "123", "your order", images, "")
	require.NoError(t, err)

	require.Len(t, *calls, 3)
	assert.Equal(t, "sendPhoto", (*calls)[0].method)
	assert.Equal(t, "img1", (*calls)[0].params["photo"])
	assert.Equal(t, "your order", (*calls)[0].params["caption"])

	// Remaining photos go out standalone, no caption.
	assert.Equal(t, "img2", (*calls)[1].params["photo"])
	assert.NotContains(t, (*calls)[1].params, "caption")
	assert.Equal(t, "img3", (*calls)[2].params["photo"])
}

func TestDispatcher_PhotoFailureFallsBackToText(t *testing.T) {
	client, calls := newTestClient(t, map[string]bool{"sendPhoto": true})
	d := &Dispatcher{Client: client}

	err := d.Deliver(context.Background(), "123", "your order", []string{"img1"}, "")
	require.NoError(t, err, "text delivery rescues the turn")

	require.Len(t, *calls, 2)
	assert.Equal(t, "sendPhoto", (*calls)[0].method)
	assert.Equal(t, "sendMessage", (*calls)[1].method)
	assert.Equal(t, "your order", (*calls)[1].params["text"])
}
