package telegram

import (
	"context"
	"log"
)

// Sender is the outbound slice of the Bot API used by the dispatcher.
type Sender interface {
	SendMessage(ctx context.Context, chatID, text, actionURL string) error
	SendPhoto(ctx context.Context, chatID, photoURL, caption, actionURL string) error
}

// Dispatcher delivers a turn's final reply over Telegram.
type Dispatcher struct {
	Client Sender
}

// Deliver sends text plus any media to the chat. The first image is bundled
// with the caption; the rest go out as standalone photos. When media delivery
// fails, delivery degrades to text so the turn is never dropped silently.
func (d *Dispatcher) Deliver(ctx context.Context, chatID, text string, images []string, actionURL string) error {
	if len(images) == 0 {
		return d.Client.SendMessage(ctx, chatID, text, actionURL)
	}

	if err := d.Client.SendPhoto(ctx, chatID, images[0], text, actionURL); err != nil {
		log.Printf("[Telegram] photo delivery failed for chat %s, falling back to text: %v", chatID, err)
		return d.Client.SendMessage(ctx, chatID, text, actionURL)
	}

	for _, img := range images[1:] {
		if err := d.Client.SendPhoto(ctx, chatID, img, "", ""); err != nil {
			log.Printf("[Telegram] extra photo delivery failed for chat %s: %v", chatID, err)
		}
	}
	return nil
}
