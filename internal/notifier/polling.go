package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// CommandHandler maps one received command to its reply text. An empty reply
// sends nothing.
type CommandHandler func(command string) string

const pollRetryDelay = 5 * time.Second

type botUpdate struct {
	UpdateID int `json:"update_id"`
	Message  *struct {
		Text string `json:"text"`
	} `json:"message"`
}

// StartPolling long-polls the Bot API for commands and feeds them through the
// handler, replying over the same sender. Blocks until ctx is cancelled; does
// nothing when the sender is unconfigured.
func (t *TelegramSender) StartPolling(ctx context.Context, handler CommandHandler) {
	if !t.Configured() {
		log.Println("[WARN] Telegram not configured, command polling disabled")
		return
	}
	log.Println("[INFO] Telegram command polling started")

	client := &http.Client{Timeout: 35 * time.Second}
	offset := 0
	for ctx.Err() == nil {
		updates, err := t.fetchUpdates(ctx, client, offset)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			log.Printf("[WARN] poll updates: %v", err)
			time.Sleep(pollRetryDelay)
			continue
		}
		for _, u := range updates {
			offset = u.UpdateID + 1
			if u.Message == nil {
				continue
			}
			t.dispatch(strings.TrimSpace(u.Message.Text), handler)
		}
	}
	log.Println("[INFO] Telegram polling stopped")
}

// fetchUpdates performs one getUpdates long poll starting at offset.
func (t *TelegramSender) fetchUpdates(ctx context.Context, client *http.Client, offset int) ([]botUpdate, error) {
	apiURL := fmt.Sprintf("https://api.telegram.org/bot%s/getUpdates?offset=%d&timeout=30",
		t.BotToken, offset)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	var parsed struct {
		OK     bool        `json:"ok"`
		Result []botUpdate `json:"result"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if !parsed.OK {
		return nil, fmt.Errorf("getUpdates not ok: %s", string(body))
	}
	return parsed.Result, nil
}

func (t *TelegramSender) dispatch(text string, handler CommandHandler) {
	if text == "" {
		return
	}
	log.Printf("[INFO] received command: %s", text)
	reply := handler(text)
	if reply == "" {
		return
	}
	if err := t.Send(reply); err != nil {
		log.Printf("[ERROR] send reply: %v", err)
	}
}
