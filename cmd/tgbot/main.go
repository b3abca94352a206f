package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"DuctSizer/internal/config"
	log "github.com/sirupsen/logrus"
)

type Update struct {
	UpdateID int      `json:"update_id"`
	Message  *Message `json:"message"`
}

type Message struct {
	MessageID int    `json:"message_id"`
	Chat      Chat   `json:"chat"`
	Text      string `json:"text"`
}

type Chat struct {
	ID int64 `json:"id"`
}

type UpdateResponse struct {
	OK          bool     `json:"ok"`
	Description string   `json:"description"`
	Result      []Update `json:"result"`
}

type Bot struct {
	token       string
	apiURL      string
	pollTimeout int
	client      *http.Client
}

func NewBot(token, apiURL string, pollTimeout int) *Bot {
	return &Bot{
		token:       token,
		apiURL:      apiURL,
		pollTimeout: pollTimeout,
		client:      &http.Client{Timeout: time.Duration(pollTimeout+10) * time.Second},
	}
}

func main() {
	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.SetupLogging(); err != nil {
		log.Fatal(err)
	}
	if cfg.BotToken == "" {
		log.Fatal("TOKEN_BOT missing")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	bot := NewBot(cfg.BotToken, cfg.BotAPIURL, cfg.BotPollTimeout)
	log.Info("duct bot polling for updates")
	bot.Run(ctx)
	log.Info("duct bot stopped")
}

// Run long-polls for updates until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) {
	offset := 0
	for ctx.Err() == nil {
		updates, err := b.getUpdates(ctx, offset)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.WithError(err).Warn("getUpdates")
			sleep(ctx, 2*time.Second)
			continue
		}
		for _, u := range updates {
			offset = u.UpdateID + 1
			b.handle(ctx, u)
		}
	}
}

func (b *Bot) handle(ctx context.Context, u Update) {
	if u.Message == nil {
		return
	}
	text, ok := reply(u.Message.Text)
	if !ok {
		return
	}
	if err := b.sendMessage(ctx, u.Message.Chat.ID, text); err != nil {
		log.WithError(err).WithField("chat", u.Message.Chat.ID).Warn("sendMessage")
	}
}

func (b *Bot) method(name string) string {
	return fmt.Sprintf("%s/bot%s/%s", b.apiURL, b.token, name)
}

func (b *Bot) getUpdates(ctx context.Context, offset int) ([]Update, error) {
	url := fmt.Sprintf("%s?timeout=%d&offset=%d", b.method("getUpdates"), b.pollTimeout, offset)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	res, err := b.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	var out UpdateResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode updates: %w", err)
	}
	if !out.OK {
		return nil, fmt.Errorf("getUpdates: %s", out.Description)
	}
	return out.Result, nil
}

func (b *Bot) sendMessage(ctx context.Context, chatID int64, text string) error {
	payload, err := json.Marshal(map[string]any{"chat_id": chatID, "text": text})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.method("sendMessage"), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	res, err := b.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("sendMessage: %s", res.Status)
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
