package notifier

import (
	"context"
	"encoding/json"
	"time"

	"fundwatch/internal/config"
	"fundwatch/internal/errorwrapper"
	"fundwatch/internal/models"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// TelegramNotifier delivers notification events to a Telegram chat.
// It performs one or two outbound calls per event and persists
// nothing; recording delivery success into state is the caller's job.
type TelegramNotifier struct {
	client         *resty.Client
	apiBaseURL     string
	botToken       string
	chatID         string
	disablePreview bool
	logger         zerolog.Logger
}

// NewTelegramNotifier creates a TelegramNotifier from notification
// configuration.
func NewTelegramNotifier(cfg *config.NotificationConfig, logger zerolog.Logger) *TelegramNotifier {
	apiBase := cfg.APIBaseURL
	if apiBase == "" {
		apiBase = config.DefaultTelegramAPIBaseURL
	}

	client := resty.New()
	client.SetTimeout(30 * time.Second)

	return &TelegramNotifier{
		client:         client,
		apiBaseURL:     apiBase,
		botToken:       cfg.BotToken,
		chatID:         cfg.ChatID,
		disablePreview: cfg.DisableLinkPreview,
		logger:         logger.With().Str("component", "TelegramNotifier").Logger(),
	}
}

// Notify delivers one event. When the event carries an image, the
// image-with-caption delivery is attempted first; on any failure the
// same content falls back to a text-only message with the link
// appended. The event counts as delivered if either attempt succeeds.
// An error return never aborts the caller's batch: it means this one
// event stays pending and will be retried on the next run.
func (tn *TelegramNotifier) Notify(ctx context.Context, event *models.NotificationEvent) error {
	builder := NewPayloadBuilder().
		WithChatID(tn.chatID).
		WithText(FormatEvent(event)).
		WithDisablePreview(tn.disablePreview)

	link := ""
	if event.Entry != nil {
		link = event.Entry.Link
		builder.WithLinkButton("Open call", link)
	}

	if event.Entry != nil && event.Entry.ImageURL != "" {
		err := tn.call(ctx, "sendPhoto", builder.BuildPhoto(event.Entry.ImageURL))
		if err == nil {
			tn.logger.Info().Str("kind", string(event.Kind)).Msg("Notification delivered with image")
			return nil
		}
		tn.logger.Warn().Err(err).Str("image_url", event.Entry.ImageURL).Msg("Image delivery failed, falling back to text")

		// Fallback text carries the raw link so the message stays
		// self-contained without the image.
		if link != "" {
			builder.WithText(FormatEvent(event) + "\n\n" + link)
		}
	}

	if err := tn.call(ctx, "sendMessage", builder.BuildMessage()); err != nil {
		tn.logger.Error().Err(err).Str("kind", string(event.Kind)).Msg("Notification delivery failed")
		return err
	}

	tn.logger.Info().Str("kind", string(event.Kind)).Msg("Notification delivered")
	return nil
}

// call posts one Bot API method and interprets the response envelope.
func (tn *TelegramNotifier) call(ctx context.Context, method string, payload any) error {
	url := tn.apiBaseURL + "/bot" + tn.botToken + "/" + method

	resp, err := tn.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(url)
	if err != nil {
		return errorwrapper.NewNetworkError(tn.apiBaseURL, "Telegram "+method+" request failed", err)
	}

	var result apiResponse
	if err := json.Unmarshal(resp.Body(), &result); err == nil && !result.OK && result.Description != "" {
		return errorwrapper.NewHTTPErrorWithURL(resp.StatusCode(), "Telegram "+method+": "+result.Description, tn.apiBaseURL)
	}
	if resp.IsError() {
		return errorwrapper.NewHTTPErrorWithURL(resp.StatusCode(), "Telegram "+method+" returned non-success status", tn.apiBaseURL)
	}

	return nil
}
