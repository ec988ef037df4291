package notifier

// PayloadBuilder helps in constructing Telegram message payloads.
type PayloadBuilder struct {
	chatID         string
	text           string
	disablePreview bool
	markup         *InlineKeyboardMarkup
}

// NewPayloadBuilder creates a new instance of PayloadBuilder.
func NewPayloadBuilder() *PayloadBuilder {
	return &PayloadBuilder{}
}

// WithChatID sets the recipient chat id.
func (b *PayloadBuilder) WithChatID(chatID string) *PayloadBuilder {
	b.chatID = chatID
	return b
}

// WithText sets the message text (HTML formatted).
func (b *PayloadBuilder) WithText(text string) *PayloadBuilder {
	b.text = text
	return b
}

// WithDisablePreview disables the automatic link preview.
func (b *PayloadBuilder) WithDisablePreview(disable bool) *PayloadBuilder {
	b.disablePreview = disable
	return b
}

// WithLinkButton attaches a single call-to-action button.
func (b *PayloadBuilder) WithLinkButton(label, url string) *PayloadBuilder {
	if url == "" {
		return b
	}
	b.markup = &InlineKeyboardMarkup{
		InlineKeyboard: [][]InlineKeyboardButton{{{Text: label, URL: url}}},
	}
	return b
}

// BuildMessage returns a sendMessage payload.
func (b *PayloadBuilder) BuildMessage() SendMessagePayload {
	return SendMessagePayload{
		ChatID:                b.chatID,
		Text:                  b.text,
		ParseMode:             "HTML",
		DisableWebPagePreview: b.disablePreview,
		ReplyMarkup:           b.markup,
	}
}

// BuildPhoto returns a sendPhoto payload carrying the same content as
// a caption.
func (b *PayloadBuilder) BuildPhoto(imageURL string) SendPhotoPayload {
	return SendPhotoPayload{
		ChatID:      b.chatID,
		Photo:       imageURL,
		Caption:     b.text,
		ParseMode:   "HTML",
		ReplyMarkup: b.markup,
	}
}
