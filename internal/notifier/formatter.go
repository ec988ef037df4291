package notifier

import (
	"fmt"
	"html"

	"fundwatch/internal/models"
)

// FormatEvent renders the HTML message text for a notification event.
// Presentation only: classification and delivery policy live elsewhere.
func FormatEvent(event *models.NotificationEvent) string {
	switch event.Kind {
	case models.EventNew:
		return formatEntry("🆕 New funding opportunity", event.Entry)
	case models.EventReminder:
		return formatEntry("⏰ Reminder: still open", event.Entry)
	case models.EventHeartbeat:
		return fmt.Sprintf("✅ Monitor alive. %d funding opportunities currently open.", event.OpenCount)
	case models.EventAlert:
		return "🚨 " + html.EscapeString(event.AlertMessage)
	default:
		return html.EscapeString(event.AlertMessage)
	}
}

func formatEntry(header string, entry *models.Entry) string {
	if entry == nil {
		return header
	}

	text := fmt.Sprintf("%s\n<b>%s</b>", header, html.EscapeString(entry.Title))
	if entry.Summary != "" {
		text += "\n\n" + html.EscapeString(entry.Summary)
	}
	if entry.EndDate != nil {
		text += "\n\n📅 End date: " + models.FormatEndDate(*entry.EndDate)
	}
	return text
}
