package realtime

import (
	"fmt"

	"github.com/google/uuid"
)

// SSEEvent names a row-level change. Subscribers treat every event the same
// way: re-fetch the affected list. The payload is advisory only and must not
// be used for incremental state updates.
type SSEEvent string

const (
	SSEEventWeddingUpdated     SSEEvent = "WeddingUpdated"
	SSEEventPartnerJoined      SSEEvent = "PartnerJoined"
	SSEEventTaskChanged        SSEEvent = "TaskChanged"
	SSEEventGuestChanged       SSEEvent = "GuestChanged"
	SSEEventBudgetItemChanged  SSEEvent = "BudgetItemChanged"
	SSEEventVendorChanged      SSEEvent = "VendorChanged"
	SSEEventInspirationChanged SSEEvent = "InspirationChanged"
	SSEEventMessageCreated     SSEEvent = "MessageCreated"
	SSEEventNoteChanged        SSEEvent = "NoteChanged"
	SSEEventNotification       SSEEvent = "Notification"
)

type SSEMessage struct {
	Channel string   `json:"channel"`
	Event   SSEEvent `json:"event"`
	Data    any      `json:"data,omitempty"`
}

// TableChannel builds the subscription topic for one table filtered to one
// wedding, mirroring the subscribe-by-table-and-filter shape of the feed.
func TableChannel(table string, weddingID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", table, weddingID)
}

// UserChannel is the per-user topic for notification deliveries.
func UserChannel(userID uuid.UUID) string {
	return fmt.Sprintf("notifications:%s", userID)
}
