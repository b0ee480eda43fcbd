package relay

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Client -> server events
const (
	EvIdentify         = "identify"
	EvJoinRoom         = "joinRoom"
	EvLeaveRoom        = "leaveRoom"
	EvSendMessage      = "sendMessage"
	EvMessageDelivered = "messageDelivered"
	EvMessageRead      = "messageRead"
	EvDeleteMessage    = "deleteMessage"
	EvTypingStart      = "typingStart"
	EvTypingStop       = "typingStop"
)

// Server -> client events
const (
	EvPresenceSnapshot = "presenceSnapshot"
	EvMessageReceived  = "messageReceived"
	EvDeliveryUpdated  = "deliveryUpdated"
	EvReadUpdated      = "readUpdated"
	EvMessageDeleted   = "messageDeleted"
	EvTyping           = "typing"
	EvReminderFired    = "reminderFired"
)

// Event is the wire envelope: a discriminated kind plus a JSON payload.
type Event struct {
	Name string          `json:"event"`
	Data json.RawMessage `json:"data,omitempty"`
}

func NewEvent(name string, payload any) Event {
	data, err := json.Marshal(payload)
	if err != nil {
		// payload types are all marshalable structs; treat as empty
		return Event{Name: name}
	}
	return Event{Name: name, Data: data}
}

type IdentifyPayload struct {
	UserID uuid.UUID `json:"userId"`
}

type RoomPayload struct {
	RoomID uuid.UUID `json:"roomId"`
}

type SendMessagePayload struct {
	MessageID uuid.UUID `json:"messageId"`
}

type DeliveredPayload struct {
	MessageID uuid.UUID `json:"messageId"`
}

type ReadPayload struct {
	RoomID uuid.UUID `json:"roomId"`
}

type DeletePayload struct {
	MessageID uuid.UUID `json:"messageId"`
	Scope     string    `json:"scope"` // "me" | "everyone"
}

type PresenceSnapshotPayload struct {
	Users []uuid.UUID `json:"users"`
}

type DeliveryUpdatePayload struct {
	MessageID uuid.UUID `json:"messageId"`
	UserID    uuid.UUID `json:"userId"`
}

type ReadUpdatePayload struct {
	RoomID uuid.UUID `json:"roomId"`
	UserID uuid.UUID `json:"userId"`
}

type MessageDeletedPayload struct {
	MessageID uuid.UUID `json:"messageId"`
	Scope     string    `json:"scope"`
}

type TypingPayload struct {
	RoomID uuid.UUID `json:"roomId"`
	UserID uuid.UUID `json:"userId"`
	Active bool      `json:"active"`
}

type ReminderPayload struct {
	NoteID  uuid.UUID `json:"noteId"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
}
