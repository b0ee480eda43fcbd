package message

import (
	"context"

	"github.com/google/uuid"

	Message "github.com/apurva-sri/Bolio-chatWeb/internal/message/model"
)

type MessageRepository interface {
	CreateMessage(ctx context.Context, msg *Message.Message) error
	// GetMessageByID loads the message with its sender populated, for
	// re-hydration before fan-out.
	GetMessageByID(ctx context.Context, id uuid.UUID) (*Message.Message, error)
	ListRoomMessages(ctx context.Context, roomID, viewerID uuid.UUID) ([]Message.Message, error)

	// AppendDelivery adds userID to the delivered_to or read_by set.
	// Monotonic: entries are only ever added. Returns whether the set changed.
	AppendDelivery(ctx context.Context, messageID, userID uuid.UUID, kind Message.DeliveryKind) (bool, error)
	// AppendRoomRead marks every message of the room as read (and delivered)
	// by userID in one statement.
	AppendRoomRead(ctx context.Context, roomID, userID uuid.UUID) error

	GetRoomParticipants(ctx context.Context, roomID uuid.UUID) ([]uuid.UUID, error)
	TouchRoomLastMessage(ctx context.Context, roomID, messageID uuid.UUID) error

	MarkDeletedFor(ctx context.Context, messageID, userID uuid.UUID) error
	MarkDeletedForEveryone(ctx context.Context, messageID uuid.UUID) error
}
