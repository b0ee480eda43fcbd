package message

import (
	"context"

	"github.com/google/uuid"

	Message "github.com/apurva-sri/Bolio-chatWeb/internal/message/model"
)

type MessageUsecase interface {
	// Send persists a new message. The sender is seeded into read_by;
	// delivered_to starts empty (the sender is never part of it).
	Send(ctx context.Context, cmd SendMessageCommand) (*Message.Message, error)

	GetMessage(ctx context.Context, id uuid.UUID) (*Message.Message, error)
	History(ctx context.Context, roomID, viewerID uuid.UUID) ([]Message.Message, error)

	// MarkDelivered / MarkRead are idempotent monotonic unions.
	// Read implies delivered: MarkRead also ensures the delivered mark.
	MarkDelivered(ctx context.Context, messageID, userID uuid.UUID) (bool, error)
	MarkRead(ctx context.Context, messageID, userID uuid.UUID) (bool, error)
	MarkRoomRead(ctx context.Context, roomID, userID uuid.UUID) error

	Delete(ctx context.Context, cmd DeleteMessageCommand) (*Message.Message, error)

	Participants(ctx context.Context, roomID uuid.UUID) ([]uuid.UUID, error)
}
