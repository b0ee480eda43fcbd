package usecase

import (
	"context"
	stdErrors "errors"
	"strings"

	"github.com/google/uuid"

	"github.com/apurva-sri/Bolio-chatWeb/config"
	"github.com/apurva-sri/Bolio-chatWeb/internal/message"
	Message "github.com/apurva-sri/Bolio-chatWeb/internal/message/model"
	"github.com/apurva-sri/Bolio-chatWeb/internal/message/repository"
	"github.com/apurva-sri/Bolio-chatWeb/pkg/errors"
	"github.com/apurva-sri/Bolio-chatWeb/pkg/logger"
)

type MessageUsecase struct {
	repo   message.MessageRepository
	logger logger.Logger
	config config.Config
}

func NewMessageUsecase(repo message.MessageRepository, logger logger.Logger, config config.Config) *MessageUsecase {
	return &MessageUsecase{repo: repo, logger: logger, config: config}
}

func (uc *MessageUsecase) Send(ctx context.Context, cmd message.SendMessageCommand) (*Message.Message, error) {
	msgType := cmd.Type
	if msgType == "" {
		msgType = Message.TypeText
	}
	if !Message.ValidType(msgType) {
		return nil, errors.ErrInvalidMessageType
	}
	if strings.TrimSpace(cmd.Content) == "" && cmd.FileURL == "" {
		return nil, errors.ErrEmptyMessage
	}

	msg := &Message.Message{
		RoomID:   cmd.RoomID,
		SenderID: cmd.SenderID,
		Content:  strings.TrimSpace(cmd.Content),
		Type:     msgType,
		FileURL:  cmd.FileURL,
		FileName: cmd.FileName,
		// sender has trivially read their own message; delivered_to
		// starts empty and never includes the sender
		DeliveredTo: []uuid.UUID{},
		ReadBy:      []uuid.UUID{cmd.SenderID},
		DeleteFor:   []uuid.UUID{},
	}

	if err := uc.repo.CreateMessage(ctx, msg); err != nil {
		uc.logger.Error("failed to persist message", "room_id", cmd.RoomID, "err", err)
		return nil, errors.ErrSendFailed(err)
	}

	if err := uc.repo.TouchRoomLastMessage(ctx, cmd.RoomID, msg.ID); err != nil {
		// preview staleness only, the message itself is safe
		uc.logger.Warn("failed to update room last message", "room_id", cmd.RoomID, "err", err)
	}

	return msg, nil
}

func (uc *MessageUsecase) GetMessage(ctx context.Context, id uuid.UUID) (*Message.Message, error) {
	msg, err := uc.repo.GetMessageByID(ctx, id)
	if err != nil {
		if stdErrors.Is(err, repository.ErrMessageNotFound) {
			return nil, errors.ErrMessageNotFound
		}
		return nil, errors.Internal("failed to load message")
	}
	return msg, nil
}

func (uc *MessageUsecase) History(ctx context.Context, roomID, viewerID uuid.UUID) ([]Message.Message, error) {
	msgs, err := uc.repo.ListRoomMessages(ctx, roomID, viewerID)
	if err != nil {
		uc.logger.Error("failed to list room messages", "room_id", roomID, "err", err)
		return nil, errors.Internal("failed to load messages")
	}
	for i := range msgs {
		if msgs[i].IsDeletedForEveryone {
			// tombstone: keep the row, strip the payload
			msgs[i].Content = ""
			msgs[i].FileURL = ""
			msgs[i].FileName = ""
		}
	}
	return msgs, nil
}

func (uc *MessageUsecase) MarkDelivered(ctx context.Context, messageID, userID uuid.UUID) (bool, error) {
	changed, err := uc.repo.AppendDelivery(ctx, messageID, userID, Message.KindDelivered)
	if err != nil {
		uc.logger.Error("failed to mark delivered", "message_id", messageID, "user_id", userID, "err", err)
		return false, errors.Internal("failed to mark delivered")
	}
	return changed, nil
}

// MarkRead also ensures the delivered mark: the two acknowledgements arrive
// independently from clients and read must imply delivered.
func (uc *MessageUsecase) MarkRead(ctx context.Context, messageID, userID uuid.UUID) (bool, error) {
	changed, err := uc.repo.AppendDelivery(ctx, messageID, userID, Message.KindRead)
	if err != nil {
		uc.logger.Error("failed to mark read", "message_id", messageID, "user_id", userID, "err", err)
		return false, errors.Internal("failed to mark read")
	}
	if _, err := uc.repo.AppendDelivery(ctx, messageID, userID, Message.KindDelivered); err != nil {
		uc.logger.Error("failed to backfill delivered mark", "message_id", messageID, "user_id", userID, "err", err)
		return false, errors.Internal("failed to mark read")
	}
	return changed, nil
}

func (uc *MessageUsecase) MarkRoomRead(ctx context.Context, roomID, userID uuid.UUID) error {
	if err := uc.repo.AppendRoomRead(ctx, roomID, userID); err != nil {
		uc.logger.Error("failed to mark room read", "room_id", roomID, "user_id", userID, "err", err)
		return errors.Internal("failed to mark room read")
	}
	return nil
}

func (uc *MessageUsecase) Delete(ctx context.Context, cmd message.DeleteMessageCommand) (*Message.Message, error) {
	msg, err := uc.GetMessage(ctx, cmd.MessageID)
	if err != nil {
		return nil, err
	}

	switch cmd.Scope {
	case message.DeleteForMe:
		if err := uc.repo.MarkDeletedFor(ctx, cmd.MessageID, cmd.RequesterID); err != nil {
			uc.logger.Error("failed to delete message for user", "message_id", cmd.MessageID, "err", err)
			return nil, errors.Internal("failed to delete message")
		}
	case message.DeleteForEveryone:
		if msg.SenderID != cmd.RequesterID {
			return nil, errors.ErrNotMessageSender
		}
		if err := uc.repo.MarkDeletedForEveryone(ctx, cmd.MessageID); err != nil {
			uc.logger.Error("failed to delete message for everyone", "message_id", cmd.MessageID, "err", err)
			return nil, errors.Internal("failed to delete message")
		}
		msg.IsDeletedForEveryone = true
	default:
		return nil, errors.ErrInvalidDeleteScope
	}

	return msg, nil
}

func (uc *MessageUsecase) Participants(ctx context.Context, roomID uuid.UUID) ([]uuid.UUID, error) {
	ids, err := uc.repo.GetRoomParticipants(ctx, roomID)
	if err != nil {
		uc.logger.Error("failed to load room participants", "room_id", roomID, "err", err)
		return nil, errors.Internal("failed to load participants")
	}
	// every room carries at least its creator; zero rows means the room
	// does not exist
	if len(ids) == 0 {
		return nil, errors.ErrRoomNotFound
	}
	return ids, nil
}
