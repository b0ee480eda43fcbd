package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	Message "github.com/apurva-sri/Bolio-chatWeb/internal/message/model"
	"github.com/apurva-sri/Bolio-chatWeb/pkg/logger"
)

type MessageRepository struct {
	db     *bun.DB
	logger *logger.Logger
}

var ErrMessageNotFound = errors.New("message not found")

func NewMessageRepository(db *bun.DB, logger logger.Logger) *MessageRepository {
	return &MessageRepository{
		db:     db,
		logger: &logger,
	}
}

func (r *MessageRepository) CreateMessage(ctx context.Context, msg *Message.Message) error {

	_, err := r.db.NewInsert().Model(msg).Returning("*").Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "messageRepo.CreateMessage.Insert: ")
	}
	return nil
}

func (r *MessageRepository) GetMessageByID(ctx context.Context, id uuid.UUID) (*Message.Message, error) {

	msg := new(Message.Message)
	err := r.db.NewSelect().
		Model(msg).
		Relation("Sender").
		Where("message.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMessageNotFound
		}
		return nil, errors.Wrap(err, "messageRepo.GetMessageByID.Scan: ")
	}
	return msg, nil
}

func (r *MessageRepository) ListRoomMessages(ctx context.Context, roomID, viewerID uuid.UUID) ([]Message.Message, error) {

	var msgs []Message.Message
	err := r.db.NewSelect().
		Model(&msgs).
		Relation("Sender").
		Where("message.room_id = ?", roomID).
		Where("NOT (? = ANY(message.delete_for))", viewerID).
		Order("message.created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "messageRepo.ListRoomMessages.Scan: ")
	}
	return msgs, nil
}

// AppendDelivery is the monotonic union: array_append guarded by a
// NOT-already-present predicate, so duplicates and replays are no-ops.
// The sender can never enter delivered_to.
func (r *MessageRepository) AppendDelivery(ctx context.Context, messageID, userID uuid.UUID, kind Message.DeliveryKind) (bool, error) {

	col := "delivered_to"
	if kind == Message.KindRead {
		col = "read_by"
	}

	q := r.db.NewUpdate().
		Model((*Message.Message)(nil)).
		Set(col+" = array_append("+col+", ?)", userID).
		Set("updated_at = current_timestamp").
		Where("id = ?", messageID).
		Where("NOT (? = ANY("+col+"))", userID)

	if kind == Message.KindDelivered {
		q = q.Where("sender_id <> ?", userID)
	}

	res, err := q.Exec(ctx)
	if err != nil {
		return false, errors.Wrap(err, "messageRepo.AppendDelivery.Update: ")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "messageRepo.AppendDelivery.RowsAffected: ")
	}
	return n > 0, nil
}

func (r *MessageRepository) AppendRoomRead(ctx context.Context, roomID, userID uuid.UUID) error {

	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {

		_, err := tx.NewUpdate().
			Model((*Message.Message)(nil)).
			Set("read_by = array_append(read_by, ?)", userID).
			Set("updated_at = current_timestamp").
			Where("room_id = ?", roomID).
			Where("NOT (? = ANY(read_by))", userID).
			Exec(ctx)
		if err != nil {
			return errors.Wrap(err, "messageRepo.AppendRoomRead.UpdateRead: ")
		}

		// read implies delivered
		_, err = tx.NewUpdate().
			Model((*Message.Message)(nil)).
			Set("delivered_to = array_append(delivered_to, ?)", userID).
			Where("room_id = ?", roomID).
			Where("sender_id <> ?", userID).
			Where("NOT (? = ANY(delivered_to))", userID).
			Exec(ctx)
		if err != nil {
			return errors.Wrap(err, "messageRepo.AppendRoomRead.UpdateDelivered: ")
		}

		return nil
	})
}

func (r *MessageRepository) GetRoomParticipants(ctx context.Context, roomID uuid.UUID) ([]uuid.UUID, error) {

	var ids []uuid.UUID
	err := r.db.NewSelect().
		Model((*Message.RoomParticipant)(nil)).
		Column("user_id").
		Where("room_id = ?", roomID).
		Scan(ctx, &ids)
	if err != nil {
		return nil, errors.Wrap(err, "messageRepo.GetRoomParticipants.Scan: ")
	}
	return ids, nil
}

func (r *MessageRepository) TouchRoomLastMessage(ctx context.Context, roomID, messageID uuid.UUID) error {

	_, err := r.db.NewUpdate().
		Model((*Message.Room)(nil)).
		Set("last_message_id = ?", messageID).
		Set("updated_at = current_timestamp").
		Where("id = ?", roomID).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "messageRepo.TouchRoomLastMessage.Update: ")
	}
	return nil
}

func (r *MessageRepository) MarkDeletedFor(ctx context.Context, messageID, userID uuid.UUID) error {

	_, err := r.db.NewUpdate().
		Model((*Message.Message)(nil)).
		Set("delete_for = array_append(delete_for, ?)", userID).
		Where("id = ?", messageID).
		Where("NOT (? = ANY(delete_for))", userID).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "messageRepo.MarkDeletedFor.Update: ")
	}
	return nil
}

func (r *MessageRepository) MarkDeletedForEveryone(ctx context.Context, messageID uuid.UUID) error {

	_, err := r.db.NewUpdate().
		Model(&Message.Message{IsDeletedForEveryone: true}).
		Column("is_deleted_for_everyone").
		Where("id = ?", messageID).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "messageRepo.MarkDeletedForEveryone.Update: ")
	}
	return nil
}
