package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	Note "github.com/apurva-sri/Bolio-chatWeb/internal/note/model"
	"github.com/apurva-sri/Bolio-chatWeb/pkg/logger"
)

type NoteRepository struct {
	db     *bun.DB
	logger *logger.Logger
}

var ErrNoteNotFound = errors.New("note not found")

func NewNoteRepository(db *bun.DB, logger logger.Logger) *NoteRepository {
	return &NoteRepository{
		db:     db,
		logger: &logger,
	}
}

func (r *NoteRepository) CreateNote(ctx context.Context, n *Note.Note) error {

	_, err := r.db.NewInsert().Model(n).Returning("*").Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "noteRepo.CreateNote.Insert: ")
	}
	return nil
}

func (r *NoteRepository) GetNoteByID(ctx context.Context, id uuid.UUID) (*Note.Note, error) {

	n := new(Note.Note)
	err := r.db.NewSelect().Model(n).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoteNotFound
		}
		return nil, errors.Wrap(err, "noteRepo.GetNoteByID.Scan: ")
	}
	return n, nil
}

func (r *NoteRepository) ListUserNotes(ctx context.Context, userID uuid.UUID) ([]Note.Note, error) {

	var notes []Note.Note
	err := r.db.NewSelect().
		Model(&notes).
		Where("user_id = ?", userID).
		Order("is_pinned DESC", "updated_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "noteRepo.ListUserNotes.Scan: ")
	}
	return notes, nil
}

func (r *NoteRepository) UpdateNote(ctx context.Context, n *Note.Note) error {

	res, err := r.db.NewUpdate().
		Model(n).
		Column("title", "content", "color", "reminder_at", "reminder_sent", "is_pinned").
		Set("updated_at = current_timestamp").
		Where("id = ?", n.ID).
		Where("user_id = ?", n.UserID).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "noteRepo.UpdateNote.Update: ")
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrNoteNotFound
	}
	return nil
}

func (r *NoteRepository) DeleteNote(ctx context.Context, id, userID uuid.UUID) error {

	_, err := r.db.NewDelete().
		Model((*Note.Note)(nil)).
		Where("id = ?", id).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "noteRepo.DeleteNote.Exec: ")
	}
	return nil
}

// ClaimDueReminders is the single atomic claim: UPDATE ... RETURNING, so two
// sweeps racing over the same due window can never both fire a reminder.
func (r *NoteRepository) ClaimDueReminders(ctx context.Context, now time.Time) ([]Note.Note, error) {

	var claimed []Note.Note
	_, err := r.db.NewUpdate().
		Model((*Note.Note)(nil)).
		Set("reminder_sent = ?", true).
		Where("reminder_at IS NOT NULL").
		Where("reminder_at <= ?", now).
		Where("reminder_sent = ?", false).
		Returning("*").
		Exec(ctx, &claimed)
	if err != nil {
		return nil, errors.Wrap(err, "noteRepo.ClaimDueReminders.Update: ")
	}
	return claimed, nil
}
