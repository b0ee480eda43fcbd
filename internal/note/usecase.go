package note

import (
	"context"
	"time"

	"github.com/google/uuid"

	Note "github.com/apurva-sri/Bolio-chatWeb/internal/note/model"
)

type NoteUsecase interface {
	Create(ctx context.Context, cmd CreateNoteCommand) (*Note.Note, error)
	List(ctx context.Context, userID uuid.UUID) ([]Note.Note, error)
	// Update resets reminder_sent whenever reminderAt changes, so a moved
	// reminder fires again.
	Update(ctx context.Context, cmd UpdateNoteCommand) (*Note.Note, error)
	Delete(ctx context.Context, noteID, userID uuid.UUID) error
}

// NOTE: commands travel from handler to usecase

type CreateNoteCommand struct {
	UserID     uuid.UUID
	Title      string
	Content    string
	Color      string
	ReminderAt *time.Time
}

type UpdateNoteCommand struct {
	NoteID uuid.UUID
	UserID uuid.UUID

	Title         *string
	Content       *string
	Color         *string
	ReminderAt    *time.Time
	ClearReminder bool
	IsPinned      *bool
}
