package note

import (
	"context"
	"time"

	"github.com/google/uuid"

	Note "github.com/apurva-sri/Bolio-chatWeb/internal/note/model"
)

type NoteRepository interface {
	CreateNote(ctx context.Context, n *Note.Note) error
	GetNoteByID(ctx context.Context, id uuid.UUID) (*Note.Note, error)
	ListUserNotes(ctx context.Context, userID uuid.UUID) ([]Note.Note, error)
	UpdateNote(ctx context.Context, n *Note.Note) error
	DeleteNote(ctx context.Context, id, userID uuid.UUID) error

	// ClaimDueReminders atomically flips reminder_sent on every due, unsent
	// note and returns the claimed rows. A concurrent sweep observes
	// reminder_sent = true and claims nothing.
	ClaimDueReminders(ctx context.Context, now time.Time) ([]Note.Note, error)
}
