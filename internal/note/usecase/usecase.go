package usecase

import (
	"context"
	stdErrors "errors"

	"github.com/google/uuid"

	"github.com/apurva-sri/Bolio-chatWeb/internal/note"
	Note "github.com/apurva-sri/Bolio-chatWeb/internal/note/model"
	"github.com/apurva-sri/Bolio-chatWeb/internal/note/repository"
	"github.com/apurva-sri/Bolio-chatWeb/pkg/errors"
	"github.com/apurva-sri/Bolio-chatWeb/pkg/logger"
)

type NoteUsecase struct {
	repo   note.NoteRepository
	logger logger.Logger
}

func NewNoteUsecase(repo note.NoteRepository, logger logger.Logger) *NoteUsecase {
	return &NoteUsecase{repo: repo, logger: logger}
}

func (uc *NoteUsecase) Create(ctx context.Context, cmd note.CreateNoteCommand) (*Note.Note, error) {
	title := cmd.Title
	if title == "" {
		title = "Untitled"
	}
	color := cmd.Color
	if color == "" {
		color = "#1e2a30"
	}

	n := &Note.Note{
		UserID:     cmd.UserID,
		Title:      title,
		Content:    cmd.Content,
		Color:      color,
		ReminderAt: cmd.ReminderAt,
	}

	if err := uc.repo.CreateNote(ctx, n); err != nil {
		uc.logger.Error("failed to create note", "user_id", cmd.UserID, "err", err)
		return nil, errors.Internal("failed to create note")
	}
	return n, nil
}

func (uc *NoteUsecase) List(ctx context.Context, userID uuid.UUID) ([]Note.Note, error) {
	notes, err := uc.repo.ListUserNotes(ctx, userID)
	if err != nil {
		uc.logger.Error("failed to list notes", "user_id", userID, "err", err)
		return nil, errors.Internal("failed to list notes")
	}
	return notes, nil
}

func (uc *NoteUsecase) Update(ctx context.Context, cmd note.UpdateNoteCommand) (*Note.Note, error) {
	n, err := uc.repo.GetNoteByID(ctx, cmd.NoteID)
	if err != nil {
		if stdErrors.Is(err, repository.ErrNoteNotFound) {
			return nil, errors.ErrNoteNotFound
		}
		uc.logger.Error("failed to load note", "note_id", cmd.NoteID, "err", err)
		return nil, errors.Internal("failed to load note")
	}
	if n.UserID != cmd.UserID {
		return nil, errors.ErrNoteNotFound
	}

	if cmd.Title != nil {
		n.Title = *cmd.Title
	}
	if cmd.Content != nil {
		n.Content = *cmd.Content
	}
	if cmd.Color != nil {
		n.Color = *cmd.Color
	}
	if cmd.IsPinned != nil {
		n.IsPinned = *cmd.IsPinned
	}
	if cmd.ClearReminder {
		n.ReminderAt = nil
	} else if cmd.ReminderAt != nil {
		n.ReminderAt = cmd.ReminderAt
		// moved reminder fires again
		n.ReminderSent = false
	}

	if err := uc.repo.UpdateNote(ctx, n); err != nil {
		if stdErrors.Is(err, repository.ErrNoteNotFound) {
			return nil, errors.ErrNoteNotFound
		}
		uc.logger.Error("failed to update note", "note_id", cmd.NoteID, "err", err)
		return nil, errors.Internal("failed to update note")
	}
	return n, nil
}

func (uc *NoteUsecase) Delete(ctx context.Context, noteID, userID uuid.UUID) error {
	if err := uc.repo.DeleteNote(ctx, noteID, userID); err != nil {
		uc.logger.Error("failed to delete note", "note_id", noteID, "err", err)
		return errors.Internal("failed to delete note")
	}
	return nil
}
