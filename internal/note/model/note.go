package model

import (
	"time"

	"github.com/google/uuid"
)

type Note struct {
	ID     uuid.UUID `bun:",pk,type:uuid,default:gen_random_uuid()" json:"id"`
	UserID uuid.UUID `bun:",notnull,type:uuid" json:"userId"`

	Title   string `bun:",notnull,default:'Untitled'" json:"title"`
	Content string `bun:",null" json:"content"`
	Color   string `bun:",notnull,default:'#1e2a30'" json:"color"`

	ReminderAt *time.Time `bun:",nullzero" json:"reminderAt,omitempty"`
	// ReminderSent flips true atomically with the sweep that claims the note,
	// never by a separate read-then-write.
	ReminderSent bool `bun:",default:false" json:"reminderSent"`

	IsPinned bool `bun:",default:false" json:"isPinned"`

	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"updatedAt"`
}
