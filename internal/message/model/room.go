package model

import (
	"time"

	"github.com/google/uuid"
)

type Room struct {
	ID uuid.UUID `bun:",pk,type:uuid,default:gen_random_uuid()" json:"id"`

	Name    string `bun:",null" json:"name,omitempty"`
	IsGroup bool   `bun:",default:false" json:"isGroup"`

	LastMessageID *uuid.UUID `bun:",nullzero,type:uuid" json:"lastMessageId,omitempty"`

	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"updatedAt"`
}

// RoomParticipant is the durable membership list of a room. Distinct from the
// transient fan-out subscription the relay keeps per live connection.
type RoomParticipant struct {
	RoomID uuid.UUID `bun:",pk,type:uuid"`
	Room   *Room     `bun:"rel:belongs-to,join:room_id=id"`

	UserID uuid.UUID `bun:",pk,type:uuid"`
	User   *User     `bun:"rel:belongs-to,join:user_id=id"`

	JoinedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}
