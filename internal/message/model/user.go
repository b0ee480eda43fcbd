package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID uuid.UUID `bun:",pk,type:uuid,default:gen_random_uuid()" json:"id"`

	// Username = unique @handle (owned by the auth service)
	Username string `bun:",unique,notnull" json:"username"`

	// Name = display name shown in chats
	Name   string `bun:",notnull" json:"name"`
	Avatar string `bun:",null" json:"avatar,omitempty"`

	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"-"`
	UpdatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"-"`
}
