package model

import (
	"time"

	"github.com/google/uuid"
)

// Subscription is one browser push endpoint per user, as handed over by the
// client's PushManager (endpoint URL + the p256dh/auth key pair).
type Subscription struct {
	UserID uuid.UUID `bun:",pk,type:uuid"`

	Endpoint string `bun:",notnull"`
	P256dh   string `bun:",notnull"`
	Auth     string `bun:",notnull"`

	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}
