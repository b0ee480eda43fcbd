package message

import "github.com/google/uuid"

// NOTE: commands travel from handler to usecase

type SendMessageCommand struct {
	SenderID uuid.UUID
	RoomID   uuid.UUID
	Content  string
	Type     string // defaults to "text" when empty
	FileURL  string
	FileName string
}

type DeleteScope string

const (
	DeleteForMe       DeleteScope = "me"
	DeleteForEveryone DeleteScope = "everyone"
)

type DeleteMessageCommand struct {
	MessageID   uuid.UUID
	RequesterID uuid.UUID
	Scope       DeleteScope
}
