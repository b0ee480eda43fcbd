package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeText  = "text"
	TypeImage = "image"
	TypeFile  = "file"
	TypeAudio = "audio"
	TypeVideo = "video"
)

func ValidType(t string) bool {
	switch t {
	case TypeText, TypeImage, TypeFile, TypeAudio, TypeVideo:
		return true
	}
	return false
}

type Message struct {
	ID     uuid.UUID `bun:",pk,type:uuid,default:gen_random_uuid()" json:"id"`
	RoomID uuid.UUID `bun:",notnull,type:uuid" json:"roomId"`
	Room   *Room     `bun:"rel:belongs-to,join:room_id=id" json:"-"`

	SenderID uuid.UUID `bun:",notnull,type:uuid" json:"senderId"`
	Sender   *User     `bun:"rel:belongs-to,join:sender_id=id" json:"sender,omitempty"`

	Content string `bun:",null" json:"content"`
	Type    string `bun:",notnull,default:'text'" json:"type"`

	FileURL  string `bun:",null" json:"fileUrl,omitempty"`
	FileName string `bun:",null" json:"fileName,omitempty"`

	// Sender is never included in delivered_to; it is always part of read_by.
	DeliveredTo []uuid.UUID `bun:"delivered_to,array" json:"deliveredTo"`
	ReadBy      []uuid.UUID `bun:"read_by,array" json:"readBy"`

	DeleteFor            []uuid.UUID `bun:"delete_for,array" json:"-"`
	IsDeletedForEveryone bool        `bun:",default:false" json:"isDeletedForEveryone"`

	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"updatedAt"`
}

// DeliveredToUser reports whether uid landed in the delivered set.
func (m *Message) DeliveredToUser(uid uuid.UUID) bool { return contains(m.DeliveredTo, uid) }

// ReadByUser reports whether uid landed in the read set.
func (m *Message) ReadByUser(uid uuid.UUID) bool { return contains(m.ReadBy, uid) }

// FullyRead holds when every participant other than the sender has read the
// message. Used for the aggregate "seen by all" indicator only.
func (m *Message) FullyRead(participants []uuid.UUID) bool {
	for _, p := range participants {
		if p == m.SenderID {
			continue
		}
		if !contains(m.ReadBy, p) {
			return false
		}
	}
	return true
}

func contains(ids []uuid.UUID, id uuid.UUID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
