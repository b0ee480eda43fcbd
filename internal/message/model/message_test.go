package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestMessage_FullyRead(t *testing.T) {
	sender := uuid.New()
	x := uuid.New()
	y := uuid.New()
	participants := []uuid.UUID{sender, x, y}

	msg := &Message{SenderID: sender, ReadBy: []uuid.UUID{sender}}
	assert.False(t, msg.FullyRead(participants))

	// order of arrival must not matter
	msg.ReadBy = append(msg.ReadBy, y)
	assert.False(t, msg.FullyRead(participants))

	msg.ReadBy = append(msg.ReadBy, x)
	assert.True(t, msg.FullyRead(participants))
}

func TestMessage_FullyRead_SenderOnly(t *testing.T) {
	sender := uuid.New()
	msg := &Message{SenderID: sender, ReadBy: []uuid.UUID{sender}}

	// a room with no other participants is trivially fully read
	assert.True(t, msg.FullyRead([]uuid.UUID{sender}))
}

func TestValidType(t *testing.T) {
	assert.True(t, ValidType(TypeText))
	assert.True(t, ValidType(TypeAudio))
	assert.False(t, ValidType("sticker"))
}
