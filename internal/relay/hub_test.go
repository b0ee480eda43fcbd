package relay

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apurva-sri/Bolio-chatWeb/internal/message"
	models "github.com/apurva-sri/Bolio-chatWeb/internal/message/model"
	"github.com/apurva-sri/Bolio-chatWeb/pkg/logger"
)

// stubHubMessages satisfies message.MessageUsecase for hub dispatch tests.
type stubHubMessages struct {
	message.MessageUsecase

	msg         *models.Message
	roomsRead   []uuid.UUID
	deletedCmds []message.DeleteMessageCommand
}

func (s *stubHubMessages) GetMessage(_ context.Context, _ uuid.UUID) (*models.Message, error) {
	return s.msg, nil
}

func (s *stubHubMessages) MarkRoomRead(_ context.Context, roomID, _ uuid.UUID) error {
	s.roomsRead = append(s.roomsRead, roomID)
	return nil
}

func (s *stubHubMessages) Delete(_ context.Context, cmd message.DeleteMessageCommand) (*models.Message, error) {
	s.deletedCmds = append(s.deletedCmds, cmd)
	return s.msg, nil
}

func (s *stubHubMessages) Participants(_ context.Context, _ uuid.UUID) ([]uuid.UUID, error) {
	return nil, nil
}

func newTestHub(msgs message.MessageUsecase) *Hub {
	return NewHub(NewPresence(), NewRooms(), msgs, &fakeNotifier{}, logger.Logger{})
}

// addConn registers a connection with the hub without a real socket; dispatch
// and broadcast only touch the send channel.
func addConn(h *Hub) *Conn {
	c := &Conn{id: uuid.New(), send: make(chan Event, 64), hub: h}
	h.mu.Lock()
	h.conns[c.id] = c
	h.mu.Unlock()
	return c
}

func drain(c *Conn) []Event {
	var out []Event
	for {
		select {
		case ev := <-c.send:
			out = append(out, ev)
		default:
			return out
		}
	}
}

func TestHub_DispatchIdentify(t *testing.T) {
	h := newTestHub(&stubHubMessages{})
	c := addConn(h)
	other := addConn(h)
	userID := uuid.New()

	h.dispatch(c, NewEvent(EvIdentify, IdentifyPayload{UserID: userID}))

	assert.Equal(t, userID, c.userID)
	connID, ok := h.presence.Lookup(userID)
	assert.True(t, ok)
	assert.Equal(t, c.id, connID)

	// both connections get the snapshot, the identifying one included
	for _, conn := range []*Conn{c, other} {
		evs := drain(conn)
		require.Len(t, evs, 1)
		assert.Equal(t, EvPresenceSnapshot, evs[0].Name)
		var p PresenceSnapshotPayload
		require.NoError(t, json.Unmarshal(evs[0].Data, &p))
		assert.Equal(t, []uuid.UUID{userID}, p.Users)
	}
}

func TestHub_DispatchIdentify_RejectsNilUser(t *testing.T) {
	h := newTestHub(&stubHubMessages{})
	c := addConn(h)

	h.dispatch(c, NewEvent(EvIdentify, IdentifyPayload{}))

	assert.Equal(t, uuid.Nil, c.userID)
	assert.Empty(t, drain(c))
}

func TestHub_DispatchJoinLeave(t *testing.T) {
	h := newTestHub(&stubHubMessages{})
	c := addConn(h)
	roomID := uuid.New()

	h.dispatch(c, NewEvent(EvJoinRoom, RoomPayload{RoomID: roomID}))
	assert.Equal(t, []uuid.UUID{c.id}, h.rooms.MembersOf(roomID))

	h.dispatch(c, NewEvent(EvLeaveRoom, RoomPayload{RoomID: roomID}))
	assert.Empty(t, h.rooms.MembersOf(roomID))
}

func TestHub_DispatchTyping(t *testing.T) {
	h := newTestHub(&stubHubMessages{})
	typer := addConn(h)
	watcher := addConn(h)
	roomID := uuid.New()
	userID := uuid.New()

	h.dispatch(typer, NewEvent(EvIdentify, IdentifyPayload{UserID: userID}))
	drain(typer)
	drain(watcher)
	h.dispatch(typer, NewEvent(EvJoinRoom, RoomPayload{RoomID: roomID}))
	h.dispatch(watcher, NewEvent(EvJoinRoom, RoomPayload{RoomID: roomID}))

	h.dispatch(typer, NewEvent(EvTypingStart, RoomPayload{RoomID: roomID}))

	// the typist never hears its own typing event
	assert.Empty(t, drain(typer))
	evs := drain(watcher)
	require.Len(t, evs, 1)
	assert.Equal(t, EvTyping, evs[0].Name)
	var p TypingPayload
	require.NoError(t, json.Unmarshal(evs[0].Data, &p))
	assert.Equal(t, userID, p.UserID)
	assert.True(t, p.Active)

	h.dispatch(typer, NewEvent(EvTypingStop, RoomPayload{RoomID: roomID}))
	evs = drain(watcher)
	require.Len(t, evs, 1)
	require.NoError(t, json.Unmarshal(evs[0].Data, &p))
	assert.False(t, p.Active)
}

func TestHub_DispatchMessageRead(t *testing.T) {
	msgs := &stubHubMessages{}
	h := newTestHub(msgs)
	reader := addConn(h)
	other := addConn(h)
	roomID := uuid.New()
	userID := uuid.New()

	h.dispatch(reader, NewEvent(EvIdentify, IdentifyPayload{UserID: userID}))
	drain(reader)
	drain(other)
	h.dispatch(reader, NewEvent(EvJoinRoom, RoomPayload{RoomID: roomID}))
	h.dispatch(other, NewEvent(EvJoinRoom, RoomPayload{RoomID: roomID}))

	h.dispatch(reader, NewEvent(EvMessageRead, ReadPayload{RoomID: roomID}))

	assert.Equal(t, []uuid.UUID{roomID}, msgs.roomsRead)
	// broadcast goes to the room except the reader
	assert.Empty(t, drain(reader))
	evs := drain(other)
	require.Len(t, evs, 1)
	assert.Equal(t, EvReadUpdated, evs[0].Name)
}

func TestHub_DispatchDeleteMessage(t *testing.T) {
	roomID := uuid.New()
	messageID := uuid.New()
	userID := uuid.New()

	t.Run("delete for everyone is broadcast to the room", func(t *testing.T) {
		msgs := &stubHubMessages{msg: &models.Message{ID: messageID, RoomID: roomID}}
		h := newTestHub(msgs)
		requester := addConn(h)
		other := addConn(h)

		h.dispatch(requester, NewEvent(EvIdentify, IdentifyPayload{UserID: userID}))
		drain(requester)
		drain(other)
		h.dispatch(requester, NewEvent(EvJoinRoom, RoomPayload{RoomID: roomID}))
		h.dispatch(other, NewEvent(EvJoinRoom, RoomPayload{RoomID: roomID}))

		h.dispatch(requester, NewEvent(EvDeleteMessage, DeletePayload{MessageID: messageID, Scope: "everyone"}))

		require.Len(t, msgs.deletedCmds, 1)
		assert.Equal(t, message.DeleteForEveryone, msgs.deletedCmds[0].Scope)
		assert.Equal(t, userID, msgs.deletedCmds[0].RequesterID)
		for _, conn := range []*Conn{requester, other} {
			evs := drain(conn)
			require.Len(t, evs, 1)
			assert.Equal(t, EvMessageDeleted, evs[0].Name)
		}
	})

	t.Run("delete for me only acks the requester", func(t *testing.T) {
		msgs := &stubHubMessages{msg: &models.Message{ID: messageID, RoomID: roomID}}
		h := newTestHub(msgs)
		requester := addConn(h)
		other := addConn(h)

		h.dispatch(requester, NewEvent(EvIdentify, IdentifyPayload{UserID: userID}))
		drain(requester)
		drain(other)
		h.dispatch(other, NewEvent(EvJoinRoom, RoomPayload{RoomID: roomID}))

		h.dispatch(requester, NewEvent(EvDeleteMessage, DeletePayload{MessageID: messageID, Scope: "me"}))

		evs := drain(requester)
		require.Len(t, evs, 1)
		assert.Equal(t, EvMessageDeleted, evs[0].Name)
		assert.Empty(t, drain(other))
	})
}

func TestHub_DispatchSendMessage(t *testing.T) {
	roomID := uuid.New()
	messageID := uuid.New()
	senderID := uuid.New()
	memberID := uuid.New()

	stored := &models.Message{ID: messageID, RoomID: roomID, SenderID: senderID, Type: models.TypeText, Content: "hi"}

	t.Run("sender triggers fan-out to the room", func(t *testing.T) {
		h := newTestHub(&stubHubMessages{msg: stored})
		sender := addConn(h)
		member := addConn(h)

		h.dispatch(sender, NewEvent(EvIdentify, IdentifyPayload{UserID: senderID}))
		h.dispatch(member, NewEvent(EvIdentify, IdentifyPayload{UserID: memberID}))
		drain(sender)
		drain(member)
		h.dispatch(sender, NewEvent(EvJoinRoom, RoomPayload{RoomID: roomID}))
		h.dispatch(member, NewEvent(EvJoinRoom, RoomPayload{RoomID: roomID}))

		h.dispatch(sender, NewEvent(EvSendMessage, SendMessagePayload{MessageID: messageID}))

		assert.Empty(t, drain(sender))
		evs := drain(member)
		require.Len(t, evs, 1)
		assert.Equal(t, EvMessageReceived, evs[0].Name)
	})

	t.Run("unidentified connection cannot trigger fan-out", func(t *testing.T) {
		h := newTestHub(&stubHubMessages{msg: stored})
		anon := addConn(h)
		member := addConn(h)

		h.dispatch(member, NewEvent(EvIdentify, IdentifyPayload{UserID: memberID}))
		drain(member)
		h.dispatch(anon, NewEvent(EvJoinRoom, RoomPayload{RoomID: roomID}))
		h.dispatch(member, NewEvent(EvJoinRoom, RoomPayload{RoomID: roomID}))

		h.dispatch(anon, NewEvent(EvSendMessage, SendMessagePayload{MessageID: messageID}))

		assert.Empty(t, drain(anon))
		assert.Empty(t, drain(member))
	})

	t.Run("replay from a non-sender is rejected", func(t *testing.T) {
		h := newTestHub(&stubHubMessages{msg: stored})
		replayer := addConn(h)
		member := addConn(h)

		h.dispatch(replayer, NewEvent(EvIdentify, IdentifyPayload{UserID: memberID}))
		h.dispatch(member, NewEvent(EvIdentify, IdentifyPayload{UserID: uuid.New()}))
		drain(replayer)
		drain(member)
		h.dispatch(replayer, NewEvent(EvJoinRoom, RoomPayload{RoomID: roomID}))
		h.dispatch(member, NewEvent(EvJoinRoom, RoomPayload{RoomID: roomID}))

		// the stored message belongs to senderID; this connection does not
		h.dispatch(replayer, NewEvent(EvSendMessage, SendMessagePayload{MessageID: messageID}))

		assert.Empty(t, drain(replayer))
		assert.Empty(t, drain(member))
	})
}

func TestHub_DispatchIgnoresUnknownAndMalformed(t *testing.T) {
	h := newTestHub(&stubHubMessages{})
	c := addConn(h)

	h.dispatch(c, Event{Name: "resubscribe"})
	h.dispatch(c, Event{Name: EvJoinRoom, Data: json.RawMessage(`{"roomId":`)})
	h.dispatch(c, Event{Name: EvMessageRead, Data: json.RawMessage(`{}`)}) // unidentified conn

	assert.Empty(t, drain(c))
	assert.Empty(t, h.presence.Snapshot())
}

func TestHub_Unregister(t *testing.T) {
	h := newTestHub(&stubHubMessages{})
	leaving := addConn(h)
	staying := addConn(h)
	userID := uuid.New()

	h.dispatch(leaving, NewEvent(EvIdentify, IdentifyPayload{UserID: userID}))
	drain(leaving)
	drain(staying)

	h.unregister(leaving)

	_, ok := h.Peer(leaving.id)
	assert.False(t, ok)
	_, online := h.presence.Lookup(userID)
	assert.False(t, online)

	// survivors hear the updated (now empty) snapshot
	evs := drain(staying)
	require.Len(t, evs, 1)
	assert.Equal(t, EvPresenceSnapshot, evs[0].Name)

	// double unregister is safe
	h.unregister(leaving)
}

// Broadcast snapshots the conn table under the read lock and sends after
// releasing it, so a concurrent unregister can close a connection that a
// broadcast is still holding. Run with -race.
func TestHub_BroadcastRacesUnregister(t *testing.T) {
	h := newTestHub(&stubHubMessages{})
	ev := NewEvent(EvPresenceSnapshot, PresenceSnapshotPayload{})

	for i := 0; i < 200; i++ {
		c := addConn(h)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				h.broadcast(ev)
			}
		}()
		go func() {
			defer wg.Done()
			h.unregister(c)
		}()
		wg.Wait()

		// sends after close are refused instead of panicking
		assert.False(t, c.Send(ev))
	}
}
