package scheduler

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apurva-sri/Bolio-chatWeb/internal/note/mocks"
	Note "github.com/apurva-sri/Bolio-chatWeb/internal/note/model"
	"github.com/apurva-sri/Bolio-chatWeb/internal/push"
	"github.com/apurva-sri/Bolio-chatWeb/internal/relay"
	"github.com/apurva-sri/Bolio-chatWeb/pkg/logger"
)

type recordingPeer struct {
	id  uuid.UUID
	got []relay.Event
}

func (p *recordingPeer) ID() uuid.UUID     { return p.id }
func (p *recordingPeer) UserID() uuid.UUID { return uuid.Nil }

func (p *recordingPeer) Send(ev relay.Event) bool {
	p.got = append(p.got, ev)
	return true
}

type peerTable map[uuid.UUID]*recordingPeer

func (t peerTable) Peer(connID uuid.UUID) (relay.Peer, bool) {
	p, ok := t[connID]
	if !ok {
		return nil, false
	}
	return p, true
}

type recordingNotifier struct {
	calls []struct {
		UserID uuid.UUID
		Notif  push.Notification
	}
}

func (n *recordingNotifier) Notify(userID uuid.UUID, notif push.Notification) {
	n.calls = append(n.calls, struct {
		UserID uuid.UUID
		Notif  push.Notification
	}{userID, notif})
}

func TestSweeper_Sweep(t *testing.T) {
	onlineUser := uuid.New()
	offlineUser := uuid.New()

	onlineNote := Note.Note{ID: uuid.New(), UserID: onlineUser, Title: "standup", Content: "9am call"}
	offlineNote := Note.Note{ID: uuid.New(), UserID: offlineUser, Title: "groceries"}

	t.Run("online owner gets event and push, offline owner push only", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockRepo := mocks.NewMockNoteRepository(ctrl)
		mockRepo.EXPECT().ClaimDueReminders(gomock.Any(), gomock.Any()).
			Return([]Note.Note{onlineNote, offlineNote}, nil)

		presence := relay.NewPresence()
		peer := &recordingPeer{id: uuid.New()}
		presence.Identify(peer.id, onlineUser)

		notifier := &recordingNotifier{}
		s := NewSweeper(mockRepo, presence, peerTable{peer.id: peer}, notifier, time.Minute, logger.Logger{})
		require.NoError(t, s.Sweep(context.Background()))

		require.Len(t, peer.got, 1)
		assert.Equal(t, relay.EvReminderFired, peer.got[0].Name)
		var p relay.ReminderPayload
		require.NoError(t, json.Unmarshal(peer.got[0].Data, &p))
		assert.Equal(t, onlineNote.ID, p.NoteID)
		assert.Equal(t, "standup", p.Title)

		require.Len(t, notifier.calls, 2)
		assert.Equal(t, onlineUser, notifier.calls[0].UserID)
		assert.Equal(t, "Reminder: standup", notifier.calls[0].Notif.Title)
		assert.Equal(t, "/notes", notifier.calls[0].Notif.URL)
		assert.Equal(t, offlineUser, notifier.calls[1].UserID)
		assert.Equal(t, "Reminder: groceries", notifier.calls[1].Notif.Title)
	})

	t.Run("nothing due, nothing delivered", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockRepo := mocks.NewMockNoteRepository(ctrl)
		mockRepo.EXPECT().ClaimDueReminders(gomock.Any(), gomock.Any()).Return(nil, nil)

		notifier := &recordingNotifier{}
		s := NewSweeper(mockRepo, relay.NewPresence(), peerTable{}, notifier, time.Minute, logger.Logger{})
		require.NoError(t, s.Sweep(context.Background()))

		assert.Empty(t, notifier.calls)
	})

	t.Run("claim failure skips the tick", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockRepo := mocks.NewMockNoteRepository(ctrl)
		mockRepo.EXPECT().ClaimDueReminders(gomock.Any(), gomock.Any()).
			Return(nil, assert.AnError)

		notifier := &recordingNotifier{}
		s := NewSweeper(mockRepo, relay.NewPresence(), peerTable{}, notifier, time.Minute, logger.Logger{})
		err := s.Sweep(context.Background())

		require.Error(t, err)
		assert.ErrorIs(t, err, assert.AnError)
		assert.Empty(t, notifier.calls)
	})
}

func TestSweeper_RunStopsOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := mocks.NewMockNoteRepository(ctrl)
	mockRepo.EXPECT().ClaimDueReminders(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

	s := NewSweeper(mockRepo, relay.NewPresence(), peerTable{}, &recordingNotifier{}, 5*time.Millisecond, logger.Logger{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after cancel")
	}
}
