package relay

import (
	"context"

	"github.com/google/uuid"

	"github.com/apurva-sri/Bolio-chatWeb/internal/message"
	Message "github.com/apurva-sri/Bolio-chatWeb/internal/message/model"
	"github.com/apurva-sri/Bolio-chatWeb/internal/push"
	"github.com/apurva-sri/Bolio-chatWeb/pkg/logger"
)

// Peer is the send side of a live connection. UserID is uuid.Nil until the
// connection has identified.
type Peer interface {
	ID() uuid.UUID
	UserID() uuid.UUID
	Send(ev Event) bool
}

// PeerResolver turns a connection id back into a live peer. A miss means the
// connection is gone and its room memberships are stale.
type PeerResolver interface {
	Peer(connID uuid.UUID) (Peer, bool)
}

// Notifier is the offline side channel. Fire-and-forget.
type Notifier interface {
	Notify(userID uuid.UUID, notif push.Notification)
}

// Router fans a persisted message out to the room's live connections and
// hands unreachable participants to the offline notifier. It never retries
// and never returns a per-recipient failure to the caller: the message is
// already durable, this is best-effort real-time delivery.
type Router struct {
	presence *Presence
	rooms    *Rooms
	peers    PeerResolver
	messages message.MessageUsecase
	notifier Notifier
	logger   logger.Logger
}

func NewRouter(presence *Presence, rooms *Rooms, peers PeerResolver, messages message.MessageUsecase, notifier Notifier, logger logger.Logger) *Router {
	return &Router{
		presence: presence,
		rooms:    rooms,
		peers:    peers,
		messages: messages,
		notifier: notifier,
		logger:   logger,
	}
}

func (r *Router) Route(ctx context.Context, msg *Message.Message) {
	ev := NewEvent(EvMessageReceived, msg)

	// sender already has the message from its synchronous create response;
	// skipping its connection avoids a duplicate on the sender's own view
	senderConn, _ := r.presence.Lookup(msg.SenderID)

	for _, connID := range r.rooms.MembersOf(msg.RoomID) {
		if connID == senderConn {
			continue
		}
		peer, ok := r.peers.Peer(connID)
		if !ok {
			// stale membership on a dead connection
			r.rooms.Drop(connID)
			continue
		}
		if replacedPeer(r.presence, peer) {
			continue
		}
		if !peer.Send(ev) {
			r.logger.Warn("dropping message for slow connection", "conn_id", connID, "message_id", msg.ID)
		}
	}

	r.notifyOffline(ctx, msg)
}

// replacedPeer reports whether the peer's user has since identified on a
// different connection. The replaced connection stays open but must not
// receive fan-out; presence maps each user to exactly one live connection.
func replacedPeer(presence *Presence, p Peer) bool {
	uid := p.UserID()
	if uid == uuid.Nil {
		return false
	}
	current, ok := presence.Lookup(uid)
	return ok && current != p.ID()
}

// notifyOffline walks the room's persisted participant list, not just the
// live memberships: a participant who never joined this session still gets a
// push.
func (r *Router) notifyOffline(ctx context.Context, msg *Message.Message) {
	participants, err := r.messages.Participants(ctx, msg.RoomID)
	if err != nil {
		r.logger.Error("failed to resolve room participants for push", "room_id", msg.RoomID, "err", err)
		return
	}

	notif := Summarize(msg)
	for _, userID := range participants {
		if userID == msg.SenderID {
			continue
		}
		if _, online := r.presence.Lookup(userID); online {
			continue
		}
		r.notifier.Notify(userID, notif)
	}
}

const maxPreviewRunes = 80

// Summarize derives the push payload: sender display name plus a truncated
// preview, with fallback text for attachment types.
func Summarize(msg *Message.Message) push.Notification {
	title := "New message"
	if msg.Sender != nil && msg.Sender.Name != "" {
		title = msg.Sender.Name
	}

	var body string
	switch msg.Type {
	case Message.TypeImage:
		body = "Sent a photo"
	case Message.TypeAudio:
		body = "Voice message"
	case Message.TypeVideo:
		body = "Sent a video"
	case Message.TypeFile:
		body = "Sent a file"
		if msg.FileName != "" {
			body = "Sent a file: " + msg.FileName
		}
	default:
		body = truncate(msg.Content, maxPreviewRunes)
	}

	return push.Notification{Title: title, Body: body, URL: "/chat"}
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "…"
}
