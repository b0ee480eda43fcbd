package relay

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/apurva-sri/Bolio-chatWeb/internal/message"
	"github.com/apurva-sri/Bolio-chatWeb/pkg/logger"
)

// Hub owns the connection table and wires incoming events to presence, rooms,
// the delivery tracker and the router. All shared state lives in the injected
// Presence/Rooms components; the hub itself only guards the conn table.
type Hub struct {
	mu    sync.RWMutex
	conns map[uuid.UUID]*Conn

	presence *Presence
	rooms    *Rooms
	router   *Router
	messages message.MessageUsecase
	logger   logger.Logger
}

func NewHub(presence *Presence, rooms *Rooms, messages message.MessageUsecase, notifier Notifier, logger logger.Logger) *Hub {
	h := &Hub{
		conns:    make(map[uuid.UUID]*Conn),
		presence: presence,
		rooms:    rooms,
		messages: messages,
		logger:   logger,
	}
	h.router = NewRouter(presence, rooms, h, messages, notifier, logger)
	return h
}

func (h *Hub) Router() *Router { return h.router }

// Attach registers an upgraded websocket and starts its pumps.
func (h *Hub) Attach(sock *websocket.Conn) *Conn {
	c := newConn(sock, h)

	h.mu.Lock()
	h.conns[c.id] = c
	total := len(h.conns)
	h.mu.Unlock()

	h.logger.Info("connection attached", "conn_id", c.id, "total", total)

	go c.WritePump()
	go c.ReadPump()
	return c
}

// Peer implements PeerResolver for the router.
func (h *Hub) Peer(connID uuid.UUID) (Peer, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	c, ok := h.conns[connID]
	return c, ok
}

func (h *Hub) unregister(c *Conn) {
	h.mu.Lock()
	if _, ok := h.conns[c.id]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.conns, c.id)
	h.mu.Unlock()

	// flips the conn's closed flag before closing the channel, so a
	// broadcast that snapshotted the conn table moments ago cannot send
	// into a closed channel
	c.close()

	// presence is removed synchronously; room memberships are left stale
	// and cleaned up lazily by fan-out
	removed, snapshot := h.presence.Remove(c.id)
	if removed {
		h.broadcast(NewEvent(EvPresenceSnapshot, PresenceSnapshotPayload{Users: snapshot}))
	}
	h.logger.Info("connection detached", "conn_id", c.id)
}

func (h *Hub) broadcast(ev Event) {
	h.mu.RLock()
	conns := make([]*Conn, 0, len(h.conns))
	for _, c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	for _, c := range conns {
		if !c.Send(ev) {
			h.logger.Warn("dropping broadcast for slow connection", "conn_id", c.id)
		}
	}
}

// broadcastRoom delivers to the room's live members, skipping except.
func (h *Hub) broadcastRoom(roomID uuid.UUID, ev Event, except uuid.UUID) {
	for _, connID := range h.rooms.MembersOf(roomID) {
		if connID == except {
			continue
		}
		peer, ok := h.Peer(connID)
		if !ok {
			h.rooms.Drop(connID)
			continue
		}
		if replacedPeer(h.presence, peer) {
			continue
		}
		if !peer.Send(ev) {
			h.logger.Warn("dropping room event for slow connection", "conn_id", connID, "event", ev.Name)
		}
	}
}

// dispatch runs on the connection's read goroutine. Malformed payloads and
// unknown event kinds are logged and ignored, never errors to the client.
func (h *Hub) dispatch(c *Conn, ev Event) {
	ctx := context.Background()

	switch ev.Name {
	case EvIdentify:
		var p IdentifyPayload
		if !h.parse(ev, &p) || p.UserID == uuid.Nil {
			return
		}
		c.setUserID(p.UserID)
		snapshot := h.presence.Identify(c.id, p.UserID)
		h.broadcast(NewEvent(EvPresenceSnapshot, PresenceSnapshotPayload{Users: snapshot}))

	case EvJoinRoom:
		var p RoomPayload
		if !h.parse(ev, &p) {
			return
		}
		h.rooms.Join(c.id, p.RoomID)

	case EvLeaveRoom:
		var p RoomPayload
		if !h.parse(ev, &p) {
			return
		}
		h.rooms.Leave(c.id, p.RoomID)

	case EvSendMessage:
		var p SendMessagePayload
		if !h.parse(ev, &p) || c.UserID() == uuid.Nil {
			return
		}
		// re-hydrate so fan-out carries sender metadata
		msg, err := h.messages.GetMessage(ctx, p.MessageID)
		if err != nil {
			h.logger.Warn("sendMessage for unknown message", "message_id", p.MessageID, "err", err)
			return
		}
		// only the sender may trigger fan-out; a replay from anyone else
		// would duplicate delivery and re-fire push notifications
		if msg.SenderID != c.UserID() {
			h.logger.Warn("sendMessage from non-sender", "message_id", p.MessageID, "conn_id", c.id)
			return
		}
		h.router.Route(ctx, msg)

	case EvMessageDelivered:
		var p DeliveredPayload
		if !h.parse(ev, &p) || c.UserID() == uuid.Nil {
			return
		}
		msg, err := h.messages.GetMessage(ctx, p.MessageID)
		if err != nil {
			h.logger.Warn("delivery ack for unknown message", "message_id", p.MessageID, "err", err)
			return
		}
		changed, err := h.messages.MarkDelivered(ctx, p.MessageID, c.UserID())
		if err != nil {
			h.logger.Error("failed to record delivery ack", "message_id", p.MessageID, "err", err)
			return
		}
		if changed {
			h.broadcastRoom(msg.RoomID, NewEvent(EvDeliveryUpdated, DeliveryUpdatePayload{
				MessageID: p.MessageID,
				UserID:    c.UserID(),
			}), uuid.Nil)
		}

	case EvMessageRead:
		var p ReadPayload
		if !h.parse(ev, &p) || c.UserID() == uuid.Nil {
			return
		}
		if err := h.messages.MarkRoomRead(ctx, p.RoomID, c.UserID()); err != nil {
			h.logger.Error("failed to record read ack", "room_id", p.RoomID, "err", err)
			return
		}
		h.broadcastRoom(p.RoomID, NewEvent(EvReadUpdated, ReadUpdatePayload{
			RoomID: p.RoomID,
			UserID: c.UserID(),
		}), c.id)

	case EvDeleteMessage:
		var p DeletePayload
		if !h.parse(ev, &p) || c.UserID() == uuid.Nil {
			return
		}
		msg, err := h.messages.Delete(ctx, message.DeleteMessageCommand{
			MessageID:   p.MessageID,
			RequesterID: c.UserID(),
			Scope:       message.DeleteScope(p.Scope),
		})
		if err != nil {
			h.logger.Warn("delete message rejected", "message_id", p.MessageID, "err", err)
			return
		}
		out := NewEvent(EvMessageDeleted, MessageDeletedPayload{MessageID: p.MessageID, Scope: p.Scope})
		if message.DeleteScope(p.Scope) == message.DeleteForEveryone {
			h.broadcastRoom(msg.RoomID, out, uuid.Nil)
		} else {
			c.Send(out)
		}

	case EvTypingStart, EvTypingStop:
		var p RoomPayload
		if !h.parse(ev, &p) || c.UserID() == uuid.Nil {
			return
		}
		h.broadcastRoom(p.RoomID, NewEvent(EvTyping, TypingPayload{
			RoomID: p.RoomID,
			UserID: c.UserID(),
			Active: ev.Name == EvTypingStart,
		}), c.id)

	default:
		h.logger.Warn("unknown event kind", "event", ev.Name, "conn_id", c.id)
	}
}

func (h *Hub) parse(ev Event, dst any) bool {
	if err := json.Unmarshal(ev.Data, dst); err != nil {
		h.logger.Warn("malformed event payload", "event", ev.Name, "err", err)
		return false
	}
	return true
}
