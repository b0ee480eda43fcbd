package scheduler

import (
	"context"
	"time"

	"github.com/apurva-sri/Bolio-chatWeb/internal/note"
	"github.com/apurva-sri/Bolio-chatWeb/internal/push"
	"github.com/apurva-sri/Bolio-chatWeb/internal/relay"
	"github.com/apurva-sri/Bolio-chatWeb/pkg/errors"
	"github.com/apurva-sri/Bolio-chatWeb/pkg/logger"
)

// Sweeper periodically claims due reminders and delivers them through both
// channels: an in-band event when the owner is connected, and always a push
// notification. The redundancy is intentional — a connected user may not have
// the app focused.
type Sweeper struct {
	repo     note.NoteRepository
	presence *relay.Presence
	peers    relay.PeerResolver
	notifier relay.Notifier
	interval time.Duration
	logger   logger.Logger
}

func NewSweeper(repo note.NoteRepository, presence *relay.Presence, peers relay.PeerResolver, notifier relay.Notifier, interval time.Duration, logger logger.Logger) *Sweeper {
	if interval <= 0 {
		interval = 60 * time.Second
	}
	return &Sweeper{
		repo:     repo,
		presence: presence,
		peers:    peers,
		notifier: notifier,
		interval: interval,
		logger:   logger,
	}
}

// Run blocks until ctx is cancelled. The sweep never runs on the request
// path; a slow storage scan delays only the next tick.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("reminder sweeper stopped")
			return
		case <-ticker.C:
			if err := s.Sweep(ctx); err != nil {
				s.logger.Error("failed to claim due reminders", "err", err)
			}
		}
	}
}

func (s *Sweeper) Sweep(ctx context.Context) error {
	claimed, err := s.repo.ClaimDueReminders(ctx, time.Now())
	if err != nil {
		return errors.ErrReminderSweepFailed(err)
	}
	if len(claimed) == 0 {
		return nil
	}
	s.logger.Info("claimed due reminders", "count", len(claimed))

	for i := range claimed {
		n := &claimed[i]

		if connID, online := s.presence.Lookup(n.UserID); online {
			if peer, ok := s.peers.Peer(connID); ok {
				peer.Send(relay.NewEvent(relay.EvReminderFired, relay.ReminderPayload{
					NoteID:  n.ID,
					Title:   n.Title,
					Content: n.Content,
				}))
			}
		}

		// always attempt push as well, even when the owner is online
		s.notifier.Notify(n.UserID, push.Notification{
			Title: "Reminder: " + n.Title,
			Body:  n.Content,
			URL:   "/notes",
		})
	}
	return nil
}
