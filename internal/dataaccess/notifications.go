package dataaccess

import (
	"context"
	"errors"
	"time"

	"entrena/gym-app/internal/cache"
	"entrena/gym-app/internal/domain"
	"entrena/gym-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// notificationLimit caps the notification feed.
const notificationLimit = 50

// NotificationEntry is the transport shape for one notification.
type NotificationEntry struct {
	ID        string                  `json:"id"`
	Kind      domain.NotificationKind `json:"kind"`
	Message   string                  `json:"message,omitempty"`
	Read      bool                    `json:"read"`
	CreatedAt string                  `json:"createdAt"`
}

func notificationEntry(n domain.Notification) NotificationEntry {
	return NotificationEntry{
		ID:        n.ID.Hex(),
		Kind:      n.Kind,
		Message:   n.Message,
		Read:      n.Read,
		CreatedAt: n.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// ListNotifications returns the session user's notifications, newest first.
func (s *DataService) ListNotifications(ctx context.Context, sess *Session) Result[[]NotificationEntry] {
	if !requireRole(sess) {
		return Unauthorized[[]NotificationEntry]()
	}

	key := s.keys.SerializeKey("ListNotifications", sess.ID.Hex())
	entries, err := cache.GetOrFetch(ctx, s.cache, cache.TagAthleteNotifications, key, func(ctx context.Context) ([]NotificationEntry, error) {
		notifications, err := s.notifications.ListByRecipient(ctx, sess.ID, notificationLimit)
		if err != nil {
			return nil, err
		}
		out := make([]NotificationEntry, 0, len(notifications))
		for _, n := range notifications {
			out = append(out, notificationEntry(n))
		}
		return out, nil
	})
	if err != nil {
		return storeFailure[[]NotificationEntry](s.logger, "ListNotifications", err)
	}
	return Ok(entries)
}

// MarkNotificationRead flags one of the session user's notifications as read.
// An unknown id is a normal empty result. Dispatches the notifications tag
// before reporting success.
func (s *DataService) MarkNotificationRead(ctx context.Context, sess *Session, id string) Result[bool] {
	if !requireRole(sess) {
		return Unauthorized[bool]()
	}

	notificationID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Ok(false)
	}

	err = s.notifications.MarkRead(ctx, notificationID, sess.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Ok(false)
		}
		return storeFailure[bool](s.logger, "MarkNotificationRead", err)
	}

	s.cache.Invalidate(cache.TagAthleteNotifications)
	return Ok(true)
}
