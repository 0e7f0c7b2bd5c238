package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/yourorg/matchup-bff/internal/model"
)

// ReadMarker marks a notification as read on the backend
type ReadMarker interface {
	MarkNotificationRead(ctx context.Context, token string, notificationID int64) error
}

// Decision is the outcome of dispatching a clicked notification: the updated
// notification copy, the clamped unread count, and where to navigate.
// InvitationID/ApplicationID are carried as navigation state, not a query
// string, and are zero with HasID=false when extraction found nothing.
type Decision struct {
	Notification  model.Notification `json:"notification"`
	UnreadCount   int                `json:"unReadCount"`
	Kind          RouteKind          `json:"kind"`
	Path          string             `json:"path,omitempty"`
	ExternalURL   string             `json:"externalUrl,omitempty"`
	InvitationID  int64              `json:"invitationId,omitempty"`
	ApplicationID int64              `json:"applicationId,omitempty"`
	HasID         bool               `json:"hasId"`
}

// Dispatcher resolves a notification click: best-effort read marking, then
// classification into a navigation decision
type Dispatcher struct {
	marker ReadMarker
	logger *zap.Logger
}

// NewDispatcher creates a new notification dispatcher
func NewDispatcher(marker ReadMarker, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		marker: marker,
		logger: logger,
	}
}

// Dispatch handles a click on a notification. Marking the notification read
// is idempotent and best-effort: an already-read notification triggers no
// network call, and a failed mark-read never blocks navigation. The unread
// count is decremented once on a successful mark, floor-clamped at zero.
func (d *Dispatcher) Dispatch(ctx context.Context, token string, n model.Notification, unreadCount int) Decision {
	if !n.IsRead {
		if err := d.marker.MarkNotificationRead(ctx, token, n.ID); err != nil {
			d.logger.Warn("Failed to mark notification as read, proceeding with navigation",
				zap.Int64("notificationId", n.ID),
				zap.Error(err))
		} else {
			n.IsRead = true
			if unreadCount > 0 {
				unreadCount--
			}
		}
	}

	route := Classify(n.Type, n.RedirectURL)

	decision := Decision{
		Notification: n,
		UnreadCount:  unreadCount,
		Kind:         route.Kind,
		Path:         route.Path,
		ExternalURL:  route.URL,
		HasID:        route.HasID,
	}

	if route.HasID {
		switch route.Kind {
		case RouteInvitation:
			decision.InvitationID = route.ID
		case RoutePayment:
			decision.ApplicationID = route.ID
		}
	}

	return decision
}
