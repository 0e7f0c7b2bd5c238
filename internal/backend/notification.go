package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/yourorg/matchup-bff/internal/model"
)

// DefaultNotificationPageSize is used when the caller passes a non-positive size
const DefaultNotificationPageSize = 10

// Notifications retrieves one cursor-paginated page of notifications.
// A zero cursor requests the first page.
func (c *Client) Notifications(ctx context.Context, token string, cursor int64, size int) (model.NotificationPage, error) {
	if size <= 0 {
		size = DefaultNotificationPageSize
	}

	query := url.Values{}
	query.Set("size", strconv.Itoa(size))
	if cursor > 0 {
		query.Set("cursor", strconv.FormatInt(cursor, 10))
	}

	var page model.NotificationPage
	err := c.do(ctx, http.MethodGet, "/api/v1/notifications?"+query.Encode(), token, nil, &page)
	return page, err
}

// MarkNotificationRead marks a single notification as read
func (c *Client) MarkNotificationRead(ctx context.Context, token string, notificationID int64) error {
	path := fmt.Sprintf("/api/v1/notifications/%d/read", notificationID)
	return c.do(ctx, http.MethodPatch, path, token, nil, nil)
}

type acceptInvitationResponse struct {
	ApplicationID int64 `json:"applicationId"`
}

// AcceptInvitation accepts a partner invitation and returns the application
// id used as the key input to payment preparation
func (c *Client) AcceptInvitation(ctx context.Context, token string, invitationID int64) (int64, error) {
	var result acceptInvitationResponse
	path := fmt.Sprintf("/api/v1/invitations/%d/accept", invitationID)
	err := c.do(ctx, http.MethodPost, path, token, nil, &result)
	return result.ApplicationID, err
}
