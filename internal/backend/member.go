package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/yourorg/matchup-bff/internal/model"
)

// Member retrieves the signed-in member's profile
func (c *Client) Member(ctx context.Context, token string) (model.Member, error) {
	var member model.Member
	err := c.do(ctx, http.MethodGet, "/api/v1/members/me", token, nil, &member)
	return member, err
}

// UpdateMember updates the signed-in member's profile
func (c *Client) UpdateMember(ctx context.Context, token string, update model.MemberUpdate) error {
	return c.do(ctx, http.MethodPut, "/api/v1/members/me", token, update, nil)
}

// PartnerProfile retrieves a partner's public profile
func (c *Client) PartnerProfile(ctx context.Context, token string, memberID int64) (model.PartnerProfile, error) {
	var profile model.PartnerProfile
	path := fmt.Sprintf("/api/v1/partners/%d", memberID)
	err := c.do(ctx, http.MethodGet, path, token, nil, &profile)
	return profile, err
}

// HomeFeed retrieves the project cards for the home screen
func (c *Client) HomeFeed(ctx context.Context, token string) ([]model.HomeFeedItem, error) {
	var feed []model.HomeFeedItem
	err := c.do(ctx, http.MethodGet, "/api/v1/home", token, nil, &feed)
	return feed, err
}

// ChatRooms retrieves the member's chat room listing
func (c *Client) ChatRooms(ctx context.Context, token string) ([]model.ChatRoom, error) {
	var rooms []model.ChatRoom
	err := c.do(ctx, http.MethodGet, "/api/v1/chats/rooms", token, nil, &rooms)
	return rooms, err
}
