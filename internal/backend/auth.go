package backend

import (
	"context"
	"net/http"

	"github.com/yourorg/matchup-bff/internal/model"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates a member and returns the issued access token
func (c *Client) Login(ctx context.Context, email, password string) (model.LoginResult, error) {
	var result model.LoginResult
	err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", "", loginRequest{
		Email:    email,
		Password: password,
	}, &result)
	return result, err
}
