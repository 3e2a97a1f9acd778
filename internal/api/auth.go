package api

import (
	"context"

	"presskit-cli/internal/model"
)

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// Login exchanges credentials for a bearer token and the signed-in user.
func (c *Client) Login(ctx context.Context, login, password string) (string, *model.User, error) {
	var out loginResponse
	resp, err := c.rc.R().
		SetContext(ctx).
		SetBody(loginRequest{Login: login, Password: password}).
		SetResult(&out).
		Post("/auth/login")
	if err := check(resp, err, "account"); err != nil {
		return "", nil, err
	}
	return out.Token, &out.User, nil
}
