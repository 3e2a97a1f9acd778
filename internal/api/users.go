package api

import (
	"context"
	"fmt"

	"presskit-cli/internal/model"
)

// ListUsers fetches the full user list. The dashboard filters and pages in
// memory, so this is the only users fetch per screen load.
func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	var out listEnvelope[model.User]
	resp, err := c.rc.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/users")
	if err := check(resp, err, "users"); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) GetUser(ctx context.Context, id string) (*model.User, error) {
	var out model.User
	resp, err := c.rc.R().
		SetContext(ctx).
		SetResult(&out).
		Get(fmt.Sprintf("/users/%s", id))
	if err := check(resp, err, "user"); err != nil {
		return nil, err
	}
	return &out, nil
}

type UserUpsert struct {
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Login    string     `json:"login,omitempty"`
	Password string     `json:"password,omitempty"`
	Role     model.Role `json:"role"`
}

func (c *Client) CreateUser(ctx context.Context, u UserUpsert) (*model.User, error) {
	var out model.User
	resp, err := c.rc.R().
		SetContext(ctx).
		SetBody(u).
		SetResult(&out).
		Post("/users")
	if err := check(resp, err, "user"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateUser(ctx context.Context, id string, u UserUpsert) (*model.User, error) {
	var out model.User
	resp, err := c.rc.R().
		SetContext(ctx).
		SetBody(u).
		SetResult(&out).
		Put(fmt.Sprintf("/users/%s", id))
	if err := check(resp, err, "user"); err != nil {
		return nil, err
	}
	return &out, nil
}
