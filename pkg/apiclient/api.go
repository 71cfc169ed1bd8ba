package apiclient

import (
	"context"
	"fmt"
	"net/http"
)

// User is the public projection the service returns; the password hash
// never crosses the wire.
type User struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	IsActive  bool   `json:"isActive"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type RegisterParams struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// UpdateParams updates only the fields that are set.
type UpdateParams struct {
	Email     *string `json:"email,omitempty"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	IsActive  *bool   `json:"isActive,omitempty"`
}

type loginParams struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userEnvelope struct {
	User *User `json:"user"`
}

func (c *Client) Register(ctx context.Context, params RegisterParams) (*User, error) {
	var resp userEnvelope
	if err := c.send(ctx, http.MethodPost, "/auth/register", params, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// Login establishes the session: the server sets both auth cookies on the
// jar as part of the response.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	var resp userEnvelope
	if err := c.send(ctx, http.MethodPost, "/auth/login", loginParams{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.send(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

func (c *Client) Verify(ctx context.Context) (*User, error) {
	var resp userEnvelope
	if err := c.do(ctx, http.MethodGet, "/auth/verify", nil, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

func (c *Client) Users(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.do(ctx, http.MethodGet, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) User(ctx context.Context, id uint) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/users/%d", id), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) UpdateUser(ctx context.Context, id uint, params UpdateParams) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/users/%d", id), params, nil)
}

func (c *Client) DeleteUser(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", id), nil, nil)
}
