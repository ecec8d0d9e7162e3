// ABOUTME: User resource client
// ABOUTME: Read-only paged listing of the shop's customers

package client

import (
	"context"
)

// User is a customer account created by Google sign-in
type User struct {
	ID       ID     `json:"id"`
	GoogleID string `json:"googleId"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar"`
}

// UserService talks to /users
type UserService struct {
	c *Client
}

// List fetches one page of users
func (s *UserService) List(ctx context.Context, f ListFilter) (*Page[User], error) {
	return listPage[User](ctx, s.c, "fetch users",
		endpoint(s.c.apiURL, "/users", f.values()))
}
