// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dalemusser/taskhub/internal/app/system/apiclient"
	"github.com/dalemusser/taskhub/internal/domain/models"
)

// ErrBadCredentials is returned by Login when the users API rejects the
// email/password pair.
var ErrBadCredentials = errors.New("invalid email or password")

// Store reads user records from the users API.
type Store struct {
	c *apiclient.Client
}

// New creates a Store backed by the given users API client.
func New(c *apiclient.Client) *Store {
	return &Store{c: c}
}

// Profile returns the user the token belongs to.
// GET /users/me
func (s *Store) Profile(ctx context.Context, token string) (models.User, error) {
	var u models.User
	if err := s.c.GetJSON(ctx, token, "/users/me", &u); err != nil {
		return models.User{}, fmt.Errorf("fetch profile: %w", err)
	}
	return u, nil
}

// List returns every user. The users API only allows this for admins.
// GET /users
func (s *Store) List(ctx context.Context, token string) ([]models.User, error) {
	users, err := apiclient.GetList[models.User](ctx, s.c, token, "/users")
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token       string `json:"token"`
	AccessToken string `json:"access_token"`
}

// Login exchanges credentials for an access token.
// POST /auth/login
func (s *Store) Login(ctx context.Context, email, password string) (string, error) {
	var resp loginResponse
	err := s.c.PostJSON(ctx, "", "/auth/login", loginRequest{
		Email:    strings.TrimSpace(email),
		Password: password,
	}, &resp)
	if err != nil {
		switch apiclient.StatusCode(err) {
		case 400, 401, 403:
			return "", ErrBadCredentials
		}
		return "", fmt.Errorf("login: %w", err)
	}

	token := resp.Token
	if token == "" {
		token = resp.AccessToken
	}
	if token == "" {
		return "", errors.New("login: users API returned no token")
	}
	return token, nil
}
