package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/chirag807/pdf-annotation-frontend/pkg/models"
)

// RegisterRequest is the payload for account creation.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	UserType string `json:"userType"`
}

// LoginRequest is the payload for authentication.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Register creates a new account and authenticates as it. On success the
// returned token is attached to subsequent requests automatically.
func (c *Client) Register(ctx context.Context, email, password, name string, role models.Role) (*AuthResponse, error) {
	req := RegisterRequest{
		Email:    email,
		Password: password,
		Name:     name,
		UserType: string(role),
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/auth/register", req)
	if err != nil {
		return nil, fmt.Errorf("register request failed: %w", err)
	}

	var result AuthResponse
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	c.SetAuthToken(result.Token)

	return &result, nil
}

// Login authenticates an existing account. On success the returned token is
// attached to subsequent requests automatically.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	req := LoginRequest{
		Email:    email,
		Password: password,
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/auth/login", req)
	if err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}

	var result AuthResponse
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	c.SetAuthToken(result.Token)

	return &result, nil
}

// Me resolves the identity behind the currently attached bearer token.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/auth/me", nil)
	if err != nil {
		return nil, fmt.Errorf("me request failed: %w", err)
	}

	var result struct {
		User *models.User `json:"user"`
	}
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return result.User, nil
}
