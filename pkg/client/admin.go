package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/chirag807/pdf-annotation-frontend/pkg/models"
)

// AdminStats returns the aggregate usage counters. Admin only.
func (c *Client) AdminStats(ctx context.Context) (*models.AdminStats, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/admin/stats", nil)
	if err != nil {
		return nil, fmt.Errorf("admin stats request failed: %w", err)
	}

	var result models.AdminStats
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// ListUsers returns every registered user. Admin only.
func (c *Client) ListUsers(ctx context.Context) ([]*models.User, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/admin/users", nil)
	if err != nil {
		return nil, fmt.Errorf("list users request failed: %w", err)
	}

	var result []*models.User
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return result, nil
}

// ChangeUserRole changes a user's role. Admin only; the server additionally
// refuses to change users that are already admins.
func (c *Client) ChangeUserRole(ctx context.Context, id models.UserID, role models.Role) error {
	body := struct {
		Role models.Role `json:"role"`
	}{Role: role}

	resp, err := c.doRequest(ctx, http.MethodPatch, fmt.Sprintf("/admin/users/%s/role", id), body)
	if err != nil {
		return fmt.Errorf("change role request failed: %w", err)
	}

	return decodeResponse(resp, nil)
}

// DeleteUser removes a user account. Admin only; the server additionally
// refuses to delete users that are admins.
func (c *Client) DeleteUser(ctx context.Context, id models.UserID) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/admin/users/%s", id), nil)
	if err != nil {
		return fmt.Errorf("delete user request failed: %w", err)
	}

	return decodeResponse(resp, nil)
}
