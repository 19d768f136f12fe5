package views

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/chirag807/pdf-annotation-frontend/pkg/client"
	"github.com/chirag807/pdf-annotation-frontend/pkg/models"
	"github.com/chirag807/pdf-annotation-frontend/pkg/permission"
)

// Admin is the administration page: usage stats plus user management.
type Admin struct {
	api *client.Client
	log zerolog.Logger

	stats   *models.AdminStats
	users   []*models.User
	loading bool
}

// NewAdmin creates the admin dashboard view.
func NewAdmin(api *client.Client, log zerolog.Logger) *Admin {
	return &Admin{
		api:     api,
		log:     log.With().Str("view", "admin").Logger(),
		loading: true,
	}
}

// Load fetches stats and the user list concurrently. Either fetch failing
// is logged and degrades its own section; the page itself always settles.
func (a *Admin) Load(ctx context.Context) {
	var wg sync.WaitGroup

	var stats *models.AdminStats
	var users []*models.User

	wg.Add(2)
	go func() {
		defer wg.Done()
		s, err := a.api.AdminStats(ctx)
		if err != nil {
			a.log.Error().Err(err).Msg("failed to fetch stats")
			return
		}
		stats = s
	}()
	go func() {
		defer wg.Done()
		u, err := a.api.ListUsers(ctx)
		if err != nil {
			a.log.Error().Err(err).Msg("failed to fetch users")
			return
		}
		users = u
	}()
	wg.Wait()

	if stats != nil {
		a.stats = stats
	}
	if users != nil {
		a.users = users
	}
	a.loading = false
}

// Stats returns the overview counters, nil until fetched.
func (a *Admin) Stats() *models.AdminStats {
	return a.stats
}

// Users returns the managed user list.
func (a *Admin) Users() []*models.User {
	return a.users
}

// Loading reports whether the initial fetch is still outstanding.
func (a *Admin) Loading() bool {
	return a.loading
}

// ChangeRole changes a listed user's role and re-fetches the user list.
// Rows whose role is already admin are refused locally, before any network
// call, whatever the attempted target role.
func (a *Admin) ChangeRole(ctx context.Context, id models.UserID, role models.Role) error {
	target := a.find(id)
	if target == nil {
		return fmt.Errorf("unknown user %s", id)
	}
	if !permission.CanChangeRole(target) {
		return fmt.Errorf("cannot change role of admin user %s", target.Email)
	}

	if err := a.api.ChangeUserRole(ctx, id, role); err != nil {
		a.log.Error().Err(err).Msg("failed to update user role")
		return err
	}

	a.refreshUsers(ctx)
	return nil
}

// DeleteUser removes a listed user and re-fetches the user list. Admin rows
// are refused locally.
func (a *Admin) DeleteUser(ctx context.Context, id models.UserID) error {
	target := a.find(id)
	if target == nil {
		return fmt.Errorf("unknown user %s", id)
	}
	if !permission.CanDeleteUser(target) {
		return fmt.Errorf("cannot delete admin user %s", target.Email)
	}

	if err := a.api.DeleteUser(ctx, id); err != nil {
		a.log.Error().Err(err).Msg("failed to delete user")
		return err
	}

	a.refreshUsers(ctx)
	return nil
}

// refreshUsers re-fetches the user list after a successful mutation. A
// failed refresh keeps the stale list; the next Load catches up.
func (a *Admin) refreshUsers(ctx context.Context) {
	users, err := a.api.ListUsers(ctx)
	if err != nil {
		a.log.Error().Err(err).Msg("failed to refresh users")
		return
	}
	a.users = users
}

func (a *Admin) find(id models.UserID) *models.User {
	for _, u := range a.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}
