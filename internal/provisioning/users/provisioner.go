package users

import (
	"fmt"
	"net/http"

	"github.com/imamik/jiraseed/internal/config"
	"github.com/imamik/jiraseed/internal/platform/jira"
	"github.com/imamik/jiraseed/internal/provisioning"
)

const phase = "users"

// Provisioner handles user provisioning.
type Provisioner struct{}

// NewProvisioner creates a new user provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return phase
}

// Provision implements the provisioning.Phase interface.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	avatars, err := LoadAvatars(ctx)
	if err != nil {
		return err
	}
	ctx.State.Avatars = avatars
	if avatars.Len() == 0 {
		ctx.Observer.Printf("[%s] no system avatars available, new users keep the default avatar", phase)
	}

	users := ctx.Dataset.Users
	for i, u := range users {
		created, err := p.ensureUser(ctx, u)
		if err != nil {
			return err
		}
		if created {
			if err := p.assignAvatar(ctx, u.Username); err != nil {
				return err
			}
		}
		ctx.Observer.Progress(phase, i+1, len(users))
	}
	return nil
}

// ensureUser creates u when absent. Users are never reset.
func (p *Provisioner) ensureUser(ctx *provisioning.Context, u config.User) (bool, error) {
	res, err := (&provisioning.EnsureOperation{
		Phase:    phase,
		Kind:     "user",
		Identity: u.Username,
		Lookup:   jira.R("user").With("username", u.Username),
		Create:   jira.R("user"),
		Payload:  UserPayload(u, ctx.Dataset.EmailDomain),
		Policy:   provisioning.PolicySkip,
	}).Execute(ctx)
	if err != nil {
		return false, err
	}
	return res.Outcome == provisioning.OutcomeCreated, nil
}

func (p *Provisioner) assignAvatar(ctx *provisioning.Context, username string) error {
	id, ok := ctx.State.Avatars.Next()
	if !ok {
		return nil
	}

	payload := jira.Document{
		"id":             id,
		"isSystemAvatar": true,
		"isSelected":     false,
	}
	if _, err := ctx.Gateway.Replace(ctx, jira.R("user", "avatar").With("username", username), payload); err != nil {
		return fmt.Errorf("failed to set avatar for user %s: %w", username, err)
	}
	ctx.Observer.Event(provisioning.Event{
		Type:     provisioning.EventResourceCreated,
		Phase:    phase,
		Resource: username,
		Message:  "avatar assigned",
		Fields:   map[string]string{"type": "avatar", "id": fmt.Sprint(id)},
	})
	return nil
}

// UserPayload builds the create payload for u. The initial password equals
// the username.
func UserPayload(u config.User, emailDomain string) jira.Document {
	return jira.Document{
		"name":         u.Username,
		"password":     u.Username,
		"emailAddress": u.Username + "@" + emailDomain,
		"displayName":  u.DisplayName,
	}
}

// LoadAvatars reads the system user avatars. Anything but 200 is fatal.
func LoadAvatars(ctx *provisioning.Context) (*provisioning.AvatarPool, error) {
	r := jira.R("avatar", "user", "system")
	resp, err := ctx.Gateway.Read(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("failed to look up the avatars: %w", err)
	}
	if !resp.Found() {
		return nil, fmt.Errorf("failed to look up the avatars: %w",
			&jira.RemoteError{Method: http.MethodGet, Resource: r.String(), Status: resp.Status, Body: resp.Body})
	}

	system := resp.Document.Documents("system")
	ids := make([]int64, 0, len(system))
	for _, avatar := range system {
		id, err := avatar.Int64("id")
		if err != nil {
			return nil, fmt.Errorf("invalid system avatar: %w", err)
		}
		ids = append(ids, id)
	}
	return provisioning.NewAvatarPool(ids), nil
}
