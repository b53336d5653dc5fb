package view

import (
	"context"

	"github.com/ncobase/blogclient/ecode"
	"github.com/ncobase/blogclient/identity"
)

// LoginState is a state of the login page.
type LoginState string

const (
	StateLogin     LoginState = "LOGIN"
	StateChallenge LoginState = "CHALLENGE"
	StateDone      LoginState = "DONE"
)

// LoginFlow is the login page state machine. A forced password challenge
// moves it to CHALLENGE without a session; completing the challenge or a
// plain sign-in moves it to DONE and refreshes the session.
type LoginFlow struct {
	deps *Deps

	State    LoginState
	Error    string
	Redirect string
}

// NewLoginFlow starts at LOGIN.
func NewLoginFlow(d *Deps) *LoginFlow {
	return &LoginFlow{deps: d, State: StateLogin}
}

// Submit signs in. Failures stay in LOGIN with an inline error.
func (f *LoginFlow) Submit(ctx context.Context, identifier, password string) error {
	f.State, f.Error, f.Redirect = StateLogin, "", ""

	res, err := f.deps.Auth.Login(ctx, identifier, password)
	if err != nil {
		f.Error = message(ctx, "sign in", err)
		return err
	}
	return f.advance(ctx, res.NextStep)
}

// SubmitChallenge sets the new password and display name. Failures stay
// in CHALLENGE with an inline error.
func (f *LoginFlow) SubmitChallenge(ctx context.Context, newPassword, displayName string) error {
	if f.State != StateChallenge {
		err := ecode.Auth("no password change was requested", nil)
		f.Error = message(ctx, "set new password", err)
		return err
	}
	f.Error = ""

	res, err := f.deps.Auth.ConfirmChallenge(ctx, newPassword, displayName)
	if err != nil {
		f.Error = message(ctx, "set new password", err)
		return err
	}
	return f.advance(ctx, res.NextStep)
}

func (f *LoginFlow) advance(ctx context.Context, step identity.NextStep) error {
	switch step {
	case identity.StepConfirmNewPassword:
		f.State = StateChallenge
		return nil
	case identity.StepDone:
		if f.deps.Session.Refresh(ctx).User == nil {
			err := ecode.Auth("signed in but no session could be established", nil)
			f.Error = message(ctx, "sign in", err)
			return err
		}
		f.State = StateDone
		f.Redirect = RouteHome
		return nil
	default:
		err := ecode.Auth("unsupported sign-in step "+string(step), nil)
		f.Error = message(ctx, "sign in", err)
		return err
	}
}
