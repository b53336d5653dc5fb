package view

import (
	"context"

	"github.com/ncobase/blogclient/ecode"
	"github.com/ncobase/blogclient/identity"
)

// RegisterState is a state of the registration page.
type RegisterState string

const (
	StateRegister RegisterState = "REGISTER"
	StateConfirm  RegisterState = "CONFIRM"
	// StateRegistered means the account exists; the user signs in next.
	StateRegistered RegisterState = "DONE"
)

// RegisterFlow is the registration page state machine. CONFIRM is only
// reached under the provider registration strategy.
type RegisterFlow struct {
	deps *Deps

	State    RegisterState
	Email    string
	Error    string
	Redirect string
}

// NewRegisterFlow starts at REGISTER.
func NewRegisterFlow(d *Deps) *RegisterFlow {
	return &RegisterFlow{deps: d, State: StateRegister}
}

// Submit creates the account.
func (f *RegisterFlow) Submit(ctx context.Context, email, password, displayName string) error {
	f.State, f.Error, f.Redirect = StateRegister, "", ""

	res, err := f.deps.Auth.Register(ctx, email, password, displayName)
	if err != nil {
		f.Error = message(ctx, "register", err)
		return err
	}
	f.Email = email
	if res.NextStep == identity.StepConfirmSignUp {
		f.State = StateConfirm
		return nil
	}
	f.State = StateRegistered
	f.Redirect = RouteLogin
	return nil
}

// Confirm submits the emailed code. Failures stay in CONFIRM.
func (f *RegisterFlow) Confirm(ctx context.Context, code string) error {
	if f.State != StateConfirm {
		err := ecode.Validation("no confirmation is pending", nil)
		f.Error = message(ctx, "confirm", err)
		return err
	}
	if err := f.deps.Auth.ConfirmRegistration(ctx, f.Email, code); err != nil {
		f.Error = message(ctx, "confirm", err)
		return err
	}
	f.Error = ""
	f.State = StateRegistered
	f.Redirect = RouteLogin
	return nil
}
