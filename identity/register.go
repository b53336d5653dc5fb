package identity

import (
	"context"
	"strings"

	"github.com/ncobase/blogclient/ecode"
	"github.com/ncobase/blogclient/structs"
	"github.com/ncobase/blogclient/validator"
)

// Register creates an account with the configured strategy.
func (a *Adapter) Register(ctx context.Context, email, password, displayName string) (*SignUpResult, error) {
	body := &structs.CreateUserBody{
		Email:    strings.TrimSpace(email),
		Password: password,
		Username: strings.TrimSpace(displayName),
	}
	if err := validator.Check(body, "registration"); err != nil {
		return nil, err
	}

	switch a.strategy {
	case StrategyProvider:
		res, err := a.provider.SignUp(ctx, body.Email, body.Password, map[string]string{
			"email": body.Email,
			"name":  body.Username,
		})
		if err != nil {
			return nil, err
		}
		next := StepConfirmSignUp
		if res.Confirmed {
			next = StepDone
		}
		return &SignUpResult{NextStep: next, UserID: res.UserID}, nil
	default:
		if a.registrar == nil {
			return nil, ecode.Validation(ecode.NotSupported("registration"), nil)
		}
		profile, err := a.registrar.Create(ctx, body)
		if err != nil {
			return nil, err
		}
		res := &SignUpResult{NextStep: StepDone}
		if profile != nil {
			res.UserID = structs.ExtractUserID(profile.PK)
		}
		return res, nil
	}
}

// ConfirmRegistration submits the emailed code. It only applies to the
// provider strategy.
func (a *Adapter) ConfirmRegistration(ctx context.Context, email, code string) error {
	if a.strategy != StrategyProvider {
		return ecode.Validation(ecode.NotSupported("confirmation of backend accounts"), nil)
	}
	email, code = strings.TrimSpace(email), strings.TrimSpace(code)
	if email == "" || code == "" {
		return ecode.Validation("email and confirmation code are required", nil)
	}
	return a.provider.ConfirmSignUp(ctx, email, code)
}
