package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	cip "github.com/aws/aws-sdk-go/service/cognitoidentityprovider"
	"github.com/ncobase/blogclient/crypto"
	"github.com/ncobase/blogclient/ecode"
	"github.com/ncobase/blogclient/structs"
)

// Auth flows.
const (
	flowUserPassword = "USER_PASSWORD_AUTH"
	flowRefreshToken = "REFRESH_TOKEN_AUTH"
)

// CognitoConfig configures the Cognito user pool client.
type CognitoConfig struct {
	Region       string
	UserPoolID   string
	ClientID     string
	ClientSecret string
	// Endpoint overrides the regional endpoint, for local emulators.
	Endpoint string
}

// Cognito implements Provider against an AWS Cognito user pool.
type Cognito struct {
	api          *cip.CognitoIdentityProvider
	clientID     string
	clientSecret string
	now          func() time.Time
}

var _ Provider = (*Cognito)(nil)

// NewCognito creates a Cognito provider. The user pool API calls used here
// are unauthenticated, so no AWS credentials are required.
func NewCognito(c *CognitoConfig) (*Cognito, error) {
	if c == nil || c.ClientID == "" {
		return nil, errors.New("cognito client id is required")
	}
	if c.Region == "" {
		return nil, errors.New("cognito region is required")
	}
	cfg := aws.NewConfig().
		WithRegion(c.Region).
		WithCredentials(credentials.AnonymousCredentials).
		WithMaxRetries(0)
	if c.Endpoint != "" {
		cfg = cfg.WithEndpoint(c.Endpoint)
	}
	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, fmt.Errorf("create aws session: %w", err)
	}
	return &Cognito{
		api:          cip.New(sess),
		clientID:     c.ClientID,
		clientSecret: c.ClientSecret,
		now:          time.Now,
	}, nil
}

func (c *Cognito) secretHash(username string) *string {
	if c.clientSecret == "" {
		return nil
	}
	return aws.String(crypto.SecretHash(username, c.clientID, c.clientSecret))
}

func (c *Cognito) authParams(username string, kv ...string) map[string]*string {
	params := map[string]*string{}
	for i := 0; i+1 < len(kv); i += 2 {
		params[kv[i]] = aws.String(kv[i+1])
	}
	if h := c.secretHash(username); h != nil {
		params["SECRET_HASH"] = h
	}
	return params
}

// SignIn starts a USER_PASSWORD_AUTH flow.
func (c *Cognito) SignIn(ctx context.Context, username, password string) (*AuthResult, error) {
	out, err := c.api.InitiateAuthWithContext(ctx, &cip.InitiateAuthInput{
		AuthFlow:       aws.String(flowUserPassword),
		ClientId:       aws.String(c.clientID),
		AuthParameters: c.authParams(username, "USERNAME", username, "PASSWORD", password),
	})
	if err != nil {
		return nil, mapError("sign in failed", err)
	}
	return c.authResult(username, out.AuthenticationResult, out.ChallengeName, out.Session, out.ChallengeParameters), nil
}

// RespondNewPassword answers NEW_PASSWORD_REQUIRED, setting attrs in the
// same call.
func (c *Cognito) RespondNewPassword(ctx context.Context, username, session, newPassword string, attrs map[string]string) (*AuthResult, error) {
	responses := c.authParams(username, "USERNAME", username, "NEW_PASSWORD", newPassword)
	for k, v := range attrs {
		responses["userAttributes."+k] = aws.String(v)
	}
	out, err := c.api.RespondToAuthChallengeWithContext(ctx, &cip.RespondToAuthChallengeInput{
		ChallengeName:      aws.String(ChallengeNewPassword),
		ClientId:           aws.String(c.clientID),
		Session:            aws.String(session),
		ChallengeResponses: responses,
	})
	if err != nil {
		return nil, mapError("set new password failed", err)
	}
	return c.authResult(username, out.AuthenticationResult, out.ChallengeName, out.Session, out.ChallengeParameters), nil
}

// Refresh exchanges a refresh token for new access and ID tokens. The
// provider does not rotate the refresh token, so the old one is kept.
func (c *Cognito) Refresh(ctx context.Context, username, refreshToken string) (*structs.Tokens, error) {
	out, err := c.api.InitiateAuthWithContext(ctx, &cip.InitiateAuthInput{
		AuthFlow:       aws.String(flowRefreshToken),
		ClientId:       aws.String(c.clientID),
		AuthParameters: c.authParams(username, "REFRESH_TOKEN", refreshToken),
	})
	if err != nil {
		return nil, mapError("refresh failed", err)
	}
	if out.AuthenticationResult == nil {
		return nil, ecode.Auth("refresh returned no tokens", nil)
	}
	tokens := c.tokens(out.AuthenticationResult)
	if tokens.RefreshToken == "" {
		tokens.RefreshToken = refreshToken
	}
	return tokens, nil
}

// SignUp registers a user with email and name attributes.
func (c *Cognito) SignUp(ctx context.Context, username, password string, attrs map[string]string) (*ProviderSignUp, error) {
	in := &cip.SignUpInput{
		ClientId:   aws.String(c.clientID),
		Username:   aws.String(username),
		Password:   aws.String(password),
		SecretHash: c.secretHash(username),
	}
	for k, v := range attrs {
		in.UserAttributes = append(in.UserAttributes, &cip.AttributeType{Name: aws.String(k), Value: aws.String(v)})
	}
	out, err := c.api.SignUpWithContext(ctx, in)
	if err != nil {
		return nil, mapError("sign up failed", err)
	}
	return &ProviderSignUp{
		UserID:    aws.StringValue(out.UserSub),
		Confirmed: aws.BoolValue(out.UserConfirmed),
	}, nil
}

// ConfirmSignUp submits the emailed confirmation code.
func (c *Cognito) ConfirmSignUp(ctx context.Context, username, code string) error {
	_, err := c.api.ConfirmSignUpWithContext(ctx, &cip.ConfirmSignUpInput{
		ClientId:         aws.String(c.clientID),
		Username:         aws.String(username),
		ConfirmationCode: aws.String(code),
		SecretHash:       c.secretHash(username),
	})
	if err != nil {
		return mapError("confirmation failed", err)
	}
	return nil
}

// SignOut revokes every token issued to the user.
func (c *Cognito) SignOut(ctx context.Context, accessToken string) error {
	_, err := c.api.GlobalSignOutWithContext(ctx, &cip.GlobalSignOutInput{
		AccessToken: aws.String(accessToken),
	})
	if err != nil {
		return mapError("sign out failed", err)
	}
	return nil
}

func (c *Cognito) authResult(username string, auth *cip.AuthenticationResultType, challenge, session *string, params map[string]*string) *AuthResult {
	if auth != nil {
		return &AuthResult{Tokens: c.tokens(auth), Username: username}
	}
	// the challenge must be answered as the provider's own user id
	if id := aws.StringValue(params["USER_ID_FOR_SRP"]); id != "" {
		username = id
	}
	return &AuthResult{
		Challenge: aws.StringValue(challenge),
		Session:   aws.StringValue(session),
		Username:  username,
	}
}

func (c *Cognito) tokens(auth *cip.AuthenticationResultType) *structs.Tokens {
	return &structs.Tokens{
		AccessToken:  aws.StringValue(auth.AccessToken),
		IDToken:      aws.StringValue(auth.IdToken),
		RefreshToken: aws.StringValue(auth.RefreshToken),
		ExpiresAt:    c.now().Add(time.Duration(aws.Int64Value(auth.ExpiresIn)) * time.Second),
	}
}

// mapError converts provider failures into the error taxonomy.
func mapError(message string, err error) error {
	var aerr awserr.Error
	if !errors.As(err, &aerr) {
		return ecode.Network(message, err)
	}
	switch aerr.Code() {
	case request.CanceledErrorCode, request.ErrCodeRequestError, request.ErrCodeResponseTimeout:
		return ecode.Network(message, err)
	case cip.ErrCodeInvalidPasswordException,
		cip.ErrCodeInvalidParameterException,
		cip.ErrCodeUsernameExistsException,
		cip.ErrCodeCodeMismatchException,
		cip.ErrCodeExpiredCodeException:
		return &ecode.Error{Kind: ecode.KindValidation, Code: ecode.RequestErr, Message: aerr.Message(), Err: err}
	default:
		msg := aerr.Message()
		if msg == "" {
			msg = message
		}
		return ecode.Auth(msg, err)
	}
}
