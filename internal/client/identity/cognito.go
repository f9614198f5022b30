package identity

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"

	"github.com/dmitrijs2005/mapme/internal/client/config"
	"github.com/dmitrijs2005/mapme/internal/client/sessionstore"
	"github.com/dmitrijs2005/mapme/internal/common"
	"github.com/dmitrijs2005/mapme/internal/logging"
)

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newCognitoClient = func(cfg aws.Config, optFns ...func(*cip.Options)) cognitoAPI {
		return cip.NewFromConfig(cfg, optFns...)
	}
)

// cognitoAPI is the subset of *cognitoidentityprovider.Client the client uses.
type cognitoAPI interface {
	SignUp(ctx context.Context, in *cip.SignUpInput, optFns ...func(*cip.Options)) (*cip.SignUpOutput, error)
	ConfirmSignUp(ctx context.Context, in *cip.ConfirmSignUpInput, optFns ...func(*cip.Options)) (*cip.ConfirmSignUpOutput, error)
	ResendConfirmationCode(ctx context.Context, in *cip.ResendConfirmationCodeInput, optFns ...func(*cip.Options)) (*cip.ResendConfirmationCodeOutput, error)
	InitiateAuth(ctx context.Context, in *cip.InitiateAuthInput, optFns ...func(*cip.Options)) (*cip.InitiateAuthOutput, error)
	GlobalSignOut(ctx context.Context, in *cip.GlobalSignOutInput, optFns ...func(*cip.Options)) (*cip.GlobalSignOutOutput, error)
	ForgotPassword(ctx context.Context, in *cip.ForgotPasswordInput, optFns ...func(*cip.Options)) (*cip.ForgotPasswordOutput, error)
	ConfirmForgotPassword(ctx context.Context, in *cip.ConfirmForgotPasswordInput, optFns ...func(*cip.Options)) (*cip.ConfirmForgotPasswordOutput, error)
}

// Cognito implements Provider against a Cognito user pool app client
// without a client secret.
type Cognito struct {
	api      cognitoAPI
	clientID string
	store    sessionstore.Store
	logger   logging.Logger
	now      func() time.Time

	mu     sync.Mutex
	cached *Session
}

func NewCognito(api cognitoAPI, clientID string, store sessionstore.Store, logger logging.Logger) *Cognito {
	return &Cognito{
		api:      api,
		clientID: clientID,
		store:    store,
		logger:   logger,
		now:      time.Now,
	}
}

// NewCognitoFromConfig builds the user pool client for cfg.Region. The user
// pool APIs used here are unauthenticated, so no AWS credentials are loaded.
func NewCognitoFromConfig(ctx context.Context, cfg *config.Config, store sessionstore.Store, logger logging.Logger) (*Cognito, error) {
	awsCfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(aws.AnonymousCredentials{}),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return NewCognito(newCognitoClient(awsCfg), cfg.UserPoolClientID, store, logger), nil
}

func (c *Cognito) SignUp(ctx context.Context, email, password string) error {
	_, err := c.api.SignUp(ctx, &cip.SignUpInput{
		ClientId: aws.String(c.clientID),
		Username: aws.String(email),
		Password: aws.String(password),
		UserAttributes: []types.AttributeType{
			{Name: aws.String("email"), Value: aws.String(email)},
		},
	})
	return translate(err)
}

func (c *Cognito) ConfirmSignUp(ctx context.Context, email, code string) error {
	_, err := c.api.ConfirmSignUp(ctx, &cip.ConfirmSignUpInput{
		ClientId:         aws.String(c.clientID),
		Username:         aws.String(email),
		ConfirmationCode: aws.String(code),
	})
	return translate(err)
}

func (c *Cognito) ResendConfirmation(ctx context.Context, email string) error {
	_, err := c.api.ResendConfirmationCode(ctx, &cip.ResendConfirmationCodeInput{
		ClientId: aws.String(c.clientID),
		Username: aws.String(email),
	})
	return translate(err)
}

// SignIn authenticates with USER_PASSWORD_AUTH and persists the session.
func (c *Cognito) SignIn(ctx context.Context, email, password string) (*Session, error) {
	out, err := c.api.InitiateAuth(ctx, &cip.InitiateAuthInput{
		ClientId: aws.String(c.clientID),
		AuthFlow: types.AuthFlowTypeUserPasswordAuth,
		AuthParameters: map[string]string{
			"USERNAME": email,
			"PASSWORD": password,
		},
	})
	if err != nil {
		return nil, translate(err)
	}

	res := out.AuthenticationResult
	if res == nil {
		return nil, fmt.Errorf("%w: unsupported challenge %q", ErrProvider, out.ChallengeName)
	}

	s, err := NewSession(email,
		aws.ToString(res.IdToken), aws.ToString(res.AccessToken), aws.ToString(res.RefreshToken))
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.store.Save(ctx, s.record()); err != nil {
		c.logger.Warn(ctx, "session not persisted", "err", err)
	}
	c.cached = s
	return s, nil
}

// SignOut revokes the tokens when there is a session to revoke. The local
// session is dropped whatever the service answers.
func (c *Cognito) SignOut(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.cached
	if s == nil {
		if r, err := c.store.Load(ctx); err == nil && r != nil {
			s = &Session{AccessToken: r.AccessToken}
		}
	}

	defer func() {
		c.cached = nil
		if err := c.store.Clear(ctx); err != nil {
			c.logger.Error(ctx, "session not cleared", "err", err)
		}
	}()

	if s == nil || s.AccessToken == "" {
		return nil
	}
	_, err := c.api.GlobalSignOut(ctx, &cip.GlobalSignOutInput{AccessToken: aws.String(s.AccessToken)})
	return translate(err)
}

func (c *Cognito) ResetPasswordRequest(ctx context.Context, email string) error {
	_, err := c.api.ForgotPassword(ctx, &cip.ForgotPasswordInput{
		ClientId: aws.String(c.clientID),
		Username: aws.String(email),
	})
	return translate(err)
}

func (c *Cognito) ConfirmResetPassword(ctx context.Context, email, code, newPassword string) error {
	_, err := c.api.ConfirmForgotPassword(ctx, &cip.ConfirmForgotPasswordInput{
		ClientId:         aws.String(c.clientID),
		Username:         aws.String(email),
		ConfirmationCode: aws.String(code),
		Password:         aws.String(newPassword),
	})
	return translate(err)
}

// CurrentSession returns the live session, refreshing an expired ID token
// with the refresh token. Absence of a usable session is reported as
// common.ErrUnauthenticated; this method never surfaces transport errors.
func (c *Cognito) CurrentSession(ctx context.Context) (*Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.cached
	if s == nil {
		r, err := c.store.Load(ctx)
		if err != nil {
			c.logger.Error(ctx, "session store unreadable", "err", err)
			return nil, fmt.Errorf("%w: %w", common.ErrUnauthenticated, err)
		}
		if r == nil {
			return nil, common.ErrUnauthenticated
		}
		if s, err = sessionFromRecord(r); err != nil {
			c.drop(ctx)
			return nil, fmt.Errorf("%w: %w", common.ErrUnauthenticated, err)
		}
	}

	if s.Expired(c.now()) {
		refreshed, err := c.refresh(ctx, s)
		if err != nil {
			c.logger.Info(ctx, "session refresh failed", "err", err)
			c.drop(ctx)
			return nil, fmt.Errorf("%w: %w", common.ErrUnauthenticated, err)
		}
		s = refreshed
		if err := c.store.Save(ctx, s.record()); err != nil {
			c.logger.Warn(ctx, "refreshed session not persisted", "err", err)
		}
	}

	c.cached = s
	return s, nil
}

// Token returns the current ID token; it lets *Cognito serve as the backend
// API client's token source.
func (c *Cognito) Token(ctx context.Context) (string, error) {
	s, err := c.CurrentSession(ctx)
	if err != nil {
		return "", err
	}
	return s.IDToken, nil
}

var errNoRefreshToken = errors.New("no refresh token")

func (c *Cognito) refresh(ctx context.Context, s *Session) (*Session, error) {
	if s.RefreshToken == "" {
		return nil, errNoRefreshToken
	}

	out, err := c.api.InitiateAuth(ctx, &cip.InitiateAuthInput{
		ClientId:       aws.String(c.clientID),
		AuthFlow:       types.AuthFlowTypeRefreshTokenAuth,
		AuthParameters: map[string]string{"REFRESH_TOKEN": s.RefreshToken},
	})
	if err != nil {
		return nil, translate(err)
	}
	if out.AuthenticationResult == nil {
		return nil, fmt.Errorf("%w: refresh returned no tokens", ErrProvider)
	}

	res := out.AuthenticationResult
	refreshToken := aws.ToString(res.RefreshToken)
	if refreshToken == "" {
		refreshToken = s.RefreshToken
	}
	return NewSession(s.Email, aws.ToString(res.IdToken), aws.ToString(res.AccessToken), refreshToken)
}

// drop forgets the session; callers hold c.mu.
func (c *Cognito) drop(ctx context.Context) {
	c.cached = nil
	if err := c.store.Clear(ctx); err != nil {
		c.logger.Error(ctx, "session not cleared", "err", err)
	}
}
