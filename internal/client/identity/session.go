package identity

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/mapme/internal/client/sessionstore"
	"github.com/golang-jwt/jwt/v5"
)

// Session is a signed-in user's token set.
//
// The ID token is what the backend API and the identity pool accept. Its
// claims are read without signature verification: the token came straight
// from Cognito over TLS and the client makes no trust decision from them.
type Session struct {
	Email        string
	IDToken      string
	AccessToken  string
	RefreshToken string

	subject   string
	expiresAt time.Time
}

// NewSession builds a Session from the tokens Cognito returned. An empty
// email is filled from the ID token's email claim.
func NewSession(email, idToken, accessToken, refreshToken string) (*Session, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(idToken, claims); err != nil {
		return nil, fmt.Errorf("%w: parse id token: %w", ErrProvider, err)
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, fmt.Errorf("%w: id token has no subject", ErrProvider)
	}

	s := &Session{
		Email:        email,
		IDToken:      idToken,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		subject:      sub,
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		s.expiresAt = exp.Time
	}
	if s.Email == "" {
		if e, ok := claims["email"].(string); ok {
			s.Email = e
		}
	}
	return s, nil
}

func sessionFromRecord(r *sessionstore.Record) (*Session, error) {
	return NewSession(r.Email, r.IDToken, r.AccessToken, r.RefreshToken)
}

func (s *Session) record() sessionstore.Record {
	return sessionstore.Record{
		Email:        s.Email,
		IDToken:      s.IDToken,
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
	}
}

// Subject is the user pool "sub" claim, the stable user id.
func (s *Session) Subject() string { return s.subject }

// ExpiresAt is the ID token expiry; zero when the token carries none.
func (s *Session) ExpiresAt() time.Time { return s.expiresAt }

// Expired reports whether the ID token is expired at now, with a small
// margin so a token is not sent on a request it would outlive.
func (s *Session) Expired(now time.Time) bool {
	if s.expiresAt.IsZero() {
		return false
	}
	return !now.Add(expiryLeeway).Before(s.expiresAt)
}

const expiryLeeway = 30 * time.Second
