package cli

import (
	"context"
	"strconv"
	"sync"

	"github.com/dmitrijs2005/mapme/internal/client/api"
	"github.com/dmitrijs2005/mapme/internal/client/identity"
	"github.com/dmitrijs2005/mapme/internal/client/storage"
	"github.com/dmitrijs2005/mapme/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// fakeProvider keeps one session in memory.
type fakeProvider struct {
	mu sync.Mutex

	session    *identity.Session
	SignInErr  error
	SignOutErr error
	Calls      []string
	LastEmail  string
	LastCode   string
}

func testSession(email string) *identity.Session {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "sub-123",
		"email": email,
	}).SignedString([]byte("k"))
	if err != nil {
		panic(err)
	}
	s, err := identity.NewSession(email, tok, "access", "refresh")
	if err != nil {
		panic(err)
	}
	return s
}

func (f *fakeProvider) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, name)
}

func (f *fakeProvider) SignUp(_ context.Context, email, _ string) error {
	f.record("SignUp")
	f.LastEmail = email
	return nil
}

func (f *fakeProvider) ConfirmSignUp(_ context.Context, email, code string) error {
	f.record("ConfirmSignUp")
	f.LastEmail, f.LastCode = email, code
	return nil
}

func (f *fakeProvider) ResendConfirmation(context.Context, string) error {
	f.record("ResendConfirmation")
	return nil
}

func (f *fakeProvider) SignIn(_ context.Context, email, _ string) (*identity.Session, error) {
	f.record("SignIn")
	f.LastEmail = email
	if f.SignInErr != nil {
		return nil, f.SignInErr
	}
	s := testSession(email)
	f.mu.Lock()
	f.session = s
	f.mu.Unlock()
	return s, nil
}

func (f *fakeProvider) SignOut(context.Context) error {
	f.record("SignOut")
	f.mu.Lock()
	f.session = nil
	f.mu.Unlock()
	return f.SignOutErr
}

func (f *fakeProvider) ResetPasswordRequest(_ context.Context, email string) error {
	f.record("ResetPasswordRequest")
	f.LastEmail = email
	return nil
}

func (f *fakeProvider) ConfirmResetPassword(_ context.Context, email, code, _ string) error {
	f.record("ConfirmResetPassword")
	f.LastEmail, f.LastCode = email, code
	return nil
}

func (f *fakeProvider) CurrentSession(context.Context) (*identity.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.session == nil {
		return nil, common.ErrUnauthenticated
	}
	return f.session, nil
}

type fakeBackend struct {
	mu       sync.Mutex
	searches []api.SearchRecord
	profile  *api.Profile
	GetErr   error
	Puts     []api.ProfileUpdate
}

func (b *fakeBackend) ListSearches(context.Context) ([]api.SearchRecord, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]api.SearchRecord(nil), b.searches...), nil
}

func (b *fakeBackend) CreateSearch(_ context.Context, query string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	created := strconv.Itoa(1700000000 + len(b.searches))
	b.searches = append(b.searches, api.SearchRecord{UserID: "sub-123", CreatedAt: created, Query: query})
	return nil
}

func (b *fakeBackend) GetUser(context.Context) (*api.Profile, error) {
	if b.GetErr != nil {
		return nil, b.GetErr
	}
	return b.profile, nil
}

func (b *fakeBackend) PutUser(_ context.Context, name, avatarURL string) error {
	b.Puts = append(b.Puts, api.ProfileUpdate{Name: name, AvatarURL: avatarURL})
	b.profile = &api.Profile{Name: name, AvatarURL: avatarURL, OnboardingComplete: true}
	return nil
}

type fakeUploader struct {
	Last storage.UploadTarget
}

func (u *fakeUploader) Upload(_ context.Context, file storage.UploadTarget, s *identity.Session) (string, error) {
	u.Last = file
	return storage.ObjectURL("bucket", "eu-west-1", storage.ObjectKey(s.Subject(), file.Name)), nil
}
