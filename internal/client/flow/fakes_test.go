package flow

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/mapme/internal/client/api"
	"github.com/dmitrijs2005/mapme/internal/client/identity"
)

// fakeProvider records calls and returns canned errors. A non-nil block
// channel makes SignUp and SignIn wait until it is closed.
type fakeProvider struct {
	mu sync.Mutex

	SignUpErr       error
	ConfirmErr      error
	ResendErr       error
	SignInErr       error
	ResetRequestErr error
	ConfirmResetErr error
	SignOutErr      error
	Block           chan struct{}
	Started         chan struct{}
	Calls           []string
	LastEmail       string
	LastPassword    string
	LastCode        string
	LastNewPassword string
}

func (f *fakeProvider) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, name)
}

func (f *fakeProvider) wait() {
	if f.Started != nil {
		f.Started <- struct{}{}
	}
	if f.Block != nil {
		<-f.Block
	}
}

func (f *fakeProvider) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.Calls...)
}

func (f *fakeProvider) SignUp(_ context.Context, email, password string) error {
	f.record("SignUp")
	f.LastEmail, f.LastPassword = email, password
	f.wait()
	return f.SignUpErr
}

func (f *fakeProvider) ConfirmSignUp(_ context.Context, email, code string) error {
	f.record("ConfirmSignUp")
	f.LastEmail, f.LastCode = email, code
	return f.ConfirmErr
}

func (f *fakeProvider) ResendConfirmation(_ context.Context, email string) error {
	f.record("ResendConfirmation")
	f.LastEmail = email
	return f.ResendErr
}

func (f *fakeProvider) SignIn(_ context.Context, email, password string) (*identity.Session, error) {
	f.record("SignIn")
	f.LastEmail, f.LastPassword = email, password
	f.wait()
	if f.SignInErr != nil {
		return nil, f.SignInErr
	}
	return &identity.Session{Email: email, IDToken: "id"}, nil
}

func (f *fakeProvider) SignOut(context.Context) error {
	f.record("SignOut")
	return f.SignOutErr
}

func (f *fakeProvider) ResetPasswordRequest(_ context.Context, email string) error {
	f.record("ResetPasswordRequest")
	f.LastEmail = email
	return f.ResetRequestErr
}

func (f *fakeProvider) ConfirmResetPassword(_ context.Context, email, code, newPassword string) error {
	f.record("ConfirmResetPassword")
	f.LastEmail, f.LastCode, f.LastNewPassword = email, code, newPassword
	return f.ConfirmResetErr
}

func (f *fakeProvider) CurrentSession(context.Context) (*identity.Session, error) {
	return &identity.Session{IDToken: "id"}, nil
}

type fakeProfiles struct {
	profile *api.Profile
	err     error
}

func (f fakeProfiles) GetUser(context.Context) (*api.Profile, error) { return f.profile, f.err }

type recordingNavigator struct {
	mu    sync.Mutex
	paths []string
}

func (n *recordingNavigator) Navigate(_ context.Context, path string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.paths = append(n.paths, path)
	return nil
}

func (n *recordingNavigator) visited() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.paths...)
}
