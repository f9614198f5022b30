package pages

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/mapme/internal/client/api"
	"github.com/dmitrijs2005/mapme/internal/client/identity"
	"github.com/dmitrijs2005/mapme/internal/client/nav"
	"github.com/dmitrijs2005/mapme/internal/client/storage"
	"github.com/dmitrijs2005/mapme/internal/filex"
	"github.com/dmitrijs2005/mapme/internal/logging"
)

// MaxAvatarBytes caps avatar uploads.
const MaxAvatarBytes = 10 << 20

var errBusy = errors.New("already in progress")

const (
	TitleOnboarding = "Welcome! Onboarding"
	TitleUpdate     = "Update your info"

	msgUploadFailed = "Upload failed"
	msgSaveFailed   = "Could not save your profile."
)

type Profiles interface {
	GetUser(ctx context.Context) (*api.Profile, error)
	PutUser(ctx context.Context, name, avatarURL string) error
}

type Uploader interface {
	Upload(ctx context.Context, file storage.UploadTarget, session *identity.Session) (string, error)
}

type Sessions interface {
	CurrentSession(ctx context.Context) (*identity.Session, error)
}

// ProfileForm backs both the onboarding screen and the update screen. The
// update screen is prefilled from the backend.
type ProfileForm struct {
	title     string
	prefill   bool
	profiles  Profiles
	uploader  Uploader
	sessions  Sessions
	navigator nav.Navigator
	logger    logging.Logger

	mu        sync.Mutex
	name      string
	avatarURL string
	status    string
	uploading bool
	saving    bool
}

type ProfileDeps struct {
	Profiles  Profiles
	Uploader  Uploader
	Sessions  Sessions
	Navigator nav.Navigator
	Logger    logging.Logger
}

func NewOnboarding(d ProfileDeps) *ProfileForm {
	return newProfileForm(TitleOnboarding, false, d)
}

func NewUpdate(d ProfileDeps) *ProfileForm {
	return newProfileForm(TitleUpdate, true, d)
}

func newProfileForm(title string, prefill bool, d ProfileDeps) *ProfileForm {
	return &ProfileForm{
		title:     title,
		prefill:   prefill,
		profiles:  d.Profiles,
		uploader:  d.Uploader,
		sessions:  d.Sessions,
		navigator: d.Navigator,
		logger:    d.Logger,
	}
}

func (f *ProfileForm) Title() string { return f.title }

// Enter resets the form, prefilling it on the update screen.
func (f *ProfileForm) Enter(ctx context.Context) {
	f.mu.Lock()
	f.name, f.avatarURL, f.status = "", "", ""
	f.mu.Unlock()

	if !f.prefill {
		return
	}
	p, err := f.profiles.GetUser(ctx)
	if err != nil {
		f.logger.Warn(ctx, "profile prefill failed", "err", err)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.name, f.avatarURL = p.Name, p.AvatarURL
}

func (f *ProfileForm) SetName(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.name = name
}

// Values returns the name and avatar URL that Save would send.
func (f *ProfileForm) Values() (name, avatarURL string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.name, f.avatarURL
}

// Status is the upload or save message.
func (f *ProfileForm) Status() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

// Upload sends the image at path as the avatar. The outcome is reported
// through Status as "Uploaded: <key>" or "Upload failed".
func (f *ProfileForm) Upload(ctx context.Context, path string) error {
	f.mu.Lock()
	if f.uploading {
		f.mu.Unlock()
		return errBusy
	}
	f.uploading = true
	f.mu.Unlock()

	url, key, err := f.upload(ctx, path)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploading = false
	if err != nil {
		f.logger.Error(ctx, "avatar upload failed", "path", path, "err", err)
		f.status = msgUploadFailed
		return err
	}
	f.avatarURL = url
	f.status = "Uploaded: " + key
	return nil
}

func (f *ProfileForm) upload(ctx context.Context, path string) (url, key string, err error) {
	file, err := filex.ReadUpload(path, MaxAvatarBytes)
	if err != nil {
		return "", "", err
	}
	s, err := f.sessions.CurrentSession(ctx)
	if err != nil {
		return "", "", err
	}

	url, err = f.uploader.Upload(ctx, storage.UploadTarget{
		Name:        file.Name,
		ContentType: file.ContentType,
		Data:        file.Data,
	}, s)
	if err != nil {
		return "", "", err
	}
	return url, storage.ObjectKey(s.Subject(), file.Name), nil
}

// Save stores the name and avatar URL and opens /home.
func (f *ProfileForm) Save(ctx context.Context) error {
	f.mu.Lock()
	if f.saving {
		f.mu.Unlock()
		return errBusy
	}
	f.saving = true
	name, avatarURL := f.name, f.avatarURL
	f.mu.Unlock()

	err := f.profiles.PutUser(ctx, name, avatarURL)

	f.mu.Lock()
	f.saving = false
	if err != nil {
		f.status = msgSaveFailed
	}
	f.mu.Unlock()

	if err != nil {
		f.logger.Error(ctx, "save profile failed", "err", err)
		return err
	}
	return f.navigator.Navigate(ctx, nav.Home)
}

// Skip leaves without saving.
func (f *ProfileForm) Skip(ctx context.Context) error {
	return f.navigator.Navigate(ctx, nav.Home)
}
