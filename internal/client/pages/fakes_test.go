package pages

import (
	"context"
	"strconv"
	"sync"

	"github.com/dmitrijs2005/mapme/internal/client/api"
	"github.com/dmitrijs2005/mapme/internal/client/identity"
	"github.com/dmitrijs2005/mapme/internal/client/storage"
)

type fakeBackend struct {
	mu        sync.Mutex
	searches  []api.SearchRecord
	next      int64
	profile   *api.Profile
	ListErr   error
	CreateErr error
	GetErr    error
	PutErr    error
	Puts      []api.ProfileUpdate
}

func (b *fakeBackend) ListSearches(context.Context) ([]api.SearchRecord, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ListErr != nil {
		return nil, b.ListErr
	}
	return append([]api.SearchRecord(nil), b.searches...), nil
}

func (b *fakeBackend) CreateSearch(_ context.Context, query string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.CreateErr != nil {
		return b.CreateErr
	}
	b.next++
	b.searches = append(b.searches, api.SearchRecord{UserID: "u1", CreatedAt: strconv.FormatInt(b.next, 10), Query: query})
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
	return b.PutErr
}

type fakeUploader struct {
	Err  error
	Last storage.UploadTarget
}

func (u *fakeUploader) Upload(_ context.Context, file storage.UploadTarget, s *identity.Session) (string, error) {
	u.Last = file
	if u.Err != nil {
		return "", u.Err
	}
	return storage.ObjectURL("bucket", "eu-west-1", storage.ObjectKey(s.Subject(), file.Name)), nil
}

type recordingNavigator struct{ paths []string }

func (n *recordingNavigator) Navigate(_ context.Context, path string) error {
	n.paths = append(n.paths, path)
	return nil
}
