package pages

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/mapme/internal/client/api"
	"github.com/dmitrijs2005/mapme/internal/common"
	"github.com/dmitrijs2005/mapme/internal/logging"
)

const (
	// DefaultQuery is added when the user gives none.
	DefaultQuery = "Near me"

	maxQueryLength = 500
)

type Searches interface {
	ListSearches(ctx context.Context) ([]api.SearchRecord, error)
	CreateSearch(ctx context.Context, query string) error
}

// Home lists the user's searches and adds new ones.
type Home struct {
	searches Searches
	logger   logging.Logger

	mu      sync.Mutex
	items   []api.SearchRecord
	errMsg  string
	loading bool
}

func NewHome(searches Searches, logger logging.Logger) *Home {
	return &Home{searches: searches, logger: logger}
}

// Enter loads the list.
func (h *Home) Enter(ctx context.Context) {
	_ = h.Refresh(ctx)
}

func (h *Home) Refresh(ctx context.Context) error {
	items, err := h.searches.ListSearches(ctx)

	h.mu.Lock()
	defer h.mu.Unlock()
	if err != nil {
		h.logger.Error(ctx, "list searches failed", "err", err)
		h.errMsg = "Could not load your searches."
		return err
	}
	h.items = items
	h.errMsg = ""
	return nil
}

// Add creates a search and reloads the list. An empty query adds
// DefaultQuery.
func (h *Home) Add(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		query = DefaultQuery
	}
	if utf8.RuneCountInString(query) > maxQueryLength {
		return fmt.Errorf("%w: query longer than %d characters", common.ErrValidation, maxQueryLength)
	}

	h.mu.Lock()
	if h.loading {
		h.mu.Unlock()
		return errBusy
	}
	h.loading = true
	h.mu.Unlock()
	defer func() {
		h.mu.Lock()
		h.loading = false
		h.mu.Unlock()
	}()

	if err := h.searches.CreateSearch(ctx, query); err != nil {
		h.logger.Error(ctx, "create search failed", "err", err)
		h.mu.Lock()
		h.errMsg = "Could not add the search."
		h.mu.Unlock()
		return err
	}
	return h.Refresh(ctx)
}

func (h *Home) Items() []api.SearchRecord {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]api.SearchRecord(nil), h.items...)
}

func (h *Home) Error() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.errMsg
}

// Lines renders each search as "<time in loc>: <query>" in backend order.
func (h *Home) Lines(loc *time.Location) []string {
	items := h.Items()
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Time().In(loc).Format(time.DateTime)+": "+it.Query)
	}
	return out
}
