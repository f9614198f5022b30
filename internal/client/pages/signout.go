package pages

import (
	"context"

	"github.com/dmitrijs2005/mapme/internal/client/nav"
	"github.com/dmitrijs2005/mapme/internal/logging"
)

type SignOuter interface {
	SignOut(ctx context.Context) error
}

// SignOut ends the session and always opens /signin, even when the
// provider call fails. The provider error is returned after navigating.
func SignOut(ctx context.Context, provider SignOuter, navigator nav.Navigator, logger logging.Logger) (err error) {
	defer func() {
		if navErr := navigator.Navigate(ctx, nav.SignIn); navErr != nil && err == nil {
			err = navErr
		}
	}()

	if err = provider.SignOut(ctx); err != nil {
		logger.Error(ctx, "sign out failed", "err", err)
	}
	return err
}
