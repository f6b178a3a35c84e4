package brightcove

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/lysyi3m/bc-mrss/app/media"
)

// Tokens are refreshed this long before they expire.
const tokenExpiryMargin = 30 * time.Second

// newTokenSource returns a cached client-credentials token source. Token requests go
// through httpClient with the client id and secret sent as basic auth.
func newTokenSource(tokenURL, clientID, clientSecret string, httpClient *http.Client) oauth2.TokenSource {
	conf := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
	return oauth2.ReuseTokenSourceWithExpiry(nil, conf.TokenSource(ctx), tokenExpiryMargin)
}

// tokenError maps a token endpoint failure onto the upstream error kinds.
func tokenError(err error) error {
	kind := media.KindUpstreamBadResponse

	var retrieveErr *oauth2.RetrieveError
	var urlErr *url.Error
	switch {
	case errors.As(err, &retrieveErr) && retrieveErr.Response != nil:
		code := retrieveErr.Response.StatusCode
		if code >= 500 || code == http.StatusTooManyRequests {
			kind = media.KindUpstreamUnavailable
		}
		err = fmt.Errorf("HTTP error: %s: %w", retrieveErr.Response.Status, err)
	case errors.As(err, &urlErr),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		kind = media.KindUpstreamUnavailable
	}
	return &media.Error{Kind: kind, Op: "fetch token", Err: err}
}
