// Package brightcove talks to the Brightcove OAuth and CMS APIs.
package brightcove

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/lysyi3m/bc-mrss/app/media"
)

const (
	DefaultOAuthURL   = "https://oauth.brightcove.com/v4/access_token"
	DefaultCMSBaseURL = "https://cms.api.brightcove.com/v1"
)

type Options struct {
	AccountID    string
	ClientID     string
	ClientSecret string
	OAuthURL     string
	CMSBaseURL   string
	UserAgent    string
	HTTPClient   *http.Client
}

// Client is safe for concurrent use.
type Client struct {
	accountID  string
	cmsBaseURL string
	userAgent  string
	httpClient *http.Client
	tokens     oauth2.TokenSource
}

func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = NewHTTPClient(30 * time.Second)
	}
	oauthURL := opts.OAuthURL
	if oauthURL == "" {
		oauthURL = DefaultOAuthURL
	}
	cmsBaseURL := opts.CMSBaseURL
	if cmsBaseURL == "" {
		cmsBaseURL = DefaultCMSBaseURL
	}

	return &Client{
		accountID:  opts.AccountID,
		cmsBaseURL: strings.TrimRight(cmsBaseURL, "/"),
		userAgent:  opts.UserAgent,
		httpClient: httpClient,
		tokens:     newTokenSource(oauthURL, opts.ClientID, opts.ClientSecret, httpClient),
	}
}

// FetchBatch returns up to limit videos of the account.
func (c *Client) FetchBatch(ctx context.Context, limit int) ([]media.RawVideo, error) {
	endpoint := fmt.Sprintf("%s/accounts/%s/videos?limit=%s",
		c.cmsBaseURL, url.PathEscape(c.accountID), strconv.Itoa(limit))

	var videos []media.RawVideo
	if err := c.get(ctx, "fetch videos", "", endpoint, &videos); err != nil {
		return nil, err
	}

	slog.Debug("Fetched video batch", "limit", limit, "count", len(videos))
	return videos, nil
}

// FetchSources returns every rendition the CMS reports for one video.
func (c *Client) FetchSources(ctx context.Context, id string) ([]media.RawSource, error) {
	endpoint := fmt.Sprintf("%s/accounts/%s/videos/%s/sources",
		c.cmsBaseURL, url.PathEscape(c.accountID), url.PathEscape(id))

	var sources []media.RawSource
	if err := c.get(ctx, "fetch sources", id, endpoint, &sources); err != nil {
		return nil, err
	}

	slog.Debug("Fetched video sources", "media_id", id, "count", len(sources))
	return sources, nil
}

func (c *Client) get(ctx context.Context, op, mediaID, endpoint string, out any) error {
	token, err := c.tokens.Token()
	if err != nil {
		return tokenError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &media.Error{Kind: media.KindUpstreamBadResponse, Op: op, MediaID: mediaID,
			Err: fmt.Errorf("failed to create request: %w", err)}
	}
	token.SetAuthHeader(req)
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &media.Error{Kind: media.KindUpstreamUnavailable, Op: op, MediaID: mediaID, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(op, mediaID, resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &media.Error{Kind: media.KindUpstreamBadResponse, Op: op, MediaID: mediaID,
			Err: fmt.Errorf("failed to decode response body: %w", err)}
	}
	return nil
}

// statusError maps a non-200 response: 5xx and 429 mean the upstream is unavailable,
// anything else is a bad response.
func statusError(op, mediaID string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	kind := media.KindUpstreamBadResponse
	if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
		kind = media.KindUpstreamUnavailable
	}
	return &media.Error{Kind: kind, Op: op, MediaID: mediaID,
		Err: fmt.Errorf("HTTP error: %s: %s", resp.Status, strings.TrimSpace(string(body)))}
}
