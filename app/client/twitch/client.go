package twitch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
	"twitchlink/pkg/config"
	"twitchlink/pkg/errs"

	"github.com/samber/do"
)

var tokenRefreshInterval = 10 * time.Minute

type Client struct {
	cfg        *config.Config
	creds      *config.Credentials
	httpClient *http.Client

	mutex       sync.RWMutex
	authToken   string
	tokenExpiry time.Time
}

func NewClient(di *do.Injector) (*Client, error) {
	cfg := do.MustInvoke[*config.Config](di)

	creds, err := do.Invoke[*config.Credentials](di)
	if err != nil {
		return nil, err
	}

	return &Client{
		cfg:        cfg,
		creds:      creds,
		httpClient: &http.Client{Timeout: cfg.Twitch.Timeout},
	}, nil
}

// GetVideos returns the raw body of the Helix videos endpoint for a single
// VOD id. Transport failures and non-2xx statuses are network errors; the
// body is not inspected.
func (c *Client) GetVideos(ctx context.Context, id string) ([]byte, error) {
	authorization, err := c.authorization(ctx)
	if err != nil {
		return nil, errs.Network("helix.videos", fmt.Errorf("authentication failed: %w", err))
	}

	queryParams := url.Values{}
	queryParams.Add("id", id)

	requestURL := fmt.Sprintf("%s/videos?%s", strings.TrimRight(c.cfg.Twitch.HelixURL, "/"), queryParams.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, errs.Network("helix.videos", fmt.Errorf("creating request failed: %w", err))
	}

	req.Header.Set("Authorization", authorization)
	req.Header.Set("Client-Id", c.creds.ClientID)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errs.Network("helix.videos", fmt.Errorf("HTTP request failed: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.Network("helix.videos", fmt.Errorf("reading response failed: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errs.Network("helix.videos", fmt.Errorf("API request failed: status %d, body: %s", resp.StatusCode, string(body)))
	}

	return body, nil
}

// authorization returns the Authorization header value: the user's token
// verbatim, or a minted app token.
func (c *Client) authorization(ctx context.Context) (string, error) {
	if c.creds.OAuthToken != "" {
		return c.creds.OAuthToken, nil
	}

	if err := c.ensureAuthenticated(ctx); err != nil {
		return "", err
	}

	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return "Bearer " + c.authToken, nil
}

func (c *Client) ensureAuthenticated(ctx context.Context) error {
	c.mutex.RLock()
	if c.authToken != "" && time.Until(c.tokenExpiry) > tokenRefreshInterval {
		c.mutex.RUnlock()
		return nil
	}
	c.mutex.RUnlock()

	c.mutex.Lock()
	defer c.mutex.Unlock()

	token, expiry, err := c.getAccessToken(ctx)
	if err != nil {
		return err
	}

	c.authToken = token
	c.tokenExpiry = expiry
	return nil
}

func (c *Client) getAccessToken(ctx context.Context) (string, time.Time, error) {
	data := url.Values{}
	data.Set("client_id", c.creds.ClientID)
	data.Set("client_secret", c.creds.ClientSecret)
	data.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Twitch.OAuthURL, strings.NewReader(data.Encode()))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("creating auth request failed: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("auth request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", time.Time{}, fmt.Errorf("authentication failed: status %d, body: %s", resp.StatusCode, string(body))
	}

	var authResp authResponse
	if err := json.NewDecoder(resp.Body).Decode(&authResp); err != nil {
		return "", time.Time{}, fmt.Errorf("decoding auth response failed: %w", err)
	}

	expiry := time.Now().Add(time.Duration(authResp.ExpiresIn) * time.Second)

	return authResp.AccessToken, expiry, nil
}
