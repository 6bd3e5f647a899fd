package usher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"twitchlink/pkg/config"
	"twitchlink/pkg/errs"

	"github.com/samber/do"
)

type Client struct {
	cfg    *config.Config
	client *http.Client
}

func New(di *do.Injector) (*Client, error) {
	cfg := do.MustInvoke[*config.Config](di)

	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Twitch.Timeout},
	}, nil
}

// MasterPlaylistURL builds the signed HLS master playlist URL for channel.
// The query keeps the order usher is usually called with.
func (c *Client) MasterPlaylistURL(channel, signature, value string) string {
	return fmt.Sprintf("%s/api/channel/hls/%s.m3u8?sig=%s&token=%s&allow_source=true&allow_audio_only=true",
		strings.TrimRight(c.cfg.Twitch.UsherURL, "/"),
		url.PathEscape(channel),
		url.QueryEscape(signature),
		url.QueryEscape(value),
	)
}

// GetMasterPlaylist fetches the master playlist text.
func (c *Client) GetMasterPlaylist(ctx context.Context, channel, signature, value string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.MasterPlaylistURL(channel, signature, value), nil)
	if err != nil {
		return "", errs.Network("usher.master_playlist", fmt.Errorf("failed to create GET request: %w", err))
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", errs.Network("usher.master_playlist", fmt.Errorf("failed to make GET request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", errs.Network("usher.master_playlist", fmt.Errorf("stream is offline or channel %q not found", channel))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", errs.Network("usher.master_playlist", fmt.Errorf("playlist got http status %s", resp.Status))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errs.Network("usher.master_playlist", fmt.Errorf("failed to read playlist: %w", err))
	}

	return string(body), nil
}
