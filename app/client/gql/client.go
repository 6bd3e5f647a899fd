package gql

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"twitchlink/pkg/config"
	"twitchlink/pkg/errs"

	"github.com/samber/do"
)

const playbackOperation = "PlaybackAccessToken"

type Client struct {
	cfg    *config.Config
	client *http.Client
}

func New(di *do.Injector) (*Client, error) {
	cfg := do.MustInvoke[*config.Config](di)

	return &Client{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.Twitch.Timeout,
		},
	}, nil
}

// GetStreamPlaybackInfo posts the persisted PlaybackAccessToken query for a
// live channel and returns the raw response body. It authenticates with the
// internal web client id, never with the user's Helix credentials.
func (c *Client) GetStreamPlaybackInfo(ctx context.Context, channel string) ([]byte, error) {
	query := map[string]any{
		"operationName": playbackOperation,
		"variables": map[string]any{
			"isLive":     true,
			"login":      channel,
			"isVod":      false,
			"vodID":      "",
			"playerType": c.cfg.Twitch.PlayerType,
		},
		"extensions": map[string]any{
			"persistedQuery": map[string]any{
				"version":    1,
				"sha256Hash": c.cfg.Twitch.PlaybackHash,
			},
		},
	}

	queryBytes, err := json.Marshal(query)
	if err != nil {
		return nil, errs.Network("gql.playback_token", fmt.Errorf("could not marshal query: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Twitch.GQLURL, bytes.NewReader(queryBytes))
	if err != nil {
		return nil, errs.Network("gql.playback_token", fmt.Errorf("could not create request: %w", err))
	}

	req.Header.Set("Client-ID", c.cfg.Twitch.GQLClientID)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errs.Network("gql.playback_token", fmt.Errorf("could not do request: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.Network("gql.playback_token", fmt.Errorf("could not read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errs.Network("gql.playback_token", fmt.Errorf("API request failed with status: %s", resp.Status))
	}

	return body, nil
}

// DecodePlaybackAccessToken extracts the stream token from a GraphQL body.
func DecodePlaybackAccessToken(body []byte) (*PlaybackAccessToken, error) {
	var response playbackAccessTokenResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, errs.Shape("gql.decode", fmt.Errorf("failed to decode response body: %w", err))
	}

	if len(response.Errors) > 0 {
		messages := make([]string, 0, len(response.Errors))
		for _, e := range response.Errors {
			messages = append(messages, e.Message)
		}
		return nil, errs.Shape("gql.decode", fmt.Errorf("graphql errors: %s", strings.Join(messages, "; ")))
	}

	token := response.Data.StreamPlaybackAccessToken
	if token == nil {
		return nil, errs.Shape("gql.decode", errors.New("streamPlaybackAccessToken missing"))
	}
	if token.Value == "" || token.Signature == "" {
		return nil, errs.Shape("gql.decode", errors.New("streamPlaybackAccessToken has empty value or signature"))
	}

	return token, nil
}
