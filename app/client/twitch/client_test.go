package twitch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
	"twitchlink/pkg/config"
	"twitchlink/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const videosBody = `{"data":[{"id":"1804186756","thumbnail_url":"https://static-cdn.jtvnw.net/cf_vods/d1m7jfoe9zdc1j/51b4df78ae6d180ce585_elizabethzaks_48380328493_1682528600//thumb/thumb0-%{width}x%{height}.jpg","title":"RE8 FINALE","url":"https://www.twitch.tv/videos/1804186756","user_id":"214714452"}],"pagination":{}}`

func newTestClient(srv *httptest.Server, creds *config.Credentials) *Client {
	cfg := config.Default()
	cfg.Twitch.HelixURL = srv.URL + "/helix"
	cfg.Twitch.OAuthURL = srv.URL + "/oauth2/token"

	return &Client{
		cfg:        cfg,
		creds:      creds,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func TestGetVideos(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/helix/videos", r.URL.Path)
		assert.Equal(t, "1804186756", r.URL.Query().Get("id"))
		assert.Equal(t, "cid", r.Header.Get("Client-Id"))
		assert.Equal(t, "Bearer user-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		_, _ = fmt.Fprint(w, videosBody)
	}))
	defer srv.Close()

	client := newTestClient(srv, &config.Credentials{ClientID: "cid", ClientSecret: "secret", OAuthToken: "Bearer user-token"})

	body, err := client.GetVideos(context.Background(), "1804186756")
	require.NoError(t, err)
	require.JSONEq(t, videosBody, string(body))
}

func TestGetVideosStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = fmt.Fprint(w, `{"error":"Unauthorized","status":401,"message":"Invalid OAuth token"}`)
	}))
	defer srv.Close()

	client := newTestClient(srv, &config.Credentials{ClientID: "cid", ClientSecret: "secret", OAuthToken: "Bearer bad"})

	_, err := client.GetVideos(context.Background(), "1")
	require.Error(t, err)
	require.True(t, errs.Is(err, errs.KindNetwork))
	require.Contains(t, err.Error(), "status 401")
}

func TestGetVideosTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	client := newTestClient(srv, &config.Credentials{ClientID: "cid", ClientSecret: "secret", OAuthToken: "Bearer x"})
	srv.Close()

	_, err := client.GetVideos(context.Background(), "1")
	require.Error(t, err)
	require.True(t, errs.Is(err, errs.KindNetwork))
}

func TestGetVideosMintsAppToken(t *testing.T) {
	var tokenCalls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/oauth2/token":
			tokenCalls.Add(1)
			assert.NoError(t, r.ParseForm())
			assert.Equal(t, "cid", r.PostForm.Get("client_id"))
			assert.Equal(t, "secret", r.PostForm.Get("client_secret"))
			assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
			_, _ = fmt.Fprint(w, `{"access_token":"app-token","expires_in":5000000,"token_type":"bearer"}`)
		case "/helix/videos":
			assert.Equal(t, "Bearer app-token", r.Header.Get("Authorization"))
			_, _ = fmt.Fprint(w, videosBody)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := newTestClient(srv, &config.Credentials{ClientID: "cid", ClientSecret: "secret"})

	for i := 0; i < 2; i++ {
		_, err := client.GetVideos(context.Background(), "1804186756")
		require.NoError(t, err)
	}
	require.Equal(t, int32(1), tokenCalls.Load())
}
