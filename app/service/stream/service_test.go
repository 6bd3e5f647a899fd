package stream

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"twitchlink/app/client/gql"
	"twitchlink/app/client/usher"
	"twitchlink/pkg/config"
	"twitchlink/pkg/errs"
	"twitchlink/pkg/hls"

	"github.com/samber/do"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tokenBody = `{"data":{"streamPlaybackAccessToken":{"value":"{\"channel\":\"sodapoppin\"}","signature":"sig42"}},"extensions":{"durationMilliseconds":12}}`

const masterBody = `#EXTM3U
#EXT-X-TWITCH-INFO:NODE="video-edge-1",CLUSTER="pdx01"
#EXT-X-MEDIA:TYPE=VIDEO,GROUP-ID="chunked",NAME="1080p60 (source)",AUTOSELECT=YES,DEFAULT=YES
#EXT-X-STREAM-INF:BANDWIDTH=8534030,RESOLUTION=1920x1080,CODECS="avc1.64002A,mp4a.40.2",VIDEO="chunked",FRAME-RATE=60.000
https://video-weaver.example/chunked.m3u8
#EXT-X-MEDIA:TYPE=VIDEO,GROUP-ID="audio_only",NAME="audio_only",AUTOSELECT=NO,DEFAULT=NO
#EXT-X-STREAM-INF:BANDWIDTH=160000,CODECS="mp4a.40.2",VIDEO="audio_only"
https://video-weaver.example/audio_only.m3u8
`

func newService(t *testing.T, handler http.HandlerFunc) *Service {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.Default()
	cfg.Twitch.GQLURL = srv.URL + "/gql"
	cfg.Twitch.UsherURL = srv.URL

	di := do.New()
	do.ProvideValue(di, cfg)
	do.Provide(di, gql.New)
	do.Provide(di, usher.New)
	do.Provide(di, New)

	return do.MustInvoke[*Service](di)
}

func TestResolve(t *testing.T) {
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/gql":
			_, _ = fmt.Fprint(w, tokenBody)
		case "/api/channel/hls/sodapoppin.m3u8":
			assert.Equal(t, "sig42", r.URL.Query().Get("sig"))
			assert.Equal(t, `{"channel":"sodapoppin"}`, r.URL.Query().Get("token"))
			_, _ = fmt.Fprint(w, masterBody)
		default:
			http.NotFound(w, r)
		}
	})

	result, err := svc.Resolve(context.Background(), "sodapoppin")
	require.NoError(t, err)

	require.Equal(t, "sodapoppin", result.Channel)
	require.Equal(t, []hls.Variant{
		{Label: "1080p60 (source)", URL: "https://video-weaver.example/chunked.m3u8", Resolution: "1920x1080", FrameRate: 60, Bandwidth: 8534030},
		{Label: "audio_only", URL: "https://video-weaver.example/audio_only.m3u8", Bandwidth: 160000},
	}, result.Variants)
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name     string
		gqlBody  string
		gqlCode  int
		playlist string
		usher    int
		kind     errs.Kind
	}{
		{
			name:    "gql unauthorized",
			gqlCode: http.StatusUnauthorized,
			gqlBody: `{"error":"Unauthorized"}`,
			kind:    errs.KindNetwork,
		},
		{
			name:    "unknown channel",
			gqlCode: http.StatusOK,
			gqlBody: `{"data":{"streamPlaybackAccessToken":null}}`,
			kind:    errs.KindResponseShape,
		},
		{
			name:    "offline",
			gqlCode: http.StatusOK,
			gqlBody: tokenBody,
			usher:   http.StatusNotFound,
			kind:    errs.KindNetwork,
		},
		{
			name:     "label without name",
			gqlCode:  http.StatusOK,
			gqlBody:  tokenBody,
			usher:    http.StatusOK,
			playlist: "#EXTM3U\n#EXT-X-MEDIA:TYPE=VIDEO,GROUP-ID=\"chunked\"\nhttps://video-weaver.example/chunked.m3u8\n",
			kind:     errs.KindResponseShape,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path == "/gql" {
					w.WriteHeader(tt.gqlCode)
					_, _ = fmt.Fprint(w, tt.gqlBody)
					return
				}
				w.WriteHeader(tt.usher)
				_, _ = fmt.Fprint(w, tt.playlist)
			})

			result, err := svc.Resolve(context.Background(), "sodapoppin")
			require.Error(t, err)
			require.Nil(t, result)
			require.Equal(t, tt.kind, errs.KindOf(err))
		})
	}
}
