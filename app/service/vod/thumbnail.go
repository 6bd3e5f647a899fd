package vod

import (
	"encoding/json"
	"fmt"
	"regexp"
	"twitchlink/app/client/twitch"
	"twitchlink/pkg/errs"
)

type thumbnailPattern struct {
	name string
	re   *regexp.Regexp
}

// Helix has changed the template shape over time: one or two slashes before
// thumb/, with or without a numbered thumbN file. Tried in order.
var thumbnailPatterns = []thumbnailPattern{
	{
		name: "numbered",
		re:   regexp.MustCompile(`^https://static-cdn\.jtvnw\.net/cf_vods/([a-z0-9_]+)/([a-z0-9_]+)//?thumb/thumb\d+-%\{width\}x%\{height\}\.jpe?g$`),
	},
	{
		name: "any",
		re:   regexp.MustCompile(`https://static-cdn\.jtvnw\.net/cf_vods/([a-z0-9_]+)/([a-z0-9_]+)//?thumb/.+%\{width\}x%\{height\}\.jpe?g`),
	},
}

// Location is the storage path encoded in a thumbnail template.
type Location struct {
	StorageID string
	MediaKey  string
}

// DecodeMetadata parses a Helix videos body and returns its only record.
func DecodeMetadata(body []byte) (*twitch.Video, error) {
	var res twitch.VideosResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, errs.Shape("vod.metadata", fmt.Errorf("could not parse vod info: %w", err))
	}

	if len(res.Data) != 1 {
		return nil, errs.Shape("vod.metadata", fmt.Errorf("expected exactly one video record, got %d", len(res.Data)))
	}

	return &res.Data[0], nil
}

// DecodeThumbnail extracts the storage id and media key from a thumbnail
// URL template. The first matching pattern wins.
func DecodeThumbnail(template string) (Location, error) {
	for _, p := range thumbnailPatterns {
		m := p.re.FindStringSubmatch(template)
		if m == nil {
			continue
		}
		return Location{StorageID: m[1], MediaKey: m[2]}, nil
	}

	return Location{}, errs.Shape("vod.thumbnail", fmt.Errorf("could not capture thumbnail url %q", template))
}
