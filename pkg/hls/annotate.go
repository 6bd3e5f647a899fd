package hls

import (
	"errors"
	"fmt"
	"strings"

	"github.com/grafov/m3u8"
)

// Annotate fills resolution, frame rate and bandwidth from the
// EXT-X-STREAM-INF attributes of body, matching variants by URL. The label
// and URL of each variant and the order of variants are never changed.
func Annotate(body string, variants []Variant) ([]Variant, error) {
	playlist, listType, err := m3u8.DecodeFrom(strings.NewReader(body), false)
	if err != nil {
		return variants, fmt.Errorf("decode m3u8: %w", err)
	}
	if listType != m3u8.MASTER {
		return variants, errors.New("decode m3u8: not a master playlist")
	}

	master, ok := playlist.(*m3u8.MasterPlaylist)
	if !ok {
		return variants, fmt.Errorf("decode m3u8: unexpected playlist type %T", playlist)
	}

	byURI := make(map[string]*m3u8.Variant, len(master.Variants))
	for _, v := range master.Variants {
		if v != nil {
			byURI[v.URI] = v
		}
	}

	result := make([]Variant, len(variants))
	for i, v := range variants {
		result[i] = v
		if mv, ok := byURI[v.URL]; ok {
			result[i].Resolution = mv.Resolution
			result[i].FrameRate = mv.FrameRate
			result[i].Bandwidth = mv.Bandwidth
		}
	}

	return result, nil
}
