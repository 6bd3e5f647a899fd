package vod

import (
	"context"
	"fmt"
	"log/slog"
	"twitchlink/app/client/cdn"
	"twitchlink/app/client/twitch"
	"twitchlink/pkg/config"

	"github.com/samber/do"
)

type Result struct {
	Video    twitch.Video
	Location Location
	Probes   []cdn.ProbeResult
	Links    []string
}

// Found is false when no candidate host served the VOD. That is a normal
// outcome, not an error.
func (r *Result) Found() bool {
	return len(r.Links) > 0
}

type Service struct {
	cfg    *config.Config
	client *twitch.Client
	prober *cdn.Prober
}

func New(di *do.Injector) (*Service, error) {
	client, err := do.Invoke[*twitch.Client](di)
	if err != nil {
		return nil, err
	}

	return &Service{
		cfg:    do.MustInvoke[*config.Config](di),
		client: client,
		prober: do.MustInvoke[*cdn.Prober](di),
	}, nil
}

// Resolve fetches the VOD metadata, decodes the media key from its
// thumbnail and probes every candidate CDN host for it.
func (s *Service) Resolve(ctx context.Context, id string) (*Result, error) {
	body, err := s.client.GetVideos(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get vod info: %w", err)
	}

	video, err := DecodeMetadata(body)
	if err != nil {
		return nil, err
	}

	location, err := DecodeThumbnail(video.ThumbnailURL)
	if err != nil {
		return nil, err
	}

	hosts := s.cfg.CandidateHosts()

	slog.DebugContext(ctx, "Probing CDN hosts",
		slog.String("media_key", location.MediaKey),
		slog.String("storage_id", location.StorageID),
		slog.String("epoch", s.cfg.CDN.Epoch),
		slog.Int("hosts", len(hosts)),
	)

	probes := s.prober.Probe(ctx, hosts, location.MediaKey)

	// a cancelled run is not a NotFound outcome
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("probe cdn hosts: %w", err)
	}
	result := &Result{
		Video:    *video,
		Location: location,
		Probes:   probes,
		Links:    cdn.Found(probes),
	}

	if !result.Found() {
		slog.WarnContext(ctx, "No CDN host serves this VOD",
			slog.String("media_key", location.MediaKey),
			slog.String("epoch", s.cfg.CDN.Epoch),
		)
	}

	return result, nil
}
