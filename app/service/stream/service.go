package stream

import (
	"context"
	"fmt"
	"log/slog"
	"twitchlink/app/client/gql"
	"twitchlink/app/client/usher"
	"twitchlink/pkg/errs"
	"twitchlink/pkg/hls"

	"github.com/samber/do"
)

type Result struct {
	Channel  string
	Variants []hls.Variant
}

type Service struct {
	gql   *gql.Client
	usher *usher.Client
}

func New(di *do.Injector) (*Service, error) {
	return &Service{
		gql:   do.MustInvoke[*gql.Client](di),
		usher: do.MustInvoke[*usher.Client](di),
	}, nil
}

// Resolve exchanges a playback token for the channel's master playlist and
// lists its quality variants in playlist order.
func (s *Service) Resolve(ctx context.Context, channel string) (*Result, error) {
	info, err := s.gql.GetStreamPlaybackInfo(ctx, channel)
	if err != nil {
		return nil, fmt.Errorf("get stream info: %w", err)
	}

	token, err := gql.DecodePlaybackAccessToken(info)
	if err != nil {
		return nil, err
	}

	body, err := s.usher.GetMasterPlaylist(ctx, channel, token.Signature, token.Value)
	if err != nil {
		return nil, err
	}

	variants, err := hls.ParseMaster(body)
	if err != nil {
		return nil, errs.Shape("stream.playlist", err)
	}

	annotated, err := hls.Annotate(body, variants)
	if err != nil {
		slog.DebugContext(ctx, "Could not annotate variants",
			slog.String("channel", channel),
			slog.Any("error", err),
		)
	}

	return &Result{
		Channel:  channel,
		Variants: annotated,
	}, nil
}
