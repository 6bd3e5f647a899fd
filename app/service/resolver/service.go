package resolver

import (
	"context"
	"io"
	"log/slog"
	"os"
	"twitchlink/app/service/stream"
	"twitchlink/app/service/vod"
	"twitchlink/pkg/util"

	"github.com/getsentry/sentry-go"
	"github.com/samber/do"
)

type Service struct {
	di  *do.Injector
	out io.Writer
}

func New(di *do.Injector) (*Service, error) {
	return &Service{
		di:  di,
		out: os.Stdout,
	}, nil
}

// Run resolves identifier with the matching pipeline and prints the links.
// Nothing is printed when a pipeline fails.
func (s *Service) Run(ctx context.Context, identifier string) error {
	target, id, err := Classify(identifier)
	if err != nil {
		return err
	}

	ctx = context.WithValue(ctx, util.IdentifierContextKey, id)
	ctx = context.WithValue(ctx, util.PipelineContextKey, target.String())

	span := sentry.StartSpan(ctx, "resolver."+target.String())
	defer span.Finish()
	span.SetTag("identifier", id)
	ctx = span.Context()

	slog.DebugContext(ctx, "Resolving identifier")

	switch target {
	case TargetVOD:
		// credentials are loaded here, before the first Helix call
		svc, err := do.Invoke[*vod.Service](s.di)
		if err != nil {
			return err
		}

		result, err := svc.Resolve(ctx, id)
		if err != nil {
			return err
		}

		slog.InfoContext(ctx, "VOD resolved",
			slog.String("title", result.Video.Title),
			slog.Int("links", len(result.Links)),
		)
		return writeVOD(s.out, identifier, result)
	default:
		svc, err := do.Invoke[*stream.Service](s.di)
		if err != nil {
			return err
		}

		result, err := svc.Resolve(ctx, id)
		if err != nil {
			return err
		}

		slog.InfoContext(ctx, "Stream resolved",
			slog.Int("variants", len(result.Variants)),
		)
		return writeStream(s.out, identifier, result)
	}
}
