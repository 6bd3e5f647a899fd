package cdn

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"twitchlink/pkg/config"

	"github.com/samber/do"
	"golang.org/x/sync/errgroup"
)

// Rendition is the only rendition probed.
const Rendition = "720p60"

// ProbeResult is the outcome of a single probe. A failed probe is not an
// error of the pipeline; it only means the media is not on that host.
type ProbeResult struct {
	Host   string
	URL    string
	Status int
	Err    error
}

func (r ProbeResult) OK() bool {
	return r.Err == nil && r.Status >= 200 && r.Status <= 299
}

type Prober struct {
	cfg    *config.Config
	client *http.Client
}

func New(di *do.Injector) (*Prober, error) {
	return &Prober{
		cfg:    do.MustInvoke[*config.Config](di),
		client: &http.Client{},
	}, nil
}

// CandidateLink composes the delivery URL of mediaKey on host.
func CandidateLink(host, mediaKey string) string {
	return fmt.Sprintf("%s/%s/%s/index-dvr.m3u8", strings.TrimRight(host, "/"), mediaKey, Rendition)
}

// Probe checks every host exactly once. Results are in host order no matter
// which probe finishes first.
func (p *Prober) Probe(ctx context.Context, hosts []string, mediaKey string) []ProbeResult {
	results := make([]ProbeResult, len(hosts))

	var g errgroup.Group
	if p.cfg.Probe.Concurrency > 0 {
		g.SetLimit(p.cfg.Probe.Concurrency)
	}

	for i, host := range hosts {
		g.Go(func() error {
			results[i] = p.probe(ctx, host, mediaKey)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// Found returns the links of successful probes, in host order.
func Found(results []ProbeResult) []string {
	links := make([]string, 0, len(results))
	for _, r := range results {
		if r.OK() {
			links = append(links, r.URL)
		}
	}
	return links
}

func (p *Prober) probe(ctx context.Context, host, mediaKey string) ProbeResult {
	result := ProbeResult{Host: host, URL: CandidateLink(host, mediaKey)}

	ctx, cancel := context.WithTimeout(ctx, p.cfg.Probe.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, p.cfg.Probe.Method, result.URL, nil)
	if err != nil {
		result.Err = err
		return result
	}

	resp, err := p.client.Do(req)
	if err != nil {
		result.Err = err
		slog.DebugContext(ctx, "Probe failed",
			slog.String("url", result.URL),
			slog.Any("error", err),
		)
		return result
	}
	_ = resp.Body.Close()

	result.Status = resp.StatusCode
	slog.DebugContext(ctx, "Probe finished",
		slog.String("url", result.URL),
		slog.Int("status", resp.StatusCode),
	)

	return result
}
