package posters

import (
	"context"
	"fmt"

	"reelkeeper/internal/artwork"
	"reelkeeper/internal/omdb"
	"reelkeeper/internal/services"
)

// SourceOutcome records one source attempt for a title.
type SourceOutcome struct {
	Source string
	URL    string
	Kind   services.Kind
	Err    error
}

// OK reports whether the source produced image bytes.
func (o SourceOutcome) OK() bool { return o.Kind == services.KindSuccess && o.Err == nil }

// Source produces poster bytes for a title. A failed outcome means "try the
// next source".
type Source interface {
	Name() string
	Fetch(ctx context.Context, title Title) ([]byte, SourceOutcome)
}

// OMDbSource looks the title up on OMDb with a fixed type filter and
// downloads the poster it reports.
type OMDbSource struct {
	Kind       omdb.Kind
	Lookup     omdb.Looker
	Downloader artwork.Downloader
}

// MovieSource queries OMDb with type=movie.
func MovieSource(lookup omdb.Looker, downloader artwork.Downloader) *OMDbSource {
	return &OMDbSource{Kind: omdb.KindMovie, Lookup: lookup, Downloader: downloader}
}

// SeriesSource queries OMDb with type=series.
func SeriesSource(lookup omdb.Looker, downloader artwork.Downloader) *OMDbSource {
	return &OMDbSource{Kind: omdb.KindSeries, Lookup: lookup, Downloader: downloader}
}

func (s *OMDbSource) Name() string { return "omdb_" + string(s.Kind) }

func (s *OMDbSource) Fetch(ctx context.Context, title Title) ([]byte, SourceOutcome) {
	outcome := SourceOutcome{Source: s.Name()}
	res, err := s.Lookup.Lookup(ctx, title.LookupName(), s.Kind)
	if err != nil {
		return nil, failed(outcome, err)
	}
	if !res.Found {
		return nil, failed(outcome, fmt.Errorf("omdb has no %s poster for %q: %w", s.Kind, title.LookupName(), services.ErrNotFound))
	}
	outcome.URL = res.PosterURL
	data, err := s.Downloader.Download(ctx, res.PosterURL)
	if err != nil {
		return nil, failed(outcome, err)
	}
	return data, outcome
}

// FallbackSource downloads a seeded placeholder image. The seed is derived
// from the raw directory name so it never changes with lookup cleanup.
type FallbackSource struct {
	BaseURL    string
	Width      int
	Height     int
	Downloader artwork.Downloader
}

func (s *FallbackSource) Name() string { return "fallback" }

// URLFor returns the placeholder URL used for title.
func (s *FallbackSource) URLFor(title Title) string {
	return artwork.PlaceholderURL(s.BaseURL, artwork.SeedFor(title.Name), s.Width, s.Height)
}

func (s *FallbackSource) Fetch(ctx context.Context, title Title) ([]byte, SourceOutcome) {
	outcome := SourceOutcome{Source: s.Name(), URL: s.URLFor(title)}
	data, err := s.Downloader.Download(ctx, outcome.URL)
	if err != nil {
		return nil, failed(outcome, err)
	}
	return data, outcome
}

func failed(outcome SourceOutcome, err error) SourceOutcome {
	outcome.Err = err
	outcome.Kind = services.KindOf(err)
	if outcome.Kind == services.KindSuccess {
		outcome.Kind = services.KindOther
	}
	return outcome
}
