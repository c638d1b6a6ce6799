package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/yamdb/yamdb/application/importer"
	"github.com/yamdb/yamdb/domain/catalog"
)

// KindCount is the number of stored records of one kind.
type KindCount struct {
	Kind  catalog.Kind `json:"kind" yaml:"kind"`
	Count int64        `json:"count" yaml:"count"`
}

// RatedTitle is a title with its average score. Rating is nil for a title
// with no reviews.
type RatedTitle struct {
	ID      int64    `json:"id" yaml:"id"`
	Name    string   `json:"name" yaml:"name"`
	Year    int      `json:"year" yaml:"year"`
	Rating  *float64 `json:"rating" yaml:"rating"`
	Reviews int64    `json:"reviews" yaml:"reviews"`
}

// Stats summarizes the stored catalog.
type Stats struct {
	Counts []KindCount  `json:"counts" yaml:"counts"`
	Titles []RatedTitle `json:"titles" yaml:"titles"`
}

// Catalog provides read-only queries over the stored catalog.
type Catalog struct {
	stores catalog.Stores
	logger *slog.Logger
}

// NewCatalog creates a new Catalog service.
func NewCatalog(stores catalog.Stores, logger *slog.Logger) *Catalog {
	return &Catalog{stores: stores, logger: logger}
}

// Counts returns the number of records of every kind, in load order.
func (s *Catalog) Counts(ctx context.Context) ([]KindCount, error) {
	counters := map[catalog.Kind]func(context.Context) (int64, error){
		catalog.KindUsers:       func(ctx context.Context) (int64, error) { return s.stores.Users.Count(ctx) },
		catalog.KindCategories:  func(ctx context.Context) (int64, error) { return s.stores.Categories.Count(ctx) },
		catalog.KindGenres:      func(ctx context.Context) (int64, error) { return s.stores.Genres.Count(ctx) },
		catalog.KindTitles:      func(ctx context.Context) (int64, error) { return s.stores.Titles.Count(ctx) },
		catalog.KindReviews:     func(ctx context.Context) (int64, error) { return s.stores.Reviews.Count(ctx) },
		catalog.KindComments:    func(ctx context.Context) (int64, error) { return s.stores.Comments.Count(ctx) },
		catalog.KindGenreTitles: func(ctx context.Context) (int64, error) { return s.stores.GenreTitles.Count(ctx) },
	}

	counts := make([]KindCount, 0, len(counters))
	for _, kind := range catalog.AllKinds() {
		n, err := counters[kind](ctx)
		if err != nil {
			return nil, fmt.Errorf("count %s: %w", kind, err)
		}
		counts = append(counts, KindCount{Kind: kind, Count: n})
	}
	return counts, nil
}

// TopRated returns up to limit titles ordered by average score, best
// first. limit <= 0 returns every title.
func (s *Catalog) TopRated(ctx context.Context, limit int) ([]RatedTitle, error) {
	ratings, err := s.stores.Titles.Ratings(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("rate titles: %w", err)
	}

	titles := make([]RatedTitle, len(ratings))
	for i, r := range ratings {
		t := r.Title()
		titles[i] = RatedTitle{ID: t.ID(), Name: t.Name(), Year: t.Year(), Reviews: r.Reviews()}
		if avg, ok := r.Rating(); ok {
			titles[i].Rating = &avg
		}
	}
	return titles, nil
}

// Stats returns record counts and the top rated titles.
func (s *Catalog) Stats(ctx context.Context, limit int) (Stats, error) {
	counts, err := s.Counts(ctx)
	if err != nil {
		return Stats{}, err
	}
	titles, err := s.TopRated(ctx, limit)
	if err != nil {
		return Stats{}, err
	}
	s.logger.DebugContext(ctx, "catalog stats computed", slog.Int("titles", len(titles)))
	return Stats{Counts: counts, Titles: titles}, nil
}

// Render writes the stats to w in the given format.
func (st Stats) Render(w io.Writer, format importer.Format) error {
	switch format {
	case importer.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(st); err != nil {
			return fmt.Errorf("encode stats: %w", err)
		}
		return nil
	case importer.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(st); err != nil {
			return fmt.Errorf("encode stats: %w", err)
		}
		return enc.Close()
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KIND\tCOUNT")
	for _, c := range st.Counts {
		fmt.Fprintf(tw, "%s\t%d\n", c.Kind, c.Count)
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "TITLE\tYEAR\tRATING\tREVIEWS")
	for _, t := range st.Titles {
		rating := "-"
		if t.Rating != nil {
			rating = fmt.Sprintf("%.2f", *t.Rating)
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%d\n", t.Name, t.Year, rating, t.Reviews)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write stats: %w", err)
	}
	return nil
}
