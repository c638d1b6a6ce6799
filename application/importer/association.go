package importer

import (
	"context"
	"errors"
	"fmt"

	"github.com/yamdb/yamdb/domain/catalog"
	"github.com/yamdb/yamdb/domain/repository"
	"github.com/yamdb/yamdb/internal/database"
)

// associationHandler links titles to genres. The row's own id column is
// ignored; the store assigns the link key.
type associationHandler struct{}

func (associationHandler) Columns() []string { return []string{"title_id", "genre_id"} }

func (associationHandler) Import(ctx context.Context, stores catalog.Stores, rec Record) (Outcome, error) {
	row, err := decodeGenreTitle(rec)
	if err != nil {
		return OutcomeSkipped, err
	}
	if err := requireExists(ctx, stores.Titles, "title_id", row.TitleID); err != nil {
		return OutcomeSkipped, err
	}
	if _, err := findOrCreateGenre(ctx, stores.Genres, row.GenreID); err != nil {
		return OutcomeSkipped, err
	}

	linked, err := stores.GenreTitles.Exists(ctx,
		repository.WithGenreID(row.GenreID),
		repository.WithTitleID(row.TitleID),
	)
	if err != nil {
		return OutcomeSkipped, fmt.Errorf("check link: %w", err)
	}
	if linked {
		return OutcomeUnchanged, nil
	}
	if _, err := stores.GenreTitles.Create(ctx, catalog.NewGenreTitle(row.GenreID, row.TitleID)); err != nil {
		return OutcomeSkipped, err
	}
	return OutcomeInserted, nil
}

// findOrCreateGenre returns the genre with primary key id, creating a
// placeholder with no name and no slug when there is none.
func findOrCreateGenre(ctx context.Context, genres catalog.Store[catalog.Genre], id int64) (catalog.Genre, error) {
	genre, err := genres.FindOne(ctx, repository.WithID(id))
	if err == nil {
		return genre, nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return catalog.Genre{}, fmt.Errorf("find genre: %w", err)
	}
	created, err := genres.Create(ctx, catalog.NewPlaceholderGenre(id))
	if err != nil {
		return catalog.Genre{}, fmt.Errorf("create placeholder genre: %w", err)
	}
	return created, nil
}
