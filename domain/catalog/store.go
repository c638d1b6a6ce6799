package catalog

import (
	"context"

	"github.com/yamdb/yamdb/domain/repository"
)

// Store is the persistence contract shared by every catalog entity.
type Store[T any] interface {
	Create(ctx context.Context, entity T) (T, error)
	Find(ctx context.Context, options ...repository.Option) ([]T, error)
	FindOne(ctx context.Context, options ...repository.Option) (T, error)
	Exists(ctx context.Context, options ...repository.Option) (bool, error)
	Count(ctx context.Context, options ...repository.Option) (int64, error)
}

// TitleStore persists titles and aggregates their ratings.
type TitleStore interface {
	Store[Title]
	// Ratings returns titles with their average score, best first.
	// Unrated titles come last. limit <= 0 means no limit.
	Ratings(ctx context.Context, limit int) ([]TitleRating, error)
}

// Stores groups the stores for every catalog entity, all bound to the same
// database session.
type Stores struct {
	Users       Store[User]
	Categories  Store[Category]
	Genres      Store[Genre]
	Titles      TitleStore
	Reviews     Store[Review]
	Comments    Store[Comment]
	GenreTitles Store[GenreTitle]
}
