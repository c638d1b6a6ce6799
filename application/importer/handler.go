package importer

import (
	"context"
	"fmt"
	"time"

	"github.com/yamdb/yamdb/domain/catalog"
	"github.com/yamdb/yamdb/domain/repository"
)

// Handler imports one row of a kind.
type Handler interface {
	// Columns returns the header columns a file of this kind must have.
	Columns() []string
	// Import decodes rec, resolves its references and persists it using
	// stores, which are bound to the row's transaction.
	Import(ctx context.Context, stores catalog.Stores, rec Record) (Outcome, error)
}

// Registry maps kinds to their row handlers.
type Registry struct {
	handlers map[catalog.Kind]Handler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[catalog.Kind]Handler)}
}

// DefaultRegistry returns a registry with a handler for every known kind.
// clock supplies the current time for year checks and empty pub_date cells.
func DefaultRegistry(clock func() time.Time) *Registry {
	r := NewRegistry()
	r.Register(catalog.KindUsers, usersHandler{})
	r.Register(catalog.KindCategories, categoriesHandler{})
	r.Register(catalog.KindGenres, genresHandler{})
	r.Register(catalog.KindTitles, titlesHandler{clock: clock})
	r.Register(catalog.KindReviews, reviewsHandler{clock: clock})
	r.Register(catalog.KindComments, commentsHandler{clock: clock})
	r.Register(catalog.KindGenreTitles, associationHandler{})
	return r
}

// Register adds a handler for kind, replacing any previous one.
func (r *Registry) Register(kind catalog.Kind, handler Handler) {
	r.handlers[kind] = handler
}

// Handler returns the handler for kind.
// Returns ErrNoHandler if none is registered.
func (r *Registry) Handler(kind catalog.Kind) (Handler, error) {
	h, ok := r.handlers[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoHandler, kind)
	}
	return h, nil
}

type usersHandler struct{}

func (usersHandler) Columns() []string { return []string{"id", "username", "email"} }

func (usersHandler) Import(ctx context.Context, stores catalog.Stores, rec Record) (Outcome, error) {
	user, err := decodeUser(rec)
	if err != nil {
		return OutcomeSkipped, err
	}
	if _, err := stores.Users.Create(ctx, user); err != nil {
		return OutcomeSkipped, err
	}
	return OutcomeInserted, nil
}

type categoriesHandler struct{}

func (categoriesHandler) Columns() []string { return []string{"id", "name", "slug"} }

func (categoriesHandler) Import(ctx context.Context, stores catalog.Stores, rec Record) (Outcome, error) {
	category, err := decodeCategory(rec)
	if err != nil {
		return OutcomeSkipped, err
	}
	if _, err := stores.Categories.Create(ctx, category); err != nil {
		return OutcomeSkipped, err
	}
	return OutcomeInserted, nil
}

type genresHandler struct{}

func (genresHandler) Columns() []string { return []string{"id", "name", "slug"} }

func (genresHandler) Import(ctx context.Context, stores catalog.Stores, rec Record) (Outcome, error) {
	genre, err := decodeGenre(rec)
	if err != nil {
		return OutcomeSkipped, err
	}
	if _, err := stores.Genres.Create(ctx, genre); err != nil {
		return OutcomeSkipped, err
	}
	return OutcomeInserted, nil
}

type titlesHandler struct {
	clock func() time.Time
}

func (titlesHandler) Columns() []string { return []string{"id", "name", "year"} }

func (h titlesHandler) Import(ctx context.Context, stores catalog.Stores, rec Record) (Outcome, error) {
	title, hasCategory, err := decodeTitle(rec, h.clock())
	if err != nil {
		return OutcomeSkipped, err
	}
	if hasCategory {
		if err := requireExists(ctx, stores.Categories, "category", title.CategoryID()); err != nil {
			return OutcomeSkipped, err
		}
	}
	if _, err := stores.Titles.Create(ctx, title); err != nil {
		return OutcomeSkipped, err
	}
	return OutcomeInserted, nil
}

type reviewsHandler struct {
	clock func() time.Time
}

func (reviewsHandler) Columns() []string {
	return []string{"id", "title_id", "text", "author", "score"}
}

func (h reviewsHandler) Import(ctx context.Context, stores catalog.Stores, rec Record) (Outcome, error) {
	review, err := decodeReview(rec, h.clock())
	if err != nil {
		return OutcomeSkipped, err
	}
	if err := requireExists(ctx, stores.Titles, "title_id", review.TitleID()); err != nil {
		return OutcomeSkipped, err
	}
	if err := requireExists(ctx, stores.Users, "author", review.AuthorID()); err != nil {
		return OutcomeSkipped, err
	}
	if _, err := stores.Reviews.Create(ctx, review); err != nil {
		return OutcomeSkipped, err
	}
	return OutcomeInserted, nil
}

type commentsHandler struct {
	clock func() time.Time
}

func (commentsHandler) Columns() []string {
	return []string{"id", "review_id", "text", "author"}
}

func (h commentsHandler) Import(ctx context.Context, stores catalog.Stores, rec Record) (Outcome, error) {
	comment, err := decodeComment(rec, h.clock())
	if err != nil {
		return OutcomeSkipped, err
	}
	if err := requireExists(ctx, stores.Reviews, "review_id", comment.ReviewID()); err != nil {
		return OutcomeSkipped, err
	}
	if err := requireExists(ctx, stores.Users, "author", comment.AuthorID()); err != nil {
		return OutcomeSkipped, err
	}
	if _, err := stores.Comments.Create(ctx, comment); err != nil {
		return OutcomeSkipped, err
	}
	return OutcomeInserted, nil
}

type existenceChecker interface {
	Exists(ctx context.Context, options ...repository.Option) (bool, error)
}

// requireExists returns a *ReferenceError when no record has primary key id.
func requireExists(ctx context.Context, store existenceChecker, column string, id int64) error {
	ok, err := store.Exists(ctx, repository.WithID(id))
	if err != nil {
		return fmt.Errorf("resolve %s: %w", column, err)
	}
	if !ok {
		return &ReferenceError{Column: column, ID: id}
	}
	return nil
}
