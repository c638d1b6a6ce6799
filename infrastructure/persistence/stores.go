package persistence

import (
	"github.com/yamdb/yamdb/domain/catalog"
	"github.com/yamdb/yamdb/internal/database"
)

// UserStore implements catalog.Store[catalog.User] using GORM.
type UserStore struct {
	database.Repository[catalog.User, UserModel]
}

// NewUserStore creates a new UserStore.
func NewUserStore(db database.Database) UserStore {
	return UserStore{
		Repository: database.NewRepository[catalog.User, UserModel](db, UserMapper{}, "user"),
	}
}

// CategoryStore implements catalog.Store[catalog.Category] using GORM.
type CategoryStore struct {
	database.Repository[catalog.Category, CategoryModel]
}

// NewCategoryStore creates a new CategoryStore.
func NewCategoryStore(db database.Database) CategoryStore {
	return CategoryStore{
		Repository: database.NewRepository[catalog.Category, CategoryModel](db, CategoryMapper{}, "category"),
	}
}

// GenreStore implements catalog.Store[catalog.Genre] using GORM.
type GenreStore struct {
	database.Repository[catalog.Genre, GenreModel]
}

// NewGenreStore creates a new GenreStore.
func NewGenreStore(db database.Database) GenreStore {
	return GenreStore{
		Repository: database.NewRepository[catalog.Genre, GenreModel](db, GenreMapper{}, "genre"),
	}
}

// GenreTitleStore implements catalog.Store[catalog.GenreTitle] using GORM.
type GenreTitleStore struct {
	database.Repository[catalog.GenreTitle, GenreTitleModel]
}

// NewGenreTitleStore creates a new GenreTitleStore.
func NewGenreTitleStore(db database.Database) GenreTitleStore {
	return GenreTitleStore{
		Repository: database.NewRepository[catalog.GenreTitle, GenreTitleModel](db, GenreTitleMapper{}, "genre title"),
	}
}

// ReviewStore implements catalog.Store[catalog.Review] using GORM.
type ReviewStore struct {
	database.Repository[catalog.Review, ReviewModel]
}

// NewReviewStore creates a new ReviewStore.
func NewReviewStore(db database.Database) ReviewStore {
	return ReviewStore{
		Repository: database.NewRepository[catalog.Review, ReviewModel](db, ReviewMapper{}, "review"),
	}
}

// CommentStore implements catalog.Store[catalog.Comment] using GORM.
type CommentStore struct {
	database.Repository[catalog.Comment, CommentModel]
}

// NewCommentStore creates a new CommentStore.
func NewCommentStore(db database.Database) CommentStore {
	return CommentStore{
		Repository: database.NewRepository[catalog.Comment, CommentModel](db, CommentMapper{}, "comment"),
	}
}

// NewStores creates every catalog store bound to db. Passing a Database
// bound to a transaction scopes all of them to that transaction.
func NewStores(db database.Database) catalog.Stores {
	return catalog.Stores{
		Users:       NewUserStore(db),
		Categories:  NewCategoryStore(db),
		Genres:      NewGenreStore(db),
		Titles:      NewTitleStore(db),
		Reviews:     NewReviewStore(db),
		Comments:    NewCommentStore(db),
		GenreTitles: NewGenreTitleStore(db),
	}
}
