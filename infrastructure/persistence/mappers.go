package persistence

import (
	"github.com/yamdb/yamdb/domain/catalog"
)

// UserMapper maps between domain User and persistence UserModel.
type UserMapper struct{}

// ToDomain converts a UserModel to a domain User.
func (m UserMapper) ToDomain(e UserModel) catalog.User {
	return catalog.NewUser(e.ID, e.Username, e.Email, catalog.Role(e.Role), catalog.UserProfile{
		Bio:       e.Bio,
		FirstName: e.FirstName,
		LastName:  e.LastName,
	})
}

// ToModel converts a domain User to a UserModel.
func (m UserMapper) ToModel(u catalog.User) UserModel {
	return UserModel{
		ID:        u.ID(),
		Username:  u.Username(),
		Email:     u.Email(),
		Role:      u.Role().String(),
		Bio:       u.Bio(),
		FirstName: u.FirstName(),
		LastName:  u.LastName(),
	}
}

// CategoryMapper maps between domain Category and persistence CategoryModel.
type CategoryMapper struct{}

// ToDomain converts a CategoryModel to a domain Category.
func (m CategoryMapper) ToDomain(e CategoryModel) catalog.Category {
	return catalog.NewCategory(e.ID, e.Name, e.Slug)
}

// ToModel converts a domain Category to a CategoryModel.
func (m CategoryMapper) ToModel(c catalog.Category) CategoryModel {
	return CategoryModel{ID: c.ID(), Name: c.Name(), Slug: c.Slug()}
}

// GenreMapper maps between domain Genre and persistence GenreModel.
type GenreMapper struct{}

// ToDomain converts a GenreModel to a domain Genre.
func (m GenreMapper) ToDomain(e GenreModel) catalog.Genre {
	return catalog.NewGenre(e.ID, e.Name, deref(e.Slug))
}

// ToModel converts a domain Genre to a GenreModel.
func (m GenreMapper) ToModel(g catalog.Genre) GenreModel {
	return GenreModel{ID: g.ID(), Name: g.Name(), Slug: nonEmpty(g.Slug())}
}

// TitleMapper maps between domain Title and persistence TitleModel.
type TitleMapper struct{}

// ToDomain converts a TitleModel to a domain Title.
func (m TitleMapper) ToDomain(e TitleModel) catalog.Title {
	var categoryID int64
	if e.CategoryID != nil {
		categoryID = *e.CategoryID
	}
	return catalog.NewTitle(e.ID, e.Name, e.Year, deref(e.Description), categoryID)
}

// ToModel converts a domain Title to a TitleModel.
func (m TitleMapper) ToModel(t catalog.Title) TitleModel {
	var categoryID *int64
	if t.HasCategory() {
		id := t.CategoryID()
		categoryID = &id
	}
	return TitleModel{
		ID:          t.ID(),
		Name:        t.Name(),
		Year:        t.Year(),
		Description: nonEmpty(t.Description()),
		CategoryID:  categoryID,
	}
}

// GenreTitleMapper maps between domain GenreTitle and persistence GenreTitleModel.
type GenreTitleMapper struct{}

// ToDomain converts a GenreTitleModel to a domain GenreTitle.
func (m GenreTitleMapper) ToDomain(e GenreTitleModel) catalog.GenreTitle {
	return catalog.ReconstructGenreTitle(e.ID, e.GenreID, e.TitleID)
}

// ToModel converts a domain GenreTitle to a GenreTitleModel.
func (m GenreTitleMapper) ToModel(g catalog.GenreTitle) GenreTitleModel {
	return GenreTitleModel{ID: g.ID(), GenreID: g.GenreID(), TitleID: g.TitleID()}
}

// ReviewMapper maps between domain Review and persistence ReviewModel.
type ReviewMapper struct{}

// ToDomain converts a ReviewModel to a domain Review.
func (m ReviewMapper) ToDomain(e ReviewModel) catalog.Review {
	return catalog.NewReview(e.ID, e.TitleID, e.AuthorID, e.Text, e.Score, e.PubDate)
}

// ToModel converts a domain Review to a ReviewModel.
func (m ReviewMapper) ToModel(r catalog.Review) ReviewModel {
	return ReviewModel{
		ID:       r.ID(),
		TitleID:  r.TitleID(),
		AuthorID: r.AuthorID(),
		Text:     r.Text(),
		Score:    r.Score(),
		PubDate:  r.PubDate(),
	}
}

// CommentMapper maps between domain Comment and persistence CommentModel.
type CommentMapper struct{}

// ToDomain converts a CommentModel to a domain Comment.
func (m CommentMapper) ToDomain(e CommentModel) catalog.Comment {
	return catalog.NewComment(e.ID, e.ReviewID, e.AuthorID, e.Text, e.PubDate)
}

// ToModel converts a domain Comment to a CommentModel.
func (m CommentMapper) ToModel(c catalog.Comment) CommentModel {
	return CommentModel{
		ID:       c.ID(),
		ReviewID: c.ReviewID(),
		AuthorID: c.AuthorID(),
		Text:     c.Text(),
		PubDate:  c.PubDate(),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
