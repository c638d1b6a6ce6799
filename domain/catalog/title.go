package catalog

import (
	"errors"
	"fmt"
	"time"
)

// ErrFutureYear indicates a title year later than the current year.
var ErrFutureYear = errors.New("year is in the future")

// ValidateYear checks that year is not later than the year of now.
func ValidateYear(year int, now time.Time) error {
	if year > now.Year() {
		return fmt.Errorf("%w: %d > %d", ErrFutureYear, year, now.Year())
	}
	return nil
}

// Title is a catalog work that can be reviewed.
type Title struct {
	id          int64
	name        string
	year        int
	description string
	categoryID  int64
}

// NewTitle creates a Title. A categoryID of 0 means the title has no category.
func NewTitle(id int64, name string, year int, description string, categoryID int64) Title {
	return Title{
		id:          id,
		name:        name,
		year:        year,
		description: description,
		categoryID:  categoryID,
	}
}

// ID returns the primary key.
func (t Title) ID() int64 { return t.id }

// Name returns the title name.
func (t Title) Name() string { return t.name }

// Year returns the release year.
func (t Title) Year() int { return t.year }

// Description returns the description, or "" if none.
func (t Title) Description() string { return t.description }

// CategoryID returns the category key, or 0 if uncategorized.
func (t Title) CategoryID() int64 { return t.categoryID }

// HasCategory reports whether the title belongs to a category.
func (t Title) HasCategory() bool { return t.categoryID != 0 }

// GenreTitle links a genre to a title.
type GenreTitle struct {
	id      int64
	genreID int64
	titleID int64
}

// NewGenreTitle creates a link with no key yet; the store assigns one.
func NewGenreTitle(genreID, titleID int64) GenreTitle {
	return GenreTitle{genreID: genreID, titleID: titleID}
}

// ReconstructGenreTitle recreates a stored link.
func ReconstructGenreTitle(id, genreID, titleID int64) GenreTitle {
	return GenreTitle{id: id, genreID: genreID, titleID: titleID}
}

// ID returns the link's own key.
func (g GenreTitle) ID() int64 { return g.id }

// GenreID returns the linked genre.
func (g GenreTitle) GenreID() int64 { return g.genreID }

// TitleID returns the linked title.
func (g GenreTitle) TitleID() int64 { return g.titleID }

// TitleRating is a title with its average review score.
type TitleRating struct {
	title   Title
	rating  float64
	rated   bool
	reviews int64
}

// NewTitleRating creates a TitleRating. rated is false when the title has no reviews.
func NewTitleRating(title Title, rating float64, rated bool, reviews int64) TitleRating {
	return TitleRating{title: title, rating: rating, rated: rated, reviews: reviews}
}

// Title returns the rated title.
func (r TitleRating) Title() Title { return r.title }

// Rating returns the average score and whether there is one.
func (r TitleRating) Rating() (float64, bool) { return r.rating, r.rated }

// Reviews returns the number of reviews.
func (r TitleRating) Reviews() int64 { return r.reviews }
