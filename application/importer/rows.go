package importer

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/yamdb/yamdb/domain/catalog"
	"github.com/yamdb/yamdb/internal/validation"
)

var errTimestamp = errors.New("not an RFC 3339 timestamp")

// Typed rows. Each field's csv tag names its source column; validate tags
// are checked after conversion.

type userRow struct {
	ID        int64  `csv:"id" validate:"gt=0"`
	Username  string `csv:"username" validate:"required,max=150,username"`
	Email     string `csv:"email" validate:"required,max=254,email"`
	Role      string `csv:"role" validate:"oneof=admin moderator user"`
	Bio       string `csv:"bio"`
	FirstName string `csv:"first_name" validate:"max=150"`
	LastName  string `csv:"last_name" validate:"max=150"`
}

type classificationRow struct {
	ID   int64  `csv:"id" validate:"gt=0"`
	Name string `csv:"name" validate:"required,max=256"`
	Slug string `csv:"slug" validate:"required,max=50,slug"`
}

type titleRow struct {
	ID          int64  `csv:"id" validate:"gt=0"`
	Name        string `csv:"name" validate:"required,max=256"`
	Year        int    `csv:"year" validate:"gte=0"`
	Description string `csv:"description"`
	Category    int64  `csv:"category" validate:"gte=0"`
}

type reviewRow struct {
	ID      int64  `csv:"id" validate:"gt=0"`
	TitleID int64  `csv:"title_id" validate:"gt=0"`
	Text    string `csv:"text" validate:"required"`
	Author  int64  `csv:"author" validate:"gt=0"`
	Score   int    `csv:"score"`
	PubDate time.Time
}

type commentRow struct {
	ID       int64  `csv:"id" validate:"gt=0"`
	ReviewID int64  `csv:"review_id" validate:"gt=0"`
	Text     string `csv:"text" validate:"required"`
	Author   int64  `csv:"author" validate:"gt=0"`
	PubDate  time.Time
}

type genreTitleRow struct {
	TitleID int64 `csv:"title_id" validate:"gt=0"`
	GenreID int64 `csv:"genre_id" validate:"gt=0"`
}

func decodeUser(rec Record) (catalog.User, error) {
	id, err := parseID(rec, "id")
	if err != nil {
		return catalog.User{}, err
	}
	role := strings.ToLower(strings.TrimSpace(rec.Get("role")))
	if role == "" {
		role = catalog.DefaultRole.String()
	}
	row := userRow{
		ID:        id,
		Username:  rec.Get("username"),
		Email:     rec.Get("email"),
		Role:      role,
		Bio:       rec.Get("bio"),
		FirstName: rec.Get("first_name"),
		LastName:  rec.Get("last_name"),
	}
	if err := validation.Struct(row); err != nil {
		return catalog.User{}, err
	}
	parsed, err := catalog.ParseRole(row.Role)
	if err != nil {
		return catalog.User{}, err
	}
	return catalog.NewUser(row.ID, row.Username, row.Email, parsed, catalog.UserProfile{
		Bio:       row.Bio,
		FirstName: row.FirstName,
		LastName:  row.LastName,
	}), nil
}

func decodeClassification(rec Record) (classificationRow, error) {
	id, err := parseID(rec, "id")
	if err != nil {
		return classificationRow{}, err
	}
	row := classificationRow{ID: id, Name: rec.Get("name"), Slug: rec.Get("slug")}
	if err := validation.Struct(row); err != nil {
		return classificationRow{}, err
	}
	return row, nil
}

func decodeCategory(rec Record) (catalog.Category, error) {
	row, err := decodeClassification(rec)
	if err != nil {
		return catalog.Category{}, err
	}
	return catalog.NewCategory(row.ID, row.Name, row.Slug), nil
}

func decodeGenre(rec Record) (catalog.Genre, error) {
	row, err := decodeClassification(rec)
	if err != nil {
		return catalog.Genre{}, err
	}
	return catalog.NewGenre(row.ID, row.Name, row.Slug), nil
}

// decodeTitle also reports whether the category cell was filled in. A
// filled cell must name an existing category, even when it is 0.
func decodeTitle(rec Record, now time.Time) (catalog.Title, bool, error) {
	id, err := parseID(rec, "id")
	if err != nil {
		return catalog.Title{}, false, err
	}
	year, err := parseInt(rec, "year")
	if err != nil {
		return catalog.Title{}, false, err
	}
	category, hasCategory, err := parseOptionalID(rec, "category")
	if err != nil {
		return catalog.Title{}, false, err
	}
	row := titleRow{
		ID:          id,
		Name:        rec.Get("name"),
		Year:        year,
		Description: rec.Get("description"),
		Category:    category,
	}
	if err := validation.Struct(row); err != nil {
		return catalog.Title{}, false, err
	}
	if err := catalog.ValidateYear(row.Year, now); err != nil {
		return catalog.Title{}, false, err
	}
	return catalog.NewTitle(row.ID, row.Name, row.Year, row.Description, row.Category), hasCategory, nil
}

func decodeReview(rec Record, now time.Time) (catalog.Review, error) {
	var row reviewRow
	var err error
	if row.ID, err = parseID(rec, "id"); err != nil {
		return catalog.Review{}, err
	}
	if row.TitleID, err = parseID(rec, "title_id"); err != nil {
		return catalog.Review{}, err
	}
	if row.Author, err = parseID(rec, "author"); err != nil {
		return catalog.Review{}, err
	}
	if row.Score, err = parseInt(rec, "score"); err != nil {
		return catalog.Review{}, err
	}
	if row.PubDate, err = parseTime(rec, "pub_date", now); err != nil {
		return catalog.Review{}, err
	}
	row.Text = rec.Get("text")

	if err := validation.Struct(row); err != nil {
		return catalog.Review{}, err
	}
	if err := catalog.ValidateScore(row.Score); err != nil {
		return catalog.Review{}, err
	}
	return catalog.NewReview(row.ID, row.TitleID, row.Author, row.Text, row.Score, row.PubDate), nil
}

func decodeComment(rec Record, now time.Time) (catalog.Comment, error) {
	var row commentRow
	var err error
	if row.ID, err = parseID(rec, "id"); err != nil {
		return catalog.Comment{}, err
	}
	if row.ReviewID, err = parseID(rec, "review_id"); err != nil {
		return catalog.Comment{}, err
	}
	if row.Author, err = parseID(rec, "author"); err != nil {
		return catalog.Comment{}, err
	}
	if row.PubDate, err = parseTime(rec, "pub_date", now); err != nil {
		return catalog.Comment{}, err
	}
	row.Text = rec.Get("text")

	if err := validation.Struct(row); err != nil {
		return catalog.Comment{}, err
	}
	return catalog.NewComment(row.ID, row.ReviewID, row.Author, row.Text, row.PubDate), nil
}

func decodeGenreTitle(rec Record) (genreTitleRow, error) {
	var row genreTitleRow
	var err error
	if row.TitleID, err = parseID(rec, "title_id"); err != nil {
		return genreTitleRow{}, err
	}
	if row.GenreID, err = parseID(rec, "genre_id"); err != nil {
		return genreTitleRow{}, err
	}
	if err := validation.Struct(row); err != nil {
		return genreTitleRow{}, err
	}
	return row, nil
}

func parseID(rec Record, column string) (int64, error) {
	raw := strings.TrimSpace(rec.Get(column))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &ValueError{Column: column, Value: rec.Get(column), Err: numError(err)}
	}
	return id, nil
}

// parseOptionalID treats an empty cell as no reference. present is true
// for any other cell, including "0".
func parseOptionalID(rec Record, column string) (id int64, present bool, err error) {
	if strings.TrimSpace(rec.Get(column)) == "" {
		return 0, false, nil
	}
	id, err = parseID(rec, column)
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

func parseInt(rec Record, column string) (int, error) {
	raw := strings.TrimSpace(rec.Get(column))
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &ValueError{Column: column, Value: rec.Get(column), Err: numError(err)}
	}
	return n, nil
}

// parseTime parses an RFC 3339 timestamp. An empty cell means now.
func parseTime(rec Record, column string, now time.Time) (time.Time, error) {
	raw := strings.TrimSpace(rec.Get(column))
	if raw == "" {
		return now, nil
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, &ValueError{Column: column, Value: rec.Get(column), Err: errTimestamp}
	}
	return t, nil
}

// numError drops strconv's echo of the input, which ValueError already reports.
func numError(err error) error {
	if ne, ok := err.(*strconv.NumError); ok {
		return ne.Err
	}
	return err
}
