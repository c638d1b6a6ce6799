package persistence

import (
	"context"
	"fmt"

	"github.com/yamdb/yamdb/domain/catalog"
	"github.com/yamdb/yamdb/internal/database"
)

// TitleStore implements catalog.TitleStore using GORM.
type TitleStore struct {
	database.Repository[catalog.Title, TitleModel]
}

// NewTitleStore creates a new TitleStore.
func NewTitleStore(db database.Database) TitleStore {
	return TitleStore{
		Repository: database.NewRepository[catalog.Title, TitleModel](db, TitleMapper{}, "title"),
	}
}

type titleRatingRow struct {
	ID          int64
	Name        string
	Year        int
	Description *string
	CategoryID  *int64
	Rating      *float64
	Reviews     int64
}

// Ratings returns titles with their average review score, highest first.
// Titles without reviews come last, ordered by id.
func (s TitleStore) Ratings(ctx context.Context, limit int) ([]catalog.TitleRating, error) {
	var rows []titleRatingRow
	db := s.DB(ctx).
		Table("titles").
		Select("titles.id, titles.name, titles.year, titles.description, titles.category_id, " +
			"AVG(reviews.score) AS rating, COUNT(reviews.id) AS reviews").
		Joins("LEFT JOIN reviews ON reviews.title_id = titles.id").
		Group("titles.id, titles.name, titles.year, titles.description, titles.category_id").
		Order("AVG(reviews.score) IS NULL, AVG(reviews.score) DESC, titles.id ASC")
	if limit > 0 {
		db = db.Limit(limit)
	}
	if err := db.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("aggregate title ratings: %w", err)
	}

	mapper := s.Mapper()
	ratings := make([]catalog.TitleRating, len(rows))
	for i, row := range rows {
		title := mapper.ToDomain(TitleModel{
			ID:          row.ID,
			Name:        row.Name,
			Year:        row.Year,
			Description: row.Description,
			CategoryID:  row.CategoryID,
		})
		var avg float64
		if row.Rating != nil {
			avg = *row.Rating
		}
		ratings[i] = catalog.NewTitleRating(title, avg, row.Rating != nil, row.Reviews)
	}
	return ratings, nil
}
