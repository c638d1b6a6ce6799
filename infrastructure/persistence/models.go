package persistence

import (
	"time"
)

// Catalog keys come from the source files, so the entity models do not
// auto-increment. Only genre_titles assigns its own keys.

// UserModel represents a catalog user in the database.
type UserModel struct {
	ID        int64  `gorm:"column:id;primaryKey;autoIncrement:false"`
	Username  string `gorm:"column:username;size:150;not null;uniqueIndex:idx_users_username;uniqueIndex:idx_users_username_email,priority:1"`
	Email     string `gorm:"column:email;size:254;not null;uniqueIndex:idx_users_email;uniqueIndex:idx_users_username_email,priority:2"`
	Role      string `gorm:"column:role;size:16;not null;default:user"`
	Bio       string `gorm:"column:bio;type:text"`
	FirstName string `gorm:"column:first_name;size:150"`
	LastName  string `gorm:"column:last_name;size:150"`
}

// TableName returns the table name.
func (UserModel) TableName() string {
	return "users"
}

// CategoryModel represents a title category in the database.
type CategoryModel struct {
	ID   int64  `gorm:"column:id;primaryKey;autoIncrement:false"`
	Name string `gorm:"column:name;size:256;not null"`
	Slug string `gorm:"column:slug;size:50;not null;uniqueIndex:idx_categories_slug"`
}

// TableName returns the table name.
func (CategoryModel) TableName() string {
	return "categories"
}

// GenreModel represents a title genre in the database.
// Slug is NULL for placeholder genres; NULLs never collide on the unique index.
type GenreModel struct {
	ID   int64   `gorm:"column:id;primaryKey;autoIncrement:false"`
	Name string  `gorm:"column:name;size:256;not null"`
	Slug *string `gorm:"column:slug;size:50;uniqueIndex:idx_genres_slug"`
}

// TableName returns the table name.
func (GenreModel) TableName() string {
	return "genres"
}

// TitleModel represents a catalog title in the database.
type TitleModel struct {
	ID          int64          `gorm:"column:id;primaryKey;autoIncrement:false"`
	Name        string         `gorm:"column:name;size:256;not null;uniqueIndex:idx_titles_name_year,priority:1"`
	Year        int            `gorm:"column:year;not null;index;uniqueIndex:idx_titles_name_year,priority:2"`
	Description *string        `gorm:"column:description;type:text"`
	CategoryID  *int64         `gorm:"column:category_id;index"`
	Category    *CategoryModel `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
}

// TableName returns the table name.
func (TitleModel) TableName() string {
	return "titles"
}

// GenreTitleModel links a genre to a title.
type GenreTitleModel struct {
	ID      int64       `gorm:"column:id;primaryKey;autoIncrement"`
	GenreID int64       `gorm:"column:genre_id;not null;index;uniqueIndex:idx_genre_titles_genre_title,priority:1"`
	TitleID int64       `gorm:"column:title_id;not null;index;uniqueIndex:idx_genre_titles_genre_title,priority:2"`
	Genre   *GenreModel `gorm:"foreignKey:GenreID;constraint:OnDelete:CASCADE"`
	Title   *TitleModel `gorm:"foreignKey:TitleID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name.
func (GenreTitleModel) TableName() string {
	return "genre_titles"
}

// ReviewModel represents a scored review in the database.
type ReviewModel struct {
	ID       int64       `gorm:"column:id;primaryKey;autoIncrement:false"`
	TitleID  int64       `gorm:"column:title_id;not null;index;uniqueIndex:idx_reviews_title_author,priority:1"`
	AuthorID int64       `gorm:"column:author_id;not null;index;uniqueIndex:idx_reviews_title_author,priority:2"`
	Text     string      `gorm:"column:text;type:text;not null"`
	Score    int         `gorm:"column:score;not null;check:chk_reviews_score,score BETWEEN 1 AND 10"`
	PubDate  time.Time   `gorm:"column:pub_date;not null;index"`
	Title    *TitleModel `gorm:"foreignKey:TitleID;constraint:OnDelete:CASCADE"`
	Author   *UserModel  `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name.
func (ReviewModel) TableName() string {
	return "reviews"
}

// CommentModel represents a comment on a review in the database.
type CommentModel struct {
	ID       int64        `gorm:"column:id;primaryKey;autoIncrement:false"`
	ReviewID int64        `gorm:"column:review_id;not null;index"`
	AuthorID int64        `gorm:"column:author_id;not null;index"`
	Text     string       `gorm:"column:text;type:text;not null"`
	PubDate  time.Time    `gorm:"column:pub_date;not null;index"`
	Review   *ReviewModel `gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE"`
	Author   *UserModel   `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name.
func (CommentModel) TableName() string {
	return "comments"
}
