package catalog

import (
	"errors"
	"fmt"
	"time"
)

// Review score bounds.
const (
	MinScore = 1
	MaxScore = 10
)

// ErrScoreRange indicates a review score outside [MinScore, MaxScore].
var ErrScoreRange = errors.New("score out of range")

// ValidateScore checks a review score.
func ValidateScore(score int) error {
	if score < MinScore || score > MaxScore {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrScoreRange, score, MinScore, MaxScore)
	}
	return nil
}

// Review is a user's scored opinion of a title. A user reviews a title at most once.
type Review struct {
	id       int64
	titleID  int64
	authorID int64
	text     string
	score    int
	pubDate  time.Time
}

// NewReview creates a Review.
func NewReview(id, titleID, authorID int64, text string, score int, pubDate time.Time) Review {
	return Review{
		id:       id,
		titleID:  titleID,
		authorID: authorID,
		text:     text,
		score:    score,
		pubDate:  pubDate,
	}
}

// ID returns the primary key.
func (r Review) ID() int64 { return r.id }

// TitleID returns the reviewed title.
func (r Review) TitleID() int64 { return r.titleID }

// AuthorID returns the reviewing user.
func (r Review) AuthorID() int64 { return r.authorID }

// Text returns the review body.
func (r Review) Text() string { return r.text }

// Score returns the score in [MinScore, MaxScore].
func (r Review) Score() int { return r.score }

// PubDate returns the publication time.
func (r Review) PubDate() time.Time { return r.pubDate }

// Comment is a user's reply to a review.
type Comment struct {
	id       int64
	reviewID int64
	authorID int64
	text     string
	pubDate  time.Time
}

// NewComment creates a Comment.
func NewComment(id, reviewID, authorID int64, text string, pubDate time.Time) Comment {
	return Comment{
		id:       id,
		reviewID: reviewID,
		authorID: authorID,
		text:     text,
		pubDate:  pubDate,
	}
}

// ID returns the primary key.
func (c Comment) ID() int64 { return c.id }

// ReviewID returns the review replied to.
func (c Comment) ReviewID() int64 { return c.reviewID }

// AuthorID returns the commenting user.
func (c Comment) AuthorID() int64 { return c.authorID }

// Text returns the comment body.
func (c Comment) Text() string { return c.text }

// PubDate returns the publication time.
func (c Comment) PubDate() time.Time { return c.pubDate }
