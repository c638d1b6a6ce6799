// Package catalog defines the reviews catalog domain: users, categories,
// genres, titles, reviews, comments, and the genre/title association.
package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrOrder indicates an import order loads a kind before one it references.
var ErrOrder = errors.New("invalid import order")

// Kind identifies one source file name and the entity it loads.
type Kind string

// Kind values. The string is the base name of the CSV file.
const (
	KindUsers       Kind = "users"
	KindCategories  Kind = "category"
	KindGenres      Kind = "genre"
	KindTitles      Kind = "titles"
	KindReviews     Kind = "review"
	KindComments    Kind = "comments"
	KindGenreTitles Kind = "genre_title"
)

// ImportOrder is the order in which entity kinds are loaded. The genre/title
// association is loaded after all of them.
var ImportOrder = []Kind{
	KindUsers,
	KindCategories,
	KindGenres,
	KindTitles,
	KindReviews,
	KindComments,
}

// AllKinds returns every recognized kind, in load order.
func AllKinds() []Kind {
	kinds := make([]Kind, 0, len(ImportOrder)+1)
	kinds = append(kinds, ImportOrder...)
	return append(kinds, KindGenreTitles)
}

// ParseKind maps a file base name to its Kind.
func ParseKind(name string) (Kind, bool) {
	k := Kind(strings.ToLower(name))
	for _, known := range AllKinds() {
		if k == known {
			return known, true
		}
	}
	return "", false
}

// String returns the kind name.
func (k Kind) String() string { return string(k) }

// Dependencies returns the kinds this kind references by foreign key.
func (k Kind) Dependencies() []Kind {
	switch k {
	case KindTitles:
		return []Kind{KindCategories}
	case KindReviews:
		return []Kind{KindTitles, KindUsers}
	case KindComments:
		return []Kind{KindReviews, KindUsers}
	case KindGenreTitles:
		return []Kind{KindTitles, KindGenres}
	default:
		return nil
	}
}

// ValidateOrder checks that every kind in order appears after all the kinds
// it depends on, and that no kind appears twice.
func ValidateOrder(order []Kind) error {
	seen := make(map[Kind]bool, len(order))
	for _, k := range order {
		if seen[k] {
			return fmt.Errorf("%w: %s listed twice", ErrOrder, k)
		}
		for _, dep := range k.Dependencies() {
			if !seen[dep] {
				return fmt.Errorf("%w: %s loaded before %s", ErrOrder, k, dep)
			}
		}
		seen[k] = true
	}
	return nil
}
