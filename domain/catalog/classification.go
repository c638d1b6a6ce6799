package catalog

// Category groups titles (e.g. film, book). A title has at most one.
type Category struct {
	id   int64
	name string
	slug string
}

// NewCategory creates a Category.
func NewCategory(id int64, name, slug string) Category {
	return Category{id: id, name: name, slug: slug}
}

// ID returns the primary key.
func (c Category) ID() int64 { return c.id }

// Name returns the display name.
func (c Category) Name() string { return c.name }

// Slug returns the unique URL key.
func (c Category) Slug() string { return c.slug }

// Genre tags titles. A title may have many genres.
type Genre struct {
	id   int64
	name string
	slug string
}

// NewGenre creates a Genre.
func NewGenre(id int64, name, slug string) Genre {
	return Genre{id: id, name: name, slug: slug}
}

// NewPlaceholderGenre creates a Genre that only carries its primary key.
// Placeholders are synthesized when an association references a genre that
// was never loaded. They have no name and no slug.
func NewPlaceholderGenre(id int64) Genre {
	return Genre{id: id}
}

// ID returns the primary key.
func (g Genre) ID() int64 { return g.id }

// Name returns the display name.
func (g Genre) Name() string { return g.name }

// Slug returns the unique URL key, or "" for a placeholder.
func (g Genre) Slug() string { return g.slug }

// IsPlaceholder reports whether the genre has no slug.
func (g Genre) IsPlaceholder() bool { return g.slug == "" }
