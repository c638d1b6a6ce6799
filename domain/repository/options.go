package repository

// WithID matches the primary key.
func WithID(id int64) Option { return Where("id", id) }

// WithSlug matches a category or genre slug.
func WithSlug(slug string) Option { return Where("slug", slug) }

// WithUsername matches a user's username.
func WithUsername(username string) Option { return Where("username", username) }

// WithCategoryID matches titles in a category.
func WithCategoryID(id int64) Option { return Where("category_id", id) }

// WithoutCategory matches titles with no category.
func WithoutCategory() Option { return WhereNull("category_id") }

// WithTitleID matches reviews and genre links of a title.
func WithTitleID(id int64) Option { return Where("title_id", id) }

// WithGenreID matches genre links of a genre.
func WithGenreID(id int64) Option { return Where("genre_id", id) }

// WithAuthorID matches reviews and comments by a user.
func WithAuthorID(id int64) Option { return Where("author_id", id) }
