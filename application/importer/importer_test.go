package importer

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yamdb/yamdb/domain/catalog"
	"github.com/yamdb/yamdb/domain/repository"
	"github.com/yamdb/yamdb/infrastructure/persistence"
	"github.com/yamdb/yamdb/internal/testdb"
)

// consistentFixture is a complete data set in which every row is valid and
// every reference resolves.
var consistentFixture = map[string]string{
	"users.csv": "id,username,email,role,bio,first_name,last_name\n" +
		"100,bingobongo,bingobongo@yamdb.fake,user,,,\n" +
		"101,capt_obvious,capt_obvious@yamdb.fake,admin,,,\n" +
		"102,faust,faust@yamdb.fake,moderator,Bio text,Johann,Faust\n",
	"category.csv": "id,name,slug\n" +
		"1,Фильм,movie\n" +
		"2,Книга,book\n",
	"genre.csv": "id,name,slug\n" +
		"1,Драма,drama\n" +
		"2,Комедия,comedy\n",
	"titles.csv": "id,name,year,category\n" +
		"1,Побег из Шоушенка,1994,1\n" +
		"2,Крестный отец,1972,1\n" +
		"3,\"Мастер и Маргарита\",1967,2\n",
	"review.csv": "id,title_id,text,author,score,pub_date\n" +
		"1,1,\"Ну, такое.\",100,10,2019-09-24T21:08:21.567Z\n" +
		"2,1,Не понравилось,101,1,2019-09-24T21:08:21.567Z\n" +
		"3,2,Классика,102,9,\n",
	"comments.csv": "id,review_id,text,author,pub_date\n" +
		"1,1,Критик фу,101,2019-09-24T21:08:21.567Z\n" +
		"2,3,Согласен,100,\n",
	"genre_title.csv": "id,title_id,genre_id\n" +
		"1,1,1\n" +
		"2,2,1\n" +
		"3,3,2\n",
}

func newTestImporter(t *testing.T, opts ...Option) (*Importer, catalog.Stores) {
	t.Helper()
	db, stores := testdb.NewStores(t)
	opts = append([]Option{WithClock(fixedClock)}, opts...)
	imp, err := New(db, persistence.NewStores, discardLogger(), opts...)
	require.NoError(t, err)
	return imp, stores
}

type counter interface {
	Count(ctx context.Context, options ...repository.Option) (int64, error)
}

func count(t *testing.T, store counter, options ...repository.Option) int64 {
	t.Helper()
	n, err := store.Count(context.Background(), options...)
	require.NoError(t, err)
	return n
}

func kindReport(t *testing.T, report Report, kind catalog.Kind) KindReport {
	t.Helper()
	kr, ok := report.Kind(kind)
	require.True(t, ok, "report has no entry for %s", kind)
	return kr
}

func reasons(kr KindReport) []SkipReason {
	out := make([]SkipReason, len(kr.Skips))
	for i, s := range kr.Skips {
		out[i] = s.Reason
	}
	return out
}

func TestNew_RejectsInvalidOrder(t *testing.T) {
	db := testdb.New(t)

	_, err := New(db, persistence.NewStores, nil, WithOrder([]catalog.Kind{
		catalog.KindTitles, catalog.KindCategories,
	}))
	assert.ErrorIs(t, err, catalog.ErrOrder)
}

func TestNew_RequiresHandlers(t *testing.T) {
	db := testdb.New(t)

	_, err := New(db, persistence.NewStores, nil, WithRegistry(NewRegistry()))
	assert.ErrorIs(t, err, ErrNoHandler)
}

func TestRun_ConsistentFixture(t *testing.T) {
	ctx := context.Background()
	imp, stores := newTestImporter(t)
	dir := writeFiles(t, consistentFixture)

	report, err := imp.Run(ctx, RunParams{Dir: dir, Strict: true})
	require.NoError(t, err)

	assert.True(t, report.Complete())
	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, dir, report.Dir)
	assert.Equal(t, 0, report.Totals().Skipped)
	assert.Equal(t, 18, report.Totals().Inserted)

	var kinds []catalog.Kind
	for _, kr := range report.Kinds {
		kinds = append(kinds, kr.Kind)
	}
	assert.Equal(t, catalog.AllKinds(), kinds)

	assert.Equal(t, int64(3), count(t, stores.Users))
	assert.Equal(t, int64(2), count(t, stores.Categories))
	assert.Equal(t, int64(2), count(t, stores.Genres))
	assert.Equal(t, int64(3), count(t, stores.Titles))
	assert.Equal(t, int64(3), count(t, stores.Reviews))
	assert.Equal(t, int64(2), count(t, stores.Comments))
	assert.Equal(t, int64(3), count(t, stores.GenreTitles))
}

func TestRun_PersistsRowsVerbatim(t *testing.T) {
	ctx := context.Background()
	imp, stores := newTestImporter(t)
	dir := writeFiles(t, consistentFixture)

	_, err := imp.Run(ctx, RunParams{Dir: dir})
	require.NoError(t, err)

	user, err := stores.Users.FindOne(ctx, repository.WithID(102))
	require.NoError(t, err)
	assert.Equal(t, "faust", user.Username())
	assert.Equal(t, "faust@yamdb.fake", user.Email())
	assert.True(t, user.IsModerator())
	assert.Equal(t, "Bio text", user.Bio())
	assert.Equal(t, "Johann", user.FirstName())
	assert.Equal(t, "Faust", user.LastName())

	category, err := stores.Categories.FindOne(ctx, repository.WithID(1))
	require.NoError(t, err)
	assert.Equal(t, "Фильм", category.Name())
	assert.Equal(t, "movie", category.Slug())

	genre, err := stores.Genres.FindOne(ctx, repository.WithSlug("comedy"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), genre.ID())
	assert.Equal(t, "Комедия", genre.Name())

	title, err := stores.Titles.FindOne(ctx, repository.WithID(3))
	require.NoError(t, err)
	assert.Equal(t, "Мастер и Маргарита", title.Name())
	assert.Equal(t, int64(2), title.CategoryID())

	review, err := stores.Reviews.FindOne(ctx, repository.WithID(1))
	require.NoError(t, err)
	assert.Equal(t, "Ну, такое.", review.Text())
	assert.Equal(t, 10, review.Score())

	review, err = stores.Reviews.FindOne(ctx, repository.WithID(3))
	require.NoError(t, err)
	assert.True(t, review.PubDate().Equal(fixedNow), "empty pub_date defaults to now")
}

func TestRun_DuplicateUsername(t *testing.T) {
	ctx := context.Background()
	imp, stores := newTestImporter(t)
	dir := writeFiles(t, map[string]string{
		"users.csv": "id,username,email\n" +
			"1,alice,alice@example.com\n" +
			"2,bob,bob@example.com\n" +
			"3,alice,alice2@example.com\n" +
			"4,carol,carol@example.com\n",
	})

	report, err := imp.Run(ctx, RunParams{Dir: dir})
	require.NoError(t, err)

	users := kindReport(t, report, catalog.KindUsers)
	assert.Equal(t, 4, users.Rows)
	assert.Equal(t, 3, users.Inserted)
	assert.Equal(t, 1, users.Skipped)
	require.Len(t, users.Skips, 1)
	assert.Equal(t, 4, users.Skips[0].Line)
	assert.Equal(t, ReasonDuplicate, users.Skips[0].Reason)

	assert.Equal(t, int64(3), count(t, stores.Users))
	exists, err := stores.Users.Exists(ctx, repository.WithID(3))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRun_TitleWithAbsentCategory(t *testing.T) {
	ctx := context.Background()
	imp, stores := newTestImporter(t)
	dir := writeFiles(t, map[string]string{
		"category.csv": "id,name,slug\n1,Фильм,movie\n",
		"titles.csv": "id,name,year,category\n" +
			"1,Kept,1994,1\n" +
			"2,Orphan,1994,5\n" +
			"3,Uncategorized,2000,\n" +
			"4,ZeroCategory,1994,0\n",
	})

	report, err := imp.Run(ctx, RunParams{Dir: dir})
	require.NoError(t, err)

	titles := kindReport(t, report, catalog.KindTitles)
	assert.Equal(t, 2, titles.Inserted)
	assert.Equal(t, []SkipReason{ReasonMissingReference, ReasonMissingReference}, reasons(titles))
	assert.Contains(t, titles.Skips[0].Message, "category 5")
	assert.Equal(t, 5, titles.Skips[1].Line)
	assert.Contains(t, titles.Skips[1].Message, "category 0")

	assert.Equal(t, int64(1), count(t, stores.Titles, repository.WithCategoryID(1)))
	assert.Equal(t, int64(1), count(t, stores.Titles, repository.WithoutCategory()))
	for _, id := range []int64{2, 4} {
		exists, err := stores.Titles.Exists(ctx, repository.WithID(id))
		require.NoError(t, err)
		assert.False(t, exists, "title %d", id)
	}
}

func TestRun_ReviewScores(t *testing.T) {
	ctx := context.Background()
	imp, stores := newTestImporter(t)
	files := map[string]string{
		"users.csv":    consistentFixture["users.csv"],
		"category.csv": consistentFixture["category.csv"],
		"titles.csv":   consistentFixture["titles.csv"],
		"review.csv": "id,title_id,text,author,score\n" +
			"1,1,low,100,0\n" +
			"2,1,high,101,11\n" +
			"3,2,words,100,ten\n" +
			"4,2,fine,101,7\n" +
			"5,3,min,100,1\n" +
			"6,3,max,101,10\n",
	}
	dir := writeFiles(t, files)

	report, err := imp.Run(ctx, RunParams{Dir: dir})
	require.NoError(t, err)

	reviews := kindReport(t, report, catalog.KindReviews)
	assert.Equal(t, 3, reviews.Inserted)
	assert.Equal(t, []SkipReason{ReasonValidation, ReasonValidation, ReasonInvalidValue}, reasons(reviews))
	assert.Equal(t, int64(3), count(t, stores.Reviews))
}

func TestRun_DuplicateReviewKeepsFirst(t *testing.T) {
	ctx := context.Background()
	imp, stores := newTestImporter(t)
	files := map[string]string{
		"users.csv":    consistentFixture["users.csv"],
		"category.csv": consistentFixture["category.csv"],
		"titles.csv":   consistentFixture["titles.csv"],
		"review.csv": "id,title_id,text,author,score\n" +
			"1,1,first,100,8\n" +
			"2,1,second,100,3\n",
	}
	dir := writeFiles(t, files)

	report, err := imp.Run(ctx, RunParams{Dir: dir})
	require.NoError(t, err)

	reviews := kindReport(t, report, catalog.KindReviews)
	assert.Equal(t, 1, reviews.Inserted)
	assert.Equal(t, []SkipReason{ReasonDuplicate}, reasons(reviews))

	kept, err := stores.Reviews.FindOne(ctx, repository.WithTitleID(1), repository.WithAuthorID(100))
	require.NoError(t, err)
	assert.Equal(t, "first", kept.Text())
	assert.Equal(t, 8, kept.Score())
}

func TestRun_ReviewAndCommentReferences(t *testing.T) {
	ctx := context.Background()
	imp, stores := newTestImporter(t)
	files := map[string]string{
		"users.csv":    consistentFixture["users.csv"],
		"category.csv": consistentFixture["category.csv"],
		"titles.csv":   consistentFixture["titles.csv"],
		"review.csv": "id,title_id,text,author,score\n" +
			"1,1,ok,100,5\n" +
			"2,99,no title,100,5\n" +
			"3,1,no author,999,5\n",
		"comments.csv": "id,review_id,text,author\n" +
			"1,1,ok,101\n" +
			"2,2,skipped review,101\n" +
			"3,1,no author,999\n",
	}
	dir := writeFiles(t, files)

	report, err := imp.Run(ctx, RunParams{Dir: dir})
	require.NoError(t, err)

	reviews := kindReport(t, report, catalog.KindReviews)
	assert.Equal(t, []SkipReason{ReasonMissingReference, ReasonMissingReference}, reasons(reviews))
	comments := kindReport(t, report, catalog.KindComments)
	assert.Equal(t, []SkipReason{ReasonMissingReference, ReasonMissingReference}, reasons(comments))

	assert.Equal(t, int64(1), count(t, stores.Reviews))
	assert.Equal(t, int64(1), count(t, stores.Comments))
}

func TestRun_AssociationIsIdempotent(t *testing.T) {
	ctx := context.Background()
	imp, stores := newTestImporter(t)
	files := map[string]string{
		"category.csv": consistentFixture["category.csv"],
		"genre.csv":    "id,name,slug\n1,Драма,drama\n",
		"titles.csv":   consistentFixture["titles.csv"],
		"genre_title.csv": "id,title_id,genre_id\n" +
			"1,1,1\n" +
			"2,1,1\n" +
			"3,2,98\n" +
			"4,3,99\n" +
			"5,3,99\n" +
			"6,404,1\n" +
			"7,x,1\n",
	}
	dir := writeFiles(t, files)

	report, err := imp.Run(ctx, RunParams{Dir: dir})
	require.NoError(t, err)

	links := kindReport(t, report, catalog.KindGenreTitles)
	assert.Equal(t, 7, links.Rows)
	assert.Equal(t, 3, links.Inserted)
	assert.Equal(t, 2, links.Unchanged)
	assert.Equal(t, []SkipReason{ReasonMissingReference, ReasonInvalidValue}, reasons(links))

	assert.Equal(t, int64(3), count(t, stores.GenreTitles))
	assert.Equal(t, int64(3), count(t, stores.Genres), "two placeholders were synthesized")

	placeholder, err := stores.Genres.FindOne(ctx, repository.WithID(99))
	require.NoError(t, err)
	assert.True(t, placeholder.IsPlaceholder())
	assert.Equal(t, "", placeholder.Name())

	// A second pass over the same links changes nothing.
	again, err := imp.Import(ctx, NewSources(map[catalog.Kind]string{
		catalog.KindGenreTitles: filepath.Join(dir, "genre_title.csv"),
	}), RunParams{})
	require.NoError(t, err)

	links = kindReport(t, again, catalog.KindGenreTitles)
	assert.Equal(t, 0, links.Inserted)
	assert.Equal(t, 5, links.Unchanged)
	assert.Equal(t, int64(3), count(t, stores.GenreTitles))
	assert.Equal(t, int64(3), count(t, stores.Genres))
}

func TestRun_MissingFilesAreReported(t *testing.T) {
	ctx := context.Background()
	imp, stores := newTestImporter(t)
	dir := writeFiles(t, map[string]string{"users.csv": consistentFixture["users.csv"]})

	report, err := imp.Run(ctx, RunParams{Dir: dir})
	require.NoError(t, err)

	assert.False(t, kindReport(t, report, catalog.KindUsers).Missing)
	for _, kind := range []catalog.Kind{catalog.KindCategories, catalog.KindTitles, catalog.KindGenreTitles} {
		assert.True(t, kindReport(t, report, kind).Missing, "%s should be missing", kind)
	}
	assert.False(t, report.Complete())
	assert.Equal(t, int64(3), count(t, stores.Users))
}

func TestRun_StrictFailsWhenIncomplete(t *testing.T) {
	ctx := context.Background()
	imp, stores := newTestImporter(t)
	dir := writeFiles(t, map[string]string{"users.csv": consistentFixture["users.csv"]})

	report, err := imp.Run(ctx, RunParams{Dir: dir, Strict: true})
	require.ErrorIs(t, err, ErrIncomplete)
	assert.Equal(t, 3, report.Totals().Inserted)
	assert.Equal(t, int64(3), count(t, stores.Users), "strict mode keeps imported rows")
}

func TestRun_InvalidHeaderDoesNotStopRun(t *testing.T) {
	ctx := context.Background()
	imp, stores := newTestImporter(t)
	dir := writeFiles(t, map[string]string{
		"users.csv":    "username,email\nalice,alice@example.com\n",
		"category.csv": consistentFixture["category.csv"],
	})

	report, err := imp.Run(ctx, RunParams{Dir: dir})
	require.NoError(t, err)

	users := kindReport(t, report, catalog.KindUsers)
	assert.ErrorIs(t, users.Err, ErrMissingColumn)
	assert.NotEmpty(t, users.Error)
	assert.Equal(t, 0, users.Rows)

	assert.Equal(t, 2, kindReport(t, report, catalog.KindCategories).Inserted)
	assert.Equal(t, int64(2), count(t, stores.Categories))
}

func TestRun_MalformedRowIsSkipped(t *testing.T) {
	ctx := context.Background()
	imp, stores := newTestImporter(t)
	dir := writeFiles(t, map[string]string{
		"category.csv": "id,name,slug\n1,Films,films\n2,\"Bo\"oks,books\n3,Music,music\n",
	})

	report, err := imp.Run(ctx, RunParams{Dir: dir})
	require.NoError(t, err)

	categories := kindReport(t, report, catalog.KindCategories)
	assert.Equal(t, 3, categories.Rows)
	assert.Equal(t, []SkipReason{ReasonInvalidValue}, reasons(categories))
	assert.Equal(t, 3, categories.Skips[0].Line)
	assert.Equal(t, int64(2), count(t, stores.Categories))
}

func TestRun_DuplicateSourcesImportNothing(t *testing.T) {
	ctx := context.Background()
	imp, stores := newTestImporter(t)
	dir := writeFiles(t, map[string]string{
		"users.csv":     consistentFixture["users.csv"],
		"old/users.csv": consistentFixture["users.csv"],
	})

	_, err := imp.Run(ctx, RunParams{Dir: dir})
	require.ErrorIs(t, err, ErrDuplicateSource)
	assert.Equal(t, int64(0), count(t, stores.Users))
}

func TestRun_DryRunRollsBack(t *testing.T) {
	ctx := context.Background()
	imp, stores := newTestImporter(t)
	dir := writeFiles(t, consistentFixture)

	report, err := imp.Run(ctx, RunParams{Dir: dir, DryRun: true})
	require.NoError(t, err)

	assert.True(t, report.DryRun)
	assert.Equal(t, 18, report.Totals().Inserted)
	assert.Equal(t, int64(0), count(t, stores.Users))
	assert.Equal(t, int64(0), count(t, stores.Titles))
	assert.Equal(t, int64(0), count(t, stores.GenreTitles))
}

func TestRun_DryRunStillSkipsBadRows(t *testing.T) {
	ctx := context.Background()
	imp, stores := newTestImporter(t)
	dir := writeFiles(t, map[string]string{
		"users.csv": "id,username,email\n" +
			"1,alice,alice@example.com\n" +
			"2,alice,alice2@example.com\n" +
			"3,bob,bob@example.com\n",
	})

	report, err := imp.Run(ctx, RunParams{Dir: dir, DryRun: true})
	require.NoError(t, err)

	users := kindReport(t, report, catalog.KindUsers)
	assert.Equal(t, 2, users.Inserted)
	assert.Equal(t, []SkipReason{ReasonDuplicate}, reasons(users))
	assert.Equal(t, int64(0), count(t, stores.Users))
}

func TestRun_PartialReimportUsesExistingRows(t *testing.T) {
	ctx := context.Background()
	imp, stores := newTestImporter(t)

	first := writeFiles(t, map[string]string{
		"users.csv":    consistentFixture["users.csv"],
		"category.csv": consistentFixture["category.csv"],
		"titles.csv":   consistentFixture["titles.csv"],
	})
	_, err := imp.Run(ctx, RunParams{Dir: first})
	require.NoError(t, err)

	second := writeFiles(t, map[string]string{"review.csv": consistentFixture["review.csv"]})
	report, err := imp.Run(ctx, RunParams{Dir: second})
	require.NoError(t, err)

	assert.Equal(t, 3, kindReport(t, report, catalog.KindReviews).Inserted)
	assert.Equal(t, int64(3), count(t, stores.Reviews))
}

func TestImport_CancelledContext(t *testing.T) {
	imp, stores := newTestImporter(t)
	dir := writeFiles(t, consistentFixture)
	sources := NewSources(map[catalog.Kind]string{catalog.KindUsers: filepath.Join(dir, "users.csv")})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := imp.Import(ctx, sources, RunParams{})
	require.ErrorIs(t, err, context.Canceled)
	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, int64(0), count(t, stores.Users))
}

type cancelAfterFirst struct {
	Handler
	cancel context.CancelFunc
}

func (h cancelAfterFirst) Import(ctx context.Context, stores catalog.Stores, rec Record) (Outcome, error) {
	outcome, err := h.Handler.Import(ctx, stores, rec)
	h.cancel()
	return outcome, err
}

func TestImport_CancelStopsAfterCurrentRow(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	registry := DefaultRegistry(fixedClock)
	users, err := registry.Handler(catalog.KindUsers)
	require.NoError(t, err)
	registry.Register(catalog.KindUsers, cancelAfterFirst{Handler: users, cancel: cancel})

	imp, stores := newTestImporter(t, WithRegistry(registry))
	dir := writeFiles(t, consistentFixture)

	report, err := imp.Run(ctx, RunParams{Dir: dir})
	require.ErrorIs(t, err, context.Canceled)

	require.Len(t, report.Kinds, 1)
	assert.Equal(t, catalog.KindUsers, report.Kinds[0].Kind)
	assert.LessOrEqual(t, report.Kinds[0].Rows, 1)
	assert.LessOrEqual(t, count(t, stores.Users), int64(1))
	assert.Equal(t, int64(0), count(t, stores.Categories))
}
