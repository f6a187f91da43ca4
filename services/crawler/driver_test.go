package crawler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"escapelog-backend/lib/testutil"
	"escapelog-backend/services/catalog/db"

	"github.com/stretchr/testify/require"
)

type fakeAdapter struct {
	source string
	rows   []RawRoom
	errs   []string
}

func (a fakeAdapter) Source() string {
	return a.source
}

func (a fakeAdapter) Crawl(ctx context.Context) ([]RawRoom, []string) {
	return a.rows, a.errs
}

func setupCrawler(t *testing.T, opts Options) (Service, func()) {
	setup, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/crawler",
		DbSchema: db.Schema,
	})
	return NewService(setup.DB, opts), cleanup
}

func TestRunIsIdempotent(t *testing.T) {
	svc, cleanup := setupCrawler(t, Options{})
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	adapter := fakeAdapter{
		source: "fake",
		rows: []RawRoom{
			{VendorName: "키이스케이프", ThemeName: "머니머니패키지", Region: "강남"},
			{VendorName: "키이스케이프", ThemeName: "포레스트", Region: "홍대"},
			{VendorName: "셜록홈즈", ThemeName: "명탐정", Region: "잠실"},
		},
	}

	first := svc.Run(ctx, adapter)
	require.Equal(t, "fake", first.Source)
	require.Equal(t, 3, first.TotalCrawled)
	require.Equal(t, 3, first.Inserted)
	require.Equal(t, 0, first.Skipped)
	require.Empty(t, first.Errors)

	second := svc.Run(ctx, adapter)
	require.Equal(t, 3, second.TotalCrawled)
	require.Equal(t, 0, second.Inserted)
	require.Equal(t, 3, second.Skipped)
	require.Empty(t, second.Errors)
}

func TestRunPropagatesAdapterErrors(t *testing.T) {
	svc, cleanup := setupCrawler(t, Options{})
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	adapter := fakeAdapter{
		source: "fake",
		rows: []RawRoom{
			{VendorName: "비트포비아", ThemeName: "층간소음", Region: "대학로"},
		},
		errs: []string{"강남점: HTTP 503"},
	}

	result := svc.Run(ctx, adapter)
	require.Equal(t, 1, result.TotalCrawled)
	require.Equal(t, 1, result.Inserted)
	require.Equal(t, []string{"강남점: HTTP 503"}, result.Errors)
}

func TestRunEmptyCrawlShortCircuits(t *testing.T) {
	svc, cleanup := setupCrawler(t, Options{})
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	result := svc.Run(ctx, fakeAdapter{source: "fake"})
	require.Equal(t, 0, result.TotalCrawled)
	require.Equal(t, 0, result.Inserted)
	require.Equal(t, 0, result.Skipped)
	require.Equal(t, 0, result.PostersUploaded)
	require.NotEmpty(t, result.CrawledAt)

	// the error list must serialize as [], not null
	body, err := json.Marshal(result)
	require.NoError(t, err)
	require.Contains(t, string(body), `"errors":[]`)
}

func TestRunStampsLocalTime(t *testing.T) {
	svc, cleanup := setupCrawler(t, Options{})
	defer cleanup()

	result := svc.Run(context.Background(), fakeAdapter{source: "fake"})
	stamp, err := time.Parse(time.RFC3339, result.CrawledAt)
	require.NoError(t, err)
	require.WithinDuration(t, time.Now(), stamp, time.Minute)
}

func TestHandleCrawlRouting(t *testing.T) {
	svc, cleanup := setupCrawler(t, Options{
		Adapters: []SourceAdapter{fakeAdapter{
			source: "fake",
			rows: []RawRoom{
				{VendorName: "넥스트에디션", ThemeName: "괴담", Region: "신림"},
			},
		}},
	})
	defer cleanup()

	mux := http.NewServeMux()
	svc.RegisterRoutes(mux)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/crawl/fake", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var result CrawlResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Equal(t, "fake", result.Source)
	require.Equal(t, 1, result.Inserted)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/crawl/doesnotexist", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/crawl/fake", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleSimilarRegions(t *testing.T) {
	svc, cleanup := setupCrawler(t, Options{})
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	svc.Run(ctx, fakeAdapter{
		source: "fake",
		rows: []RawRoom{
			{VendorName: "a", ThemeName: "t1", Region: "hongdae"},
			{VendorName: "b", ThemeName: "t2", Region: "hongdaee"},
			{VendorName: "c", ThemeName: "t3", Region: "busan"},
		},
	})

	mux := http.NewServeMux()
	svc.RegisterRoutes(mux)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/regions/similar", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var pairs []RegionPair
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pairs))
	require.Len(t, pairs, 1)
	require.Equal(t, "hongdae", pairs[0].Left)
	require.Equal(t, "hongdaee", pairs[0].Right)
}
