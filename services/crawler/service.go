package crawler

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"escapelog-backend/lib/blobstore"
	"escapelog-backend/services/catalog"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("escapelog.services.crawler")

type Options struct {
	// Blob may be nil, poster ingestion is then disabled
	Blob blobstore.Store
	// Adapters defaults to DefaultAdapters() when empty
	Adapters []SourceAdapter
	Report   ReportOptions
}

type Service struct {
	store      catalog.Store
	blob       blobstore.Store
	adapters   map[string]SourceAdapter
	posterHTTP *resty.Client
	report     ReportOptions
	batchSize  int
}

func NewService(database *sql.DB, opts Options) Service {
	adapters := opts.Adapters
	if len(adapters) == 0 {
		adapters = DefaultAdapters()
	}
	bySource := make(map[string]SourceAdapter, len(adapters))
	for _, a := range adapters {
		bySource[a.Source()] = a
	}

	return Service{
		store:      catalog.NewStore(database),
		blob:       opts.Blob,
		adapters:   bySource,
		posterHTTP: newScrapeClient(),
		report:     opts.Report,
		batchSize:  100,
	}
}

func (s Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/crawl/", s.HandleCrawl)
	mux.HandleFunc("/regions/similar", s.HandleSimilarRegions)
}

// POST /crawl/{source}. a completed run always answers 200 with the
// full summary, however many errors it collected along the way.
func (s Service) HandleCrawl(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	source := strings.TrimPrefix(r.URL.Path, "/crawl/")
	adapter, ok := s.adapters[source]
	if !ok {
		http.Error(w, "unknown source", http.StatusNotFound)
		return
	}

	result := s.Run(r.Context(), adapter)
	writeJSON(w, http.StatusOK, result)
}

func (s Service) HandleSimilarRegions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	pairs, err := s.SimilarRegions(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if pairs == nil {
		pairs = []RegionPair{}
	}
	writeJSON(w, http.StatusOK, pairs)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	err := enc.Encode(v)
	if err != nil {
		slog.Warn("failed to encode response body", "err", err)
	}
}
