package crawler

import (
	"context"
	"fmt"
	"time"

	"escapelog-backend/lib/timezone"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Run executes one crawl end to end: fetch listings from the adapter,
// resolve vendor identity, merge rooms into the catalog, then
// best-effort poster ingestion. it always produces a CrawlResult, a run
// where every stage failed still yields a summary carrying the errors.
func (s Service) Run(ctx context.Context, adapter SourceAdapter) CrawlResult {
	ctx, span := tracer.Start(ctx, "Run", trace.WithAttributes(
		attribute.String("source", adapter.Source()),
	))
	defer span.End()

	rows, crawlErrs := adapter.Crawl(ctx)
	result := CrawlResult{
		Source:       adapter.Source(),
		TotalCrawled: len(rows),
		Errors:       append([]string{}, crawlErrs...),
		CrawledAt:    timezone.Now().Format(time.RFC3339),
	}

	if len(rows) == 0 {
		s.mailReport(ctx, result)
		return result
	}

	vendors, err := s.resolveVendors(ctx, rows)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("resolve vendors: %v", err))
	}

	sum := s.upsertRooms(ctx, rows, vendors)
	result.Inserted = sum.inserted
	result.Skipped = sum.skipped
	result.Errors = append(result.Errors, sum.errors...)

	result.PostersUploaded = s.ingestPosters(ctx, collectPosterCandidates(rows, vendors))

	span.SetAttributes(
		attribute.Int("total_crawled", result.TotalCrawled),
		attribute.Int("inserted", result.Inserted),
		attribute.Int("skipped", result.Skipped),
		attribute.Int("posters_uploaded", result.PostersUploaded),
		attribute.Int("errors", len(result.Errors)),
	)

	s.mailReport(ctx, result)
	return result
}
