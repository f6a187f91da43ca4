package crawler

import (
	"context"
	"fmt"

	"escapelog-backend/services/catalog"

	"go.opentelemetry.io/otel/attribute"
)

type upsertSummary struct {
	inserted int
	skipped  int
	errors   []string
}

// upsertRooms merges the crawled rows into the catalog in batches.
// rows whose vendor never resolved are dropped up front, a failing
// batch is reported and skipped without touching its neighbors.
func (s Service) upsertRooms(ctx context.Context, rows []RawRoom, vendors map[string]int64) upsertSummary {
	ctx, span := tracer.Start(ctx, "upsertRooms")
	defer span.End()

	var projected []catalog.NewRoom
	for _, r := range rows {
		vendorID, ok := vendors[vendorKey(r.VendorName, r.Region)]
		if !ok {
			continue
		}
		projected = append(projected, catalog.NewRoom{
			VendorID:  vendorID,
			ThemeName: r.ThemeName,
		})
	}

	var sum upsertSummary
	for start := 0; start < len(projected); start += s.batchSize {
		end := min(start+s.batchSize, len(projected))
		batch := projected[start:end]

		inserted, err := s.store.UpsertRooms(ctx, batch)
		if err != nil {
			sum.errors = append(sum.errors, fmt.Sprintf("batch %d: %v", start/s.batchSize+1, err))
			continue
		}
		sum.inserted += inserted
		sum.skipped += len(batch) - inserted
	}

	span.SetAttributes(
		attribute.Int("inserted", sum.inserted),
		attribute.Int("skipped", sum.skipped),
	)
	return sum
}
