package crawler

import (
	"context"

	"escapelog-backend/services/catalog"

	"go.opentelemetry.io/otel/codes"
)

func vendorKey(name, region string) string {
	return name + "||" + region
}

// resolveVendors maps every (vendor name, region) combination present
// in the batch to a vendor id, creating missing vendors along the way.
// creation is a conflict-ignoring insert on the natural key followed by
// a re-read, so concurrent runs resolving the same new vendor converge
// on a single row instead of racing check-then-insert style.
func (s Service) resolveVendors(ctx context.Context, rows []RawRoom) (map[string]int64, error) {
	ctx, span := tracer.Start(ctx, "resolveVendors")
	defer span.End()

	combos := map[string]catalog.NewVendor{}
	var names []string
	seenNames := map[string]bool{}
	for _, r := range rows {
		key := vendorKey(r.VendorName, r.Region)
		if _, ok := combos[key]; !ok {
			combos[key] = catalog.NewVendor{Name: r.VendorName, Region: r.Region}
		}
		if !seenNames[r.VendorName] {
			seenNames[r.VendorName] = true
			names = append(names, r.VendorName)
		}
	}

	resolved := map[string]int64{}

	existing, err := s.store.SelectVendorsByNames(ctx, names)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return resolved, err
	}
	for _, v := range existing {
		resolved[vendorKey(v.Name, v.Region)] = v.ID
	}

	var missing []catalog.NewVendor
	for key, v := range combos {
		if _, ok := resolved[key]; !ok {
			missing = append(missing, v)
		}
	}
	if len(missing) == 0 {
		return resolved, nil
	}

	created, err := s.store.CreateVendors(ctx, missing)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return resolved, err
	}
	for _, v := range created {
		resolved[vendorKey(v.Name, v.Region)] = v.ID
	}

	// combos a concurrent run created between our select and insert
	// come back empty from the conflict-ignoring insert, re-read to
	// pick their ids up
	unmapped := false
	for key := range combos {
		if _, ok := resolved[key]; !ok {
			unmapped = true
			break
		}
	}
	if !unmapped {
		return resolved, nil
	}

	refreshed, err := s.store.SelectVendorsByNames(ctx, names)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return resolved, err
	}
	for _, v := range refreshed {
		key := vendorKey(v.Name, v.Region)
		if _, ok := resolved[key]; !ok {
			resolved[key] = v.ID
		}
	}

	return resolved, nil
}
