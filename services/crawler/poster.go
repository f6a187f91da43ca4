package crawler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"escapelog-backend/lib/timezone"
	"escapelog-backend/services/catalog"
)

type posterCandidate struct {
	vendorID  int64
	themeName string
	posterURL string
}

func collectPosterCandidates(rows []RawRoom, vendors map[string]int64) []posterCandidate {
	var candidates []posterCandidate
	for _, r := range rows {
		if r.PosterURL == "" {
			continue
		}
		vendorID, ok := vendors[vendorKey(r.VendorName, r.Region)]
		if !ok {
			continue
		}
		candidates = append(candidates, posterCandidate{
			vendorID:  vendorID,
			themeName: r.ThemeName,
			posterURL: r.PosterURL,
		})
	}
	return candidates
}

// ingestPosters attaches source images to rooms that have none yet.
// strictly best-effort: failures are logged and skipped, nothing here
// propagates into the run's error list.
func (s Service) ingestPosters(ctx context.Context, candidates []posterCandidate) int {
	if s.blob == nil || len(candidates) == 0 {
		return 0
	}

	ctx, span := tracer.Start(ctx, "ingestPosters")
	defer span.End()

	uploaded := 0
	for _, c := range candidates {
		if s.ingestPoster(ctx, c) {
			uploaded++
		}
	}
	return uploaded
}

func (s Service) ingestPoster(ctx context.Context, c posterCandidate) bool {
	room, err := s.store.GetRoomByTheme(ctx, c.vendorID, c.themeName)
	if err != nil {
		if !errors.Is(err, catalog.ErrRoomNotFound) {
			slog.WarnContext(ctx, "poster lookup failed",
				"theme", c.themeName, "err", err)
		}
		return false
	}
	// first write wins, existing posters are never replaced
	if room.PosterPath != "" {
		return false
	}

	res, err := s.posterHTTP.R().
		SetContext(ctx).
		Get(c.posterURL)
	if err != nil {
		slog.WarnContext(ctx, "poster download failed",
			"url", c.posterURL, "err", err)
		return false
	}
	if !res.IsSuccess() {
		slog.WarnContext(ctx, "poster download failed",
			"url", c.posterURL, "status", res.StatusCode())
		return false
	}

	contentType := res.Header().Get("Content-Type")
	ext := "jpg"
	if strings.Contains(contentType, "png") {
		ext = "png"
	} else if strings.Contains(contentType, "webp") {
		ext = "webp"
	}

	path := fmt.Sprintf("%d/%d.%s", room.ID, timezone.Now().UnixMilli(), ext)
	err = s.blob.Upload(ctx, path, res.Body(), contentType)
	if err != nil {
		slog.WarnContext(ctx, "poster upload failed",
			"path", path, "err", err)
		return false
	}

	// the guarded update loses to whoever stored a poster between our
	// read and now, the orphaned blob is harmless
	updated, err := s.store.SetRoomPoster(ctx, room.ID, path)
	if err != nil {
		slog.WarnContext(ctx, "poster update failed",
			"path", path, "err", err)
		return false
	}
	return updated
}
