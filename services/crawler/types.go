package crawler

// RawRoom is one crawled listing, produced by a source adapter and
// consumed within a single run. Region is already canonicalized by the
// adapter; PosterURL is empty when the source exposes no image.
type RawRoom struct {
	VendorName string
	ThemeName  string
	Region     string
	PosterURL  string
}

// CrawlResult is the summary returned to the invoker of one run. it is
// built exactly once per run and never persisted.
type CrawlResult struct {
	Source          string   `json:"source"`
	TotalCrawled    int      `json:"total_crawled"`
	Inserted        int      `json:"inserted"`
	Skipped         int      `json:"skipped"`
	PostersUploaded int      `json:"posters_uploaded"`
	Errors          []string `json:"errors"`
	CrawledAt       string   `json:"crawled_at"`
}
