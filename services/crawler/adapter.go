package crawler

import (
	"context"
	"net/http/cookiejar"
	"time"

	"escapelog-backend/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
)

// SourceAdapter is the single capability every vendor source
// implements. Crawl returns the finite listing sequence for one run
// plus the branch/page level error messages it collected along the
// way; a single bad branch or listing element never aborts the crawl.
type SourceAdapter interface {
	Source() string
	Crawl(ctx context.Context) (rows []RawRoom, errs []string)
}

const crawlerUserAgent = "Mozilla/5.0 (compatible; EscapeLog-Crawler/1.0)"

func newScrapeClient() *resty.Client {
	client := resty.New()
	jar, err := cookiejar.New(nil)
	if err != nil {
		panic(err)
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("User-Agent", crawlerUserAgent)
	client.SetHeader("Accept-Language", "ko-KR,ko;q=0.9,en;q=0.5")
	client.SetTimeout(time.Second * 15)

	telemetry.InstrumentResty(client, "escapelog.services.crawler.http")

	return client
}

// fixed inter-request delay between vendor branches, honoring
// cancellation. this is the only rate limiting the pipeline does.
func sleepBetweenBranches(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

// DefaultAdapters returns one adapter per supported vendor source.
func DefaultAdapters() []SourceAdapter {
	return []SourceAdapter{
		NewKeyEscapeAdapter(),
		NewSherlockAdapter(),
		NewBeatphobiaAdapter(),
		NewNextEditionAdapter(),
	}
}
