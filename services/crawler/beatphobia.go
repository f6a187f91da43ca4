package crawler

import (
	"bytes"
	"context"
	"strings"

	"escapelog-backend/lib/htmlutil"
	"escapelog-backend/services/crawler/region"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

type beatphobiaBranch struct {
	label  string
	region string
}

// 비트포비아(xphobia) runs its own Phobia branches plus the 미션브레이크
// CGV locations under one listing page; the branch label spelling
// varies, hence the multiple entries per location.
var beatphobiaBranches = []beatphobiaBranch{
	{"Phobia 대학로", "대학로"},
	{"Phobia 명동", "명동"},
	{"Phobia 동성로", "대구"},
	{"미션 브레이크 CGV", "용산"},
	{"미션브레이크 CGV", "용산"},
	{"Mission Break CGV", "용산"},
}

func resolveBeatphobiaBranch(raw string) string {
	trimmed := strings.TrimSpace(raw)
	for _, b := range beatphobiaBranches {
		if b.label == trimmed {
			return b.region
		}
	}
	for _, b := range beatphobiaBranches {
		if strings.Contains(trimmed, b.label) {
			return b.region
		}
	}
	return region.Normalize(trimmed)
}

// BeatphobiaAdapter scrapes the single quest listing page covering all
// branches at once.
type BeatphobiaAdapter struct {
	http    *resty.Client
	listURL string
}

func NewBeatphobiaAdapter() *BeatphobiaAdapter {
	return &BeatphobiaAdapter{
		http:    newScrapeClient(),
		listURL: "https://www.xphobia.net/quest/quest_list.php",
	}
}

func (a *BeatphobiaAdapter) Source() string {
	return "beatphobia"
}

func (a *BeatphobiaAdapter) Crawl(ctx context.Context) ([]RawRoom, []string) {
	res, err := a.http.R().
		SetContext(ctx).
		Get(a.listURL)
	if err != nil {
		return nil, []string{err.Error()}
	}
	if !res.IsSuccess() {
		return nil, []string{res.Status()}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		return nil, []string{err.Error()}
	}

	return parseBeatphobiaThemes(doc), nil
}

func parseBeatphobiaThemes(doc *goquery.Document) []RawRoom {
	var rows []RawRoom
	// theme cards are <h5><a>theme name</a></h5> with the branch label
	// somewhere in a sibling <ul><li> list
	doc.Find("h5").Each(func(_ int, h5 *goquery.Selection) {
		themeName := htmlutil.CleanText(h5.Find("a").First().Text())
		if themeName == "" {
			return
		}

		branchRegion := ""
		h5.Parent().Find("li").EachWithBreak(func(_ int, li *goquery.Selection) bool {
			text := htmlutil.CleanText(li.Text())
			if strings.Contains(text, "Phobia") ||
				strings.Contains(text, "미션") ||
				strings.Contains(text, "Mission") {
				branchRegion = resolveBeatphobiaBranch(text)
				return false
			}
			return true
		})
		if branchRegion == "" {
			branchRegion = "서울"
		}

		rows = append(rows, RawRoom{
			VendorName: "비트포비아",
			ThemeName:  themeName,
			Region:     branchRegion,
		})
	})
	return rows
}
