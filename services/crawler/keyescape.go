package crawler

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"escapelog-backend/services/crawler/region"

	"github.com/go-resty/resty/v2"
)

type keyEscapeBranch struct {
	num    int
	name   string
	region string
}

// zizum_num → branch mapping, maintained by hand against the site's
// reservation page.
var keyEscapeBranches = []keyEscapeBranch{
	{3, "강남점", "강남"},
	{14, "강남 더오름", "강남"},
	{10, "홍대점", "홍대"},
	{9, "부산점", "부산"},
	{7, "전주점", "전주"},
	{16, "우주라이크", "강남"},
	{18, "메모리컴퍼니", "강남"},
	{19, "LOG_IN 1", "강남"},
	{20, "LOG_IN 2", "강남"},
	{22, "STATION", "강남"},
	{23, "후즈데어", "강남"},
	{25, "무비무드", "홍대"},
	{26, "에버랜드", "용인"},
	{29, "무비무드 전주", "전주"},
}

// KeyEscapeAdapter crawls 키이스케이프 through the private form
// endpoint its own reservation page calls, one request per branch.
type KeyEscapeAdapter struct {
	http     *resty.Client
	endpoint string
	referer  string
	branches []keyEscapeBranch
	delay    time.Duration
}

func NewKeyEscapeAdapter() *KeyEscapeAdapter {
	return &KeyEscapeAdapter{
		http:     newScrapeClient(),
		endpoint: "https://www.keyescape.com/controller/run_proc.php",
		referer:  "https://www.keyescape.com/reservation.php",
		branches: keyEscapeBranches,
		delay:    time.Millisecond * 500,
	}
}

func (a *KeyEscapeAdapter) Source() string {
	return "keyescape"
}

func (a *KeyEscapeAdapter) Crawl(ctx context.Context) ([]RawRoom, []string) {
	var rows []RawRoom
	var errs []string

	for i, branch := range a.branches {
		if i > 0 {
			sleepBetweenBranches(ctx, a.delay)
		}
		branchRows, err := a.crawlBranch(ctx, branch)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", branch.name, err))
			continue
		}
		rows = append(rows, branchRows...)
	}

	return rows, errs
}

type keyEscapeTheme struct {
	InfoName  string `json:"info_name"`
	ThemeName string `json:"theme_name"`
}

// the endpoint answers either a bare theme array or a {status, data}
// envelope depending on the branch, so both shapes are tolerated
func parseKeyEscapeThemes(body []byte) ([]keyEscapeTheme, error) {
	var list []keyEscapeTheme
	if err := json.Unmarshal(body, &list); err == nil {
		return list, nil
	}

	var envelope struct {
		Data []keyEscapeTheme `json:"data"`
	}
	err := json.Unmarshal(body, &envelope)
	if err != nil {
		return nil, fmt.Errorf("unexpected response shape: %w", err)
	}
	return envelope.Data, nil
}

func (a *KeyEscapeAdapter) crawlBranch(ctx context.Context, branch keyEscapeBranch) ([]RawRoom, error) {
	res, err := a.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"t":         "get_theme_info_list",
			"zizum_num": strconv.Itoa(branch.num),
		}).
		SetHeader("Referer", a.referer).
		Post(a.endpoint)
	if err != nil {
		return nil, err
	}
	if !res.IsSuccess() {
		return nil, fmt.Errorf("HTTP %d", res.StatusCode())
	}

	themes, err := parseKeyEscapeThemes(res.Body())
	if err != nil {
		return nil, err
	}

	var rows []RawRoom
	for _, theme := range themes {
		name := strings.TrimSpace(theme.InfoName)
		if name == "" {
			name = strings.TrimSpace(theme.ThemeName)
		}
		if name == "" {
			continue
		}
		rows = append(rows, RawRoom{
			VendorName: "키이스케이프",
			ThemeName:  name,
			Region:     region.Normalize(branch.region),
		})
	}
	return rows, nil
}
