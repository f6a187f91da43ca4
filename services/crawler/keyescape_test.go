package crawler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseKeyEscapeThemes(t *testing.T) {
	bare := []byte(`[{"info_name":"머니머니패키지"},{"theme_name":"포레스트"}]`)
	themes, err := parseKeyEscapeThemes(bare)
	require.NoError(t, err)
	require.Len(t, themes, 2)
	require.Equal(t, "머니머니패키지", themes[0].InfoName)
	require.Equal(t, "포레스트", themes[1].ThemeName)

	envelope := []byte(`{"status":"ok","data":[{"info_name":"네드"}]}`)
	themes, err = parseKeyEscapeThemes(envelope)
	require.NoError(t, err)
	require.Len(t, themes, 1)
	require.Equal(t, "네드", themes[0].InfoName)

	_, err = parseKeyEscapeThemes([]byte("<html>blocked</html>"))
	require.Error(t, err)
}

func TestKeyEscapeCrawl(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "get_theme_info_list", r.FormValue("t"))
		num := r.FormValue("zizum_num")
		require.NotEmpty(t, num)

		w.Header().Set("Content-Type", "application/json")
		if num == "3" {
			// this branch answers the bare-array shape and includes a
			// nameless entry that must be skipped
			fmt.Fprint(w, `[{"info_name":"머니머니패키지"},{"theme_name":"포레스트"},{"info_name":"  "}]`)
			return
		}
		fmt.Fprintf(w, `{"status":"ok","data":[{"info_name":"테마%s"}]}`, num)
	}))
	defer server.Close()

	adapter := NewKeyEscapeAdapter()
	adapter.endpoint = server.URL
	adapter.delay = 0

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	rows, errs := adapter.Crawl(ctx)
	require.Empty(t, errs)
	// branch 3 contributes two themes, the other 13 branches one each
	require.Len(t, rows, 15)

	byTheme := map[string]RawRoom{}
	for _, r := range rows {
		require.Equal(t, "키이스케이프", r.VendorName)
		byTheme[r.ThemeName] = r
	}
	require.Equal(t, "강남", byTheme["머니머니패키지"].Region)
	require.Equal(t, "용인", byTheme["테마26"].Region)
	require.Equal(t, "전주", byTheme["테마29"].Region)
}

func TestKeyEscapeCrawlCollectsBranchErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.FormValue("zizum_num") == "10" {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `[{"info_name":"테마"}]`)
	}))
	defer server.Close()

	adapter := NewKeyEscapeAdapter()
	adapter.endpoint = server.URL
	adapter.delay = 0

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	rows, errs := adapter.Crawl(ctx)
	require.Len(t, rows, 13)
	require.Len(t, errs, 1)
	require.Contains(t, errs[0], "홍대점")
}
