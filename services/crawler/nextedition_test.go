package crawler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNextEditionStaticLineup(t *testing.T) {
	adapter := NewNextEditionAdapter()

	rows, errs := adapter.Crawl(context.Background())
	require.Empty(t, errs)
	require.Len(t, rows, 10)
	for _, r := range rows {
		require.Equal(t, "넥스트에디션", r.VendorName)
		require.NotEmpty(t, r.ThemeName)
		require.NotEmpty(t, r.Region)
	}

	// callers get their own copy of the lineup
	rows[0].ThemeName = "변조"
	again, _ := adapter.Crawl(context.Background())
	require.NotEqual(t, "변조", again[0].ThemeName)
}
