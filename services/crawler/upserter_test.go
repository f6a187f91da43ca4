package crawler

import (
	"context"
	"testing"
	"time"

	"escapelog-backend/services/catalog"

	"github.com/stretchr/testify/require"
)

func TestUpsertRoomsIsolatesFailingBatch(t *testing.T) {
	svc, cleanup := setupCrawler(t, Options{})
	defer cleanup()
	svc.batchSize = 1

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	created, err := svc.store.CreateVendors(ctx, []catalog.NewVendor{
		{Name: "키이스케이프", Region: "강남"},
	})
	require.NoError(t, err)
	vendorID := created[0].ID

	rows := []RawRoom{
		{VendorName: "키이스케이프", ThemeName: "머니머니패키지", Region: "강남"},
		{VendorName: "고스트", ThemeName: "유령의집", Region: "강남"},
		{VendorName: "키이스케이프", ThemeName: "포레스트", Region: "강남"},
	}
	// the middle row points at a vendor id that does not exist, its
	// batch fails the foreign key check while the neighbors go through
	vendors := map[string]int64{
		vendorKey("키이스케이프", "강남"): vendorID,
		vendorKey("고스트", "강남"):     999999,
	}

	sum := svc.upsertRooms(ctx, rows, vendors)
	require.Equal(t, 2, sum.inserted)
	require.Equal(t, 0, sum.skipped)
	require.Len(t, sum.errors, 1)
	require.Contains(t, sum.errors[0], "batch 2")
}

func TestUpsertRoomsDropsUnresolvedVendors(t *testing.T) {
	svc, cleanup := setupCrawler(t, Options{})
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	created, err := svc.store.CreateVendors(ctx, []catalog.NewVendor{
		{Name: "셜록홈즈", Region: "잠실"},
	})
	require.NoError(t, err)

	rows := []RawRoom{
		{VendorName: "셜록홈즈", ThemeName: "명탐정", Region: "잠실"},
		{VendorName: "셜록홈즈", ThemeName: "다른지점테마", Region: "수원"},
	}
	vendors := map[string]int64{
		vendorKey("셜록홈즈", "잠실"): created[0].ID,
	}

	// the unresolved row is dropped up front, it counts neither as
	// inserted nor as skipped
	sum := svc.upsertRooms(ctx, rows, vendors)
	require.Equal(t, 1, sum.inserted)
	require.Equal(t, 0, sum.skipped)
	require.Empty(t, sum.errors)
}
