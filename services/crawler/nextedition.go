package crawler

import "context"

// 넥스트에디션 publishes its theme lineup as images only, so there is
// nothing to extract; this static list is maintained by hand against
// the official site and must be updated when themes change.
var nextEditionRooms = []RawRoom{
	// 강남점
	{VendorName: "넥스트에디션", ThemeName: "셜록홈즈: 마지막 사건", Region: "강남"},
	{VendorName: "넥스트에디션", ThemeName: "월야환담 : 어느 구미호 이야기", Region: "강남"},
	{VendorName: "넥스트에디션", ThemeName: "뱀파이어 하우스", Region: "강남"},
	// 건대점
	{VendorName: "넥스트에디션", ThemeName: "SERENDIPITY", Region: "건대"},
	{VendorName: "넥스트에디션", ThemeName: "Tester", Region: "건대"},
	{VendorName: "넥스트에디션", ThemeName: "In the Mist", Region: "건대"},
	// 신림점
	{VendorName: "넥스트에디션", ThemeName: "괴담", Region: "신림"},
	{VendorName: "넥스트에디션", ThemeName: "BACK TO THE SCENE", Region: "신림"},
	// 과천 (오프라인 영화 제작소)
	{VendorName: "넥스트에디션", ThemeName: "Reel", Region: "과천"},
	{VendorName: "넥스트에디션", ThemeName: "소환", Region: "과천"},
}

type NextEditionAdapter struct {
	rooms []RawRoom
}

func NewNextEditionAdapter() *NextEditionAdapter {
	return &NextEditionAdapter{rooms: nextEditionRooms}
}

func (a *NextEditionAdapter) Source() string {
	return "nextedition"
}

func (a *NextEditionAdapter) Crawl(ctx context.Context) ([]RawRoom, []string) {
	rows := make([]RawRoom, len(a.rooms))
	copy(rows, a.rooms)
	return rows, nil
}
