package region

import "strings"

type alias struct {
	raw       string
	canonical string
}

// alias table mapping free-text location strings to canonical region
// tags. order matters: the substring pass in Normalize scans this table
// top to bottom and the first hit wins, so more specific aliases must
// stay above shorter ones. update in place to teach the normalizer new
// aliases, no migration needed.
var aliases = []alias{
	// 서울
	{"강남", "강남"},
	{"강남구", "강남"},
	{"강남점", "강남"},
	{"강남역", "강남"},
	{"강남 더오름", "강남"},
	{"신논현", "강남"},
	{"서초", "강남"},
	{"홍대", "홍대"},
	{"홍대입구", "홍대"},
	{"홍대점", "홍대"},
	{"합정", "홍대"},
	{"건대", "건대"},
	{"건대입구", "건대"},
	{"건대점", "건대"},
	{"잠실", "잠실"},
	{"잠실점", "잠실"},
	{"신림", "신림"},
	{"신림점", "신림"},
	{"대학로", "대학로"},
	{"혜화", "대학로"},
	{"혜화점", "대학로"},
	{"명동", "명동"},
	{"명동점", "명동"},
	// 수도권
	{"서현", "분당"},
	{"분당", "분당"},
	{"안양", "안양"},
	{"수원", "수원"},
	{"김포", "김포"},
	{"부천", "부천"},
	{"안산", "안산"},
	{"과천", "과천"},
	// 지방
	{"부산", "부산"},
	{"부산점", "부산"},
	{"부산 서면", "부산"},
	{"서면", "부산"},
	{"대구", "대구"},
	{"동성로", "대구"},
	{"대전", "대전"},
	{"광주", "광주"},
	{"전주", "전주"},
	{"전주점", "전주"},
	{"제주", "제주"},
	{"원주", "원주"},
	{"천안", "천안"},
	{"용인", "용인"},
	{"에버랜드", "용인"},
}

var exact = func() map[string]string {
	m := make(map[string]string, len(aliases))
	for _, a := range aliases {
		m[a.raw] = a.canonical
	}
	return m
}()

// Normalize canonicalizes a raw location string. it is total and never
// invents or discards data: known aliases collapse to their canonical
// tag, anything unknown passes through trimmed but unchanged.
//
// exact matching must run before the substring pass, otherwise a long
// branch name containing a short alias ("부산 서면" vs "서면") could be
// assigned the wrong region depending on table order.
func Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if canonical, ok := exact[trimmed]; ok {
		return canonical
	}

	stripped := strings.TrimSuffix(trimmed, "점")
	if canonical, ok := exact[stripped]; ok {
		return canonical
	}

	for _, a := range aliases {
		if strings.Contains(trimmed, a.raw) {
			return a.canonical
		}
	}

	return trimmed
}
