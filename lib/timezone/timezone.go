package timezone

import "time"

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("Asia/Seoul")
	if err != nil {
		panic(err)
	}
}

// force timezone to KST because the vendor sites, their branch listings
// and the crawl report timestamps are all Korea-local, regardless of
// where the server ends up running
func Now() time.Time {
	return time.Now().In(Location)
}
