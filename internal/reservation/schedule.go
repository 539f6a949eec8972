package reservation

import "time"

// The campus booking authority opens bookings for a given date a fixed
// number of days ahead, during a daily window.
const (
	windowOpen  = 8*time.Hour + 39*time.Minute + 55*time.Second
	windowClose = 21*time.Hour + 39*time.Minute + 55*time.Second
)

// ReserveOn computes the calendar date on which the dispatcher should act
// on the draft: the day the site's booking window opens for the target
// date. If that window has already opened, the request is dispatched the
// same day while today's window is still running, otherwise the next day.
func ReserveOn(d Draft, now time.Time) (string, error) {
	date, err := time.ParseInLocation(DateLayout, d.Date, ServiceLocation)
	if err != nil {
		return "", err
	}
	openDay := date.AddDate(0, 0, -SiteLookahead(d.Site))
	open := openDay.Add(windowOpen)

	local := now.In(ServiceLocation)
	if local.Before(open) {
		return openDay.Format(DateLayout), nil
	}

	y, m, day := local.Date()
	today := time.Date(y, m, day, 0, 0, 0, 0, ServiceLocation)
	todayClose := today.Add(windowClose)
	if local.Before(todayClose) {
		return today.Format(DateLayout), nil
	}
	return today.AddDate(0, 0, 1).Format(DateLayout), nil
}
