package tz

import "time"

// Paris is the Europe/Paris location (CET/CEST with automatic DST).
var Paris *time.Location

func init() {
	var err error
	Paris, err = time.LoadLocation("Europe/Paris")
	if err != nil {
		panic("tz: load Europe/Paris: " + err.Error())
	}
}

// DisplayLayout is how dates are shown to people, e.g. 12/09/2026 19:30.
const DisplayLayout = "02/01/2006 15:04"

// Display formats t in Paris time.
func Display(t time.Time) string {
	return t.In(Paris).Format(DisplayLayout)
}
