package utils

import (
	"time"
)

var jakartaLoc *time.Location

func init() {
	var err error
	jakartaLoc, err = time.LoadLocation("Asia/Jakarta")
	if err != nil {
		// Fallback to Local if timezone data is missing
		// In production docker, ensure tzdata is installed
		jakartaLoc = time.Local
	}
}

// GetJakartaTime returns current time in Jakarta timezone (IDX trading hours are WIB)
func GetJakartaTime() time.Time {
	return time.Now().In(jakartaLoc)
}

// InJakarta converts a time to the Jakarta timezone
func InJakarta(t time.Time) time.Time {
	return t.In(jakartaLoc)
}

// GetLocation returns the Jakarta *time.Location
func GetLocation() *time.Location {
	return jakartaLoc
}
