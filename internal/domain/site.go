package domain

import "time"

// Site represents a named, geolocated place a user has visited.
// Coordinates are fixed at creation; sites are never edited or deleted.
type Site struct {
	ID           string
	Name         string
	Lat          float64
	Lng          float64
	FirstVisited time.Time
}

// Location is a geolocation fix supplied by the client device.
type Location struct {
	Lat float64
	Lng float64
}
