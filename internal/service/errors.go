package service

import "errors"

var (
	// ErrLocationUnavailable is returned when no geolocation fix was supplied.
	ErrLocationUnavailable = errors.New("current location unavailable")

	// ErrJobAlreadyActive is returned when starting a job while one is active.
	ErrJobAlreadyActive = errors.New("a job is already active")

	// ErrNoActiveJob is returned when ending a job while none is active.
	ErrNoActiveJob = errors.New("no active job")

	// ErrInvalidJobID is returned when a job ID is empty.
	ErrInvalidJobID = errors.New("invalid job id")

	// ErrInvalidSiteName is returned when a site name is empty.
	ErrInvalidSiteName = errors.New("invalid site name")

	// ErrInvalidFuelEfficiency is returned when fuel efficiency is not strictly positive.
	ErrInvalidFuelEfficiency = errors.New("fuel efficiency must be positive")

	// ErrInvalidRangeFilter is returned when a history range filter is unknown.
	ErrInvalidRangeFilter = errors.New("invalid range filter")

	// ErrInvalidDateRange is returned when a report range is malformed.
	ErrInvalidDateRange = errors.New("invalid date range")
)
