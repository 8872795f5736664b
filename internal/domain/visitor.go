package domain

import (
	"time"

	"github.com/google/uuid"
)

type VisitorLog struct {
	ID         uuid.UUID
	IPAddress  string
	UserAgent  string
	PageURL    string
	Referrer   string
	Country    string
	City       string
	DeviceType string
	Browser    string

	VisitedAt time.Time
}

type PageCount struct {
	Page  string
	Count int
}

type DeviceCount struct {
	Device string
	Count  int
}

type VisitorStats struct {
	Total           int
	Today           int
	UniqueCountries int
	TopPages        []PageCount
	DeviceBreakdown []DeviceCount
}

type VisitorReport struct {
	Visits []VisitorLog
	Stats  VisitorStats
}
