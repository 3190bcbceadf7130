// Package model provides data transfer objects for statistics module.
package model

import "errors"

// ErrForbidden indicates the caller is not on the admin allow-list.
var ErrForbidden = errors.New("admin access required")

// TrackCount is the number of applications in one track.
type TrackCount struct {
	Track string `json:"track"`
	Count int    `json:"count"`
}

// ApplicationStatistics are the admin dashboard counters.
type ApplicationStatistics struct {
	Total                 int          `json:"total"`
	Pending               int          `json:"pending"`
	Verified              int          `json:"verified"`
	Rejected              int          `json:"rejected"`
	Participants          int          `json:"participants"`
	AccommodationRequests int          `json:"accommodation_requests"`
	Tracks                []TrackCount `json:"tracks"`
}

// SummaryResponse represents response for GET /api/admin/stats.
type SummaryResponse struct {
	Statistics ApplicationStatistics `json:"statistics"`
}
