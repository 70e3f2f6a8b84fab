package models

import "time"

// ReferenceRate is a stored snapshot of the market mortgage reference rate.
// Rate is in percent, as published (16.0 for 16%).
type ReferenceRate struct {
	ID        int64     `json:"id"`
	Source    string    `json:"source"`
	Rate      float64   `json:"rate"`
	Margin    float64   `json:"margin"`
	FetchedAt time.Time `json:"fetched_at"`
}
