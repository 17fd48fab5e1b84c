package domain

import "time"

// RecentUpdateWindow bounds how far back a document update counts as recent
const RecentUpdateWindow = 30 * 24 * time.Hour

// BusinessMetrics is the dashboard summary for one business
type BusinessMetrics struct {
	TotalDocuments int `json:"totalDocuments"`
	RecentUpdates  int `json:"recentUpdates"`
	AIInteractions int `json:"aiInteractions"`
}
