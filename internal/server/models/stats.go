package models

import "fmt"

// SystemStats are aggregate counters shown on the admin dashboard.
type SystemStats struct {
	TotalUsers     int64
	TotalAlbums    int64
	TotalPhotos    int64
	TotalMessages  int64
	TotalTasks     int64
	TotalEvents    int64
	CompletedTasks int64
}

// TaskCompletionRate renders completed/total as a percentage with one
// decimal, or "0%" when there are no tasks.
func (s SystemStats) TaskCompletionRate() string {
	if s.TotalTasks == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.1f%%", float64(s.CompletedTasks)/float64(s.TotalTasks)*100)
}
