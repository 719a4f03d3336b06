package domain

import "math"

// DashboardCounts are the raw totals behind DashboardStats.
type DashboardCounts struct {
	Projects  int
	Tasks     int
	DoneTasks int
}

// DashboardStats summarizes the whole board.
type DashboardStats struct {
	ProjectCount int `json:"projectCount"`
	TaskCount    int `json:"taskCount"`
	// CompletedTaskPercentage is the share of tasks in Done, 0 to 100,
	// rounded to two decimals. It is 0 when there are no tasks.
	CompletedTaskPercentage float64 `json:"completedTaskPercentage"`
}

// NewDashboardStats derives the summary from c.
func NewDashboardStats(c DashboardCounts) DashboardStats {
	stats := DashboardStats{ProjectCount: c.Projects, TaskCount: c.Tasks}
	if c.Tasks > 0 {
		pct := float64(c.DoneTasks) / float64(c.Tasks) * 100
		stats.CompletedTaskPercentage = math.Round(pct*100) / 100
	}
	return stats
}
