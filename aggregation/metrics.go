// Package aggregation holds the pure derivation logic of the grants app:
// funding totals, progress percentages, pledge fulfillment and the merged
// calendar. Everything here operates on already-normalized snapshots, never
// touches the store and never returns an error.
package aggregation

import (
	"math"

	"grantsproject/models"
)

// Task status weights for the progress calculation. Unrecognized statuses
// weigh nothing.
var taskWeights = map[string]float64{
	models.TaskToDo:       0,
	models.TaskInProgress: 0.5,
	models.TaskDone:       1,
}

// TotalFunding sums the received portion across a grant's pledges.
func TotalFunding(pledges []models.Pledge) float64 {
	var total float64
	for _, p := range pledges {
		total += p.Received
	}
	return total
}

// GlobalFunding sums per-grant funding totals for the dashboard headline.
func GlobalFunding(totals []float64) float64 {
	var sum float64
	for _, t := range totals {
		sum += t
	}
	return sum
}

// Progress derives a 0-100 completion percentage from a grant's tracking
// tasks. To Do counts 0, In Progress 0.5, Done 1; an empty task set is 0.
func Progress(tasks []models.TrackingTask) int {
	if len(tasks) == 0 {
		return 0
	}
	var weight float64
	for _, t := range tasks {
		weight += taskWeights[t.Status]
	}
	return int(math.Round(100 * weight / float64(len(tasks))))
}

// PledgeStats is the metric set for a grant's pledge panel. Outstanding is
// signed: a donor that over-delivers drives it negative.
type PledgeStats struct {
	TotalPledged  float64 `json:"total_pledged"`
	TotalReceived float64 `json:"total_received"`
	Outstanding   float64 `json:"outstanding"`
	Fulfillment   int     `json:"fulfillment"`
}

// ComputePledgeStats aggregates a grant's pledges into its metric set.
// Fulfillment is 0 when nothing was pledged, never a division by zero.
func ComputePledgeStats(pledges []models.Pledge) PledgeStats {
	var stats PledgeStats
	for _, p := range pledges {
		stats.TotalPledged += p.Amount
		stats.TotalReceived += p.Received
	}
	stats.Outstanding = stats.TotalPledged - stats.TotalReceived
	if stats.TotalPledged > 0 {
		stats.Fulfillment = int(math.Round(100 * stats.TotalReceived / stats.TotalPledged))
	}
	return stats
}

// ChartSegments splits the stats into the two non-negative segments a
// received/outstanding chart needs. The outstanding segment clamps at zero;
// the signed value stays available on the struct for textual display.
func (s PledgeStats) ChartSegments() (received, outstanding float64) {
	return s.TotalReceived, math.Max(s.Outstanding, 0)
}
