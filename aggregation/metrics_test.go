package aggregation

import (
	"testing"

	"grantsproject/models"

	"github.com/stretchr/testify/assert"
)

func TestTotalFunding(t *testing.T) {
	tests := []struct {
		name    string
		pledges []models.Pledge
		want    float64
	}{
		{"empty", nil, 0},
		{"single pledge", []models.Pledge{{Received: 100}}, 100},
		{"multiple pledges", []models.Pledge{{Received: 100}, {Received: 50}}, 150},
		{"zero received ignored", []models.Pledge{{Amount: 500}}, 0},
		{"sums received not amount", []models.Pledge{{Amount: 1000, Received: 250}, {Amount: 200, Received: 200}}, 450},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TotalFunding(tt.pledges))
		})
	}
}

func TestGlobalFunding(t *testing.T) {
	assert.Equal(t, float64(0), GlobalFunding(nil))
	assert.Equal(t, float64(600), GlobalFunding([]float64{100, 500}))
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name     string
		statuses []string
		want     int
	}{
		{"empty task set", nil, 0},
		{"all to do", []string{models.TaskToDo, models.TaskToDo}, 0},
		{"done and in progress", []string{models.TaskDone, models.TaskInProgress}, 75},
		{"all done", []string{models.TaskDone, models.TaskDone, models.TaskDone}, 100},
		{"unrecognized status counts zero", []string{models.TaskDone, "Blocked"}, 50},
		{"rounds to nearest", []string{models.TaskDone, models.TaskToDo, models.TaskToDo}, 33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks := make([]models.TrackingTask, len(tt.statuses))
			for i, s := range tt.statuses {
				tasks[i] = models.TrackingTask{Status: s}
			}
			assert.Equal(t, tt.want, Progress(tasks))
		})
	}
}

func TestComputePledgeStats(t *testing.T) {
	stats := ComputePledgeStats([]models.Pledge{{Amount: 1000, Received: 250}})

	assert.Equal(t, float64(1000), stats.TotalPledged)
	assert.Equal(t, float64(250), stats.TotalReceived)
	assert.Equal(t, float64(750), stats.Outstanding)
	assert.Equal(t, 25, stats.Fulfillment)
}

func TestComputePledgeStats_NoPledgedAmount(t *testing.T) {
	stats := ComputePledgeStats([]models.Pledge{{Amount: 0, Received: 100}})

	assert.Equal(t, 0, stats.Fulfillment, "fulfillment must not divide by zero")
	assert.Equal(t, float64(-100), stats.Outstanding)
}

func TestChartSegments_ClampsNegativeOutstanding(t *testing.T) {
	// Over-delivered pledge: outstanding goes negative in the stats but the
	// chart segment clamps at zero.
	stats := ComputePledgeStats([]models.Pledge{{Amount: 100, Received: 150}})
	received, outstanding := stats.ChartSegments()

	assert.Equal(t, float64(-50), stats.Outstanding)
	assert.Equal(t, float64(150), received)
	assert.Equal(t, float64(0), outstanding)
}

func TestAggregation_Idempotent(t *testing.T) {
	pledges := []models.Pledge{{Amount: 1000, Received: 250}, {Amount: 500, Received: 500}}
	tasks := []models.TrackingTask{{Status: models.TaskDone}, {Status: models.TaskInProgress}}

	first := TotalFunding(pledges)
	firstProgress := Progress(tasks)
	firstStats := ComputePledgeStats(pledges)

	assert.Equal(t, first, TotalFunding(pledges))
	assert.Equal(t, firstProgress, Progress(tasks))
	assert.Equal(t, firstStats, ComputePledgeStats(pledges))

	// Inputs are untouched.
	assert.Equal(t, float64(1000), pledges[0].Amount)
	assert.Equal(t, models.TaskDone, tasks[0].Status)
}
