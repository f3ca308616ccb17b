package services

import (
	"context"
	"testing"

	"grantsproject/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDashboardFixture() DashboardService {
	log := &opLog{}
	grants := newFakeGrantRepo(log,
		models.Grant{ID: "1", Title: "Grant A", Status: models.StatusActive},
		models.Grant{ID: "2", Title: "Grant B", Status: models.StatusApproved},
	)
	pledges := &fakePledgeRepo{
		log: log,
		byGrant: map[string][]models.Pledge{
			"1": {
				{ID: "p1", GrantID: "1", Amount: 1000, Received: 250},
				{ID: "p2", GrantID: "1", Amount: 500, Received: 500},
			},
			"2": {
				{ID: "p3", GrantID: "2", Amount: 200, Received: 300},
			},
		},
	}
	tracking := &fakeTrackingRepo{
		log:             log,
		sectionsByGrant: map[string][]models.TrackingSection{"1": {{ID: "s1", GrantID: "1"}}},
		tasksBySection: map[string][]models.TrackingTask{
			"s1": {
				{ID: "t1", GrantID: "1", Status: models.TaskDone},
				{ID: "t2", GrantID: "1", Status: models.TaskInProgress},
			},
		},
	}
	return NewDashboardService(grants, pledges, tracking)
}

func TestBuildDashboard(t *testing.T) {
	svc := newDashboardFixture()

	view, err := svc.BuildDashboard(context.Background())
	require.NoError(t, err)

	require.Len(t, view.Grants, 2)
	assert.Equal(t, float64(1050), view.GlobalFunding)

	a := view.Grants[0]
	assert.Equal(t, "1", a.Grant.ID)
	assert.Equal(t, float64(750), a.TotalFunding)
	assert.Equal(t, 75, a.Progress)
	assert.Equal(t, float64(1500), a.PledgeStats.TotalPledged)
	assert.Equal(t, 50, a.PledgeStats.Fulfillment)

	b := view.Grants[1]
	assert.Equal(t, float64(300), b.TotalFunding)
	assert.Equal(t, 0, b.Progress, "no tasks means zero progress")
	assert.Equal(t, float64(-100), b.PledgeStats.Outstanding, "over-delivery stays signed")
}

// The fan-out fetch must produce identical numbers run after run; completion
// order cannot leak into the aggregates.
func TestBuildDashboard_Deterministic(t *testing.T) {
	svc := newDashboardFixture()
	ctx := context.Background()

	first, err := svc.BuildDashboard(ctx)
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		again, err := svc.BuildDashboard(ctx)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestGrantMetrics(t *testing.T) {
	svc := newDashboardFixture()

	summary, err := svc.GrantMetrics(context.Background(), "1")
	require.NoError(t, err)

	assert.Equal(t, float64(750), summary.TotalFunding)
	assert.Equal(t, 75, summary.Progress)

	_, err = svc.GrantMetrics(context.Background(), "999")
	assert.Error(t, err)
}

func TestStatusBreakdown(t *testing.T) {
	svc := newDashboardFixture()

	stats, err := svc.StatusBreakdown(context.Background())
	require.NoError(t, err)
	assert.Len(t, stats, 2)
}
