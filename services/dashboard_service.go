package services

import (
	"context"

	"grantsproject/aggregation"
	"grantsproject/models"
	repository "grantsproject/repositories"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/sync/errgroup"
)

// GrantSummary is the per-grant view model the dashboard renders.
type GrantSummary struct {
	Grant        models.Grant            `json:"grant"`
	TotalFunding float64                 `json:"total_funding"`
	Progress     int                     `json:"progress"`
	PledgeStats  aggregation.PledgeStats `json:"pledge_stats"`
}

// DashboardView is the full dashboard payload.
type DashboardView struct {
	GlobalFunding float64        `json:"global_funding"`
	Grants        []GrantSummary `json:"grants"`
}

type DashboardService interface {
	BuildDashboard(ctx context.Context) (*DashboardView, error)
	GrantMetrics(ctx context.Context, grantID string) (*GrantSummary, error)
	StatusBreakdown(ctx context.Context) ([]bson.M, error)
}

type dashboardService struct {
	grants   repository.GrantRepository
	pledges  repository.PledgeRepository
	tracking repository.TrackingRepository
}

func NewDashboardService(
	grants repository.GrantRepository,
	pledges repository.PledgeRepository,
	tracking repository.TrackingRepository,
) DashboardService {
	return &dashboardService{
		grants:   grants,
		pledges:  pledges,
		tracking: tracking,
	}
}

// BuildDashboard fetches every grant's sub-collections in parallel, joins the
// results into an indexed snapshot, then derives the metrics. Results land in
// per-grant slots so completion order cannot change the sums.
func (s *dashboardService) BuildDashboard(ctx context.Context) (*DashboardView, error) {
	grants, err := s.grants.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]GrantSummary, len(grants))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)

	for i, grant := range grants {
		g.Go(func() error {
			summary, err := s.buildSummary(gctx, grant)
			if err != nil {
				return err
			}
			summaries[i] = *summary
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	view := &DashboardView{Grants: summaries}
	totals := make([]float64, len(summaries))
	for i, summary := range summaries {
		totals[i] = summary.TotalFunding
	}
	view.GlobalFunding = aggregation.GlobalFunding(totals)

	return view, nil
}

func (s *dashboardService) GrantMetrics(ctx context.Context, grantID string) (*GrantSummary, error) {
	grant, err := s.grants.GetByID(ctx, grantID)
	if err != nil {
		return nil, err
	}

	return s.buildSummary(ctx, *grant)
}

func (s *dashboardService) buildSummary(ctx context.Context, grant models.Grant) (*GrantSummary, error) {
	var pledges []models.Pledge
	var tasks []models.TrackingTask

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		pledges, err = s.pledges.ListByGrant(gctx, grant.ID)
		return err
	})

	g.Go(func() error {
		var err error
		tasks, err = s.tracking.ListTasksByGrant(gctx, grant.ID)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &GrantSummary{
		Grant:        grant,
		TotalFunding: aggregation.TotalFunding(pledges),
		Progress:     aggregation.Progress(tasks),
		PledgeStats:  aggregation.ComputePledgeStats(pledges),
	}, nil
}

func (s *dashboardService) StatusBreakdown(ctx context.Context) ([]bson.M, error) {
	return s.grants.GetStatusBreakdown(ctx)
}
