package services

import (
	"context"
	"errors"
	"testing"

	"grantsproject/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cascadeFixture struct {
	log      *opLog
	grants   *fakeGrantRepo
	pledges  *fakePledgeRepo
	gifts    *fakeGiftRepo
	adds     *fakeAddressRepo
	tracking *fakeTrackingRepo
	calendar *fakeCalendarRepo
}

// newCascadeFixture seeds one grant with two pledges and one tracking
// section holding one task.
func newCascadeFixture() *cascadeFixture {
	log := &opLog{}
	return &cascadeFixture{
		log:    log,
		grants: newFakeGrantRepo(log, models.Grant{ID: "1", Title: "Grant A", Status: models.StatusActive}),
		pledges: &fakePledgeRepo{
			log: log,
			byGrant: map[string][]models.Pledge{
				"1": {{ID: "p1", GrantID: "1"}, {ID: "p2", GrantID: "1"}},
			},
		},
		gifts: &fakeGiftRepo{log: log, byGrant: map[string][]models.Gift{}},
		adds:  &fakeAddressRepo{log: log, byGrant: map[string][]models.Address{}},
		tracking: &fakeTrackingRepo{
			log: log,
			sectionsByGrant: map[string][]models.TrackingSection{
				"1": {{ID: "s1", GrantID: "1", Name: "Reporting"}},
			},
			tasksBySection: map[string][]models.TrackingTask{
				"s1": {{ID: "t1", SectionID: "s1", GrantID: "1", Status: models.TaskToDo}},
			},
		},
		calendar: &fakeCalendarRepo{log: log, byGrant: map[string][]models.CalendarEvent{}},
	}
}

func (f *cascadeFixture) service() GrantService {
	return NewGrantService(f.grants, f.pledges, f.gifts, f.adds, f.tracking, f.calendar, false)
}

func TestDeleteGrant_CascadeRemovesAllDescendants(t *testing.T) {
	f := newCascadeFixture()
	ctx := context.Background()

	result, err := f.service().DeleteGrant(ctx, "1")
	require.NoError(t, err)

	assert.True(t, result.Complete())
	// 2 pledges + 1 task + 1 section + 1 grant document.
	assert.Equal(t, int64(5), result.Deleted)

	assert.Empty(t, f.pledges.byGrant["1"])
	assert.Empty(t, f.tracking.sectionsByGrant["1"])
	assert.Empty(t, f.tracking.tasksBySection["s1"])
	_, err = f.grants.GetByID(ctx, "1")
	assert.Error(t, err, "grant document should be gone")
}

func TestDeleteGrant_DescendantsBeforeGrant(t *testing.T) {
	f := newCascadeFixture()

	_, err := f.service().DeleteGrant(context.Background(), "1")
	require.NoError(t, err)

	expected := []string{
		"pledges:1",
		"gifts:1",
		"addresses:1",
		"tasks:s1",
		"section:s1",
		"events:1",
		"grant:1",
	}
	assert.Equal(t, expected, f.log.ops)
}

func TestDeleteGrant_PartialFailureReported(t *testing.T) {
	f := newCascadeFixture()
	f.tracking.taskDelErr = errors.New("store unavailable")

	result, err := f.service().DeleteGrant(context.Background(), "1")
	require.NoError(t, err, "partial failure is reported, not raised")

	assert.False(t, result.Complete())
	require.Len(t, result.Failures, 2)
	assert.Equal(t, "grants/1/trackingSections/s1/trackingTasks", result.Failures[0].Path)
	assert.Contains(t, result.Failures[1].Error, "skipped")

	// The section and the grant document both survive so the stranded tasks
	// stay reachable.
	assert.Len(t, f.tracking.sectionsByGrant["1"], 1)
	_, err = f.grants.GetByID(context.Background(), "1")
	assert.NoError(t, err)

	// Everything else was still attempted.
	assert.Empty(t, f.pledges.byGrant["1"])
}

func TestDeleteGrant_NotFound(t *testing.T) {
	f := newCascadeFixture()

	_, err := f.service().DeleteGrant(context.Background(), "999")
	assert.Error(t, err)
}

func TestCreateGrant_AssignsNextNumericID(t *testing.T) {
	log := &opLog{}
	grants := newFakeGrantRepo(log,
		models.Grant{ID: "3", Title: "Old"},
		models.Grant{ID: "7", Title: "Newer"},
	)
	svc := NewGrantService(grants, &fakePledgeRepo{log: log, byGrant: map[string][]models.Pledge{}},
		&fakeGiftRepo{log: log, byGrant: map[string][]models.Gift{}},
		&fakeAddressRepo{log: log, byGrant: map[string][]models.Address{}},
		&fakeTrackingRepo{log: log, sectionsByGrant: map[string][]models.TrackingSection{}, tasksBySection: map[string][]models.TrackingTask{}},
		&fakeCalendarRepo{log: log, byGrant: map[string][]models.CalendarEvent{}},
		false)

	created, err := svc.CreateGrant(context.Background(), &models.Grant{Title: "Brand New"})
	require.NoError(t, err)

	assert.Equal(t, "8", created.ID)
	assert.Equal(t, models.StatusPending, created.Status, "status defaults to Pending")
	assert.NotNil(t, created.Attachments)
	assert.False(t, created.Metadata.CreatedAt.IsZero())
}

func TestUpdateGrant_MergeSemantics(t *testing.T) {
	f := newCascadeFixture()
	svc := f.service()

	updated, err := svc.UpdateGrant(context.Background(), "1", &models.Grant{Status: models.StatusCompleted})
	require.NoError(t, err)

	assert.Equal(t, models.StatusCompleted, updated.Status)
	assert.Equal(t, "Grant A", updated.Title, "fields not provided stay untouched")
}

func TestDeleteAttachment_RollsBackOnFileDeleteFailure(t *testing.T) {
	log := &opLog{}
	grants := newFakeGrantRepo(log)

	svc := NewGrantService(grants, &fakePledgeRepo{log: log, byGrant: map[string][]models.Pledge{}},
		&fakeGiftRepo{log: log, byGrant: map[string][]models.Gift{}},
		&fakeAddressRepo{log: log, byGrant: map[string][]models.Address{}},
		&fakeTrackingRepo{log: log, sectionsByGrant: map[string][]models.TrackingSection{}, tasksBySection: map[string][]models.TrackingTask{}},
		&fakeCalendarRepo{log: log, byGrant: map[string][]models.CalendarEvent{}},
		false)

	ctx := context.Background()
	created, err := svc.CreateGrant(ctx, &models.Grant{Title: "With File"})
	require.NoError(t, err)

	attachment, err := svc.UploadAttachment(ctx, created.ID, "award.pdf", nil, "tester", "application/pdf")
	require.NoError(t, err)

	grants.fileErr = errors.New("gridfs down")

	err = svc.DeleteAttachment(ctx, created.ID, attachment.FileID, "tester")
	require.Error(t, err)

	// The reference was restored when the file delete failed.
	g, err := grants.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, g.Attachments, 1)
	assert.Equal(t, "award.pdf", g.Attachments[0].Filename)
}
