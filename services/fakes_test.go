package services

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"

	"grantsproject/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
)

// In-memory repository fakes. Deletes append to a shared op log so cascade
// tests can assert ordering; each fake takes an optional injected error.

type opLog struct {
	ops []string
}

func (l *opLog) add(op string) {
	l.ops = append(l.ops, op)
}

type fakeGrantRepo struct {
	grants  map[string]models.Grant
	log     *opLog
	delErr  error
	fileErr error
}

func newFakeGrantRepo(log *opLog, grants ...models.Grant) *fakeGrantRepo {
	m := make(map[string]models.Grant, len(grants))
	for _, g := range grants {
		m[g.ID] = g
	}
	return &fakeGrantRepo{grants: m, log: log}
}

func (f *fakeGrantRepo) Create(ctx context.Context, grant *models.Grant) error {
	f.grants[grant.ID] = *grant
	return nil
}

func (f *fakeGrantRepo) GetByID(ctx context.Context, id string) (*models.Grant, error) {
	g, ok := f.grants[id]
	if !ok {
		return nil, fmt.Errorf("no grant found with id %s", id)
	}
	return &g, nil
}

func (f *fakeGrantRepo) GetAll(ctx context.Context) ([]models.Grant, error) {
	out := make([]models.Grant, 0, len(f.grants))
	for _, g := range f.grants {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeGrantRepo) Update(ctx context.Context, id string, fields bson.M) error {
	if _, ok := f.grants[id]; !ok {
		return fmt.Errorf("no grant found with id %s", id)
	}
	g := f.grants[id]
	if title, ok := fields["title"].(string); ok {
		g.Title = title
	}
	if status, ok := fields["status"].(string); ok {
		g.Status = status
	}
	f.grants[id] = g
	return nil
}

func (f *fakeGrantRepo) Delete(ctx context.Context, id string) error {
	if f.delErr != nil {
		return f.delErr
	}
	if _, ok := f.grants[id]; !ok {
		return fmt.Errorf("no grant found with id %s", id)
	}
	delete(f.grants, id)
	f.log.add("grant:" + id)
	return nil
}

func (f *fakeGrantRepo) NextID(ctx context.Context) (string, error) {
	maxID := 0
	for id := range f.grants {
		if n, err := strconv.Atoi(id); err == nil && n > maxID {
			maxID = n
		}
	}
	return strconv.Itoa(maxID + 1), nil
}

func (f *fakeGrantRepo) GetClient() *mongo.Client { return nil }

func (f *fakeGrantRepo) UploadFile(ctx context.Context, filename string, fileData io.Reader, uploadedBy string, contentType string) (primitive.ObjectID, error) {
	return primitive.NewObjectID(), nil
}

func (f *fakeGrantRepo) DownloadFile(ctx context.Context, fileID primitive.ObjectID) (*gridfs.DownloadStream, error) {
	return nil, fmt.Errorf("not supported in fake")
}

func (f *fakeGrantRepo) DeleteFile(ctx context.Context, fileID primitive.ObjectID) error {
	if f.fileErr != nil {
		return f.fileErr
	}
	f.log.add("file:" + fileID.Hex())
	return nil
}

func (f *fakeGrantRepo) AddAttachment(ctx context.Context, grantID string, attachment models.Attachment, updatedBy string) error {
	g, ok := f.grants[grantID]
	if !ok {
		return fmt.Errorf("no grant found with id %s", grantID)
	}
	g.Attachments = append(g.Attachments, attachment)
	f.grants[grantID] = g
	return nil
}

func (f *fakeGrantRepo) RemoveAttachment(ctx context.Context, grantID string, fileID primitive.ObjectID, updatedBy string) error {
	g, ok := f.grants[grantID]
	if !ok {
		return fmt.Errorf("no grant found with id %s", grantID)
	}
	kept := g.Attachments[:0]
	for _, a := range g.Attachments {
		if a.FileID != fileID {
			kept = append(kept, a)
		}
	}
	g.Attachments = kept
	f.grants[grantID] = g
	return nil
}

func (f *fakeGrantRepo) GetStatusBreakdown(ctx context.Context) ([]bson.M, error) {
	counts := map[string]int{}
	for _, g := range f.grants {
		counts[g.Status]++
	}
	var out []bson.M
	for status, n := range counts {
		out = append(out, bson.M{"_id": status, "count": n})
	}
	return out, nil
}

type fakePledgeRepo struct {
	byGrant map[string][]models.Pledge
	log     *opLog
	delErr  error
}

func (f *fakePledgeRepo) Create(ctx context.Context, pledge *models.Pledge) error {
	pledge.ID = fmt.Sprintf("pledge-%d", len(f.byGrant[pledge.GrantID])+1)
	f.byGrant[pledge.GrantID] = append(f.byGrant[pledge.GrantID], *pledge)
	return nil
}

func (f *fakePledgeRepo) ListByGrant(ctx context.Context, grantID string) ([]models.Pledge, error) {
	return f.byGrant[grantID], nil
}

func (f *fakePledgeRepo) Update(ctx context.Context, id string, fields bson.M) error { return nil }

func (f *fakePledgeRepo) Delete(ctx context.Context, id string) error { return nil }

func (f *fakePledgeRepo) DeleteByGrant(ctx context.Context, grantID string) (int64, error) {
	if f.delErr != nil {
		return 0, f.delErr
	}
	n := int64(len(f.byGrant[grantID]))
	delete(f.byGrant, grantID)
	f.log.add("pledges:" + grantID)
	return n, nil
}

type fakeGiftRepo struct {
	byGrant map[string][]models.Gift
	log     *opLog
	delErr  error
}

func (f *fakeGiftRepo) Create(ctx context.Context, gift *models.Gift) error {
	f.byGrant[gift.GrantID] = append(f.byGrant[gift.GrantID], *gift)
	return nil
}

func (f *fakeGiftRepo) ListByGrant(ctx context.Context, grantID string) ([]models.Gift, error) {
	return f.byGrant[grantID], nil
}

func (f *fakeGiftRepo) Update(ctx context.Context, id string, fields bson.M) error { return nil }

func (f *fakeGiftRepo) Delete(ctx context.Context, id string) error { return nil }

func (f *fakeGiftRepo) DeleteByGrant(ctx context.Context, grantID string) (int64, error) {
	if f.delErr != nil {
		return 0, f.delErr
	}
	n := int64(len(f.byGrant[grantID]))
	delete(f.byGrant, grantID)
	f.log.add("gifts:" + grantID)
	return n, nil
}

type fakeAddressRepo struct {
	byGrant map[string][]models.Address
	log     *opLog
	delErr  error
}

func (f *fakeAddressRepo) Create(ctx context.Context, address *models.Address) error {
	f.byGrant[address.GrantID] = append(f.byGrant[address.GrantID], *address)
	return nil
}

func (f *fakeAddressRepo) ListByGrant(ctx context.Context, grantID string) ([]models.Address, error) {
	return f.byGrant[grantID], nil
}

func (f *fakeAddressRepo) Update(ctx context.Context, id string, fields bson.M) error { return nil }

func (f *fakeAddressRepo) Delete(ctx context.Context, id string) error { return nil }

func (f *fakeAddressRepo) DeleteByGrant(ctx context.Context, grantID string) (int64, error) {
	if f.delErr != nil {
		return 0, f.delErr
	}
	n := int64(len(f.byGrant[grantID]))
	delete(f.byGrant, grantID)
	f.log.add("addresses:" + grantID)
	return n, nil
}

type fakeTrackingRepo struct {
	sectionsByGrant map[string][]models.TrackingSection
	tasksBySection  map[string][]models.TrackingTask
	log             *opLog
	taskDelErr      error
	sectionDelErr   error
}

func (f *fakeTrackingRepo) CreateSection(ctx context.Context, section *models.TrackingSection) error {
	section.ID = fmt.Sprintf("section-%d", len(f.sectionsByGrant[section.GrantID])+1)
	f.sectionsByGrant[section.GrantID] = append(f.sectionsByGrant[section.GrantID], *section)
	return nil
}

func (f *fakeTrackingRepo) ListSectionsByGrant(ctx context.Context, grantID string) ([]models.TrackingSection, error) {
	return f.sectionsByGrant[grantID], nil
}

func (f *fakeTrackingRepo) UpdateSection(ctx context.Context, id string, fields bson.M) error {
	return nil
}

func (f *fakeTrackingRepo) DeleteSection(ctx context.Context, id string) error {
	if f.sectionDelErr != nil {
		return f.sectionDelErr
	}
	for grantID, sections := range f.sectionsByGrant {
		kept := sections[:0]
		for _, s := range sections {
			if s.ID != id {
				kept = append(kept, s)
			}
		}
		f.sectionsByGrant[grantID] = kept
	}
	f.log.add("section:" + id)
	return nil
}

func (f *fakeTrackingRepo) CreateTask(ctx context.Context, task *models.TrackingTask) error {
	task.ID = fmt.Sprintf("task-%d", len(f.tasksBySection[task.SectionID])+1)
	f.tasksBySection[task.SectionID] = append(f.tasksBySection[task.SectionID], *task)
	return nil
}

func (f *fakeTrackingRepo) ListTasksBySection(ctx context.Context, sectionID string) ([]models.TrackingTask, error) {
	return f.tasksBySection[sectionID], nil
}

func (f *fakeTrackingRepo) ListTasksByGrant(ctx context.Context, grantID string) ([]models.TrackingTask, error) {
	var out []models.TrackingTask
	for _, tasks := range f.tasksBySection {
		for _, t := range tasks {
			if t.GrantID == grantID {
				out = append(out, t)
			}
		}
	}
	return out, nil
}

func (f *fakeTrackingRepo) UpdateTask(ctx context.Context, id string, fields bson.M) error {
	return nil
}

func (f *fakeTrackingRepo) DeleteTask(ctx context.Context, id string) error { return nil }

func (f *fakeTrackingRepo) DeleteTasksBySection(ctx context.Context, sectionID string) (int64, error) {
	if f.taskDelErr != nil {
		return 0, f.taskDelErr
	}
	n := int64(len(f.tasksBySection[sectionID]))
	delete(f.tasksBySection, sectionID)
	f.log.add("tasks:" + sectionID)
	return n, nil
}

type fakeCalendarRepo struct {
	byGrant map[string][]models.CalendarEvent
	log     *opLog
	delErr  error
}

func (f *fakeCalendarRepo) Create(ctx context.Context, event *models.CalendarEvent) error {
	event.ID = fmt.Sprintf("event-%d", len(f.byGrant[event.GrantID])+1)
	f.byGrant[event.GrantID] = append(f.byGrant[event.GrantID], *event)
	return nil
}

func (f *fakeCalendarRepo) ListAll(ctx context.Context) ([]models.CalendarEvent, error) {
	var out []models.CalendarEvent
	for _, events := range f.byGrant {
		out = append(out, events...)
	}
	return out, nil
}

func (f *fakeCalendarRepo) ListByGrant(ctx context.Context, grantID string) ([]models.CalendarEvent, error) {
	return f.byGrant[grantID], nil
}

func (f *fakeCalendarRepo) Update(ctx context.Context, id string, fields bson.M) error { return nil }

func (f *fakeCalendarRepo) Delete(ctx context.Context, id string) error { return nil }

func (f *fakeCalendarRepo) DeleteByGrant(ctx context.Context, grantID string) (int64, error) {
	if f.delErr != nil {
		return 0, f.delErr
	}
	n := int64(len(f.byGrant[grantID]))
	delete(f.byGrant, grantID)
	f.log.add("events:" + grantID)
	return n, nil
}

type fakeNotificationRepo struct {
	saved [][]models.Notification
	items []models.Notification
	err   error
}

func (f *fakeNotificationRepo) Load(ctx context.Context) ([]models.Notification, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

func (f *fakeNotificationRepo) Save(ctx context.Context, items []models.Notification) error {
	if f.err != nil {
		return f.err
	}
	f.items = items
	f.saved = append(f.saved, items)
	return nil
}
