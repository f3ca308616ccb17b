package services

import (
	"context"
	"fmt"

	"grantsproject/models"
	repository "grantsproject/repositories"

	"go.mongodb.org/mongo-driver/bson"
)

// GrantDetailService covers the sub-collections nested under a grant. Every
// create verifies the parent grant exists first; documents are never attached
// to a grant id that is not in the store.
type GrantDetailService interface {
	AddPledge(ctx context.Context, grantID string, pledge *models.Pledge) (*models.Pledge, error)
	ListPledges(ctx context.Context, grantID string) ([]models.Pledge, error)
	UpdatePledge(ctx context.Context, id string, fields bson.M) error
	DeletePledge(ctx context.Context, id string) error

	AddGift(ctx context.Context, grantID string, gift *models.Gift) (*models.Gift, error)
	ListGifts(ctx context.Context, grantID string) ([]models.Gift, error)
	UpdateGift(ctx context.Context, id string, fields bson.M) error
	DeleteGift(ctx context.Context, id string) error

	AddAddress(ctx context.Context, grantID string, address *models.Address) (*models.Address, error)
	ListAddresses(ctx context.Context, grantID string) ([]models.Address, error)
	UpdateAddress(ctx context.Context, id string, fields bson.M) error
	DeleteAddress(ctx context.Context, id string) error

	AddSection(ctx context.Context, grantID string, section *models.TrackingSection) (*models.TrackingSection, error)
	ListSections(ctx context.Context, grantID string) ([]models.TrackingSection, error)
	UpdateSection(ctx context.Context, id string, fields bson.M) error
	DeleteSection(ctx context.Context, id string) error
	AddTask(ctx context.Context, grantID, sectionID string, task *models.TrackingTask) (*models.TrackingTask, error)
	ListTasks(ctx context.Context, sectionID string) ([]models.TrackingTask, error)
	UpdateTask(ctx context.Context, id string, fields bson.M) error
	DeleteTask(ctx context.Context, id string) error

	AddEvent(ctx context.Context, grantID string, event *models.CalendarEvent) (*models.CalendarEvent, error)
	ListEvents(ctx context.Context, grantID string) ([]models.CalendarEvent, error)
	UpdateEvent(ctx context.Context, id string, fields bson.M) error
	DeleteEvent(ctx context.Context, id string) error
}

type grantDetailService struct {
	grants    repository.GrantRepository
	pledges   repository.PledgeRepository
	gifts     repository.GiftRepository
	addresses repository.AddressRepository
	tracking  repository.TrackingRepository
	calendar  repository.CalendarRepository
}

func NewGrantDetailService(
	grants repository.GrantRepository,
	pledges repository.PledgeRepository,
	gifts repository.GiftRepository,
	addresses repository.AddressRepository,
	tracking repository.TrackingRepository,
	calendar repository.CalendarRepository,
) GrantDetailService {
	return &grantDetailService{
		grants:    grants,
		pledges:   pledges,
		gifts:     gifts,
		addresses: addresses,
		tracking:  tracking,
		calendar:  calendar,
	}
}

func (s *grantDetailService) requireGrant(ctx context.Context, grantID string) error {
	if _, err := s.grants.GetByID(ctx, grantID); err != nil {
		return fmt.Errorf("grant not found: %v", err)
	}
	return nil
}

func (s *grantDetailService) AddPledge(ctx context.Context, grantID string, pledge *models.Pledge) (*models.Pledge, error) {
	if err := s.requireGrant(ctx, grantID); err != nil {
		return nil, err
	}

	pledge.GrantID = grantID
	if err := s.pledges.Create(ctx, pledge); err != nil {
		return nil, err
	}
	return pledge, nil
}

func (s *grantDetailService) ListPledges(ctx context.Context, grantID string) ([]models.Pledge, error) {
	return s.pledges.ListByGrant(ctx, grantID)
}

func (s *grantDetailService) UpdatePledge(ctx context.Context, id string, fields bson.M) error {
	return s.pledges.Update(ctx, id, fields)
}

func (s *grantDetailService) DeletePledge(ctx context.Context, id string) error {
	return s.pledges.Delete(ctx, id)
}

func (s *grantDetailService) AddGift(ctx context.Context, grantID string, gift *models.Gift) (*models.Gift, error) {
	if err := s.requireGrant(ctx, grantID); err != nil {
		return nil, err
	}

	gift.GrantID = grantID
	if gift.Status == "" {
		gift.Status = models.GiftStatusPending
	}
	if err := s.gifts.Create(ctx, gift); err != nil {
		return nil, err
	}
	return gift, nil
}

func (s *grantDetailService) ListGifts(ctx context.Context, grantID string) ([]models.Gift, error) {
	return s.gifts.ListByGrant(ctx, grantID)
}

func (s *grantDetailService) UpdateGift(ctx context.Context, id string, fields bson.M) error {
	return s.gifts.Update(ctx, id, fields)
}

func (s *grantDetailService) DeleteGift(ctx context.Context, id string) error {
	return s.gifts.Delete(ctx, id)
}

func (s *grantDetailService) AddAddress(ctx context.Context, grantID string, address *models.Address) (*models.Address, error) {
	if err := s.requireGrant(ctx, grantID); err != nil {
		return nil, err
	}

	address.GrantID = grantID
	if err := s.addresses.Create(ctx, address); err != nil {
		return nil, err
	}
	return address, nil
}

func (s *grantDetailService) ListAddresses(ctx context.Context, grantID string) ([]models.Address, error) {
	return s.addresses.ListByGrant(ctx, grantID)
}

func (s *grantDetailService) UpdateAddress(ctx context.Context, id string, fields bson.M) error {
	return s.addresses.Update(ctx, id, fields)
}

func (s *grantDetailService) DeleteAddress(ctx context.Context, id string) error {
	return s.addresses.Delete(ctx, id)
}

func (s *grantDetailService) AddSection(ctx context.Context, grantID string, section *models.TrackingSection) (*models.TrackingSection, error) {
	if err := s.requireGrant(ctx, grantID); err != nil {
		return nil, err
	}

	section.GrantID = grantID
	if err := s.tracking.CreateSection(ctx, section); err != nil {
		return nil, err
	}
	return section, nil
}

func (s *grantDetailService) ListSections(ctx context.Context, grantID string) ([]models.TrackingSection, error) {
	return s.tracking.ListSectionsByGrant(ctx, grantID)
}

func (s *grantDetailService) UpdateSection(ctx context.Context, id string, fields bson.M) error {
	return s.tracking.UpdateSection(ctx, id, fields)
}

// DeleteSection removes a section together with its tasks, tasks first.
func (s *grantDetailService) DeleteSection(ctx context.Context, id string) error {
	if _, err := s.tracking.DeleteTasksBySection(ctx, id); err != nil {
		return fmt.Errorf("failed to delete section tasks: %v", err)
	}
	return s.tracking.DeleteSection(ctx, id)
}

func (s *grantDetailService) AddTask(ctx context.Context, grantID, sectionID string, task *models.TrackingTask) (*models.TrackingTask, error) {
	if err := s.requireGrant(ctx, grantID); err != nil {
		return nil, err
	}

	task.GrantID = grantID
	task.SectionID = sectionID
	if err := s.tracking.CreateTask(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *grantDetailService) ListTasks(ctx context.Context, sectionID string) ([]models.TrackingTask, error) {
	return s.tracking.ListTasksBySection(ctx, sectionID)
}

func (s *grantDetailService) UpdateTask(ctx context.Context, id string, fields bson.M) error {
	return s.tracking.UpdateTask(ctx, id, fields)
}

func (s *grantDetailService) DeleteTask(ctx context.Context, id string) error {
	return s.tracking.DeleteTask(ctx, id)
}

func (s *grantDetailService) AddEvent(ctx context.Context, grantID string, event *models.CalendarEvent) (*models.CalendarEvent, error) {
	grant, err := s.grants.GetByID(ctx, grantID)
	if err != nil {
		return nil, fmt.Errorf("grant not found: %v", err)
	}

	event.GrantID = grantID
	if event.Org == "" {
		event.Org = grant.Organization
	}
	if err := s.calendar.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *grantDetailService) ListEvents(ctx context.Context, grantID string) ([]models.CalendarEvent, error) {
	return s.calendar.ListByGrant(ctx, grantID)
}

func (s *grantDetailService) UpdateEvent(ctx context.Context, id string, fields bson.M) error {
	return s.calendar.Update(ctx, id, fields)
}

func (s *grantDetailService) DeleteEvent(ctx context.Context, id string) error {
	return s.calendar.Delete(ctx, id)
}
