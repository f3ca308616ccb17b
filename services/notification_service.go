package services

import (
	"context"
	"sync"
	"time"

	"grantsproject/models"
	repository "grantsproject/repositories"

	"github.com/google/uuid"
)

// NotificationService is an explicit state container for the notification
// list: loaded once at startup, mutated in memory, and written back through
// the repository on every change.
type NotificationService interface {
	Load(ctx context.Context) error
	List() []models.Notification
	Add(ctx context.Context, message string) (*models.Notification, error)
	Clear(ctx context.Context) error
}

type notificationService struct {
	repo repository.NotificationRepository

	mu    sync.RWMutex
	items []models.Notification
}

func NewNotificationService(repo repository.NotificationRepository) NotificationService {
	return &notificationService{
		repo:  repo,
		items: []models.Notification{},
	}
}

func (s *notificationService) Load(ctx context.Context) error {
	items, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	return nil
}

func (s *notificationService) List() []models.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Notification, len(s.items))
	copy(out, s.items)
	return out
}

func (s *notificationService) Add(ctx context.Context, message string) (*models.Notification, error) {
	notification := models.Notification{
		ID:        uuid.NewString(),
		Message:   message,
		Timestamp: time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := append(append([]models.Notification{}, s.items...), notification)
	if err := s.repo.Save(ctx, next); err != nil {
		return nil, err
	}

	s.items = next
	return &notification, nil
}

func (s *notificationService) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Save(ctx, []models.Notification{}); err != nil {
		return err
	}

	s.items = []models.Notification{}
	return nil
}
