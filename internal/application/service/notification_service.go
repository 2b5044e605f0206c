package service

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/medicore/hms-api/internal/domain/entity"
	"github.com/medicore/hms-api/internal/domain/enum"
	"github.com/medicore/hms-api/internal/domain/repository"
	"github.com/medicore/hms-api/internal/infrastructure/cache"
	"github.com/medicore/hms-api/pkg/apperror"
	"github.com/medicore/hms-api/pkg/pagination"
)

// notificationChannel is the Redis channel external consumers subscribe to
// for push delivery.
const notificationChannel = "hms:notifications"

// NotificationService handles in-app notifications
type NotificationService struct {
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
	cache            *cache.Cache
}

// NewNotificationService creates a new notification service
func NewNotificationService(
	notificationRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	c *cache.Cache,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		cache:            c,
	}
}

// Notify stores a notification for one user and mirrors it to Redis
func (s *NotificationService) Notify(ctx context.Context, userID uuid.UUID, kind enum.NotificationKind, title, body string, entityID *uuid.UUID) error {
	notification := &entity.Notification{
		UserID:   userID,
		Kind:     kind,
		Title:    title,
		Body:     body,
		EntityID: entityID,
	}

	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return err
	}

	s.publish(ctx, notification)
	return nil
}

// NotifyRole fans a notification out to every active user holding one of
// the given roles
func (s *NotificationService) NotifyRole(ctx context.Context, roles []enum.Role, kind enum.NotificationKind, title, body string, entityID *uuid.UUID) error {
	users, err := s.userRepo.ListByRole(ctx, roles...)
	if err != nil {
		return err
	}

	notifications := make([]entity.Notification, 0, len(users))
	for _, user := range users {
		notifications = append(notifications, entity.Notification{
			UserID:   user.ID,
			Kind:     kind,
			Title:    title,
			Body:     body,
			EntityID: entityID,
		})
	}

	if err := s.notificationRepo.CreateBatch(ctx, notifications); err != nil {
		return err
	}

	for i := range notifications {
		s.publish(ctx, &notifications[i])
	}
	return nil
}

// publish mirrors the notification to Redis; delivery failures are logged
// and never fail the originating operation
func (s *NotificationService) publish(ctx context.Context, notification *entity.Notification) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Publish(ctx, notificationChannel, notification); err != nil {
		log.Printf("Warning: failed to publish notification %s: %v", notification.ID, err)
	}
}

// ListNotifications lists a user's notifications
func (s *NotificationService) ListNotifications(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, unreadOnly bool) (*pagination.PaginatedResult[entity.Notification], error) {
	notifications, total, err := s.notificationRepo.ListByUser(ctx, userID, params, unreadOnly)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(notifications, pag), nil
}

// CountUnread returns the user's unread notification count
func (s *NotificationService) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.notificationRepo.CountUnread(ctx, userID)
}

// MarkRead marks one of the user's notifications as read
func (s *NotificationService) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	notification, err := s.notificationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if notification == nil || notification.UserID != userID {
		return apperror.NewNotFoundError("Notification")
	}
	return s.notificationRepo.MarkRead(ctx, id, userID)
}

// MarkAllRead marks all of the user's notifications as read
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}

// DeleteNotification removes one of the user's notifications
func (s *NotificationService) DeleteNotification(ctx context.Context, id, userID uuid.UUID) error {
	return s.notificationRepo.Delete(ctx, id, userID)
}
