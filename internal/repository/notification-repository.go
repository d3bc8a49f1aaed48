package repository

import (
	"errors"
	"log"

	"contracthub/internal/domain"

	"gorm.io/gorm"
)

type NotificationRepository interface {
	CreateNotification(n *domain.Notification) error
	SaveNotification(n *domain.Notification) error
	SaveNotifications(ns []domain.Notification) error
	FindNotificationByID(id uint) (*domain.Notification, error)
	DeleteNotification(n *domain.Notification) error
	FindByUser(userID uint) ([]domain.Notification, error)
	FindUnreadByUser(userID uint) ([]domain.Notification, error)
	CountUnreadByUser(userID uint) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) CreateNotification(n *domain.Notification) error {
	if n == nil {
		return errors.New("nil notification")
	}
	if err := r.db.Create(n).Error; err != nil {
		log.Printf("create notification error: %v", err)
		return errors.New("failed to create notification")
	}
	return nil
}

func (r *notificationRepository) SaveNotification(n *domain.Notification) error {
	if n == nil {
		return errors.New("nil notification")
	}
	if err := r.db.Save(n).Error; err != nil {
		log.Printf("save notification error: %v", err)
		return errors.New("failed to save notification")
	}
	return nil
}

func (r *notificationRepository) SaveNotifications(ns []domain.Notification) error {
	if len(ns) == 0 {
		return nil
	}
	if err := r.db.Save(&ns).Error; err != nil {
		log.Printf("save notifications error: %v", err)
		return errors.New("failed to save notifications")
	}
	return nil
}

func (r *notificationRepository) FindNotificationByID(id uint) (*domain.Notification, error) {
	n := &domain.Notification{}
	if err := r.db.First(n, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		log.Printf("find notification error: %v", err)
		return nil, errors.New("failed to find notification")
	}
	return n, nil
}

func (r *notificationRepository) DeleteNotification(n *domain.Notification) error {
	if n == nil {
		return errors.New("nil notification")
	}
	if err := r.db.Delete(n).Error; err != nil {
		log.Printf("delete notification error: %v", err)
		return errors.New("failed to delete notification")
	}
	return nil
}

func (r *notificationRepository) FindByUser(userID uint) ([]domain.Notification, error) {
	var ns []domain.Notification
	if err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&ns).Error; err != nil {
		log.Printf("find notifications by user error: %v", err)
		return nil, errors.New("failed to list notifications")
	}
	return ns, nil
}

func (r *notificationRepository) FindUnreadByUser(userID uint) ([]domain.Notification, error) {
	var ns []domain.Notification
	if err := r.db.Where("user_id = ? AND read = false", userID).Order("created_at DESC").Find(&ns).Error; err != nil {
		log.Printf("find unread notifications error: %v", err)
		return nil, errors.New("failed to list unread notifications")
	}
	return ns, nil
}

func (r *notificationRepository) CountUnreadByUser(userID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&domain.Notification{}).Where("user_id = ? AND read = false", userID).Count(&count).Error; err != nil {
		log.Printf("count unread notifications error: %v", err)
		return 0, errors.New("failed to count unread notifications")
	}
	return count, nil
}
