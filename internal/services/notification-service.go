package services

import (
	"fmt"
	"time"

	"contracthub/internal/domain"
	"contracthub/internal/repository"
)

type NotificationService interface {
	NotificationsForUser(user *domain.User) ([]domain.Notification, error)
	UnreadNotifications(user *domain.User) ([]domain.Notification, error)
	UnreadCount(user *domain.User) (int64, error)
	MarkAsRead(id uint, user *domain.User) error
	MarkAllAsRead(user *domain.User) error
	DeleteNotification(id uint, user *domain.User) error
	CreateNotification(title, message string, ntype domain.NotificationType, userID uint) error

	// GenerateExpiryAlerts runs the on-demand expiry scan for one viewer:
	// overdue contracts flip to EXPIRED with a DANGER alert, contracts
	// ending within a week get a WARNING. Repeat scans are no-ops thanks to
	// exact title+message dedup against the viewer's whole feed.
	GenerateExpiryAlerts(user *domain.User) error
}

type notificationService struct {
	repo         repository.NotificationRepository
	contractRepo repository.ContractRepository

	now func() time.Time
}

func NewNotificationService(repo repository.NotificationRepository, contractRepo repository.ContractRepository) NotificationService {
	return &notificationService{
		repo:         repo,
		contractRepo: contractRepo,
		now:          time.Now,
	}
}

func (s *notificationService) NotificationsForUser(user *domain.User) ([]domain.Notification, error) {
	return s.repo.FindByUser(user.ID)
}

func (s *notificationService) UnreadNotifications(user *domain.User) ([]domain.Notification, error) {
	return s.repo.FindUnreadByUser(user.ID)
}

func (s *notificationService) UnreadCount(user *domain.User) (int64, error) {
	return s.repo.CountUnreadByUser(user.ID)
}

func (s *notificationService) MarkAsRead(id uint, user *domain.User) error {
	n, err := s.repo.FindNotificationByID(id)
	if err != nil {
		// repeating a mark on a gone notification is not an error
		return nil
	}
	if n.UserID != user.ID {
		return nil
	}
	n.Read = true
	return s.repo.SaveNotification(n)
}

func (s *notificationService) MarkAllAsRead(user *domain.User) error {
	unread, err := s.repo.FindUnreadByUser(user.ID)
	if err != nil {
		return err
	}
	for i := range unread {
		unread[i].Read = true
	}
	return s.repo.SaveNotifications(unread)
}

func (s *notificationService) DeleteNotification(id uint, user *domain.User) error {
	n, err := s.repo.FindNotificationByID(id)
	if err != nil {
		return nil
	}
	if n.UserID != user.ID {
		return nil
	}
	return s.repo.DeleteNotification(n)
}

func (s *notificationService) CreateNotification(title, message string, ntype domain.NotificationType, userID uint) error {
	return s.repo.CreateNotification(&domain.Notification{
		Title:   title,
		Message: message,
		Type:    ntype,
		UserID:  userID,
	})
}

func (s *notificationService) GenerateExpiryAlerts(user *domain.User) error {
	today := truncateToDay(s.now())
	weekFromNow := today.AddDate(0, 0, 7)

	contracts, err := s.contractRepo.FindScoped(domain.ScopeFor(user))
	if err != nil {
		return err
	}

	feed, err := s.repo.FindByUser(user.ID)
	if err != nil {
		return err
	}
	existing := make(map[string]bool, len(feed))
	for _, n := range feed {
		existing[n.Title+"\x00"+n.Message] = true
	}

	for i := range contracts {
		contract := &contracts[i]
		if contract.Status == domain.StatusExpired {
			continue
		}

		end := truncateToDay(contract.EndDate)
		switch {
		case end.Before(today):
			// overdue but never flipped: expire it now
			contract.Status = domain.StatusExpired
			if err := s.contractRepo.SaveContract(contract); err != nil {
				return err
			}

			title := "Contract Expired"
			message := fmt.Sprintf("%q expired on %s", contract.Title, end.Format(dateLayout))
			if err := s.createUnlessDuplicate(existing, title, message, domain.NotifDanger, user.ID); err != nil {
				return err
			}

		case !end.After(weekFromNow):
			daysLeft := daysBetween(today, end)
			unit := "days"
			if daysLeft == 1 {
				unit = "day"
			}

			title := "Expiring Soon"
			message := fmt.Sprintf("%q expires in %d %s", contract.Title, daysLeft, unit)
			if err := s.createUnlessDuplicate(existing, title, message, domain.NotifWarning, user.ID); err != nil {
				return err
			}
		}
	}

	return nil
}

func (s *notificationService) createUnlessDuplicate(existing map[string]bool, title, message string, ntype domain.NotificationType, userID uint) error {
	key := title + "\x00" + message
	if existing[key] {
		return nil
	}
	if err := s.CreateNotification(title, message, ntype, userID); err != nil {
		return err
	}
	existing[key] = true
	return nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// daysBetween counts calendar days from one midnight to another. AddDate
// steps whole dates, so a DST transition in between cannot shave a day off
// the count the way duration division would.
func daysBetween(from, to time.Time) int {
	days := 0
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		days++
	}
	return days
}
