package services

import (
	"testing"
	"time"

	"contracthub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNotificationService() (*notificationService, *fakeNotificationRepo, *fakeContractRepo) {
	notifications := newFakeNotificationRepo()
	contracts := newFakeContractRepo()
	svc := NewNotificationService(notifications, contracts).(*notificationService)
	return svc, notifications, contracts
}

func TestGenerateExpiryAlertsOverdue(t *testing.T) {
	svc, notifications, contracts := newTestNotificationService()

	today := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return today.Add(10 * time.Hour) }

	c := mustCreate(t, contracts, domain.Contract{
		Title:   "Cleaning",
		Status:  domain.StatusRunning,
		EndDate: today.AddDate(0, 0, -3),
		UserID:  1,
	})

	require.NoError(t, svc.GenerateExpiryAlerts(regularUser(1)))

	got, err := contracts.FindContractByID(c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusExpired, got.Status)

	feed, err := notifications.FindByUser(1)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, "Contract Expired", feed[0].Title)
	assert.Equal(t, `"Cleaning" expired on 2026-03-11`, feed[0].Message)
	assert.Equal(t, domain.NotifDanger, feed[0].Type)
	assert.False(t, feed[0].Read)
}

func TestGenerateExpiryAlertsNoDuplicates(t *testing.T) {
	svc, notifications, contracts := newTestNotificationService()

	today := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return today }

	mustCreate(t, contracts, domain.Contract{
		Title:   "Hosting",
		Status:  domain.StatusSigned,
		EndDate: today.AddDate(0, 0, 3),
		UserID:  1,
	})

	require.NoError(t, svc.GenerateExpiryAlerts(regularUser(1)))
	require.NoError(t, svc.GenerateExpiryAlerts(regularUser(1)))

	feed, err := notifications.FindByUser(1)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, "Expiring Soon", feed[0].Title)
	assert.Equal(t, `"Hosting" expires in 3 days`, feed[0].Message)
	assert.Equal(t, domain.NotifWarning, feed[0].Type)
}

func TestGenerateExpiryAlertsCountsCalendarDaysAcrossDST(t *testing.T) {
	svc, notifications, contracts := newTestNotificationService()

	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// spring forward on 2026-03-08: two calendar days, 47 wall-clock hours
	today := time.Date(2026, 3, 7, 0, 0, 0, 0, loc)
	svc.now = func() time.Time { return today }

	mustCreate(t, contracts, domain.Contract{
		Title:   "Billing",
		Status:  domain.StatusRunning,
		EndDate: time.Date(2026, 3, 9, 0, 0, 0, 0, loc),
		UserID:  1,
	})

	require.NoError(t, svc.GenerateExpiryAlerts(regularUser(1)))

	feed, err := notifications.FindByUser(1)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, `"Billing" expires in 2 days`, feed[0].Message)
}

func TestGenerateExpiryAlertsSingularDay(t *testing.T) {
	svc, notifications, contracts := newTestNotificationService()

	today := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return today }

	mustCreate(t, contracts, domain.Contract{
		Title:   "Support",
		Status:  domain.StatusRunning,
		EndDate: today.AddDate(0, 0, 1),
		UserID:  1,
	})

	require.NoError(t, svc.GenerateExpiryAlerts(regularUser(1)))

	feed, err := notifications.FindByUser(1)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, `"Support" expires in 1 day`, feed[0].Message)
}

func TestGenerateExpiryAlertsIgnoresDistantAndExpired(t *testing.T) {
	svc, notifications, contracts := newTestNotificationService()

	today := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return today }

	mustCreate(t, contracts, domain.Contract{
		Title:   "Distant",
		Status:  domain.StatusRunning,
		EndDate: today.AddDate(0, 0, 8),
		UserID:  1,
	})
	mustCreate(t, contracts, domain.Contract{
		Title:   "Already Expired",
		Status:  domain.StatusExpired,
		EndDate: today.AddDate(0, 0, -30),
		UserID:  1,
	})

	require.NoError(t, svc.GenerateExpiryAlerts(regularUser(1)))

	feed, err := notifications.FindByUser(1)
	require.NoError(t, err)
	assert.Empty(t, feed)
}

func TestGenerateExpiryAlertsScopedToViewer(t *testing.T) {
	svc, notifications, contracts := newTestNotificationService()

	today := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return today }

	mustCreate(t, contracts, domain.Contract{
		Title:   "Someone Else's",
		Status:  domain.StatusRunning,
		EndDate: today.AddDate(0, 0, 2),
		UserID:  2,
	})

	require.NoError(t, svc.GenerateExpiryAlerts(regularUser(1)))

	feed, err := notifications.FindByUser(1)
	require.NoError(t, err)
	assert.Empty(t, feed)
}

func TestMarkAsRead(t *testing.T) {
	svc, notifications, _ := newTestNotificationService()

	require.NoError(t, svc.CreateNotification("Hello", "world", domain.NotifInfo, 1))
	feed, err := notifications.FindByUser(1)
	require.NoError(t, err)
	require.Len(t, feed, 1)

	require.NoError(t, svc.MarkAsRead(feed[0].ID, regularUser(1)))
	count, err := svc.UnreadCount(regularUser(1))
	require.NoError(t, err)
	assert.Zero(t, count)

	// repeating on a gone or foreign notification is a quiet no-op
	assert.NoError(t, svc.MarkAsRead(999, regularUser(1)))
	assert.NoError(t, svc.MarkAsRead(feed[0].ID, regularUser(2)))
}

func TestMarkAllAsRead(t *testing.T) {
	svc, _, _ := newTestNotificationService()

	require.NoError(t, svc.CreateNotification("A", "1", domain.NotifInfo, 1))
	require.NoError(t, svc.CreateNotification("B", "2", domain.NotifWarning, 1))
	require.NoError(t, svc.CreateNotification("C", "3", domain.NotifInfo, 2))

	require.NoError(t, svc.MarkAllAsRead(regularUser(1)))

	count, err := svc.UnreadCount(regularUser(1))
	require.NoError(t, err)
	assert.Zero(t, count)

	other, err := svc.UnreadCount(regularUser(2))
	require.NoError(t, err)
	assert.Equal(t, int64(1), other)
}

func TestDeleteNotificationOwnership(t *testing.T) {
	svc, notifications, _ := newTestNotificationService()

	require.NoError(t, svc.CreateNotification("Mine", "msg", domain.NotifInfo, 1))
	feed, err := notifications.FindByUser(1)
	require.NoError(t, err)
	require.Len(t, feed, 1)

	// someone else's delete is ignored
	require.NoError(t, svc.DeleteNotification(feed[0].ID, regularUser(2)))
	feed, err = notifications.FindByUser(1)
	require.NoError(t, err)
	require.Len(t, feed, 1)

	require.NoError(t, svc.DeleteNotification(feed[0].ID, regularUser(1)))
	feed, err = notifications.FindByUser(1)
	require.NoError(t, err)
	assert.Empty(t, feed)
}
