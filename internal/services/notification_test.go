package services

import (
	"errors"
	"testing"

	"github.com/campus-connect/campus-backend/internal/models"
	"github.com/campus-connect/campus-backend/internal/testutil"
)

func TestListNotifications(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewNotificationService(db)

	alice := testutil.CreateTestUser(t, db, "Alice", "alice@campus.edu", models.RoleBuyer)
	bob := testutil.CreateTestUser(t, db, "Bob", "bob@campus.edu", models.RoleBuyer)

	for i := 0; i < 3; i++ {
		if err := svc.Notify(alice.ID, models.NotificationSystem, "Heads up", "maintenance tonight", ""); err != nil {
			t.Fatalf("Notify failed: %v", err)
		}
	}
	if err := svc.Notify(bob.ID, models.NotificationSystem, "Heads up", "maintenance tonight", ""); err != nil {
		t.Fatalf("Notify failed: %v", err)
	}

	page, err := svc.ListNotifications(alice.ID, false, 1, 10)
	if err != nil {
		t.Fatalf("ListNotifications failed: %v", err)
	}
	if len(page.Notifications) != 3 {
		t.Errorf("alice sees %d notifications, want 3", len(page.Notifications))
	}
	if page.UnreadCount != 3 {
		t.Errorf("unread count = %d, want 3", page.UnreadCount)
	}
	for _, n := range page.Notifications {
		if n.Priority != models.PriorityNormal {
			t.Errorf("expected default priority normal, got %q", n.Priority)
		}
	}
}

func TestMarkReadIsOwnerScoped(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewNotificationService(db)

	alice := testutil.CreateTestUser(t, db, "Alice", "alice@campus.edu", models.RoleBuyer)
	bob := testutil.CreateTestUser(t, db, "Bob", "bob@campus.edu", models.RoleBuyer)

	if err := svc.Notify(alice.ID, models.NotificationSystem, "Heads up", "msg", ""); err != nil {
		t.Fatalf("Notify failed: %v", err)
	}

	var notification models.Notification
	if err := db.Where("user_id = ?", alice.ID).First(&notification).Error; err != nil {
		t.Fatalf("failed to load notification: %v", err)
	}

	// Someone else's id is a silent no-op, not an error.
	if err := svc.MarkRead(notification.ID, bob.ID); err != nil {
		t.Fatalf("MarkRead by non-owner returned error: %v", err)
	}
	db.First(&notification, notification.ID)
	if notification.IsRead {
		t.Error("non-owner MarkRead must not change the row")
	}

	if err := svc.MarkRead(notification.ID, alice.ID); err != nil {
		t.Fatalf("MarkRead failed: %v", err)
	}
	db.First(&notification, notification.ID)
	if !notification.IsRead || notification.ReadAt == nil {
		t.Error("expected notification read with ReadAt set")
	}
}

func TestMarkAllRead(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewNotificationService(db)

	alice := testutil.CreateTestUser(t, db, "Alice", "alice@campus.edu", models.RoleBuyer)

	for i := 0; i < 4; i++ {
		if err := svc.Notify(alice.ID, models.NotificationSystem, "Heads up", "msg", ""); err != nil {
			t.Fatalf("Notify failed: %v", err)
		}
	}

	if err := svc.MarkAllRead(alice.ID); err != nil {
		t.Fatalf("MarkAllRead failed: %v", err)
	}

	page, err := svc.ListNotifications(alice.ID, true, 1, 10)
	if err != nil {
		t.Fatalf("ListNotifications failed: %v", err)
	}
	if len(page.Notifications) != 0 || page.UnreadCount != 0 {
		t.Errorf("expected everything read, got %d unread", page.UnreadCount)
	}
}

func TestDeleteNotification(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewNotificationService(db)

	alice := testutil.CreateTestUser(t, db, "Alice", "alice@campus.edu", models.RoleBuyer)
	bob := testutil.CreateTestUser(t, db, "Bob", "bob@campus.edu", models.RoleBuyer)

	if err := svc.Notify(alice.ID, models.NotificationSystem, "Heads up", "msg", ""); err != nil {
		t.Fatalf("Notify failed: %v", err)
	}

	var notification models.Notification
	if err := db.Where("user_id = ?", alice.ID).First(&notification).Error; err != nil {
		t.Fatalf("failed to load notification: %v", err)
	}

	if err := svc.DeleteNotification(notification.ID, bob.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound deleting someone else's notification, got %v", err)
	}
	if err := svc.DeleteNotification(notification.ID, alice.ID); err != nil {
		t.Fatalf("DeleteNotification failed: %v", err)
	}
	if err := svc.DeleteNotification(notification.ID, alice.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on double delete, got %v", err)
	}
}
