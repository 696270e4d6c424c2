package services

import (
	"errors"
	"testing"

	"github.com/campus-connect/campus-backend/internal/models"
	"github.com/campus-connect/campus-backend/internal/testutil"
)

func TestCreateAnnouncementRequiresAdmin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewAnnouncementService(db)

	buyer := testutil.CreateTestUser(t, db, "Bea", "bea@campus.edu", models.RoleBuyer)

	if _, err := svc.CreateAnnouncement(buyer.ID, models.CreateAnnouncementRequest{
		Title: "Test", Body: "Body",
	}); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden for non-admin, got %v", err)
	}
}

func TestAnnouncementsPinnedFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewAnnouncementService(db)

	admin := testutil.CreateTestUser(t, db, "Ada", "ada@campus.edu", models.RoleAdmin)

	if _, err := svc.CreateAnnouncement(admin.ID, models.CreateAnnouncementRequest{
		Title: "Regular Notice", Body: "Body",
	}); err != nil {
		t.Fatalf("CreateAnnouncement failed: %v", err)
	}
	pinned, err := svc.CreateAnnouncement(admin.ID, models.CreateAnnouncementRequest{
		Title: "Important", Body: "Body", IsPinned: true,
	})
	if err != nil {
		t.Fatalf("CreateAnnouncement failed: %v", err)
	}
	if pinned.Priority != models.PriorityNormal {
		t.Errorf("default priority = %q, want normal", pinned.Priority)
	}

	announcements, _, err := svc.ListAnnouncements(1, 10)
	if err != nil {
		t.Fatalf("ListAnnouncements failed: %v", err)
	}
	if len(announcements) != 2 {
		t.Fatalf("got %d announcements, want 2", len(announcements))
	}
	if announcements[0].Title != "Important" {
		t.Errorf("first announcement = %q, want the pinned one", announcements[0].Title)
	}
}

func TestDeleteAnnouncementDeactivates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewAnnouncementService(db)

	admin := testutil.CreateTestUser(t, db, "Ada", "ada@campus.edu", models.RoleAdmin)
	buyer := testutil.CreateTestUser(t, db, "Bea", "bea@campus.edu", models.RoleBuyer)

	announcement, err := svc.CreateAnnouncement(admin.ID, models.CreateAnnouncementRequest{
		Title: "Old News", Body: "Body",
	})
	if err != nil {
		t.Fatalf("CreateAnnouncement failed: %v", err)
	}

	if err := svc.DeleteAnnouncement(announcement.ID, buyer.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden for non-admin delete, got %v", err)
	}
	if err := svc.DeleteAnnouncement(announcement.ID, admin.ID); err != nil {
		t.Fatalf("DeleteAnnouncement failed: %v", err)
	}
	if err := svc.DeleteAnnouncement(announcement.ID, admin.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound deleting twice, got %v", err)
	}

	announcements, _, err := svc.ListAnnouncements(1, 10)
	if err != nil {
		t.Fatalf("ListAnnouncements failed: %v", err)
	}
	if len(announcements) != 0 {
		t.Errorf("active announcements = %d, want 0", len(announcements))
	}

	// The row itself survives as an audit trail.
	var count int64
	db.Model(&models.Announcement{}).Count(&count)
	if count != 1 {
		t.Errorf("announcement rows = %d, want 1", count)
	}
}
