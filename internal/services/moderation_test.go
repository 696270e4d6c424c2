package services

import (
	"errors"
	"testing"

	"github.com/campus-connect/campus-backend/internal/models"
	"github.com/campus-connect/campus-backend/internal/testutil"
)

func TestFlagContentValidation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewModerationService(db, nil)

	reporter := testutil.CreateTestUser(t, db, "Rita", "rita@campus.edu", models.RoleBuyer)

	if _, err := svc.FlagContent(reporter.ID, models.FlagContentRequest{
		ContentType: "comment",
		ContentID:   1,
		Reason:      "spam",
	}); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for unknown content type, got %v", err)
	}

	if _, err := svc.FlagContent(reporter.ID, models.FlagContentRequest{
		ContentType: models.FlaggedListing,
		ContentID:   9999,
		Reason:      "spam",
	}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing content, got %v", err)
	}
}

func TestResolveFlagRequiresAdmin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewModerationService(db, nil)

	reporter := testutil.CreateTestUser(t, db, "Rita", "rita@campus.edu", models.RoleBuyer)
	seller := testutil.CreateTestUser(t, db, "Sam", "sam@campus.edu", models.RoleSeller)
	listing := testutil.CreateTestListing(t, db, seller, "Bike", 80)

	flag, err := svc.FlagContent(reporter.ID, models.FlagContentRequest{
		ContentType: models.FlaggedListing,
		ContentID:   listing.ID,
		Reason:      "prohibited item",
	})
	if err != nil {
		t.Fatalf("FlagContent failed: %v", err)
	}

	if _, err := svc.ResolveFlag(flag.ID, reporter.ID, FlagActionApproved); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden for non-admin, got %v", err)
	}
}

func TestResolveFlagWorkflow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	notifications := NewNotificationService(db)
	svc := NewModerationService(db, notifications)

	admin := testutil.CreateTestUser(t, db, "Ada", "ada@campus.edu", models.RoleAdmin)
	reporter := testutil.CreateTestUser(t, db, "Rita", "rita@campus.edu", models.RoleBuyer)
	seller := testutil.CreateTestUser(t, db, "Sam", "sam@campus.edu", models.RoleSeller)
	listing := testutil.CreateTestListing(t, db, seller, "Bike", 80)

	flag, err := svc.FlagContent(reporter.ID, models.FlagContentRequest{
		ContentType: models.FlaggedListing,
		ContentID:   listing.ID,
		Reason:      "prohibited item",
	})
	if err != nil {
		t.Fatalf("FlagContent failed: %v", err)
	}
	if flag.Status != models.FlagPending {
		t.Errorf("fresh flag status = %q, want pending", flag.Status)
	}

	flag, err = svc.ResolveFlag(flag.ID, admin.ID, FlagActionReviewing)
	if err != nil {
		t.Fatalf("ResolveFlag reviewing failed: %v", err)
	}
	if flag.Status != models.FlagUnderReview {
		t.Errorf("status = %q, want under_review", flag.Status)
	}
	// Reviewing twice does not restart the workflow.
	if _, err := svc.ResolveFlag(flag.ID, admin.ID, FlagActionReviewing); !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict re-reviewing, got %v", err)
	}

	flag, err = svc.ResolveFlag(flag.ID, admin.ID, FlagActionApproved)
	if err != nil {
		t.Fatalf("ResolveFlag approved failed: %v", err)
	}
	if flag.Status != models.FlagResolved {
		t.Errorf("status = %q, want resolved", flag.Status)
	}
	if flag.ResolvedBy == nil || *flag.ResolvedBy != admin.ID || flag.ResolvedAt == nil {
		t.Error("expected resolver identity and timestamp recorded")
	}

	// Closed flags never reopen.
	if _, err := svc.ResolveFlag(flag.ID, admin.ID, FlagActionRemoved); !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict on closed flag, got %v", err)
	}

	// Approving leaves the content alone.
	var fresh models.Listing
	db.First(&fresh, listing.ID)
	if fresh.Status != models.ListingActive {
		t.Errorf("listing status = %q, want active after approve", fresh.Status)
	}

	// The reporter hears back.
	var notification models.Notification
	if err := db.Where("user_id = ? AND type = ?", reporter.ID, models.NotificationFlagResolved).
		First(&notification).Error; err != nil {
		t.Errorf("expected flag_resolved notification for reporter: %v", err)
	}
}

func TestResolveFlagRemovesContent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewModerationService(db, nil)

	admin := testutil.CreateTestUser(t, db, "Ada", "ada@campus.edu", models.RoleAdmin)
	reporter := testutil.CreateTestUser(t, db, "Rita", "rita@campus.edu", models.RoleBuyer)
	seller := testutil.CreateTestUser(t, db, "Sam", "sam@campus.edu", models.RoleSeller)
	listing := testutil.CreateTestListing(t, db, seller, "Bike", 80)

	flag, err := svc.FlagContent(reporter.ID, models.FlagContentRequest{
		ContentType: models.FlaggedListing,
		ContentID:   listing.ID,
		Reason:      "prohibited item",
	})
	if err != nil {
		t.Fatalf("FlagContent failed: %v", err)
	}

	flag, err = svc.ResolveFlag(flag.ID, admin.ID, FlagActionRemoved)
	if err != nil {
		t.Fatalf("ResolveFlag removed failed: %v", err)
	}
	if flag.Status != models.FlagDismissed {
		t.Errorf("status = %q, want dismissed", flag.Status)
	}

	var fresh models.Listing
	db.First(&fresh, listing.ID)
	if fresh.Status != models.ListingRemoved {
		t.Errorf("listing status = %q, want removed", fresh.Status)
	}
}

func TestListFlagsByStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewModerationService(db, nil)

	admin := testutil.CreateTestUser(t, db, "Ada", "ada@campus.edu", models.RoleAdmin)
	reporter := testutil.CreateTestUser(t, db, "Rita", "rita@campus.edu", models.RoleBuyer)
	seller := testutil.CreateTestUser(t, db, "Sam", "sam@campus.edu", models.RoleSeller)

	first := testutil.CreateTestListing(t, db, seller, "Bike", 80)
	second := testutil.CreateTestListing(t, db, seller, "Lamp", 10)

	flagOne, err := svc.FlagContent(reporter.ID, models.FlagContentRequest{
		ContentType: models.FlaggedListing, ContentID: first.ID, Reason: "spam",
	})
	if err != nil {
		t.Fatalf("FlagContent failed: %v", err)
	}
	if _, err := svc.FlagContent(reporter.ID, models.FlagContentRequest{
		ContentType: models.FlaggedListing, ContentID: second.ID, Reason: "spam",
	}); err != nil {
		t.Fatalf("FlagContent failed: %v", err)
	}

	if _, err := svc.ResolveFlag(flagOne.ID, admin.ID, FlagActionApproved); err != nil {
		t.Fatalf("ResolveFlag failed: %v", err)
	}

	pending, _, err := svc.ListFlags(string(models.FlagPending), 1, 10)
	if err != nil {
		t.Fatalf("ListFlags failed: %v", err)
	}
	if len(pending) != 1 {
		t.Errorf("pending flags = %d, want 1", len(pending))
	}

	all, _, err := svc.ListFlags("", 1, 10)
	if err != nil {
		t.Fatalf("ListFlags failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("all flags = %d, want 2", len(all))
	}
}
