package services

import (
	"errors"
	"testing"

	"github.com/campus-connect/campus-backend/internal/models"
	"github.com/campus-connect/campus-backend/internal/testutil"
)

func TestRegisterAndLogin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewAuthService(db, "test-secret", nil, "http://localhost:8080")

	resp, err := svc.Register(RegisterRequest{
		Name:     "Alice",
		Email:    "Alice@Campus.edu",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if resp.Tokens.AccessToken == "" || resp.Tokens.RefreshToken == "" {
		t.Error("expected both tokens to be issued on registration")
	}
	if resp.User.Email != "alice@campus.edu" {
		t.Errorf("expected email to be lowercased, got %q", resp.User.Email)
	}
	if resp.User.Role != models.RoleBuyer {
		t.Errorf("expected default role buyer, got %q", resp.User.Role)
	}

	loginResp, err := svc.Login(LoginRequest{Email: "ALICE@campus.edu", Password: "password123"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if loginResp.User.ID != resp.User.ID {
		t.Errorf("login returned user %d, want %d", loginResp.User.ID, resp.User.ID)
	}
}

func TestRegisterValidation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewAuthService(db, "test-secret", nil, "http://localhost:8080")

	tests := []struct {
		name string
		req  RegisterRequest
	}{
		{"invalid email", RegisterRequest{Name: "X", Email: "not-an-email", Password: "password123"}},
		{"short password", RegisterRequest{Name: "X", Email: "x@campus.edu", Password: "short"}},
		{"unknown role", RegisterRequest{Name: "X", Email: "x@campus.edu", Password: "password123", Role: "superuser"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Register(tt.req); !errors.Is(err, ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewAuthService(db, "test-secret", nil, "http://localhost:8080")

	req := RegisterRequest{Name: "Alice", Email: "alice@campus.edu", Password: "password123"}
	if _, err := svc.Register(req); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}

	if _, err := svc.Register(req); !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict for duplicate email, got %v", err)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewAuthService(db, "test-secret", nil, "http://localhost:8080")

	testutil.CreateTestUser(t, db, "Alice", "alice@campus.edu", models.RoleBuyer)

	// Unknown email and wrong password must be indistinguishable.
	if _, err := svc.Login(LoginRequest{Email: "nobody@campus.edu", Password: "password123"}); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated for unknown email, got %v", err)
	}
	if _, err := svc.Login(LoginRequest{Email: "alice@campus.edu", Password: "wrongpassword"}); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated for wrong password, got %v", err)
	}
}

func TestLoginBannedUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewAuthService(db, "test-secret", nil, "http://localhost:8080")

	user := testutil.CreateTestUser(t, db, "Alice", "alice@campus.edu", models.RoleBuyer)
	db.Model(user).Update("is_banned", true)

	if _, err := svc.Login(LoginRequest{Email: "alice@campus.edu", Password: "password123"}); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden for banned user, got %v", err)
	}
}

func TestSellerRequiresApproval(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewAuthService(db, "test-secret", nil, "http://localhost:8080")

	resp, err := svc.Register(RegisterRequest{
		Name:     "Bob",
		Email:    "bob@campus.edu",
		Password: "password123",
		Role:     models.RoleSeller,
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if resp.User.IsApproved {
		t.Error("expected freshly registered seller to be unapproved")
	}

	if _, err := svc.Login(LoginRequest{Email: "bob@campus.edu", Password: "password123"}); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden before approval, got %v", err)
	}

	adminSvc := NewAdminService(db, NewNotificationService(db))
	if _, err := adminSvc.ApproveSeller(resp.User.ID); err != nil {
		t.Fatalf("ApproveSeller failed: %v", err)
	}

	if _, err := svc.Login(LoginRequest{Email: "bob@campus.edu", Password: "password123"}); err != nil {
		t.Errorf("Login after approval failed: %v", err)
	}
}

func TestRefreshTokenRotation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewAuthService(db, "test-secret", nil, "http://localhost:8080")

	resp, err := svc.Register(RegisterRequest{Name: "Alice", Email: "alice@campus.edu", Password: "password123"})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	refreshed, err := svc.RefreshToken(RefreshRequest{RefreshToken: resp.Tokens.RefreshToken})
	if err != nil {
		t.Fatalf("RefreshToken failed: %v", err)
	}
	if refreshed.Tokens.RefreshToken == resp.Tokens.RefreshToken {
		t.Error("expected a new refresh token after rotation")
	}

	// The old refresh token is revoked and cannot be replayed.
	if _, err := svc.RefreshToken(RefreshRequest{RefreshToken: resp.Tokens.RefreshToken}); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated replaying rotated token, got %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewAuthService(db, "test-secret", nil, "http://localhost:8080")

	user := testutil.CreateTestUser(t, db, "Alice", "alice@campus.edu", models.RoleBuyer)

	err := svc.ChangePassword(user.ID, ChangePasswordRequest{
		CurrentPassword: "wrongpassword",
		NewPassword:     "newpassword123",
	})
	if !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated for wrong current password, got %v", err)
	}

	err = svc.ChangePassword(user.ID, ChangePasswordRequest{
		CurrentPassword: "password123",
		NewPassword:     "newpassword123",
	})
	if err != nil {
		t.Fatalf("ChangePassword failed: %v", err)
	}

	if _, err := svc.Login(LoginRequest{Email: "alice@campus.edu", Password: "newpassword123"}); err != nil {
		t.Errorf("Login with new password failed: %v", err)
	}
}

func TestUpdateProfileEmailConflict(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewAuthService(db, "test-secret", nil, "http://localhost:8080")

	testutil.CreateTestUser(t, db, "Alice", "alice@campus.edu", models.RoleBuyer)
	bob := testutil.CreateTestUser(t, db, "Bob", "bob@campus.edu", models.RoleBuyer)

	if _, err := svc.UpdateProfile(bob.ID, UpdateProfileRequest{Email: "alice@campus.edu"}); !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict taking another user's email, got %v", err)
	}

	updated, err := svc.UpdateProfile(bob.ID, UpdateProfileRequest{Name: "Robert", Email: "bob@campus.edu"})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if updated.Name != "Robert" {
		t.Errorf("expected name Robert, got %q", updated.Name)
	}
}
