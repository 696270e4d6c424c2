package services

import (
	"errors"
	"math"
	"testing"

	"github.com/campus-connect/campus-backend/internal/models"
	"github.com/campus-connect/campus-backend/internal/testutil"
)

func TestMarkSoldCreatesTransaction(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewTransactionService(db, nil)

	seller := testutil.CreateTestUser(t, db, "Sam", "sam@campus.edu", models.RoleSeller)
	buyer := testutil.CreateTestUser(t, db, "Bea", "bea@campus.edu", models.RoleBuyer)
	listing := testutil.CreateTestListing(t, db, seller, "Desk Lamp", 15)

	tx, err := svc.CreateTransaction(listing.ID, seller.ID, buyer.ID)
	if err != nil {
		t.Fatalf("CreateTransaction failed: %v", err)
	}
	if tx.Status != models.TransactionPending {
		t.Errorf("transaction status = %q, want pending", tx.Status)
	}
	if tx.Price != listing.Price {
		t.Errorf("transaction price = %v, want %v", tx.Price, listing.Price)
	}

	var fresh models.Listing
	if err := db.First(&fresh, listing.ID).Error; err != nil {
		t.Fatalf("failed to reload listing: %v", err)
	}
	if fresh.Status != models.ListingSold {
		t.Errorf("listing status = %q, want sold", fresh.Status)
	}

	// A listing can only be sold once.
	if _, err := svc.CreateTransaction(listing.ID, seller.ID, buyer.ID); !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict on second sale, got %v", err)
	}
}

func TestCreateTransactionValidation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewTransactionService(db, nil)

	seller := testutil.CreateTestUser(t, db, "Sam", "sam@campus.edu", models.RoleSeller)
	buyer := testutil.CreateTestUser(t, db, "Bea", "bea@campus.edu", models.RoleBuyer)
	listing := testutil.CreateTestListing(t, db, seller, "Desk Lamp", 15)

	if _, err := svc.CreateTransaction(listing.ID, seller.ID, seller.ID); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for self-purchase, got %v", err)
	}
	if _, err := svc.CreateTransaction(listing.ID, buyer.ID, seller.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden for non-seller, got %v", err)
	}
	if _, err := svc.CreateTransaction(9999, seller.ID, buyer.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown listing, got %v", err)
	}
	if _, err := svc.CreateTransaction(listing.ID, seller.ID, 9999); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown buyer, got %v", err)
	}
}

func TestRateTransactionCompletesWhenBothRated(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewTransactionService(db, nil)

	seller := testutil.CreateTestUser(t, db, "Sam", "sam@campus.edu", models.RoleSeller)
	buyer := testutil.CreateTestUser(t, db, "Bea", "bea@campus.edu", models.RoleBuyer)
	listing := testutil.CreateTestListing(t, db, seller, "Desk Lamp", 15)

	tx, err := svc.CreateTransaction(listing.ID, seller.ID, buyer.ID)
	if err != nil {
		t.Fatalf("CreateTransaction failed: %v", err)
	}

	// Buyer rates first: transaction stays pending.
	rated, err := svc.RateTransaction(tx.ID, buyer.ID, models.RateTransactionRequest{Rating: 5, Review: "great seller"})
	if err != nil {
		t.Fatalf("buyer RateTransaction failed: %v", err)
	}
	if rated.Status != models.TransactionPending {
		t.Errorf("status after one rating = %q, want pending", rated.Status)
	}
	if rated.CompletedAt != nil {
		t.Error("expected CompletedAt unset with only one rating")
	}

	// Seller rates: transaction completes.
	rated, err = svc.RateTransaction(tx.ID, seller.ID, models.RateTransactionRequest{Rating: 4})
	if err != nil {
		t.Fatalf("seller RateTransaction failed: %v", err)
	}
	if rated.Status != models.TransactionCompleted {
		t.Errorf("status after both ratings = %q, want completed", rated.Status)
	}
	if rated.CompletedAt == nil {
		t.Error("expected CompletedAt set once completed")
	}

	// Buyer's rating lands on the seller's aggregate and vice versa.
	var freshSeller, freshBuyer models.User
	db.First(&freshSeller, seller.ID)
	db.First(&freshBuyer, buyer.ID)
	if freshSeller.Rating != 5 || freshSeller.TotalRatings != 1 {
		t.Errorf("seller aggregate = (%v, %d), want (5, 1)", freshSeller.Rating, freshSeller.TotalRatings)
	}
	if freshBuyer.Rating != 4 || freshBuyer.TotalRatings != 1 {
		t.Errorf("buyer aggregate = (%v, %d), want (4, 1)", freshBuyer.Rating, freshBuyer.TotalRatings)
	}
}

func TestRateTransactionAccessControl(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewTransactionService(db, nil)

	seller := testutil.CreateTestUser(t, db, "Sam", "sam@campus.edu", models.RoleSeller)
	buyer := testutil.CreateTestUser(t, db, "Bea", "bea@campus.edu", models.RoleBuyer)
	outsider := testutil.CreateTestUser(t, db, "Olga", "olga@campus.edu", models.RoleBuyer)
	listing := testutil.CreateTestListing(t, db, seller, "Desk Lamp", 15)

	tx, err := svc.CreateTransaction(listing.ID, seller.ID, buyer.ID)
	if err != nil {
		t.Fatalf("CreateTransaction failed: %v", err)
	}

	if _, err := svc.RateTransaction(tx.ID, outsider.ID, models.RateTransactionRequest{Rating: 3}); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden for outsider, got %v", err)
	}
	if _, err := svc.RateTransaction(tx.ID, buyer.ID, models.RateTransactionRequest{Rating: 9}); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for out-of-range rating, got %v", err)
	}

	if _, err := svc.RateTransaction(tx.ID, buyer.ID, models.RateTransactionRequest{Rating: 5}); err != nil {
		t.Fatalf("RateTransaction failed: %v", err)
	}
	// Each side rates at most once.
	if _, err := svc.RateTransaction(tx.ID, buyer.ID, models.RateTransactionRequest{Rating: 1}); !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict on double rating, got %v", err)
	}
}

func TestRatingRunningMean(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewTransactionService(db, nil)

	seller := testutil.CreateTestUser(t, db, "Sam", "sam@campus.edu", models.RoleSeller)

	ratings := []int{5, 3, 4, 2}
	for i, rating := range ratings {
		buyer := testutil.CreateTestUser(t, db, "Buyer", "buyer"+string(rune('a'+i))+"@campus.edu", models.RoleBuyer)
		listing := testutil.CreateTestListing(t, db, seller, "Item", 10)

		tx, err := svc.CreateTransaction(listing.ID, seller.ID, buyer.ID)
		if err != nil {
			t.Fatalf("CreateTransaction failed: %v", err)
		}
		if _, err := svc.RateTransaction(tx.ID, buyer.ID, models.RateTransactionRequest{Rating: rating}); err != nil {
			t.Fatalf("RateTransaction failed: %v", err)
		}
	}

	var fresh models.User
	db.First(&fresh, seller.ID)
	want := float64(5+3+4+2) / 4
	if math.Abs(fresh.Rating-want) > 1e-9 {
		t.Errorf("seller rating = %v, want %v", fresh.Rating, want)
	}
	if fresh.TotalRatings != len(ratings) {
		t.Errorf("total ratings = %d, want %d", fresh.TotalRatings, len(ratings))
	}
}

func TestListTransactions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewTransactionService(db, nil)

	seller := testutil.CreateTestUser(t, db, "Sam", "sam@campus.edu", models.RoleSeller)
	buyer := testutil.CreateTestUser(t, db, "Bea", "bea@campus.edu", models.RoleBuyer)
	outsider := testutil.CreateTestUser(t, db, "Olga", "olga@campus.edu", models.RoleBuyer)
	listing := testutil.CreateTestListing(t, db, seller, "Desk Lamp", 15)

	tx, err := svc.CreateTransaction(listing.ID, seller.ID, buyer.ID)
	if err != nil {
		t.Fatalf("CreateTransaction failed: %v", err)
	}

	for _, userID := range []uint{seller.ID, buyer.ID} {
		list, _, err := svc.ListTransactions(userID, 1, 10)
		if err != nil {
			t.Fatalf("ListTransactions failed: %v", err)
		}
		if len(list) != 1 {
			t.Errorf("user %d sees %d transactions, want 1", userID, len(list))
		}
	}

	list, _, err := svc.ListTransactions(outsider.ID, 1, 10)
	if err != nil {
		t.Fatalf("ListTransactions failed: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("outsider sees %d transactions, want 0", len(list))
	}

	if _, err := svc.GetTransaction(tx.ID, outsider.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden for outsider GetTransaction, got %v", err)
	}
}
