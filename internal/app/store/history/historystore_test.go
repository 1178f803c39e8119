package historystore_test

import (
	"errors"
	"testing"

	historystore "github.com/dalemusser/histkeep/internal/app/store/history"
	"github.com/dalemusser/histkeep/internal/domain/models"
	"github.com/dalemusser/histkeep/internal/testutil"
)

const owner = "alice@example.com"

func record(createdAt int64, name string) models.HistoryRecord {
	return models.HistoryRecord{
		CreatedAt:   models.Number(createdAt),
		Name:        name,
		Description: "desc of " + name,
		Text:        "text of " + name,
		UserID:      owner,
	}
}

func TestStore_CreateAssignsID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := historystore.New(db, "history")
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, record(1000, "Trip"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == "" {
		t.Error("expected ID to be assigned")
	}
	if created.CreatedAt != 1000 {
		t.Errorf("CreatedAt: got %v, want 1000", float64(created.CreatedAt))
	}
	if created.UserID != owner {
		t.Errorf("UserID: got %q, want %q", created.UserID, owner)
	}
}

func TestStore_ListRange(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := historystore.New(db, "history")
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for i, ts := range []int64{1000, 2000, 3000} {
		if _, err := store.Create(ctx, record(ts, "rec")); err != nil {
			t.Fatalf("Create #%d failed: %v", i, err)
		}
	}

	// Inclusive bounds, descending order.
	got, err := store.ListRange(ctx, owner, 1000, 2000)
	if err != nil {
		t.Fatalf("ListRange failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0].CreatedAt != 2000 || got[1].CreatedAt != 1000 {
		t.Errorf("expected descending order [2000, 1000], got [%v, %v]",
			float64(got[0].CreatedAt), float64(got[1].CreatedAt))
	}
}

func TestStore_ListRange_ScopedToOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := historystore.New(db, "history")
	ctx, cancel := testutil.TestContext()
	defer cancel()

	mine := record(1000, "mine")
	theirs := record(1500, "theirs")
	theirs.UserID = "bob@example.com"

	if _, err := store.Create(ctx, mine); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := store.Create(ctx, theirs); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := store.ListRange(ctx, owner, 0, 10000)
	if err != nil {
		t.Fatalf("ListRange failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected only the owner's record, got %d", len(got))
	}
	if got[0].Name != "mine" {
		t.Errorf("got record %q, want \"mine\"", got[0].Name)
	}
}

func TestStore_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := historystore.New(db, "history")
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, record(1000, "before"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := store.Update(ctx, owner, created.ID, 1000, "after", "new desc")
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if updated.Name != "after" || updated.Description != "new desc" {
		t.Errorf("name/description not updated: %+v", updated)
	}
	// Only name and description change.
	if updated.CreatedAt != created.CreatedAt {
		t.Error("CreatedAt must not change on update")
	}
	if updated.UserID != created.UserID {
		t.Error("UserID must not change on update")
	}
	if updated.Text != created.Text {
		t.Error("Text must not change on update")
	}
}

func TestStore_Update_MissingKey(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := historystore.New(db, "history")
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, record(1000, "rec"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Wrong createdAt half of the key.
	_, err = store.Update(ctx, owner, created.ID, 9999, "x", "y")
	if !errors.Is(err, historystore.ErrNotFound) {
		t.Errorf("expected ErrNotFound for wrong createdAt, got %v", err)
	}

	// Right key, wrong owner.
	_, err = store.Update(ctx, "bob@example.com", created.ID, 1000, "x", "y")
	if !errors.Is(err, historystore.ErrNotFound) {
		t.Errorf("expected ErrNotFound for wrong owner, got %v", err)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := historystore.New(db, "history")
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, record(1000, "rec"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.Delete(ctx, owner, created.ID, 1000); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	got, err := store.AllForUser(ctx, owner)
	if err != nil {
		t.Fatalf("AllForUser failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty set after delete, got %d records", len(got))
	}

	// Idempotent: deleting again succeeds.
	if err := store.Delete(ctx, owner, created.ID, 1000); err != nil {
		t.Errorf("second Delete should succeed silently, got %v", err)
	}
}
