package store

import (
	"context"
	"errors"
	"os"
	"testing"

	"cloud.google.com/go/firestore"

	"github.com/GregMSThompson/serrano-dashboard/internal/errs"
)

func TestLayoutStoreWithEmulator(t *testing.T) {
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}

	ctx := context.Background()
	client, err := firestore.NewClient(ctx, "test-project")
	if err != nil {
		t.Fatalf("firestore client error: %v", err)
	}
	defer client.Close()

	s := NewLayoutStore(client).ForUser("layout-user")
	key := "serrano.dashboard.layout.v1"

	if _, err := s.Read(ctx, "missing.key"); err != nil {
		var nf *errs.NotFoundError
		if !errors.As(err, &nf) {
			t.Fatalf("expected NotFoundError, got %v", err)
		}
	} else {
		t.Fatal("expected error for missing layout")
	}

	payload := []byte(`{"version":1,"scope":"market","enabled":[],"order":[],"sizes":{}}`)
	if err := s.Write(ctx, key, payload); err != nil {
		t.Fatalf("write error: %v", err)
	}
	got, err := s.Read(ctx, key)
	if err != nil {
		t.Fatalf("read error: %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("unexpected payload %s", got)
	}
}
