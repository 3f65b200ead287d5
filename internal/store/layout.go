package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/serrano-dashboard/internal/errs"
)

// layoutDoc holds the versioned layout JSON exactly as the client persists it.
type layoutDoc struct {
	Payload   string    `firestore:"payload"`
	UpdatedAt time.Time `firestore:"updatedAt"`
}

type layoutStore struct {
	client *firestore.Client
}

func NewLayoutStore(client *firestore.Client) *layoutStore {
	return &layoutStore{client: client}
}

func (s *layoutStore) doc(uid, key string) *firestore.DocumentRef {
	return s.client.Collection("users").Doc(uid).Collection("dashboard").Doc(key)
}

// ForUser binds the store to one user's documents.
func (s *layoutStore) ForUser(uid string) *userLayoutStore {
	return &userLayoutStore{store: s, uid: uid}
}

type userLayoutStore struct {
	store *layoutStore
	uid   string
}

func (u *userLayoutStore) Read(ctx context.Context, key string) ([]byte, error) {
	snap, err := u.store.doc(u.uid, key).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errs.NewNotFoundError("layout not found")
		}
		return nil, errs.NewDatabaseError("read", "failed to get layout", err)
	}
	var d layoutDoc
	if err := snap.DataTo(&d); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse layout document", err)
	}
	return []byte(d.Payload), nil
}

func (u *userLayoutStore) Write(ctx context.Context, key string, data []byte) error {
	_, err := u.store.doc(u.uid, key).Set(ctx, layoutDoc{
		Payload:   string(data),
		UpdatedAt: time.Now(),
	})
	if err != nil {
		return errs.NewDatabaseError("write", "failed to save layout", err)
	}
	return nil
}
