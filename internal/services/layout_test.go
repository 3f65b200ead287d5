package services

import (
	"context"
	"errors"
	"testing"

	"github.com/GregMSThompson/serrano-dashboard/internal/catalog"
	"github.com/GregMSThompson/serrano-dashboard/internal/dto"
	"github.com/GregMSThompson/serrano-dashboard/internal/errs"
	"github.com/GregMSThompson/serrano-dashboard/internal/layout"
)

type memPersister struct {
	data     map[string][]byte
	writeErr error
}

func (m *memPersister) Read(_ context.Context, key string) ([]byte, error) {
	d, ok := m.data[key]
	if !ok {
		return nil, errs.NewNotFoundError("layout not found")
	}
	return d, nil
}

func (m *memPersister) Write(_ context.Context, key string, data []byte) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.data[key] = data
	return nil
}

func newLayoutFixture() (*layoutService, map[string]*memPersister) {
	users := map[string]*memPersister{}
	svc := NewLayoutService(catalog.Default(), func(uid string) layout.Persister {
		p, ok := users[uid]
		if !ok {
			p = &memPersister{data: map[string][]byte{}}
			users[uid] = p
		}
		return p
	})
	return svc, users
}

func TestLayoutServiceDefaultsPerUser(t *testing.T) {
	svc, _ := newLayoutFixture()

	got := svc.Get(context.Background(), "u1")
	want := layout.Default(catalog.Default())
	if len(got.Enabled) != len(want.Enabled) || got.Scope != dto.ScopeBoth {
		t.Fatalf("unexpected default layout %+v", got)
	}
}

func TestLayoutServiceSaveIsolatedByUser(t *testing.T) {
	svc, _ := newLayoutFixture()
	ctx := context.Background()

	l := svc.Get(ctx, "u1")
	l.Scope = dto.ScopeMarket
	l.Enabled = append(l.Enabled, "market.fee_by_month", "not.a.widget")
	saved := svc.Save(ctx, "u1", l)

	for _, id := range saved.Enabled {
		if id == "not.a.widget" {
			t.Fatal("unknown id survived sanitize")
		}
	}
	if got := svc.Get(ctx, "u1"); got.Scope != dto.ScopeMarket {
		t.Errorf("expected persisted market scope, got %s", got.Scope)
	}
	if got := svc.Get(ctx, "u2"); got.Scope != dto.ScopeBoth {
		t.Errorf("other user affected: %s", got.Scope)
	}
}

func TestLayoutServiceSaveSwallowsWriteErrors(t *testing.T) {
	svc, users := newLayoutFixture()
	ctx := context.Background()
	svc.Get(ctx, "u1")
	users["u1"].writeErr = errors.New("firestore unavailable")

	l := layout.Default(catalog.Default())
	l.Scope = dto.ScopeSerrano
	saved := svc.Save(ctx, "u1", l)
	if saved.Scope != dto.ScopeSerrano {
		t.Fatalf("expected sanitized layout back, got %+v", saved)
	}
}

func TestLayoutServiceReset(t *testing.T) {
	svc, _ := newLayoutFixture()
	ctx := context.Background()

	l := svc.Get(ctx, "u1")
	l.Scope = dto.ScopeMarket
	svc.Save(ctx, "u1", l)

	reset := svc.Reset(ctx, "u1")
	if reset.Scope != dto.ScopeBoth {
		t.Fatalf("expected default scope after reset, got %s", reset.Scope)
	}
	if got := svc.Get(ctx, "u1"); got.Scope != dto.ScopeBoth {
		t.Errorf("reset not persisted: %s", got.Scope)
	}
}
