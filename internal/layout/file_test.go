package layout

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GregMSThompson/serrano-dashboard/internal/catalog"
	"github.com/GregMSThompson/serrano-dashboard/internal/dto"
	"github.com/GregMSThompson/serrano-dashboard/internal/errs"
	"github.com/GregMSThompson/serrano-dashboard/pkg/helpers"
)

func TestFilePersisterNotFound(t *testing.T) {
	p := NewFilePersister(t.TempDir())

	_, err := p.Read(context.Background(), StorageKey)

	var nf *errs.NotFoundError
	assert.True(t, errors.As(err, &nf))
}

func TestFilePersisterRoundTrip(t *testing.T) {
	p := NewFilePersister(t.TempDir() + "/nested")
	ctx := context.Background()

	require.NoError(t, p.Write(ctx, StorageKey, []byte(`{"version":1}`)))
	require.NoError(t, p.Write(ctx, StorageKey, []byte(`{"version":2}`)))

	got, err := p.Read(ctx, StorageKey)
	require.NoError(t, err)
	assert.Equal(t, `{"version":2}`, string(got))
}

func TestStoreOverFilePersister(t *testing.T) {
	c := catalog.Default()
	s := NewStore(c, NewFilePersister(t.TempDir()))
	ctx := helpers.TestCtx()

	saved := s.Save(ctx, Toggle(SetScope(Default(c), dto.ScopeSerrano), "serrano.representation_ranking"))

	assert.Equal(t, saved, s.LoadOrDefault(ctx))
}
