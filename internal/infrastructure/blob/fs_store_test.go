package blob_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/Condominio-api/internal/domain"
	"github.com/jhoicas/Condominio-api/internal/infrastructure/blob"
)

func newStore(t *testing.T) *blob.FSStore {
	t.Helper()
	s, err := blob.NewFSStore(t.TempDir(), "http://cdn.test/files")
	require.NoError(t, err)
	return s
}

func TestPutGet_ConMetadatos(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	err := s.PutObject(ctx, "tenants/t1/fault_reports/r1/a.jpg", []byte("jpeg"), "image/jpeg", map[string]string{"uploaded_by": "res1"})
	require.NoError(t, err)

	data, obj, err := s.GetObject(ctx, "tenants/t1/fault_reports/r1/a.jpg")
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg"), data)
	assert.Equal(t, "image/jpeg", obj.ContentType)
	assert.Equal(t, int64(4), obj.SizeBytes)
}

func TestGet_Inexistente(t *testing.T) {
	s := newStore(t)
	_, _, err := s.GetObject(context.Background(), "no/existe.bin")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListByPrefix(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.PutObject(ctx, "tenants/t1/fault_reports/r1/a.jpg", []byte("x"), "image/jpeg", nil))
	require.NoError(t, s.PutObject(ctx, "tenants/t1/fault_reports/r1/b.jpg", []byte("y"), "image/jpeg", nil))
	require.NoError(t, s.PutObject(ctx, "tenants/t1/announcements/a1/c.pdf", []byte("z"), "application/pdf", nil))

	objs, err := s.ListByPrefix(ctx, "tenants/t1/fault_reports/r1/")
	require.NoError(t, err)
	assert.Len(t, objs, 2, "el prefijo acota el listado y los sidecar no aparecen")
}

func TestDelete_Idempotente(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.PutObject(ctx, "a/b.txt", []byte("x"), "text/plain", nil))
	require.NoError(t, s.DeleteObject(ctx, "a/b.txt"))
	require.NoError(t, s.DeleteObject(ctx, "a/b.txt"), "borrar lo ya borrado no es error")

	_, _, err := s.GetObject(ctx, "a/b.txt")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMakePublic(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.PutObject(ctx, "a/b.txt", []byte("x"), "text/plain", nil))
	url, err := s.MakePublic(ctx, "a/b.txt")
	require.NoError(t, err)
	assert.Equal(t, "http://cdn.test/files/a/b.txt", url)

	_, err = s.MakePublic(ctx, "no/existe.txt")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRutasFueraDeRaizRechazadas(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	err := s.PutObject(ctx, "../fuera.txt", []byte("x"), "text/plain", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = s.PutObject(ctx, "/abs/fuera.txt", []byte("x"), "text/plain", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
