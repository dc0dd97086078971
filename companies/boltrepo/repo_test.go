package boltrepo_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"

	"github.com/seatflow/go-floorplan-server/companies"
	"github.com/seatflow/go-floorplan-server/companies/boltrepo"
	"github.com/seatflow/go-floorplan-server/internal/errors"
)

func newTestRepo(t *testing.T) *boltrepo.CompanyRepo {
	t.Helper()

	db, err := bolt.Open(filepath.Join(t.TempDir(), "test.db"), 0o600, &bolt.Options{Timeout: time.Second})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo, err := boltrepo.NewCompanyRepo(db)
	require.NoError(t, err)
	return repo
}

func TestCompanyRepo_UpsertGet(t *testing.T) {
	repo := newTestRepo(t)

	company := &companies.Company{
		ID:                "company-1",
		Name:              "Cafe du Parc",
		AuthorizationCode: "code-1",
		AccessToken:       "token-1",
		Metadata:          map[string]any{"plan": "pro"},
	}
	require.NoError(t, repo.Upsert(company))

	got, err := repo.Get("company-1")
	require.NoError(t, err)
	require.Equal(t, "Cafe du Parc", got.Name)
	require.Equal(t, "token-1", got.AccessToken)
	require.False(t, got.CreatedAt.IsZero())
	require.False(t, got.UpdatedAt.IsZero())
}

func TestCompanyRepo_UpsertPreservesCreatedAt(t *testing.T) {
	repo := newTestRepo(t)

	require.NoError(t, repo.Upsert(&companies.Company{ID: "company-1", AccessToken: "token-1"}))
	first, err := repo.Get("company-1")
	require.NoError(t, err)

	require.NoError(t, repo.Upsert(&companies.Company{ID: "company-1", AccessToken: "token-2"}))
	second, err := repo.Get("company-1")
	require.NoError(t, err)

	require.Equal(t, first.CreatedAt, second.CreatedAt)
	require.Equal(t, "token-2", second.AccessToken)
}

func TestCompanyRepo_GetUnknown(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Get("ghost")
	require.Error(t, err)
	require.True(t, errors.Is(err, errors.ErrUnknownCompany))
}

func TestCompanyRepo_List(t *testing.T) {
	repo := newTestRepo(t)

	for _, id := range []string{"b-company", "a-company", "c-company"} {
		require.NoError(t, repo.Upsert(&companies.Company{ID: id}))
	}

	all, err := repo.List(0, 10)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "a-company", all[0].ID)
	require.Equal(t, "c-company", all[2].ID)

	page, err := repo.List(1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	require.Equal(t, "b-company", page[0].ID)

	empty, err := repo.List(5, 10)
	require.NoError(t, err)
	require.Empty(t, empty)
}
