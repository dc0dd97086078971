package boltrepo_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"

	"github.com/seatflow/go-floorplan-server/floorplan"
	"github.com/seatflow/go-floorplan-server/floorplan/boltrepo"
	"github.com/seatflow/go-floorplan-server/internal/errors"
)

func newTestRepo(t *testing.T) *boltrepo.FloorplanRepo {
	t.Helper()

	db, err := bolt.Open(filepath.Join(t.TempDir(), "test.db"), 0o600, &bolt.Options{Timeout: time.Second})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo, err := boltrepo.NewFloorplanRepo(db)
	require.NoError(t, err)
	return repo
}

func TestFloorplanRepo_Areas(t *testing.T) {
	repo := newTestRepo(t)

	area := &floorplan.Area{ID: "area-1", CompanyID: "company-1", Name: "Terrace"}
	require.NoError(t, repo.UpsertArea(area))

	got, err := repo.GetArea("company-1", "area-1")
	require.NoError(t, err)
	require.Equal(t, "Terrace", got.Name)

	_, err = repo.GetArea("other-company", "area-1")
	require.True(t, errors.Is(err, errors.ErrNotFound))

	require.NoError(t, repo.DeleteArea("company-1", "area-1"))
	_, err = repo.GetArea("company-1", "area-1")
	require.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestFloorplanRepo_TablesScopedByCompany(t *testing.T) {
	repo := newTestRepo(t)

	require.NoError(t, repo.UpsertTable(&floorplan.Table{
		ID: "t1", CompanyID: "company-1", AreaID: "area-1", Name: "T1", Capacity: 4,
		Coordinates: floorplan.Coordinates{X: 1, Y: 2, Width: 3, Height: 4, Rotation: 90},
	}))
	require.NoError(t, repo.UpsertTable(&floorplan.Table{
		ID: "t2", CompanyID: "company-2", AreaID: "area-9", Name: "T2", Capacity: 2,
	}))

	tables, err := repo.ListTables("company-1")
	require.NoError(t, err)
	require.Len(t, tables, 1)
	require.Equal(t, 90.0, tables[0].Coordinates.Rotation)

	empty, err := repo.ListTables("company-3")
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestFloorplanRepo_Bookings(t *testing.T) {
	repo := newTestRepo(t)

	starts := time.Date(2025, 6, 1, 19, 0, 0, 0, time.UTC)
	require.NoError(t, repo.UpsertBooking(&floorplan.Booking{
		ID: "b1", CompanyID: "company-1", TableID: "t1",
		CustomerName: "Ada", Pax: 2,
		StartsAt: starts, EndsAt: starts.Add(2 * time.Hour),
		Status: floorplan.StatusConfirmed,
	}))

	got, err := repo.GetBooking("company-1", "b1")
	require.NoError(t, err)
	require.Equal(t, floorplan.StatusConfirmed, got.Status)
	require.True(t, got.StartsAt.Equal(starts))

	bookings, err := repo.ListBookings("company-1")
	require.NoError(t, err)
	require.Len(t, bookings, 1)
}
