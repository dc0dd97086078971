package floorplan_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/seatflow/go-floorplan-server/floorplan"
	"github.com/seatflow/go-floorplan-server/floorplan/repofakes"
	"github.com/seatflow/go-floorplan-server/internal/errors"
)

const testCompanyID = "company-1"

type fixture struct {
	service *floorplan.Service
	area    *floorplan.Area
	table   *floorplan.Table
}

func setup(t *testing.T) *fixture {
	t.Helper()

	service := floorplan.NewService(repofakes.NewFakeFloorplanRepo())

	area, err := service.CreateArea(testCompanyID, floorplan.Area{Name: "Terrace"})
	require.NoError(t, err)

	table, err := service.CreateTable(testCompanyID, floorplan.Table{
		AreaID:   area.ID,
		Name:     "T1",
		Capacity: 4,
		Coordinates: floorplan.Coordinates{
			X: 10, Y: 20, Width: 80, Height: 80,
		},
	})
	require.NoError(t, err)

	return &fixture{service: service, area: area, table: table}
}

func TestService_Areas(t *testing.T) {
	f := setup(t)

	t.Run("create requires a name", func(t *testing.T) {
		_, err := f.service.CreateArea(testCompanyID, floorplan.Area{})
		require.Error(t, err)
		require.True(t, errors.Is(err, errors.ErrMissingParameter))
	})

	t.Run("update", func(t *testing.T) {
		updated, err := f.service.UpdateArea(testCompanyID, f.area.ID, floorplan.Area{
			Name:        "Main Room",
			Description: "indoor seating",
		})
		require.NoError(t, err)
		require.Equal(t, "Main Room", updated.Name)
		require.Equal(t, "indoor seating", updated.Description)
	})

	t.Run("update unknown area", func(t *testing.T) {
		_, err := f.service.UpdateArea(testCompanyID, "ghost", floorplan.Area{Name: "x"})
		require.Error(t, err)
		require.True(t, errors.Is(err, errors.ErrNotFound))
	})

	t.Run("list is scoped per company", func(t *testing.T) {
		areas, err := f.service.ListAreas("other-company")
		require.NoError(t, err)
		require.Empty(t, areas)
	})
}

func TestService_Tables(t *testing.T) {
	f := setup(t)

	t.Run("create requires an existing area", func(t *testing.T) {
		_, err := f.service.CreateTable(testCompanyID, floorplan.Table{
			AreaID: "ghost", Name: "T2", Capacity: 2,
		})
		require.Error(t, err)
		require.True(t, errors.Is(err, errors.ErrNotFound))
	})

	t.Run("move resize rotate", func(t *testing.T) {
		updated, err := f.service.UpdateTable(testCompanyID, f.table.ID, floorplan.Table{
			Coordinates: floorplan.Coordinates{X: 50, Y: 60, Width: 120, Height: 80, Rotation: 45},
		})
		require.NoError(t, err)
		require.Equal(t, 45.0, updated.Coordinates.Rotation)
		require.Equal(t, 120.0, updated.Coordinates.Width)
		// Untouched fields survive the update
		require.Equal(t, "T1", updated.Name)
		require.Equal(t, 4, updated.Capacity)
	})

	t.Run("filter by area", func(t *testing.T) {
		other, err := f.service.CreateArea(testCompanyID, floorplan.Area{Name: "Bar"})
		require.NoError(t, err)
		_, err = f.service.CreateTable(testCompanyID, floorplan.Table{
			AreaID: other.ID, Name: "B1", Capacity: 2,
		})
		require.NoError(t, err)

		tables, err := f.service.ListTables(testCompanyID, other.ID)
		require.NoError(t, err)
		require.Len(t, tables, 1)
		require.Equal(t, "B1", tables[0].Name)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, f.service.DeleteTable(testCompanyID, f.table.ID))
		_, err := f.service.UpdateTable(testCompanyID, f.table.ID, floorplan.Table{})
		require.True(t, errors.Is(err, errors.ErrNotFound))
	})
}

func TestService_Bookings(t *testing.T) {
	f := setup(t)
	mealStart := time.Date(2025, 6, 1, 19, 0, 0, 0, time.UTC)
	mealEnd := mealStart.Add(2 * time.Hour)

	booking, err := f.service.CreateBooking(testCompanyID, floorplan.Booking{
		TableID:      f.table.ID,
		CustomerName: "Ada",
		Pax:          2,
		StartsAt:     mealStart,
		EndsAt:       mealEnd,
	})
	require.NoError(t, err)
	require.Equal(t, floorplan.StatusPending, booking.Status)

	t.Run("table occupied during the meal window", func(t *testing.T) {
		statuses, err := f.service.TableStatuses(testCompanyID, mealStart.Add(time.Hour))
		require.NoError(t, err)
		require.Len(t, statuses, 1)
		require.True(t, statuses[0].Occupied)
		require.Equal(t, booking.ID, statuses[0].Booking.ID)
	})

	t.Run("table free outside the window", func(t *testing.T) {
		statuses, err := f.service.TableStatuses(testCompanyID, mealEnd.Add(time.Minute))
		require.NoError(t, err)
		require.False(t, statuses[0].Occupied)
		require.Nil(t, statuses[0].Booking)
	})

	t.Run("cancelled booking frees the table", func(t *testing.T) {
		_, err := f.service.UpdateBooking(testCompanyID, booking.ID, floorplan.Booking{
			Status: floorplan.StatusCancelled,
		})
		require.NoError(t, err)

		statuses, err := f.service.TableStatuses(testCompanyID, mealStart.Add(time.Hour))
		require.NoError(t, err)
		require.False(t, statuses[0].Occupied)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		_, err := f.service.CreateBooking(testCompanyID, floorplan.Booking{
			TableID:      f.table.ID,
			CustomerName: "Bob",
			Pax:          2,
			StartsAt:     mealStart,
			EndsAt:       mealEnd,
			Status:       "seated",
		})
		require.Error(t, err)
		require.True(t, errors.Is(err, errors.ErrUnsupported))
	})

	t.Run("rejects inverted meal window", func(t *testing.T) {
		_, err := f.service.CreateBooking(testCompanyID, floorplan.Booking{
			TableID:      f.table.ID,
			CustomerName: "Bob",
			Pax:          2,
			StartsAt:     mealEnd,
			EndsAt:       mealStart,
		})
		require.Error(t, err)
	})

	t.Run("filter by table and window", func(t *testing.T) {
		bookings, err := f.service.ListBookings(testCompanyID, floorplan.BookingFilter{
			TableID: f.table.ID,
			From:    mealStart.Add(-time.Hour),
			To:      mealEnd.Add(time.Hour),
		})
		require.NoError(t, err)
		require.Len(t, bookings, 1)

		none, err := f.service.ListBookings(testCompanyID, floorplan.BookingFilter{
			From: mealEnd.Add(time.Hour),
		})
		require.NoError(t, err)
		require.Empty(t, none)
	})
}

func TestService_Subscribe(t *testing.T) {
	f := setup(t)

	snapshots, cancel := f.service.Subscribe(testCompanyID)
	defer cancel()

	_, err := f.service.CreateArea(testCompanyID, floorplan.Area{Name: "Patio"})
	require.NoError(t, err)

	select {
	case snapshot := <-snapshots:
		require.Equal(t, testCompanyID, snapshot.CompanyID)
		require.Len(t, snapshot.Areas, 2)
	case <-time.After(time.Second):
		t.Fatal("no snapshot delivered after write")
	}

	t.Run("latest wins for slow subscribers", func(t *testing.T) {
		_, err := f.service.CreateArea(testCompanyID, floorplan.Area{Name: "Garden"})
		require.NoError(t, err)
		_, err = f.service.CreateArea(testCompanyID, floorplan.Area{Name: "Rooftop"})
		require.NoError(t, err)

		snapshot := <-snapshots
		require.Len(t, snapshot.Areas, 4)
	})

	t.Run("other companies do not receive snapshots", func(t *testing.T) {
		otherSnapshots, otherCancel := f.service.Subscribe("other-company")
		defer otherCancel()

		_, err := f.service.CreateArea(testCompanyID, floorplan.Area{Name: "Annex"})
		require.NoError(t, err)

		select {
		case <-otherSnapshots:
			t.Fatal("snapshot leaked across companies")
		case <-time.After(50 * time.Millisecond):
		}
	})

	t.Run("cancel closes the channel", func(t *testing.T) {
		ch, cancelSub := f.service.Subscribe(testCompanyID)
		cancelSub()
		_, open := <-ch
		require.False(t, open)
	})
}
