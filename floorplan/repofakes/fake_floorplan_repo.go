package repofakes

import (
	"sync"

	"github.com/seatflow/go-floorplan-server/floorplan"
	"github.com/seatflow/go-floorplan-server/internal/errors"
)

var _ floorplan.Repo = (*FakeFloorplanRepo)(nil)

type FakeFloorplanRepo struct {
	areas    map[string]map[string]*floorplan.Area
	tables   map[string]map[string]*floorplan.Table
	bookings map[string]map[string]*floorplan.Booking
	lock     sync.RWMutex
}

func NewFakeFloorplanRepo() *FakeFloorplanRepo {
	return &FakeFloorplanRepo{
		areas:    make(map[string]map[string]*floorplan.Area),
		tables:   make(map[string]map[string]*floorplan.Table),
		bookings: make(map[string]map[string]*floorplan.Booking),
	}
}

func (fr *FakeFloorplanRepo) UpsertArea(area *floorplan.Area) error {
	fr.lock.Lock()
	defer fr.lock.Unlock()
	if fr.areas[area.CompanyID] == nil {
		fr.areas[area.CompanyID] = make(map[string]*floorplan.Area)
	}
	copied := *area
	fr.areas[area.CompanyID][area.ID] = &copied
	return nil
}

func (fr *FakeFloorplanRepo) GetArea(companyID, areaID string) (*floorplan.Area, error) {
	fr.lock.RLock()
	defer fr.lock.RUnlock()
	area, ok := fr.areas[companyID][areaID]
	if !ok {
		return nil, errors.ErrNotFound
	}
	copied := *area
	return &copied, nil
}

func (fr *FakeFloorplanRepo) DeleteArea(companyID, areaID string) error {
	fr.lock.Lock()
	defer fr.lock.Unlock()
	delete(fr.areas[companyID], areaID)
	return nil
}

func (fr *FakeFloorplanRepo) ListAreas(companyID string) ([]*floorplan.Area, error) {
	fr.lock.RLock()
	defer fr.lock.RUnlock()
	areas := make([]*floorplan.Area, 0, len(fr.areas[companyID]))
	for _, area := range fr.areas[companyID] {
		copied := *area
		areas = append(areas, &copied)
	}
	return areas, nil
}

func (fr *FakeFloorplanRepo) UpsertTable(table *floorplan.Table) error {
	fr.lock.Lock()
	defer fr.lock.Unlock()
	if fr.tables[table.CompanyID] == nil {
		fr.tables[table.CompanyID] = make(map[string]*floorplan.Table)
	}
	copied := *table
	fr.tables[table.CompanyID][table.ID] = &copied
	return nil
}

func (fr *FakeFloorplanRepo) GetTable(companyID, tableID string) (*floorplan.Table, error) {
	fr.lock.RLock()
	defer fr.lock.RUnlock()
	table, ok := fr.tables[companyID][tableID]
	if !ok {
		return nil, errors.ErrNotFound
	}
	copied := *table
	return &copied, nil
}

func (fr *FakeFloorplanRepo) DeleteTable(companyID, tableID string) error {
	fr.lock.Lock()
	defer fr.lock.Unlock()
	delete(fr.tables[companyID], tableID)
	return nil
}

func (fr *FakeFloorplanRepo) ListTables(companyID string) ([]*floorplan.Table, error) {
	fr.lock.RLock()
	defer fr.lock.RUnlock()
	tables := make([]*floorplan.Table, 0, len(fr.tables[companyID]))
	for _, table := range fr.tables[companyID] {
		copied := *table
		tables = append(tables, &copied)
	}
	return tables, nil
}

func (fr *FakeFloorplanRepo) UpsertBooking(booking *floorplan.Booking) error {
	fr.lock.Lock()
	defer fr.lock.Unlock()
	if fr.bookings[booking.CompanyID] == nil {
		fr.bookings[booking.CompanyID] = make(map[string]*floorplan.Booking)
	}
	copied := *booking
	fr.bookings[booking.CompanyID][booking.ID] = &copied
	return nil
}

func (fr *FakeFloorplanRepo) GetBooking(companyID, bookingID string) (*floorplan.Booking, error) {
	fr.lock.RLock()
	defer fr.lock.RUnlock()
	booking, ok := fr.bookings[companyID][bookingID]
	if !ok {
		return nil, errors.ErrNotFound
	}
	copied := *booking
	return &copied, nil
}

func (fr *FakeFloorplanRepo) ListBookings(companyID string) ([]*floorplan.Booking, error) {
	fr.lock.RLock()
	defer fr.lock.RUnlock()
	bookings := make([]*floorplan.Booking, 0, len(fr.bookings[companyID]))
	for _, booking := range fr.bookings[companyID] {
		copied := *booking
		bookings = append(bookings, &copied)
	}
	return bookings, nil
}
