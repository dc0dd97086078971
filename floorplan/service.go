// Package floorplan manages areas, tables and bookings for a tenant's
// floor plan, and fans out snapshots to subscribers after every change.
package floorplan

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/seatflow/go-floorplan-server/internal/errors"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Snapshot is a full view of one company's floor plan at a point in time.
type Snapshot struct {
	CompanyID string     `json:"company_id"`
	Areas     []*Area    `json:"areas"`
	Tables    []*Table   `json:"tables"`
	Bookings  []*Booking `json:"bookings"`
	TakenAt   time.Time  `json:"taken_at"`
}

// BookingFilter narrows a booking listing. Zero values match everything.
type BookingFilter struct {
	TableID string
	From    time.Time
	To      time.Time
}

// Service implements floor-plan operations over a Repo and owns the
// subscription fan-out.
type Service struct {
	repo Repo

	mu     sync.Mutex
	nextID int
	subs   map[string]map[int]chan Snapshot
}

func NewService(repo Repo) *Service {
	return &Service{
		repo: repo,
		subs: make(map[string]map[int]chan Snapshot),
	}
}

// Subscribe returns a channel receiving a fresh snapshot after every write
// to the company's floor plan, plus a cancel function. Slow consumers only
// see the latest snapshot; intermediate ones are dropped.
func (s *Service) Subscribe(companyID string) (<-chan Snapshot, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++

	ch := make(chan Snapshot, 1)
	if s.subs[companyID] == nil {
		s.subs[companyID] = make(map[int]chan Snapshot)
	}
	s.subs[companyID][id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if sub, ok := s.subs[companyID][id]; ok {
			delete(s.subs[companyID], id)
			close(sub)
		}
	}
	return ch, cancel
}

// publish builds a snapshot and delivers it to every live subscriber of the
// company, latest-wins.
func (s *Service) publish(companyID string) {
	snapshot, err := s.CurrentSnapshot(companyID)
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subs[companyID] {
		select {
		case ch <- *snapshot:
		default:
			// Drop the stale snapshot, then try once more.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- *snapshot:
			default:
			}
		}
	}
}

// CurrentSnapshot loads the company's full floor plan.
func (s *Service) CurrentSnapshot(companyID string) (*Snapshot, error) {
	areas, err := s.repo.ListAreas(companyID)
	if err != nil {
		return nil, errors.Wrapf(err, "listing areas for %q", companyID)
	}
	tables, err := s.repo.ListTables(companyID)
	if err != nil {
		return nil, errors.Wrapf(err, "listing tables for %q", companyID)
	}
	bookings, err := s.repo.ListBookings(companyID)
	if err != nil {
		return nil, errors.Wrapf(err, "listing bookings for %q", companyID)
	}
	return &Snapshot{
		CompanyID: companyID,
		Areas:     areas,
		Tables:    tables,
		Bookings:  bookings,
		TakenAt:   NowTimeFunc(),
	}, nil
}

// Areas

func (s *Service) CreateArea(companyID string, area Area) (*Area, error) {
	if area.Name == "" {
		return nil, errors.Wrapf(errors.ErrMissingParameter, "area name is required")
	}

	now := NowTimeFunc()
	area.ID = uuid.New().String()
	area.CompanyID = companyID
	area.CreatedAt = now
	area.UpdatedAt = now

	if err := s.repo.UpsertArea(&area); err != nil {
		return nil, errors.Wrapf(err, "creating area for %q", companyID)
	}
	s.publish(companyID)
	return &area, nil
}

func (s *Service) UpdateArea(companyID, areaID string, update Area) (*Area, error) {
	area, err := s.repo.GetArea(companyID, areaID)
	if err != nil {
		return nil, err
	}

	if update.Name != "" {
		area.Name = update.Name
	}
	area.Description = update.Description
	if update.Metadata != nil {
		area.Metadata = update.Metadata
	}
	area.UpdatedAt = NowTimeFunc()

	if err := s.repo.UpsertArea(area); err != nil {
		return nil, errors.Wrapf(err, "updating area %q", areaID)
	}
	s.publish(companyID)
	return area, nil
}

func (s *Service) DeleteArea(companyID, areaID string) error {
	if _, err := s.repo.GetArea(companyID, areaID); err != nil {
		return err
	}
	if err := s.repo.DeleteArea(companyID, areaID); err != nil {
		return errors.Wrapf(err, "deleting area %q", areaID)
	}
	s.publish(companyID)
	return nil
}

func (s *Service) ListAreas(companyID string) ([]*Area, error) {
	areas, err := s.repo.ListAreas(companyID)
	if err != nil {
		return nil, err
	}
	sort.Slice(areas, func(i, j int) bool { return areas[i].Name < areas[j].Name })
	return areas, nil
}

// Tables

func (s *Service) CreateTable(companyID string, table Table) (*Table, error) {
	if table.Name == "" {
		return nil, errors.Wrapf(errors.ErrMissingParameter, "table name is required")
	}
	if table.Capacity <= 0 {
		return nil, errors.Wrapf(errors.ErrMissingParameter, "table capacity must be positive")
	}
	if _, err := s.repo.GetArea(companyID, table.AreaID); err != nil {
		return nil, errors.Wrapf(err, "area %q", table.AreaID)
	}

	now := NowTimeFunc()
	table.ID = uuid.New().String()
	table.CompanyID = companyID
	table.CreatedAt = now
	table.UpdatedAt = now

	if err := s.repo.UpsertTable(&table); err != nil {
		return nil, errors.Wrapf(err, "creating table for %q", companyID)
	}
	s.publish(companyID)
	return &table, nil
}

// UpdateTable applies the editor's changes to a table: renames, capacity
// changes, and every move/resize/rotate lands here as new coordinates.
func (s *Service) UpdateTable(companyID, tableID string, update Table) (*Table, error) {
	table, err := s.repo.GetTable(companyID, tableID)
	if err != nil {
		return nil, err
	}

	if update.Name != "" {
		table.Name = update.Name
	}
	if update.Capacity > 0 {
		table.Capacity = update.Capacity
	}
	if update.AreaID != "" && update.AreaID != table.AreaID {
		if _, err := s.repo.GetArea(companyID, update.AreaID); err != nil {
			return nil, errors.Wrapf(err, "area %q", update.AreaID)
		}
		table.AreaID = update.AreaID
	}
	table.Coordinates = update.Coordinates
	if update.Metadata != nil {
		table.Metadata = update.Metadata
	}
	table.UpdatedAt = NowTimeFunc()

	if err := s.repo.UpsertTable(table); err != nil {
		return nil, errors.Wrapf(err, "updating table %q", tableID)
	}
	s.publish(companyID)
	return table, nil
}

func (s *Service) DeleteTable(companyID, tableID string) error {
	if _, err := s.repo.GetTable(companyID, tableID); err != nil {
		return err
	}
	if err := s.repo.DeleteTable(companyID, tableID); err != nil {
		return errors.Wrapf(err, "deleting table %q", tableID)
	}
	s.publish(companyID)
	return nil
}

// ListTables returns the company's tables, optionally narrowed to one area.
func (s *Service) ListTables(companyID, areaID string) ([]*Table, error) {
	tables, err := s.repo.ListTables(companyID)
	if err != nil {
		return nil, err
	}
	if areaID != "" {
		filtered := tables[:0]
		for _, table := range tables {
			if table.AreaID == areaID {
				filtered = append(filtered, table)
			}
		}
		tables = filtered
	}
	sort.Slice(tables, func(i, j int) bool { return tables[i].Name < tables[j].Name })
	return tables, nil
}

// TableStatuses reports each table's occupancy at the given time, pairing
// occupied tables with the booking holding them.
func (s *Service) TableStatuses(companyID string, at time.Time) ([]*TableStatus, error) {
	tables, err := s.ListTables(companyID, "")
	if err != nil {
		return nil, err
	}
	bookings, err := s.repo.ListBookings(companyID)
	if err != nil {
		return nil, err
	}

	held := make(map[string]*Booking, len(bookings))
	for _, booking := range bookings {
		if booking.Occupies(at) {
			held[booking.TableID] = booking
		}
	}

	statuses := make([]*TableStatus, 0, len(tables))
	for _, table := range tables {
		booking := held[table.ID]
		statuses = append(statuses, &TableStatus{
			Table:    table,
			Occupied: booking != nil,
			Booking:  booking,
		})
	}
	return statuses, nil
}

// Bookings

func (s *Service) CreateBooking(companyID string, booking Booking) (*Booking, error) {
	if booking.CustomerName == "" {
		return nil, errors.Wrapf(errors.ErrMissingParameter, "customer name is required")
	}
	if booking.Pax <= 0 {
		return nil, errors.Wrapf(errors.ErrMissingParameter, "pax must be positive")
	}
	if !booking.EndsAt.After(booking.StartsAt) {
		return nil, errors.Wrapf(errors.ErrMissingParameter, "booking must end after it starts")
	}
	if _, err := s.repo.GetTable(companyID, booking.TableID); err != nil {
		return nil, errors.Wrapf(err, "table %q", booking.TableID)
	}
	if booking.Status == "" {
		booking.Status = StatusPending
	}
	if !booking.Status.Valid() {
		return nil, errors.Wrapf(errors.ErrUnsupported, "unknown booking status %q", booking.Status)
	}

	now := NowTimeFunc()
	booking.ID = uuid.New().String()
	booking.CompanyID = companyID
	booking.CreatedAt = now
	booking.UpdatedAt = now

	if err := s.repo.UpsertBooking(&booking); err != nil {
		return nil, errors.Wrapf(err, "creating booking for %q", companyID)
	}
	s.publish(companyID)
	return &booking, nil
}

func (s *Service) UpdateBooking(companyID, bookingID string, update Booking) (*Booking, error) {
	booking, err := s.repo.GetBooking(companyID, bookingID)
	if err != nil {
		return nil, err
	}

	if update.CustomerName != "" {
		booking.CustomerName = update.CustomerName
	}
	if update.Pax > 0 {
		booking.Pax = update.Pax
	}
	if !update.StartsAt.IsZero() {
		booking.StartsAt = update.StartsAt
	}
	if !update.EndsAt.IsZero() {
		booking.EndsAt = update.EndsAt
	}
	if !booking.EndsAt.After(booking.StartsAt) {
		return nil, errors.Wrapf(errors.ErrMissingParameter, "booking must end after it starts")
	}
	if update.Status != "" {
		if !update.Status.Valid() {
			return nil, errors.Wrapf(errors.ErrUnsupported, "unknown booking status %q", update.Status)
		}
		booking.Status = update.Status
	}
	booking.Notes = update.Notes
	if update.Metadata != nil {
		booking.Metadata = update.Metadata
	}
	booking.UpdatedAt = NowTimeFunc()

	if err := s.repo.UpsertBooking(booking); err != nil {
		return nil, errors.Wrapf(err, "updating booking %q", bookingID)
	}
	s.publish(companyID)
	return booking, nil
}

// ListBookings returns the company's bookings matching the filter, ordered
// by start time.
func (s *Service) ListBookings(companyID string, filter BookingFilter) ([]*Booking, error) {
	bookings, err := s.repo.ListBookings(companyID)
	if err != nil {
		return nil, err
	}

	filtered := bookings[:0]
	for _, booking := range bookings {
		if filter.TableID != "" && booking.TableID != filter.TableID {
			continue
		}
		if !filter.From.IsZero() && booking.EndsAt.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && booking.StartsAt.After(filter.To) {
			continue
		}
		filtered = append(filtered, booking)
	}

	sort.Slice(filtered, func(i, j int) bool { return filtered[i].StartsAt.Before(filtered[j].StartsAt) })
	return filtered, nil
}
