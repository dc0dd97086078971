package floorplan

// Repo persists floor-plan entities, all scoped by company ID. Lookups for
// missing records return internal/errors.ErrNotFound. Filtering beyond the
// company scope is the service's job.
type Repo interface {
	UpsertArea(area *Area) error
	GetArea(companyID, areaID string) (*Area, error)
	DeleteArea(companyID, areaID string) error
	ListAreas(companyID string) ([]*Area, error)

	UpsertTable(table *Table) error
	GetTable(companyID, tableID string) (*Table, error)
	DeleteTable(companyID, tableID string) error
	ListTables(companyID string) ([]*Table, error)

	UpsertBooking(booking *Booking) error
	GetBooking(companyID, bookingID string) (*Booking, error)
	ListBookings(companyID string) ([]*Booking, error)
}
