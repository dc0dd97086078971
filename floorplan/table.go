package floorplan

import "time"

// Coordinates places a table on the floor-plan canvas. Rotation is in
// degrees, clockwise.
type Coordinates struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Rotation float64 `json:"rotation"`
}

// Table is a bookable table within an area.
type Table struct {
	ID          string         `json:"id"`
	CompanyID   string         `json:"company_id"`
	AreaID      string         `json:"area_id"`
	Name        string         `json:"name"`
	Capacity    int            `json:"capacity"`
	Coordinates Coordinates    `json:"coordinates"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// TableStatus is a table together with its occupancy at a point in time,
// as shown on the customer-facing grid.
type TableStatus struct {
	Table    *Table   `json:"table"`
	Occupied bool     `json:"occupied"`
	Booking  *Booking `json:"booking,omitempty"`
}
