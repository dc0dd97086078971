package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Signed-request auth routes
	RouteAPIAuth      = "/api/auth"
	RouteAPIAuthToken = "/api/auth/token"
	RouteAPICallback  = "/api/callback"

	// Tenant routes
	RouteAPICompany = "/api/companies/{companyID}"

	// Floor-plan routes
	RouteAPIAreas       = "/api/companies/{companyID}/areas"
	RouteAPIArea        = "/api/companies/{companyID}/areas/{areaID}"
	RouteAPITables      = "/api/companies/{companyID}/tables"
	RouteAPITable       = "/api/companies/{companyID}/tables/{tableID}"
	RouteAPITableStatus = "/api/companies/{companyID}/tables/status"

	// Booking routes
	RouteAPIBookings = "/api/companies/{companyID}/bookings"
	RouteAPIBooking  = "/api/companies/{companyID}/bookings/{bookingID}"
)
