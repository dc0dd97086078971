package server

import "net/http"

func (s *Server) initRoutes() {
	// CORS preflight for every API route; the CORS middleware answers it
	s.RegisterRouteHandler("OPTIONS /api/", ChainMiddleware(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}, s.APIMiddleware()...))

	// Signed-request auth endpoints (no session required; these mint the session)
	s.RegisterRouteHandler("GET "+RouteAPIAuth, ChainMiddleware(s.AuthHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAPIAuthToken, ChainMiddleware(s.TokenHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAPICallback, ChainMiddleware(s.CallbackHandler(), s.APIMiddleware()...))

	// Tenant routes (require a session credential matching the path tenant)
	s.RegisterRouteHandler("GET "+RouteAPICompany, ChainMiddleware(s.CompanyHandler(), s.SessionMiddleware()...))

	s.RegisterRouteHandler("GET "+RouteAPIAreas, ChainMiddleware(s.ListAreasHandler(), s.SessionMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAPIAreas, ChainMiddleware(s.CreateAreaHandler(), s.SessionMiddleware()...))
	s.RegisterRouteHandler("PUT "+RouteAPIArea, ChainMiddleware(s.UpdateAreaHandler(), s.SessionMiddleware()...))
	s.RegisterRouteHandler("DELETE "+RouteAPIArea, ChainMiddleware(s.DeleteAreaHandler(), s.SessionMiddleware()...))

	s.RegisterRouteHandler("GET "+RouteAPITableStatus, ChainMiddleware(s.TableStatusHandler(), s.SessionMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAPITables, ChainMiddleware(s.ListTablesHandler(), s.SessionMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAPITables, ChainMiddleware(s.CreateTableHandler(), s.SessionMiddleware()...))
	s.RegisterRouteHandler("PUT "+RouteAPITable, ChainMiddleware(s.UpdateTableHandler(), s.SessionMiddleware()...))
	s.RegisterRouteHandler("DELETE "+RouteAPITable, ChainMiddleware(s.DeleteTableHandler(), s.SessionMiddleware()...))

	s.RegisterRouteHandler("GET "+RouteAPIBookings, ChainMiddleware(s.ListBookingsHandler(), s.SessionMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAPIBookings, ChainMiddleware(s.CreateBookingHandler(), s.SessionMiddleware()...))
	s.RegisterRouteHandler("PUT "+RouteAPIBooking, ChainMiddleware(s.UpdateBookingHandler(), s.SessionMiddleware()...))
}
