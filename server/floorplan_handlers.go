package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/seatflow/go-floorplan-server/floorplan"
)

// CompanyHandler returns the tenant's profile with auth material redacted.
func (s *Server) CompanyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		company, err := s.repos.Companies.Get(r.PathValue("companyID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, company.Redacted())
	}
}

// Areas

func (s *Server) ListAreasHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		areas, err := s.floorplan.ListAreas(r.PathValue("companyID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, areas)
	}
}

func (s *Server) CreateAreaHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var area floorplan.Area
		if err := json.NewDecoder(r.Body).Decode(&area); err != nil {
			writeJSONError(w, "invalid_request", "malformed JSON body", http.StatusBadRequest)
			return
		}

		created, err := s.floorplan.CreateArea(r.PathValue("companyID"), area)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func (s *Server) UpdateAreaHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var area floorplan.Area
		if err := json.NewDecoder(r.Body).Decode(&area); err != nil {
			writeJSONError(w, "invalid_request", "malformed JSON body", http.StatusBadRequest)
			return
		}

		updated, err := s.floorplan.UpdateArea(r.PathValue("companyID"), r.PathValue("areaID"), area)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func (s *Server) DeleteAreaHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.floorplan.DeleteArea(r.PathValue("companyID"), r.PathValue("areaID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// Tables

func (s *Server) ListTablesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tables, err := s.floorplan.ListTables(r.PathValue("companyID"), r.URL.Query().Get("area_id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, tables)
	}
}

func (s *Server) CreateTableHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var table floorplan.Table
		if err := json.NewDecoder(r.Body).Decode(&table); err != nil {
			writeJSONError(w, "invalid_request", "malformed JSON body", http.StatusBadRequest)
			return
		}

		created, err := s.floorplan.CreateTable(r.PathValue("companyID"), table)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func (s *Server) UpdateTableHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var table floorplan.Table
		if err := json.NewDecoder(r.Body).Decode(&table); err != nil {
			writeJSONError(w, "invalid_request", "malformed JSON body", http.StatusBadRequest)
			return
		}

		updated, err := s.floorplan.UpdateTable(r.PathValue("companyID"), r.PathValue("tableID"), table)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func (s *Server) DeleteTableHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.floorplan.DeleteTable(r.PathValue("companyID"), r.PathValue("tableID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// TableStatusHandler serves the customer-facing grid: every table with its
// occupancy at the requested time (defaulting to now).
//
// GET /api/companies/{companyID}/tables/status?at=RFC3339
func (s *Server) TableStatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		at := time.Now()
		if raw := r.URL.Query().Get("at"); raw != "" {
			parsed, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				writeJSONError(w, "invalid_request", "at must be RFC3339", http.StatusBadRequest)
				return
			}
			at = parsed
		}

		statuses, err := s.floorplan.TableStatuses(r.PathValue("companyID"), at)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, statuses)
	}
}

// Bookings

func (s *Server) ListBookingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		filter := floorplan.BookingFilter{TableID: query.Get("table_id")}

		if raw := query.Get("from"); raw != "" {
			parsed, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				writeJSONError(w, "invalid_request", "from must be RFC3339", http.StatusBadRequest)
				return
			}
			filter.From = parsed
		}
		if raw := query.Get("to"); raw != "" {
			parsed, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				writeJSONError(w, "invalid_request", "to must be RFC3339", http.StatusBadRequest)
				return
			}
			filter.To = parsed
		}

		bookings, err := s.floorplan.ListBookings(r.PathValue("companyID"), filter)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, bookings)
	}
}

func (s *Server) CreateBookingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var booking floorplan.Booking
		if err := json.NewDecoder(r.Body).Decode(&booking); err != nil {
			writeJSONError(w, "invalid_request", "malformed JSON body", http.StatusBadRequest)
			return
		}

		created, err := s.floorplan.CreateBooking(r.PathValue("companyID"), booking)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func (s *Server) UpdateBookingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var booking floorplan.Booking
		if err := json.NewDecoder(r.Body).Decode(&booking); err != nil {
			writeJSONError(w, "invalid_request", "malformed JSON body", http.StatusBadRequest)
			return
		}

		updated, err := s.floorplan.UpdateBooking(r.PathValue("companyID"), r.PathValue("bookingID"), booking)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}
