// Package boltrepo persists floor-plan entities in bbolt. Each entity type
// has a top-level bucket holding one nested bucket per company, with JSON
// values keyed by entity ID.
package boltrepo

import (
	"encoding/json"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/seatflow/go-floorplan-server/floorplan"
	"github.com/seatflow/go-floorplan-server/internal/errors"
)

var (
	bucketAreas    = []byte("areas")
	bucketTables   = []byte("tables")
	bucketBookings = []byte("bookings")
)

var _ floorplan.Repo = (*FloorplanRepo)(nil)

type FloorplanRepo struct {
	db *bolt.DB
}

// NewFloorplanRepo creates the entity buckets if needed and returns a repo
// backed by db.
func NewFloorplanRepo(db *bolt.DB) (*FloorplanRepo, error) {
	err := db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketAreas, bucketTables, bucketBookings} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("[NewFloorplanRepo] failed to create buckets: %w", err)
	}
	return &FloorplanRepo{db: db}, nil
}

func (fr *FloorplanRepo) put(bucket []byte, companyID, id string, entity any) error {
	return fr.db.Update(func(tx *bolt.Tx) error {
		companyBucket, err := tx.Bucket(bucket).CreateBucketIfNotExists([]byte(companyID))
		if err != nil {
			return err
		}
		value, err := json.Marshal(entity)
		if err != nil {
			return fmt.Errorf("marshal %s %q: %w", bucket, id, err)
		}
		return companyBucket.Put([]byte(id), value)
	})
}

func (fr *FloorplanRepo) get(bucket []byte, companyID, id string, entity any) error {
	return fr.db.View(func(tx *bolt.Tx) error {
		companyBucket := tx.Bucket(bucket).Bucket([]byte(companyID))
		if companyBucket == nil {
			return errors.ErrNotFound
		}
		raw := companyBucket.Get([]byte(id))
		if raw == nil {
			return errors.ErrNotFound
		}
		return json.Unmarshal(raw, entity)
	})
}

func (fr *FloorplanRepo) delete(bucket []byte, companyID, id string) error {
	return fr.db.Update(func(tx *bolt.Tx) error {
		companyBucket := tx.Bucket(bucket).Bucket([]byte(companyID))
		if companyBucket == nil {
			return nil
		}
		return companyBucket.Delete([]byte(id))
	})
}

func (fr *FloorplanRepo) forEach(bucket []byte, companyID string, fn func(raw []byte) error) error {
	return fr.db.View(func(tx *bolt.Tx) error {
		companyBucket := tx.Bucket(bucket).Bucket([]byte(companyID))
		if companyBucket == nil {
			return nil
		}
		return companyBucket.ForEach(func(_, raw []byte) error {
			return fn(raw)
		})
	})
}

func (fr *FloorplanRepo) UpsertArea(area *floorplan.Area) error {
	return fr.put(bucketAreas, area.CompanyID, area.ID, area)
}

func (fr *FloorplanRepo) GetArea(companyID, areaID string) (*floorplan.Area, error) {
	area := &floorplan.Area{}
	if err := fr.get(bucketAreas, companyID, areaID, area); err != nil {
		return nil, err
	}
	return area, nil
}

func (fr *FloorplanRepo) DeleteArea(companyID, areaID string) error {
	return fr.delete(bucketAreas, companyID, areaID)
}

func (fr *FloorplanRepo) ListAreas(companyID string) ([]*floorplan.Area, error) {
	areas := make([]*floorplan.Area, 0)
	err := fr.forEach(bucketAreas, companyID, func(raw []byte) error {
		area := &floorplan.Area{}
		if err := json.Unmarshal(raw, area); err != nil {
			return err
		}
		areas = append(areas, area)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return areas, nil
}

func (fr *FloorplanRepo) UpsertTable(table *floorplan.Table) error {
	return fr.put(bucketTables, table.CompanyID, table.ID, table)
}

func (fr *FloorplanRepo) GetTable(companyID, tableID string) (*floorplan.Table, error) {
	table := &floorplan.Table{}
	if err := fr.get(bucketTables, companyID, tableID, table); err != nil {
		return nil, err
	}
	return table, nil
}

func (fr *FloorplanRepo) DeleteTable(companyID, tableID string) error {
	return fr.delete(bucketTables, companyID, tableID)
}

func (fr *FloorplanRepo) ListTables(companyID string) ([]*floorplan.Table, error) {
	tables := make([]*floorplan.Table, 0)
	err := fr.forEach(bucketTables, companyID, func(raw []byte) error {
		table := &floorplan.Table{}
		if err := json.Unmarshal(raw, table); err != nil {
			return err
		}
		tables = append(tables, table)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tables, nil
}

func (fr *FloorplanRepo) UpsertBooking(booking *floorplan.Booking) error {
	return fr.put(bucketBookings, booking.CompanyID, booking.ID, booking)
}

func (fr *FloorplanRepo) GetBooking(companyID, bookingID string) (*floorplan.Booking, error) {
	booking := &floorplan.Booking{}
	if err := fr.get(bucketBookings, companyID, bookingID, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

func (fr *FloorplanRepo) ListBookings(companyID string) ([]*floorplan.Booking, error) {
	bookings := make([]*floorplan.Booking, 0)
	err := fr.forEach(bucketBookings, companyID, func(raw []byte) error {
		booking := &floorplan.Booking{}
		if err := json.Unmarshal(raw, booking); err != nil {
			return err
		}
		bookings = append(bookings, booking)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return bookings, nil
}
