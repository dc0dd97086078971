// Package boltrepo persists tenant records in a bbolt bucket. All records
// are stored as JSON values keyed by company ID.
package boltrepo

import (
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/seatflow/go-floorplan-server/companies"
	"github.com/seatflow/go-floorplan-server/internal/errors"
)

var bucketCompanies = []byte("companies")

var _ companies.Repo = (*CompanyRepo)(nil)

type CompanyRepo struct {
	db *bolt.DB
}

// NewCompanyRepo creates the companies bucket if needed and returns a repo
// backed by db.
func NewCompanyRepo(db *bolt.DB) (*CompanyRepo, error) {
	err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketCompanies)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("[NewCompanyRepo] failed to create bucket: %w", err)
	}
	return &CompanyRepo{db: db}, nil
}

func (cr *CompanyRepo) Upsert(company *companies.Company) error {
	return cr.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketCompanies)

		now := time.Now()
		stored := *company
		if raw := bucket.Get([]byte(company.ID)); raw != nil {
			var existing companies.Company
			if err := json.Unmarshal(raw, &existing); err == nil {
				stored.CreatedAt = existing.CreatedAt
			}
		}
		if stored.CreatedAt.IsZero() {
			stored.CreatedAt = now
		}
		stored.UpdatedAt = now

		value, err := json.Marshal(&stored)
		if err != nil {
			return fmt.Errorf("marshal company %q: %w", company.ID, err)
		}
		return bucket.Put([]byte(company.ID), value)
	})
}

func (cr *CompanyRepo) Get(companyID string) (*companies.Company, error) {
	var company *companies.Company
	err := cr.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(bucketCompanies).Get([]byte(companyID))
		if raw == nil {
			return errors.ErrUnknownCompany
		}
		company = &companies.Company{}
		return json.Unmarshal(raw, company)
	})
	if err != nil {
		return nil, err
	}
	return company, nil
}

func (cr *CompanyRepo) Delete(companyID string) error {
	return cr.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketCompanies).Delete([]byte(companyID))
	})
}

func (cr *CompanyRepo) List(offset, limit int) ([]*companies.Company, error) {
	all := make([]*companies.Company, 0)
	err := cr.db.View(func(tx *bolt.Tx) error {
		// Keys are iterated in byte order, so the listing is already
		// sorted by company ID.
		return tx.Bucket(bucketCompanies).ForEach(func(_, raw []byte) error {
			company := &companies.Company{}
			if err := json.Unmarshal(raw, company); err != nil {
				return err
			}
			all = append(all, company)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}
