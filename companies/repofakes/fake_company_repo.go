package repofakes

import (
	"sort"
	"sync"
	"time"

	"github.com/seatflow/go-floorplan-server/companies"
	"github.com/seatflow/go-floorplan-server/internal/errors"
)

var _ companies.Repo = (*FakeCompanyRepo)(nil)

type FakeCompanyRepo struct {
	companies map[string]*companies.Company
	lock      sync.RWMutex
}

func NewFakeCompanyRepo() *FakeCompanyRepo {
	return &FakeCompanyRepo{
		companies: make(map[string]*companies.Company),
	}
}

func (cr *FakeCompanyRepo) Upsert(company *companies.Company) error {
	cr.lock.Lock()
	defer cr.lock.Unlock()

	now := time.Now()
	stored := *company
	if existing, ok := cr.companies[company.ID]; ok {
		stored.CreatedAt = existing.CreatedAt
	} else if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now
	cr.companies[company.ID] = &stored
	return nil
}

func (cr *FakeCompanyRepo) Get(companyID string) (*companies.Company, error) {
	cr.lock.RLock()
	defer cr.lock.RUnlock()

	company, ok := cr.companies[companyID]
	if !ok {
		return nil, errors.ErrUnknownCompany
	}
	copied := *company
	return &copied, nil
}

func (cr *FakeCompanyRepo) Delete(companyID string) error {
	cr.lock.Lock()
	defer cr.lock.Unlock()
	delete(cr.companies, companyID)
	return nil
}

func (cr *FakeCompanyRepo) List(offset, limit int) ([]*companies.Company, error) {
	cr.lock.RLock()
	defer cr.lock.RUnlock()

	all := make([]*companies.Company, 0, len(cr.companies))
	for _, c := range cr.companies {
		copied := *c
		all = append(all, &copied)
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].ID < all[j].ID
	})

	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}
