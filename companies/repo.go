package companies

// Repo persists tenant records keyed by company ID.
//
// Upsert preserves the CreatedAt of an existing record and refreshes
// UpdatedAt. Companies are never deleted by the auth flow; Delete exists for
// operational tooling.
type Repo interface {
	Upsert(company *Company) error
	Get(companyID string) (*Company, error)
	Delete(companyID string) error
	List(offset, limit int) ([]*Company, error)
}
