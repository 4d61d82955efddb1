package company

import "time"

type Company struct {
	ID        string
	Name      string
	TaxID     *string
	Email     *string
	Phone     *string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Office is a sub-location of a company; users may be assigned to one.
type Office struct {
	ID        string
	CompanyID string
	Name      string
	Address   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
