package entity

import "time"

// Supplier represents a vendor that articles are purchased from
type Supplier struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Telephone *string   `json:"telephone,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Clone returns a deep copy of the supplier
func (s *Supplier) Clone() *Supplier {
	c := *s
	c.Telephone = cloneStringPtr(s.Telephone)
	return &c
}

// SupplierPatch holds a partial supplier update
type SupplierPatch struct {
	Name      *string
	Telephone *string
	Active    *bool
}

// Apply merges the patch into the supplier without validation
func (p *SupplierPatch) Apply(s *Supplier) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Telephone != nil {
		s.Telephone = optionalString(*p.Telephone)
	}
	if p.Active != nil {
		s.Active = *p.Active
	}
}
