package entity

import "time"

// Client represents a customer that articles are sold to
type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Telephone *string   `json:"telephone,omitempty"`
	Email     *string   `json:"email,omitempty"`
	Address   *string   `json:"address,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Clone returns a deep copy of the client
func (c *Client) Clone() *Client {
	cp := *c
	cp.Telephone = cloneStringPtr(c.Telephone)
	cp.Email = cloneStringPtr(c.Email)
	cp.Address = cloneStringPtr(c.Address)
	return &cp
}

// ClientPatch holds a partial client update
type ClientPatch struct {
	Name      *string
	Telephone *string
	Email     *string
	Address   *string
	Active    *bool
}

// Apply merges the patch into the client without validation
func (p *ClientPatch) Apply(c *Client) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Telephone != nil {
		c.Telephone = optionalString(*p.Telephone)
	}
	if p.Email != nil {
		c.Email = optionalString(*p.Email)
	}
	if p.Address != nil {
		c.Address = optionalString(*p.Address)
	}
	if p.Active != nil {
		c.Active = *p.Active
	}
}
