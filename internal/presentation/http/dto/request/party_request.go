package request

// SupplierRequest represents a supplier create or update request
type SupplierRequest struct {
	Name      *string `json:"name" binding:"omitempty,max=255"`
	Telephone *string `json:"telephone" binding:"omitempty,max=50"`
	Active    *bool   `json:"active"`
}

// ClientRequest represents a client create or update request
type ClientRequest struct {
	Name      *string `json:"name" binding:"omitempty,max=255"`
	Telephone *string `json:"telephone" binding:"omitempty,max=50"`
	Email     *string `json:"email" binding:"omitempty,max=255"`
	Address   *string `json:"address"`
	Active    *bool   `json:"active"`
}

// PartyFilterRequest represents supplier and client list parameters
type PartyFilterRequest struct {
	Search  string `form:"search"`
	Active  *bool  `form:"active"`
	Unpaid  bool   `form:"unpaid"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}
