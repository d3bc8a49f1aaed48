package dto

// ContractRequest carries the add/edit form fields. Dates use yyyy-MM-dd.
type ContractRequest struct {
	Title        string `json:"title" form:"title" validate:"required"`
	Description  string `json:"description" form:"description"`
	StartDate    string `json:"start_date" form:"start_date" validate:"required"`
	EndDate      string `json:"end_date" form:"end_date" validate:"required"`
	Status       string `json:"status" form:"status"`
	Party        string `json:"party" form:"party"`
	ContractType string `json:"contract_type" form:"contract_type"`
}

// ReportsResponse aggregates everything the reports page charts.
type ReportsResponse struct {
	Stats      interface{}      `json:"stats"`
	PartyCount map[string]int64 `json:"party_counts"`
	TypeCounts map[string]int64 `json:"type_counts"`
}
