package domain

import (
	"strings"
	"time"
)

type ContractStatus string

const (
	StatusDraft   ContractStatus = "DRAFT"
	StatusSigned  ContractStatus = "SIGNED"
	StatusRunning ContractStatus = "RUNNING"
	StatusExpired ContractStatus = "EXPIRED"
)

type Party string

const (
	PartyInternal   Party = "INTERNAL"
	PartyExternal   Party = "EXTERNAL"
	PartyGovernment Party = "GOVERNMENT"
	PartyVendor     Party = "VENDOR"
	PartyClient     Party = "CLIENT"
)

// DefaultContractTypes is the built-in catalogue; any free-form type a user
// enters becomes selectable alongside these.
var DefaultContractTypes = []string{
	"Service", "Employment", "NDA", "Lease", "Sales", "Partnership",
}

type Contract struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Title        string         `gorm:"size:255;not null" json:"title"`
	Description  string         `gorm:"type:text" json:"description"`
	StartDate    time.Time      `gorm:"type:date;not null" json:"start_date"`
	EndDate      time.Time      `gorm:"type:date;not null" json:"end_date"`
	Status       ContractStatus `gorm:"type:varchar(10);not null;default:DRAFT" json:"status"`
	Party        *Party         `gorm:"type:varchar(15)" json:"party,omitempty"`
	ContractType string         `gorm:"size:100" json:"contract_type"`
	FileName     string         `gorm:"size:255" json:"file_name"`
	UserID       uint           `gorm:"index;not null" json:"user_id"`
	User         *User          `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// ParseContractStatus is lenient: an unknown value means "no filter", so it
// returns nil rather than an error.
func ParseContractStatus(s string) *ContractStatus {
	switch ContractStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusDraft:
		v := StatusDraft
		return &v
	case StatusSigned:
		v := StatusSigned
		return &v
	case StatusRunning:
		v := StatusRunning
		return &v
	case StatusExpired:
		v := StatusExpired
		return &v
	}
	return nil
}

func ParseParty(s string) *Party {
	switch Party(strings.ToUpper(strings.TrimSpace(s))) {
	case PartyInternal:
		v := PartyInternal
		return &v
	case PartyExternal:
		v := PartyExternal
		return &v
	case PartyGovernment:
		v := PartyGovernment
		return &v
	case PartyVendor:
		v := PartyVendor
		return &v
	case PartyClient:
		v := PartyClient
		return &v
	}
	return nil
}

// ContractFilter is the conjunctive criteria set applied on top of a Scope.
// Nil / empty fields are not applied.
type ContractFilter struct {
	Keyword      string
	Status       *ContractStatus
	Party        *Party
	ContractType string
	FromDate     *time.Time
	ToDate       *time.Time
}

func (f ContractFilter) Empty() bool {
	return strings.TrimSpace(f.Keyword) == "" &&
		f.Status == nil &&
		f.Party == nil &&
		f.ContractType == "" &&
		f.FromDate == nil &&
		f.ToDate == nil
}

// ContractStats are the role-scoped per-status counts for the dashboard
// cards; always computed over the unfiltered universe.
type ContractStats struct {
	Total   int64 `json:"total"`
	Running int64 `json:"running"`
	Signed  int64 `json:"signed"`
	Expired int64 `json:"expired"`
	Draft   int64 `json:"draft"`
}
