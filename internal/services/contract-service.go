package services

import (
	"errors"
	"strings"
	"time"

	"contracthub/internal/domain"
	"contracthub/internal/dto"
	"contracthub/internal/interfaces"
	"contracthub/internal/repository"
)

const dateLayout = "2006-01-02"

// Upload carries one multipart attachment into the service layer.
type Upload struct {
	Bytes       []byte
	ContentType string
	Name        string
}

type ContractService interface {
	ContractsForUser(user *domain.User) ([]domain.Contract, error)
	FilterContracts(user *domain.User, filter domain.ContractFilter) ([]domain.Contract, error)
	StatsForUser(user *domain.User) (domain.ContractStats, error)
	// ContractTypes returns the default catalogue first, then any custom
	// values in the order they are first seen among the caller's visible
	// contracts.
	ContractTypes(user *domain.User) ([]string, error)

	CreateContract(user *domain.User, input dto.ContractRequest, file *Upload) (*domain.Contract, error)
	GetContract(user *domain.User, id uint) (*domain.Contract, error)
	UpdateContract(user *domain.User, id uint, input dto.ContractRequest, file *Upload) (*domain.Contract, error)
	DeleteContract(user *domain.User, id uint) error

	Reports(user *domain.User) (*dto.ReportsResponse, error)
}

type contractService struct {
	repo  repository.ContractRepository
	files interfaces.FileStore
}

func NewContractService(repo repository.ContractRepository, files interfaces.FileStore) ContractService {
	return &contractService{repo: repo, files: files}
}

func (s *contractService) ContractsForUser(user *domain.User) ([]domain.Contract, error) {
	return s.repo.FindScoped(domain.ScopeFor(user))
}

func (s *contractService) FilterContracts(user *domain.User, filter domain.ContractFilter) ([]domain.Contract, error) {
	return s.repo.FindFiltered(domain.ScopeFor(user), filter)
}

func (s *contractService) StatsForUser(user *domain.User) (domain.ContractStats, error) {
	scope := domain.ScopeFor(user)

	var stats domain.ContractStats
	var err error
	if stats.Total, err = s.repo.CountScoped(scope, nil); err != nil {
		return stats, err
	}
	for _, c := range []struct {
		status domain.ContractStatus
		dest   *int64
	}{
		{domain.StatusRunning, &stats.Running},
		{domain.StatusSigned, &stats.Signed},
		{domain.StatusExpired, &stats.Expired},
		{domain.StatusDraft, &stats.Draft},
	} {
		status := c.status
		if *c.dest, err = s.repo.CountScoped(scope, &status); err != nil {
			return stats, err
		}
	}
	return stats, nil
}

func (s *contractService) ContractTypes(user *domain.User) ([]string, error) {
	contracts, err := s.ContractsForUser(user)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(domain.DefaultContractTypes))
	types := make([]string, 0, len(domain.DefaultContractTypes))
	for _, t := range domain.DefaultContractTypes {
		seen[t] = true
		types = append(types, t)
	}
	for _, c := range contracts {
		if c.ContractType != "" && !seen[c.ContractType] {
			seen[c.ContractType] = true
			types = append(types, c.ContractType)
		}
	}
	return types, nil
}

func (s *contractService) CreateContract(user *domain.User, input dto.ContractRequest, file *Upload) (*domain.Contract, error) {
	contract, err := contractFromInput(input)
	if err != nil {
		return nil, err
	}
	contract.UserID = user.ID

	if file != nil && len(file.Bytes) > 0 {
		stored, err := s.files.Store(file.Bytes, file.ContentType, file.Name)
		if err != nil {
			return nil, err
		}
		contract.FileName = stored
	}

	return s.repo.CreateContract(contract)
}

func (s *contractService) GetContract(user *domain.User, id uint) (*domain.Contract, error) {
	contract, err := s.repo.FindContractByID(id)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin() && contract.UserID != user.ID {
		return nil, domain.ErrAccessDenied
	}
	return contract, nil
}

func (s *contractService) UpdateContract(user *domain.User, id uint, input dto.ContractRequest, file *Upload) (*domain.Contract, error) {
	contract, err := s.GetContract(user, id)
	if err != nil {
		return nil, err
	}

	updated, err := contractFromInput(input)
	if err != nil {
		return nil, err
	}

	contract.Title = updated.Title
	contract.Description = updated.Description
	contract.StartDate = updated.StartDate
	contract.EndDate = updated.EndDate
	contract.Status = updated.Status
	contract.Party = updated.Party
	contract.ContractType = updated.ContractType

	if file != nil && len(file.Bytes) > 0 {
		stored, err := s.files.Store(file.Bytes, file.ContentType, file.Name)
		if err != nil {
			return nil, err
		}
		if contract.FileName != "" {
			s.files.Delete(contract.FileName)
		}
		contract.FileName = stored
	}

	if err := s.repo.SaveContract(contract); err != nil {
		return nil, err
	}
	return contract, nil
}

func (s *contractService) DeleteContract(user *domain.User, id uint) error {
	contract, err := s.GetContract(user, id)
	if err != nil {
		return err
	}
	if contract.FileName != "" {
		s.files.Delete(contract.FileName)
	}
	return s.repo.DeleteContractByID(contract.ID)
}

func (s *contractService) Reports(user *domain.User) (*dto.ReportsResponse, error) {
	stats, err := s.StatsForUser(user)
	if err != nil {
		return nil, err
	}
	contracts, err := s.ContractsForUser(user)
	if err != nil {
		return nil, err
	}

	partyCounts := map[string]int64{
		string(domain.PartyInternal):   0,
		string(domain.PartyExternal):   0,
		string(domain.PartyGovernment): 0,
		string(domain.PartyVendor):     0,
		string(domain.PartyClient):     0,
		"NONE":                         0,
	}
	typeCounts := map[string]int64{}

	for _, c := range contracts {
		if c.Party != nil {
			partyCounts[string(*c.Party)]++
		} else {
			partyCounts["NONE"]++
		}
		if c.ContractType == "" {
			typeCounts["Unspecified"]++
		} else {
			typeCounts[c.ContractType]++
		}
	}

	return &dto.ReportsResponse{
		Stats:      stats,
		PartyCount: partyCounts,
		TypeCounts: typeCounts,
	}, nil
}

func contractFromInput(input dto.ContractRequest) (*domain.Contract, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, errors.New("title is required")
	}

	start, err := time.Parse(dateLayout, strings.TrimSpace(input.StartDate))
	if err != nil {
		return nil, errors.New("invalid input, please check your dates and try again")
	}
	end, err := time.Parse(dateLayout, strings.TrimSpace(input.EndDate))
	if err != nil {
		return nil, errors.New("invalid input, please check your dates and try again")
	}

	status := domain.StatusDraft
	if v := domain.ParseContractStatus(input.Status); v != nil {
		status = *v
	}

	return &domain.Contract{
		Title:        title,
		Description:  strings.TrimSpace(input.Description),
		StartDate:    start,
		EndDate:      end,
		Status:       status,
		Party:        domain.ParseParty(input.Party),
		ContractType: strings.TrimSpace(input.ContractType),
	}, nil
}
