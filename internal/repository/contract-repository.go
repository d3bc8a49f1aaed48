package repository

import (
	"errors"
	"log"
	"strings"

	"contracthub/internal/domain"

	"gorm.io/gorm"
)

type ContractRepository interface {
	CreateContract(contract *domain.Contract) (*domain.Contract, error)
	SaveContract(contract *domain.Contract) error
	FindContractByID(id uint) (*domain.Contract, error)
	DeleteContractByID(id uint) error
	// FindScoped returns the contracts visible under the scope, newest
	// (highest id) first.
	FindScoped(scope domain.Scope) ([]domain.Contract, error)
	// FindFiltered applies every supplied criterion conjunctively on top of
	// the scope, same ordering as FindScoped.
	FindFiltered(scope domain.Scope, filter domain.ContractFilter) ([]domain.Contract, error)
	CountScoped(scope domain.Scope, status *domain.ContractStatus) (int64, error)
}

type contractRepository struct {
	db *gorm.DB
}

func NewContractRepository(db *gorm.DB) ContractRepository {
	return &contractRepository{db: db}
}

func (r *contractRepository) CreateContract(contract *domain.Contract) (*domain.Contract, error) {
	if contract == nil {
		return nil, errors.New("nil contract")
	}
	if err := r.db.Create(contract).Error; err != nil {
		log.Printf("create contract error: %v", err)
		return nil, errors.New("failed to create contract")
	}
	return contract, nil
}

func (r *contractRepository) SaveContract(contract *domain.Contract) error {
	if contract == nil {
		return errors.New("nil contract")
	}
	if err := r.db.Save(contract).Error; err != nil {
		log.Printf("save contract error: %v", err)
		return errors.New("failed to save contract")
	}
	return nil
}

func (r *contractRepository) FindContractByID(id uint) (*domain.Contract, error) {
	contract := &domain.Contract{}
	if err := r.db.First(contract, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		log.Printf("find contract by id error: %v", err)
		return nil, errors.New("failed to find contract")
	}
	return contract, nil
}

func (r *contractRepository) DeleteContractByID(id uint) error {
	if err := r.db.Delete(&domain.Contract{}, id).Error; err != nil {
		log.Printf("delete contract error: %v", err)
		return errors.New("failed to delete contract")
	}
	return nil
}

func (r *contractRepository) FindScoped(scope domain.Scope) ([]domain.Contract, error) {
	return r.FindFiltered(scope, domain.ContractFilter{})
}

func (r *contractRepository) FindFiltered(scope domain.Scope, filter domain.ContractFilter) ([]domain.Contract, error) {
	q := r.scoped(scope)

	if kw := strings.TrimSpace(filter.Keyword); kw != "" {
		q = q.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(kw)+"%")
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.Party != nil {
		q = q.Where("party = ?", *filter.Party)
	}
	if filter.ContractType != "" {
		q = q.Where("contract_type = ?", filter.ContractType)
	}
	if filter.FromDate != nil {
		q = q.Where("start_date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		q = q.Where("end_date <= ?", *filter.ToDate)
	}

	var contracts []domain.Contract
	if err := q.Order("id DESC").Find(&contracts).Error; err != nil {
		log.Printf("filter contracts error: %v", err)
		return nil, errors.New("failed to list contracts")
	}
	return contracts, nil
}

func (r *contractRepository) CountScoped(scope domain.Scope, status *domain.ContractStatus) (int64, error) {
	q := r.scoped(scope)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		log.Printf("count contracts error: %v", err)
		return 0, errors.New("failed to count contracts")
	}
	return count, nil
}

func (r *contractRepository) scoped(scope domain.Scope) *gorm.DB {
	q := r.db.Model(&domain.Contract{})
	if !scope.All {
		q = q.Where("user_id = ?", scope.UserID)
	}
	return q
}
