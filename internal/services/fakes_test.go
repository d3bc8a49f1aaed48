package services

import (
	"sort"
	"strings"
	"sync"

	"contracthub/internal/domain"
)

// In-memory stand-ins for the gorm repositories. They reproduce the query
// semantics the services rely on (scoping, conjunctive filters, ordering)
// without a database.

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: map[uint]*domain.User{}}
}

func (r *fakeUserRepo) CreateUser(user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *user
	cp.ID = r.nextID
	r.nextID++
	r.users[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *fakeUserRepo) SaveUser(user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *user
	r.users[cp.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindUserByID(id uint) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindUserByUsername(username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeUserRepo) FindUserByEmail(email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeUserRepo) ExistsByUsername(username string) (bool, error) {
	_, err := r.FindUserByUsername(username)
	return err == nil, nil
}

func (r *fakeUserRepo) ExistsByEmail(email string) (bool, error) {
	_, err := r.FindUserByEmail(email)
	return err == nil, nil
}

func (r *fakeUserRepo) FindAllUsers() ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeUserRepo) DeleteUserCascade(userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, userID)
	return nil
}

type fakeContractRepo struct {
	mu        sync.Mutex
	nextID    uint
	contracts map[uint]*domain.Contract
}

func newFakeContractRepo() *fakeContractRepo {
	return &fakeContractRepo{nextID: 1, contracts: map[uint]*domain.Contract{}}
}

func (r *fakeContractRepo) CreateContract(contract *domain.Contract) (*domain.Contract, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *contract
	cp.ID = r.nextID
	r.nextID++
	r.contracts[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *fakeContractRepo) SaveContract(contract *domain.Contract) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *contract
	r.contracts[cp.ID] = &cp
	return nil
}

func (r *fakeContractRepo) FindContractByID(id uint) (*domain.Contract, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.contracts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeContractRepo) DeleteContractByID(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.contracts, id)
	return nil
}

func (r *fakeContractRepo) FindScoped(scope domain.Scope) ([]domain.Contract, error) {
	return r.FindFiltered(scope, domain.ContractFilter{})
}

func (r *fakeContractRepo) FindFiltered(scope domain.Scope, filter domain.ContractFilter) ([]domain.Contract, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.Contract
	for _, c := range r.contracts {
		if !scope.All && c.UserID != scope.UserID {
			continue
		}
		if kw := strings.TrimSpace(filter.Keyword); kw != "" &&
			!strings.Contains(strings.ToLower(c.Title), strings.ToLower(kw)) {
			continue
		}
		if filter.Status != nil && c.Status != *filter.Status {
			continue
		}
		if filter.Party != nil && (c.Party == nil || *c.Party != *filter.Party) {
			continue
		}
		if filter.ContractType != "" && c.ContractType != filter.ContractType {
			continue
		}
		if filter.FromDate != nil && c.StartDate.Before(*filter.FromDate) {
			continue
		}
		if filter.ToDate != nil && c.EndDate.After(*filter.ToDate) {
			continue
		}
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *fakeContractRepo) CountScoped(scope domain.Scope, status *domain.ContractStatus) (int64, error) {
	contracts, _ := r.FindFiltered(scope, domain.ContractFilter{Status: status})
	return int64(len(contracts)), nil
}

type fakeNotificationRepo struct {
	mu            sync.Mutex
	nextID        uint
	notifications map[uint]*domain.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{nextID: 1, notifications: map[uint]*domain.Notification{}}
}

func (r *fakeNotificationRepo) CreateNotification(n *domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *n
	cp.ID = r.nextID
	r.nextID++
	r.notifications[cp.ID] = &cp
	n.ID = cp.ID
	return nil
}

func (r *fakeNotificationRepo) SaveNotification(n *domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *n
	r.notifications[cp.ID] = &cp
	return nil
}

func (r *fakeNotificationRepo) SaveNotifications(ns []domain.Notification) error {
	for i := range ns {
		if err := r.SaveNotification(&ns[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeNotificationRepo) FindNotificationByID(id uint) (*domain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.notifications[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *n
	return &cp, nil
}

func (r *fakeNotificationRepo) DeleteNotification(n *domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.notifications, n.ID)
	return nil
}

func (r *fakeNotificationRepo) FindByUser(userID uint) ([]domain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Notification
	for _, n := range r.notifications {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *fakeNotificationRepo) FindUnreadByUser(userID uint) ([]domain.Notification, error) {
	all, _ := r.FindByUser(userID)
	var out []domain.Notification
	for _, n := range all {
		if !n.Read {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) CountUnreadByUser(userID uint) (int64, error) {
	unread, _ := r.FindUnreadByUser(userID)
	return int64(len(unread)), nil
}

type fakeFileStore struct {
	mu      sync.Mutex
	nextID  int
	files   map[string][]byte
	deleted []string
}

func newFakeFileStore() *fakeFileStore {
	return &fakeFileStore{files: map[string][]byte{}}
}

func (s *fakeFileStore) Store(b []byte, contentType, originalName string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	name := "stored-" + originalName
	s.files[name] = b
	return name, nil
}

func (s *fakeFileStore) Load(fileName string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.files[fileName]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

func (s *fakeFileStore) Path(fileName string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.files[fileName]; !ok {
		return "", domain.ErrNotFound
	}
	return "/tmp/" + fileName, nil
}

func (s *fakeFileStore) Delete(fileName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, fileName)
	s.deleted = append(s.deleted, fileName)
}

type fakeProducer struct {
	mu       sync.Mutex
	messages [][]byte
}

func (p *fakeProducer) PublishMessage(key, value []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, value)
	return nil
}

func (p *fakeProducer) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.messages)
}

func (p *fakeProducer) last() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.messages) == 0 {
		return nil
	}
	return p.messages[len(p.messages)-1]
}
