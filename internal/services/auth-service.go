package services

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"contracthub/internal/domain"
	"contracthub/internal/dto"
	"contracthub/internal/helper"
	"contracthub/internal/helper/utils"
	"contracthub/internal/interfaces"
	"contracthub/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

const otpValidity = 5 * time.Minute

type AuthService interface {
	// Login & identity
	Login(username, password string) (*domain.User, error)
	GetUser(userID uint) (*domain.User, error)

	// Registration with OTP. The token identifies one in-progress signup;
	// BeginRegistration mints it, the verify/resend calls present it back.
	BeginRegistration(input dto.RegisterRequest) (string, error)
	VerifyRegistrationOtp(token, otp string) (*domain.User, error)
	ResendRegistrationOtp(token string) error

	// Password reset with OTP (persisted on the user row)
	BeginPasswordReset(email string) error
	VerifyPasswordResetOtp(email, otp string) error
	ResetPassword(email, password, confirmPassword string) error

	// Account maintenance
	ChangePassword(user *domain.User, currentPassword, newPassword string) error
	UpdateProfile(user *domain.User, fullName, email string) error
	DeactivateUser(user *domain.User) error
	RestoreUser(userID uint) error
	PermanentlyDeleteUser(userID uint) error
	AllUsers() ([]domain.User, error)
}

type authService struct {
	repo          repository.UserRepository
	contractRepo  repository.ContractRepository
	files         interfaces.FileStore
	producer      interfaces.ProducerHandler
	auth          helper.Auth
	registrations *registrationStore

	now func() time.Time
}

func NewAuthService(
	repo repository.UserRepository,
	contractRepo repository.ContractRepository,
	files interfaces.FileStore,
	producer interfaces.ProducerHandler,
	auth helper.Auth,
) AuthService {
	s := &authService{
		repo:         repo,
		contractRepo: contractRepo,
		files:        files,
		producer:     producer,
		auth:         auth,
		now:          time.Now,
	}
	// the store shares the service clock, including test overrides
	s.registrations = newRegistrationStore(func() time.Time { return s.now() })
	return s
}

func (s *authService) Login(username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindUserByUsername(username)
	if err != nil || user == nil {
		return nil, domain.ErrInvalidCredentials
	}

	// an inactive account answers exactly like a wrong password
	if user.Status == domain.UserInactive {
		return nil, domain.ErrInvalidCredentials
	}

	if err := s.auth.VerifyPassword(password, user.PasswordHash); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}

func (s *authService) GetUser(userID uint) (*domain.User, error) {
	if userID == 0 {
		return nil, domain.ErrNotFound
	}
	return s.repo.FindUserByID(userID)
}

func (s *authService) BeginRegistration(input dto.RegisterRequest) (string, error) {
	fullName := strings.TrimSpace(input.FullName)
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(strings.ToLower(input.Email))

	if fullName == "" || username == "" || email == "" || input.Password == "" {
		return "", errors.New("invalid inputs")
	}
	if len(username) < 3 || len(username) > 50 {
		return "", errors.New("username must be 3-50 characters")
	}
	if !utils.ValidEmail(email) {
		return "", errors.New("invalid email format")
	}
	if len(input.Password) < 6 {
		return "", domain.ErrPasswordTooShort
	}

	role := domain.RoleUser
	if r := domain.ParseRole(input.Role); r != nil {
		role = *r
	}

	// uniqueness is checked before any OTP goes out
	if taken, err := s.repo.ExistsByUsername(username); err != nil {
		return "", err
	} else if taken {
		return "", domain.ErrUsernameTaken
	}
	if taken, err := s.repo.ExistsByEmail(email); err != nil {
		return "", err
	} else if taken {
		return "", domain.ErrEmailTaken
	}

	otp, err := helper.GenerateOtp()
	if err != nil {
		return "", err
	}

	token, err := newRegistrationToken()
	if err != nil {
		return "", err
	}

	s.registrations.Put(token, pendingRegistration{
		User: domain.User{
			FullName: fullName,
			Username: username,
			Email:    email,
			Role:     role,
			Status:   domain.UserActive,
		},
		Password:  input.Password,
		Otp:       otp,
		OtpExpiry: s.now().Add(otpValidity),
		CreatedAt: s.now(),
	})

	s.publishOtpEmail(email, dto.OtpPurposeRegistration, otp)
	return token, nil
}

func (s *authService) VerifyRegistrationOtp(token, otp string) (*domain.User, error) {
	reg, ok := s.registrations.Get(token)
	if !ok {
		return nil, domain.ErrNoPendingRegistration
	}

	// a wrong attempt neither consumes nor regenerates the code
	if reg.Otp != strings.TrimSpace(otp) {
		return nil, domain.ErrInvalidOtp
	}
	if s.now().After(reg.OtpExpiry) {
		return nil, domain.ErrOtpExpired
	}

	// re-check uniqueness: someone may have claimed the name while the OTP
	// was in flight
	if taken, err := s.repo.ExistsByUsername(reg.User.Username); err != nil {
		return nil, err
	} else if taken {
		s.registrations.Delete(token)
		return nil, domain.ErrUsernameTaken
	}
	if taken, err := s.repo.ExistsByEmail(reg.User.Email); err != nil {
		return nil, err
	} else if taken {
		s.registrations.Delete(token)
		return nil, domain.ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}

	user := reg.User
	user.PasswordHash = string(hashed)

	created, err := s.repo.CreateUser(&user)
	if err != nil {
		return nil, err
	}

	s.registrations.Delete(token)
	return created, nil
}

func (s *authService) ResendRegistrationOtp(token string) error {
	reg, ok := s.registrations.Get(token)
	if !ok {
		return domain.ErrNoPendingRegistration
	}

	otp, err := helper.GenerateOtp()
	if err != nil {
		return err
	}

	// replaces the previous code outright
	if !s.registrations.Reissue(token, otp, s.now().Add(otpValidity)) {
		return domain.ErrNoPendingRegistration
	}

	s.publishOtpEmail(reg.User.Email, dto.OtpPurposeRegistration, otp)
	return nil
}

func (s *authService) BeginPasswordReset(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.repo.FindUserByEmail(email)
	if err != nil || user == nil || user.Status == domain.UserInactive {
		return domain.ErrEmailNotFound
	}

	otp, err := helper.GenerateOtp()
	if err != nil {
		return err
	}

	expiry := s.now().Add(otpValidity)
	user.Otp = &otp
	user.OtpExpiry = &expiry
	if err := s.repo.SaveUser(user); err != nil {
		return err
	}

	s.publishOtpEmail(email, dto.OtpPurposePasswordReset, otp)
	return nil
}

func (s *authService) VerifyPasswordResetOtp(email, otp string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.repo.FindUserByEmail(email)
	if err != nil || user == nil {
		return domain.ErrEmailNotFound
	}

	if user.Otp == nil || *user.Otp != strings.TrimSpace(otp) {
		return domain.ErrInvalidOtp
	}
	if user.OtpExpiry == nil || user.OtpExpiry.Before(s.now()) {
		return domain.ErrOtpExpired
	}

	// the OTP stays on the row: ResetPassword requires it to still be live,
	// so the bare email alone cannot replace a password
	return nil
}

func (s *authService) ResetPassword(email, password, confirmPassword string) error {
	if password != confirmPassword {
		return domain.ErrPasswordMismatch
	}
	if len(password) < 6 {
		return domain.ErrPasswordTooShort
	}

	email = strings.TrimSpace(strings.ToLower(email))
	user, err := s.repo.FindUserByEmail(email)
	if err != nil || user == nil {
		return domain.ErrEmailNotFound
	}

	// deviation from the upstream flow: require a live OTP here instead of
	// trusting the bare email as the continuation key
	if user.Otp == nil {
		return domain.ErrInvalidOtp
	}
	if user.OtpExpiry == nil || user.OtpExpiry.Before(s.now()) {
		return domain.ErrOtpExpired
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return errors.New("failed to hash password")
	}

	user.PasswordHash = string(hashed)
	user.Otp = nil
	user.OtpExpiry = nil
	return s.repo.SaveUser(user)
}

func (s *authService) ChangePassword(user *domain.User, currentPassword, newPassword string) error {
	if user == nil {
		return domain.ErrNotFound
	}
	if err := s.auth.VerifyPassword(currentPassword, user.PasswordHash); err != nil {
		return domain.ErrWrongCurrentPassword
	}
	if len(newPassword) < 6 {
		return domain.ErrPasswordTooShort
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return errors.New("failed to hash password")
	}
	user.PasswordHash = string(hashed)
	return s.repo.SaveUser(user)
}

func (s *authService) UpdateProfile(user *domain.User, fullName, email string) error {
	if user == nil {
		return domain.ErrNotFound
	}
	fullName = strings.TrimSpace(fullName)
	email = strings.TrimSpace(strings.ToLower(email))
	if fullName == "" || !utils.ValidEmail(email) {
		return errors.New("invalid inputs")
	}

	existing, err := s.repo.FindUserByEmail(email)
	if err == nil && existing != nil && existing.ID != user.ID {
		return domain.ErrEmailInUse
	}

	user.FullName = fullName
	user.Email = email
	return s.repo.SaveUser(user)
}

func (s *authService) DeactivateUser(user *domain.User) error {
	if user == nil {
		return domain.ErrNotFound
	}
	now := s.now()
	user.Status = domain.UserInactive
	user.DeletedAt = &now
	return s.repo.SaveUser(user)
}

func (s *authService) RestoreUser(userID uint) error {
	user, err := s.repo.FindUserByID(userID)
	if err != nil {
		return err
	}
	if user.Status == domain.UserActive {
		return domain.ErrUserAlreadyActive
	}
	user.Status = domain.UserActive
	user.DeletedAt = nil
	return s.repo.SaveUser(user)
}

func (s *authService) PermanentlyDeleteUser(userID uint) error {
	user, err := s.repo.FindUserByID(userID)
	if err != nil {
		return err
	}

	// attachments first; they live outside the transaction
	contracts, err := s.contractRepo.FindScoped(domain.Scope{UserID: user.ID})
	if err != nil {
		return err
	}
	for _, c := range contracts {
		if c.FileName != "" {
			s.files.Delete(c.FileName)
		}
	}

	return s.repo.DeleteUserCascade(user.ID)
}

func (s *authService) AllUsers() ([]domain.User, error) {
	return s.repo.FindAllUsers()
}

func (s *authService) publishOtpEmail(email, purpose, otp string) {
	if s.producer == nil {
		return
	}
	payload, err := json.Marshal(dto.OtpEmailEvent{Email: email, Purpose: purpose, Otp: otp})
	if err != nil {
		return
	}
	// best effort: a lost mail event must not abort the committed flow
	if err := s.producer.PublishMessage([]byte("user.otp_email"), payload); err != nil {
		log.Printf("otp email publish failed: %v", err)
	}
}

func newRegistrationToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", errors.New("failed to generate registration token")
	}
	return hex.EncodeToString(b), nil
}
