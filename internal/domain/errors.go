package domain

import "errors"

// Service errors surfaced to the request boundary. Handlers translate these
// into a status code plus a user-visible message; none of them are fatal.
var (
	ErrInvalidCredentials    = errors.New("invalid username or password")
	ErrUsernameTaken         = errors.New("username already exists")
	ErrEmailTaken            = errors.New("email already exists")
	ErrNoPendingRegistration = errors.New("no registration in progress")
	ErrInvalidOtp            = errors.New("invalid OTP")
	ErrOtpExpired            = errors.New("OTP has expired, please request a new one")
	ErrEmailNotFound         = errors.New("no account found with that email")
	ErrPasswordMismatch      = errors.New("passwords do not match")
	ErrPasswordTooShort      = errors.New("password must be at least 6 characters")
	ErrWrongCurrentPassword  = errors.New("current password is incorrect")
	ErrAccessDenied          = errors.New("access denied")
	ErrNotFound              = errors.New("not found")
	ErrFileTooLarge          = errors.New("file size exceeds the maximum limit of 5 MB")
	ErrUnsupportedFileType   = errors.New("invalid file type, only PDF, JPG and PNG are allowed")
	ErrEmailInUse            = errors.New("email already in use by another account")
	ErrUserAlreadyActive     = errors.New("user is already active")
)
