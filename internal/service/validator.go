package service

import (
	"net/mail"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"jobboard/internal/domain"
)

// ValidationError describe la primera regla violada de un payload.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// RegisterRequest es el payload crudo de registro tal como llega del caller.
type RegisterRequest struct {
	Name            string `json:"name"`
	UserName        string `json:"userName"`
	Email           string `json:"email"`
	PhoneNumber     string `json:"phoneNumber"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Role            string `json:"role"`
}

// RegisterData es el payload de registro ya normalizado y tipado.
type RegisterData struct {
	Name        string
	UserName    string
	Email       string
	PhoneNumber string
	Password    string
	Role        domain.Role
}

// LoginRequest es el payload crudo de login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginData es el payload de login ya normalizado.
type LoginData struct {
	Email    string
	Password string
}

var userNamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// passwordSpecials es el conjunto fijo de caracteres especiales admitidos.
const passwordSpecials = "@$!%*?&"

// ValidateRegistration normaliza y valida un payload de registro. Las reglas
// se evalúan en orden de declaración y se corta en la primera violación.
func ValidateRegistration(req RegisterRequest) (RegisterData, error) {
	name := strings.TrimSpace(req.Name)
	if utf8.RuneCountInString(name) < 2 {
		return RegisterData{}, &ValidationError{Field: "name", Message: "Name must be at least 2 characters long"}
	}
	if utf8.RuneCountInString(name) > 100 {
		return RegisterData{}, &ValidationError{Field: "name", Message: "Name must be at most 100 characters long"}
	}

	userName := strings.ToLower(strings.TrimSpace(req.UserName))
	if len(userName) < 3 {
		return RegisterData{}, &ValidationError{Field: "userName", Message: "Username must be at least 3 characters long"}
	}
	if len(userName) > 30 {
		return RegisterData{}, &ValidationError{Field: "userName", Message: "Username must be at most 30 characters long"}
	}
	if !userNamePattern.MatchString(userName) {
		return RegisterData{}, &ValidationError{Field: "userName", Message: "Username can only contain letters, numbers, and underscores"}
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validEmail(email) {
		return RegisterData{}, &ValidationError{Field: "email", Message: "Invalid email address"}
	}

	if err := validatePassword(req.Password); err != nil {
		return RegisterData{}, err
	}

	role := domain.RoleApplicant
	if trimmed := strings.TrimSpace(req.Role); trimmed != "" {
		role = domain.Role(trimmed)
		if role != domain.RoleApplicant && role != domain.RoleEmployer {
			return RegisterData{}, &ValidationError{Field: "role", Message: "Role must be either 'applicant' or 'employer'"}
		}
	}

	if req.ConfirmPassword != "" && req.ConfirmPassword != req.Password {
		return RegisterData{}, &ValidationError{Field: "confirmPassword", Message: "Passwords do not match"}
	}

	return RegisterData{
		Name:        name,
		UserName:    userName,
		Email:       email,
		PhoneNumber: strings.TrimSpace(req.PhoneNumber),
		Password:    req.Password,
		Role:        role,
	}, nil
}

// ValidateLogin normaliza y valida un payload de login.
func ValidateLogin(req LoginRequest) (LoginData, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validEmail(email) {
		return LoginData{}, &ValidationError{Field: "email", Message: "Invalid email address"}
	}
	if len(req.Password) < 8 {
		return LoginData{}, &ValidationError{Field: "password", Message: "Password must be at least 8 characters long"}
	}
	return LoginData{Email: email, Password: req.Password}, nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return &ValidationError{Field: "password", Message: "Password must be at least 8 characters long"}
	}
	if len(password) > 100 {
		return &ValidationError{Field: "password", Message: "Password must be at most 100 characters long"}
	}
	var hasLower, hasUpper, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSpecials, r):
			hasSpecial = true
		}
	}
	if !hasLower || !hasUpper || !hasDigit || !hasSpecial {
		return &ValidationError{
			Field:   "password",
			Message: "Password must contain at least one uppercase letter, one lowercase letter, one number, and one special character",
		}
	}
	return nil
}

func validEmail(email string) bool {
	if email == "" || strings.ContainsAny(email, " \t") {
		return false
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	// Exige un dominio con punto, como la validación original.
	at := strings.LastIndex(email, "@")
	return strings.Contains(email[at+1:], ".")
}
