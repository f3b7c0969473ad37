package entities

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"task-service/internal/domain/apperrors"
)

const MinPasswordLength = 7

type User struct {
	Id        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
	Name      string
	Email     string
	Password  string
	Age       int
	Tokens    []string
	Avatar    []byte
}

func NewUser(name, email, password string, age int) *User {
	now := time.Now()
	u := &User{
		Id:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
		Name:      name,
		Email:     email,
		Password:  password,
		Age:       age,
		Tokens:    make([]string, 0),
	}
	u.Normalize()
	return u
}

// Normalize trims name/email/password and lowercases the email. Runs on
// construction and again after profile updates.
func (u *User) Normalize() {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.Password = strings.TrimSpace(u.Password)
}

// userConstraints is the declarative rule set checked by validate. Each rule
// returns an empty string when satisfied.
var userConstraints = []func(*User) string{
	func(u *User) string {
		if u.Name == "" {
			return "name is required"
		}
		return ""
	},
	func(u *User) string {
		if u.Email == "" {
			return "email is required"
		}
		if _, err := mail.ParseAddress(u.Email); err != nil {
			return "email is invalid"
		}
		return ""
	},
	func(u *User) string {
		if u.Age < 0 {
			return "age must be a positive number"
		}
		return ""
	},
}

func (u *User) validate() error {
	for _, check := range userConstraints {
		if msg := check(u); msg != "" {
			return apperrors.Validation(msg)
		}
	}
	return nil
}

// ValidatePassword checks the plaintext rules. It must run before the
// password is replaced by its digest; the digest itself never re-enters
// validation.
func ValidatePassword(plain string) error {
	plain = strings.TrimSpace(plain)
	if len(plain) < MinPasswordLength {
		return apperrors.Validationf("password must be at least %d characters", MinPasswordLength)
	}
	if strings.Contains(strings.ToLower(plain), "password") {
		return apperrors.Validation(`password is not allowed to contain "password"`)
	}
	return nil
}

func (u *User) HashPassword() error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword compares plaintext against the stored digest. bcrypt does
// the constant-work comparison.
func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
}

// AddToken appends a session token, newest last.
func (u *User) AddToken(token string) {
	u.Tokens = append(u.Tokens, token)
	u.UpdatedAt = time.Now()
}

// RemoveToken removes exactly one matching token from the active set.
func (u *User) RemoveToken(token string) {
	for i, t := range u.Tokens {
		if t == token {
			u.Tokens = append(u.Tokens[:i], u.Tokens[i+1:]...)
			break
		}
	}
	u.UpdatedAt = time.Now()
}

func (u *User) ClearTokens() {
	u.Tokens = make([]string, 0)
	u.UpdatedAt = time.Now()
}

// HasToken reports whether token is in the active session set.
func (u *User) HasToken(token string) bool {
	for _, t := range u.Tokens {
		if t == token {
			return true
		}
	}
	return false
}

func (u *User) SetAvatar(data []byte) {
	u.Avatar = data
	u.UpdatedAt = time.Now()
}
