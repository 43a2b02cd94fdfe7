package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"travelworld/db"
	"travelworld/utils"

	"gorm.io/gorm"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt time.Time
	FirstName string `gorm:"type:varchar(100)"`
	LastName  string `gorm:"type:varchar(100)"`
	Contact   string `gorm:"type:varchar(20)"`
	Email     string `gorm:"type:varchar(150);index:uniq_email,unique;not null"`
	Password  string `gorm:"type:varchar(255)" json:"-"` // bcrypt hash
	Role      Role   `gorm:"type:varchar(10);not null;default:user"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// UserCreate registers a new user with the "user" role.
// Returns ErrEmailExists if the email is already taken.
func UserCreate(firstName, lastName, contact, email, plainTextPassword string) (u User, err error) {
	u.FirstName = strings.TrimSpace(firstName)
	u.LastName = strings.TrimSpace(lastName)
	u.Contact = strings.TrimSpace(contact)
	u.Email = normalizeEmail(email)
	u.Role = RoleUser
	if _, err = UserByEmail(u.Email); err == nil {
		return User{}, ErrEmailExists
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}
	if err = u.SetPassword(plainTextPassword); err != nil {
		return User{}, err
	}
	// The unique index still guards against two concurrent registrations
	if err = db.Instance.Create(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return User{}, ErrEmailExists
		}
		return User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

func UserByEmail(email string) (u User, err error) {
	err = db.Instance.First(&u, "email = ?", normalizeEmail(email)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return User{}, ErrNotFound
	}
	return
}

func UserByID(id uint64) (u User, err error) {
	err = db.Instance.First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return User{}, ErrNotFound
	}
	return
}

func (u *User) SetPassword(plainTextPassword string) (err error) {
	u.Password, err = utils.HashPassword(plainTextPassword)
	return
}

// UserLogin returns ErrInvalidCredentials both for an unknown email and a wrong password
func UserLogin(email, plainTextPassword string) (User, error) {
	u, err := UserByEmail(email)
	if errors.Is(err, ErrNotFound) {
		return User{}, ErrInvalidCredentials
	} else if err != nil {
		return User{}, err
	}
	if !utils.CheckPassword(u.Password, plainTextPassword) {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

// SeedAdmin creates the admin account if the email is not taken yet
func SeedAdmin(email, plainTextPassword string) (created bool, err error) {
	if _, err = UserByEmail(email); err == nil {
		return false, nil
	} else if !errors.Is(err, ErrNotFound) {
		return false, err
	}
	u := User{
		FirstName: "Admin",
		LastName:  "User",
		Email:     normalizeEmail(email),
		Role:      RoleAdmin,
	}
	if err = u.SetPassword(plainTextPassword); err != nil {
		return false, err
	}
	return true, db.Instance.Create(&u).Error
}

func (u *User) DisplayName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) HasRole(required Role) bool {
	return required == RoleUser || u.Role == required
}

func (u *User) HasRoles(required []Role) bool {
	for _, role := range required {
		if !u.HasRole(role) {
			return false
		}
	}
	return true
}
