package domain

import (
	"strings"
	"time"
)

// Role is the closed set of identities the portal knows about.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is one of the enumerated roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleAdmin:
		return true
	}
	return false
}

// ParseRole converts untrusted input into a Role. An empty string yields the
// default role.
func ParseRole(s string) (Role, error) {
	if s == "" {
		return RoleCustomer, nil
	}
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", NewValidationError("role must be one of: customer, admin")
	}
	return r, nil
}

// Address is the optional postal address attached to users and applications.
type Address struct {
	HouseNumber string `json:"houseNumber" bson:"house_number"`
	Street      string `json:"street" bson:"street"`
	City        string `json:"city" bson:"city"`
	State       string `json:"state" bson:"state"`
	Pincode     string `json:"pincode" bson:"pincode"`
}

// Merge overlays the non-empty fields of patch onto a.
func (a Address) Merge(patch Address) Address {
	if patch.HouseNumber != "" {
		a.HouseNumber = patch.HouseNumber
	}
	if patch.Street != "" {
		a.Street = patch.Street
	}
	if patch.City != "" {
		a.City = patch.City
	}
	if patch.State != "" {
		a.State = patch.State
	}
	if patch.Pincode != "" {
		a.Pincode = patch.Pincode
	}
	return a
}

// User models a registered identity.
type User struct {
	ID           string     `json:"id"`
	FullName     string     `json:"fullName"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	Address      *Address   `json:"address,omitempty"`
	DOB          *time.Time `json:"dob,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// Public returns a copy of u without the password hash.
func (u *User) Public() *User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.PasswordHash = ""
	return &clone
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// NormalizeEmail lower-cases and trims an address so lookups and the unique
// index agree on identity.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ProfileUpdate carries the mutable profile fields. Empty strings and nil
// pointers keep the current value.
type ProfileUpdate struct {
	FullName string
	Email    string
	Phone    string
	DOB      *time.Time
	Address  *Address
}
