package model

import "time"

// Role restricts what a user may do through the API.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleVendor   Role = "vendor"
	RoleAdmin    Role = "admin"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleVendor, RoleAdmin:
		return true
	}
	return false
}

// Address is a postal address attached to users and order snapshots.
type Address struct {
	Street     string
	City       string
	Province   string
	PostalCode string
	Country    string
}

// VendorProfile carries storefront details for vendor accounts.
type VendorProfile struct {
	StoreName string
	StoreSlug string
	IsActive  bool
}

// User represents a marketplace account of any role.
type User struct {
	ID            int64
	Role          Role
	Name          string
	Email         string
	PasswordHash  string
	Address       Address
	VendorProfile *VendorProfile
	TotalOwed     float64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// DisplayVendorName picks the storefront name, falling back to the account name.
func (u *User) DisplayVendorName() string {
	if u == nil {
		return "Unknown Vendor"
	}
	if u.VendorProfile != nil && u.VendorProfile.StoreName != "" {
		return u.VendorProfile.StoreName
	}
	if u.Name != "" {
		return u.Name
	}
	return "Unknown Vendor"
}
