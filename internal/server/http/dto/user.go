package dto

import (
	"time"

	"github.com/cartcloud/backend/internal/domain/model"
)

// AddressPayload is a postal address in requests and responses.
type AddressPayload struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// VendorProfilePayload carries storefront fields for vendor accounts.
type VendorProfilePayload struct {
	StoreName string `json:"storeName"`
	StoreSlug string `json:"storeSlug"`
	IsActive  bool   `json:"isActive"`
}

// CreateUserRequest describes the signup payload.
type CreateUserRequest struct {
	Name          string                `json:"name" binding:"required"`
	Email         string                `json:"email" binding:"required,email"`
	Password      string                `json:"password" binding:"required"`
	Role          string                `json:"role"`
	Address       *AddressPayload       `json:"address"`
	VendorProfile *VendorProfilePayload `json:"vendorProfile"`
}

// UpdateUserRequest describes a partial profile update; omitted fields keep
// their stored values.
type UpdateUserRequest struct {
	Name          *string               `json:"name"`
	Email         *string               `json:"email"`
	Address       *AddressPayload       `json:"address"`
	VendorProfile *VendorProfilePayload `json:"vendorProfile"`
}

// ChangePasswordRequest describes the password rotation payload.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID            int64                 `json:"id"`
	Role          string                `json:"role"`
	Name          string                `json:"name"`
	Email         string                `json:"email"`
	Address       AddressPayload        `json:"address"`
	VendorProfile *VendorProfilePayload `json:"vendorProfile,omitempty"`
	TotalOwed     float64               `json:"totalOwed"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
}

// NewAddressPayload converts a domain address.
func NewAddressPayload(a model.Address) AddressPayload {
	return AddressPayload{
		Street:     a.Street,
		City:       a.City,
		Province:   a.Province,
		PostalCode: a.PostalCode,
		Country:    a.Country,
	}
}

// Address converts the payload back to a domain address.
func (p AddressPayload) Address() model.Address {
	return model.Address{
		Street:     p.Street,
		City:       p.City,
		Province:   p.Province,
		PostalCode: p.PostalCode,
		Country:    p.Country,
	}
}

// NewUserResponse converts a domain user.
func NewUserResponse(u *model.User) UserResponse {
	resp := UserResponse{
		ID:        u.ID,
		Role:      string(u.Role),
		Name:      u.Name,
		Email:     u.Email,
		Address:   NewAddressPayload(u.Address),
		TotalOwed: u.TotalOwed,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if u.VendorProfile != nil {
		resp.VendorProfile = &VendorProfilePayload{
			StoreName: u.VendorProfile.StoreName,
			StoreSlug: u.VendorProfile.StoreSlug,
			IsActive:  u.VendorProfile.IsActive,
		}
	}
	return resp
}
