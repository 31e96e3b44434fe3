package dto

import (
	"time"

	"github.com/shoppro/storefront/internal/domain/entity"
	"github.com/shoppro/storefront/internal/domain/usecase/catalog"
)

// CreateProductRequest represents the admin request for listing a product
type CreateProductRequest struct {
	Name            string    `json:"name" binding:"required"`
	OriginalPrice   int64     `json:"originalPrice" binding:"required,gt=0"`
	StartDate       time.Time `json:"startDate" binding:"required"`
	EndDate         time.Time `json:"endDate" binding:"required"`
	AccountUsername string    `json:"accountUsername"`
	AccountPassword string    `json:"accountPassword"`
	AccountCookie   string    `json:"accountCookie"`
}

// RotateCredentialsRequest replaces a product's shared-account login details
type RotateCredentialsRequest struct {
	AccountUsername string `json:"accountUsername"`
	AccountPassword string `json:"accountPassword"`
	AccountCookie   string `json:"accountCookie"`
}

// CredentialsResponse exposes shared-account login details. Only order
// snapshots and the admin product view carry it; listings never do.
type CredentialsResponse struct {
	AccountUsername string `json:"accountUsername"`
	AccountPassword string `json:"accountPassword"`
	AccountCookie   string `json:"accountCookie,omitempty"`
}

// ListingResponse is the storefront view of a product, priced for today
type ListingResponse struct {
	ID              uint64    `json:"id"`
	Name            string    `json:"name"`
	OriginalPrice   int64     `json:"originalPrice"`
	OriginalDisplay string    `json:"originalDisplay"`
	Price           int64     `json:"price"`
	PriceDisplay    string    `json:"priceDisplay"`
	DaysRemaining   int       `json:"daysRemaining"`
	TotalDays       int       `json:"totalDays"`
	StartDate       time.Time `json:"startDate"`
	EndDate         time.Time `json:"endDate"`
	Expired         bool      `json:"expired"`
}

// ProductAdminResponse is the admin console view, credentials included
type ProductAdminResponse struct {
	ID            uint64              `json:"id"`
	Name          string              `json:"name"`
	OriginalPrice int64               `json:"originalPrice"`
	StartDate     time.Time           `json:"startDate"`
	EndDate       time.Time           `json:"endDate"`
	Credentials   CredentialsResponse `json:"credentials"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

// Credentials converts the request fields to the domain value
func (r CreateProductRequest) Credentials() entity.Credentials {
	return entity.Credentials{
		AccountUsername: r.AccountUsername,
		AccountPassword: r.AccountPassword,
		AccountCookie:   r.AccountCookie,
	}
}

// Credentials converts the request fields to the domain value
func (r RotateCredentialsRequest) Credentials() entity.Credentials {
	return entity.Credentials{
		AccountUsername: r.AccountUsername,
		AccountPassword: r.AccountPassword,
		AccountCookie:   r.AccountCookie,
	}
}

// FromListing maps a catalog listing to its API representation
func FromListing(listing catalog.Listing) ListingResponse {
	return ListingResponse{
		ID:              listing.ID,
		Name:            listing.Name,
		OriginalPrice:   listing.OriginalPrice,
		OriginalDisplay: entity.FormatVND(listing.OriginalPrice),
		Price:           listing.Price,
		PriceDisplay:    entity.FormatVND(listing.Price),
		DaysRemaining:   listing.DaysRemaining,
		TotalDays:       listing.TotalDays,
		StartDate:       listing.StartDate,
		EndDate:         listing.EndDate,
		Expired:         listing.Expired,
	}
}

// FromListings maps a slice of catalog listings
func FromListings(listings []catalog.Listing) []ListingResponse {
	out := make([]ListingResponse, 0, len(listings))
	for _, listing := range listings {
		out = append(out, FromListing(listing))
	}
	return out
}

// FromProduct maps a product entity to its admin representation
func FromProduct(product *entity.Product) ProductAdminResponse {
	return ProductAdminResponse{
		ID:            product.ID,
		Name:          product.Name,
		OriginalPrice: product.OriginalPrice,
		StartDate:     product.StartDate,
		EndDate:       product.EndDate,
		Credentials: CredentialsResponse{
			AccountUsername: product.Credentials.AccountUsername,
			AccountPassword: product.Credentials.AccountPassword,
			AccountCookie:   product.Credentials.AccountCookie,
		},
		CreatedAt: product.CreatedAt,
		UpdatedAt: product.UpdatedAt,
	}
}
