package model

import "time"

// Admin is an internal operator account. Admins are provisioned out-of-band
// and linked to the external identity provider through AuthID; this service
// only ever reads them and updates their settings.
type Admin struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	AuthID     string    `json:"authId"`
	SMTPHost   string    `json:"-"`
	SMTPPort   int       `json:"-"`
	SMTPUser   string    `json:"-"`
	SMTPPass   string    `json:"-"`
	RefundDays int       `json:"refundDays"`
	Image      string    `json:"image,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// AdminSettings is the mutable portion of an Admin record.
type AdminSettings struct {
	SMTPHost   string `json:"smtpHost"`
	SMTPPort   int    `json:"smtpPort"`
	SMTPUser   string `json:"smtpUser"`
	SMTPPass   string `json:"smtpPass"`
	RefundDays int    `json:"refundDays"`
	Image      string `json:"image"`
}

// Rider is a delivery-partner applicant. Created by the public registration
// flow; only its status and reason are mutated here.
type Rider struct {
	ID            string      `json:"id"`
	FirstName     string      `json:"firstName"`
	LastName      string      `json:"lastName"`
	Email         string      `json:"email"`
	Phone         string      `json:"phone"`
	VehicleType   string      `json:"vehicleType"`
	LicenseNumber string      `json:"licenseNumber"`
	Status        RiderStatus `json:"status"`
	StatusReason  string      `json:"statusReason,omitempty"`
	Version       int64       `json:"version"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

// Product is a marketplace listing. Only Approved products are shown to
// customers; that filter lives with the storefront, not here.
type Product struct {
	ID            string        `json:"id"`
	VendorID      string        `json:"vendorId"`
	CategoryID    string        `json:"categoryId"`
	SubcategoryID *string       `json:"subcategoryId,omitempty"`
	Name          string        `json:"name"`
	PriceCents    int64         `json:"priceCents"`
	Status        ProductStatus `json:"adminApprovalStatus"`
	Version       int64         `json:"version"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// ProductVariant rows are deleted with their product (ON DELETE CASCADE).
type ProductVariant struct {
	ID         string `json:"id"`
	ProductID  string `json:"productId"`
	Name       string `json:"name"`
	PriceCents int64  `json:"priceCents"`
	Stock      int    `json:"stock"`
}

// Campaign is a marketing campaign products can be enrolled into.
type Campaign struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	StartsAt time.Time `json:"startsAt"`
	EndsAt   time.Time `json:"endsAt"`
}

// CampaignProduct links a product to a campaign and carries its own approval
// state, independent of the product's.
type CampaignProduct struct {
	ID           string                `json:"id"`
	CampaignID   string                `json:"campaignId"`
	ProductID    string                `json:"productId"`
	Status       CampaignProductStatus `json:"status"`
	StatusReason string                `json:"statusReason,omitempty"`
	Version      int64                 `json:"version"`
	CreatedAt    time.Time             `json:"createdAt"`
	UpdatedAt    time.Time             `json:"updatedAt"`
}

// Category organizes products. A nil ParentID marks a top-level category.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ParentID  *string   `json:"parentId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
