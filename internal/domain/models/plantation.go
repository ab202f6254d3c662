package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Plant is a species name offered in the plantation form.
type Plant struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	PlantName string             `bson:"plant_name" json:"plant_name"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Location is a planting site offered in the plantation form.
type Location struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	LocationName string             `bson:"location_name" json:"location_name"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PlantQuantity is one line of a plantation.
type PlantQuantity struct {
	PlantName string  `bson:"plant_name" json:"plant_name"`
	Quantity  float64 `bson:"quantity" json:"quantity"`
}

// Plantation records trees planted by a user.
type Plantation struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID     string             `bson:"user_id" json:"user_id"`
	TreesCount float64            `bson:"trees_count" json:"trees_count"`
	Plants     []PlantQuantity    `bson:"plants" json:"plants"`
	Name       string             `bson:"name,omitempty" json:"name,omitempty"`
	Date       time.Time          `bson:"date" json:"date"`
	Message    string             `bson:"message,omitempty" json:"message,omitempty"`
	Location   string             `bson:"location,omitempty" json:"location,omitempty"`
	OccasionID string             `bson:"occasion_id,omitempty" json:"occasion_id,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Certificate is issued once per plantation and verified through its QR code.
type Certificate struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID        string             `bson:"user_id" json:"user_id"`
	CertificateID string             `bson:"certificate_id" json:"certificate_id"`
	QRCode        string             `bson:"qr_code" json:"qr_code"`
	PlantationID  primitive.ObjectID `bson:"plantation_id" json:"plantation_id"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CertificateDetails is a certificate together with the plantation it covers.
type CertificateDetails struct {
	Certificate
	Plantation *Plantation `json:"plantation,omitempty"`
}

// CertificateRef is the short form returned right after a plantation is submitted.
type CertificateRef struct {
	CertificateID string `json:"certificate_id"`
	QRCode        string `json:"qr_code"`
}

// PlantationReceipt is the response to a plantation submission.
type PlantationReceipt struct {
	Plantation  Plantation     `json:"plantation"`
	Certificate CertificateRef `json:"certificate"`
}

// PlantationRequest is the body of a plantation submission after decoding.
type PlantationRequest struct {
	UserID     string
	TreesCount float64
	Plants     []PlantQuantity
	Name       string
	Date       *time.Time
	Message    string
	Location   string
	OccasionID string
}
