package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DefaultCategory = "General"
	DefaultUnit     = "units"
)

type Product struct {
	ID          primitive.ObjectID `json:"id" bson:"_id"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
	Quantity    int                `json:"quantity" bson:"quantity"`
	Price       float64            `json:"price" bson:"price"` // float for simplicity, decimal would be better for money
	Category    string             `json:"category" bson:"category"`
	Unit        string             `json:"unit" bson:"unit"`
	Image       *string            `json:"image" bson:"image"` // public path like /uploads/<file>, nil when absent
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// CreateProductInput carries the parsed multipart form of a create request.
// Pointer fields distinguish "not sent" from a zero value.
type CreateProductInput struct {
	Name        string
	Description *string
	Quantity    *int
	Price       *float64
	Category    string
	Unit        string
}

// UpdateProductInput is a partial overwrite: nil means keep the prior value.
type UpdateProductInput struct {
	Name        *string
	Description *string
	Quantity    *int
	Price       *float64
	Category    *string
	Unit        *string
}
