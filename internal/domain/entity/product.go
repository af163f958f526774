package entity

import (
	"time"
)

const (
	ProductStatusActive   = "active"
	ProductStatusInactive = "inactive"
	ProductStatusSoldOut  = "sold_out"
)

type ProductImage struct {
	ID           string `json:"id" firestore:"id"`
	URL          string `json:"url" firestore:"url"`
	DisplayOrder int    `json:"display_order" firestore:"displayOrder"`
}

type Product struct {
	ID          string         `json:"id" firestore:"id"`
	SellerID    string         `json:"seller_id" firestore:"sellerId"`
	Title       string         `json:"title" firestore:"title"`
	Description string         `json:"description" firestore:"description"`
	Category    string         `json:"category" firestore:"category"`
	Price       float64        `json:"price" firestore:"price"`
	Stock       int            `json:"stock" firestore:"stock"`
	SoldCount   int            `json:"sold_count" firestore:"soldCount"`
	Status      string         `json:"status" firestore:"status"` // active, inactive, sold_out
	Images      []ProductImage `json:"images" firestore:"images"`

	Views     int        `json:"views" firestore:"views"`
	CreatedAt time.Time  `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time  `json:"updated_at" firestore:"updatedAt"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" firestore:"deletedAt,omitempty"`
}
