package entity

import (
	"time"
)

const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
	RoleAdmin  = "admin"
)

type BankDetail struct {
	BankName      string `json:"bank_name" firestore:"bankName"`
	AccountNumber string `json:"account_number" firestore:"accountNumber"`
	AccountName   string `json:"account_name" firestore:"accountName"`
}

type User struct {
	ID       string `json:"id" firestore:"id"`
	Email    string `json:"email" firestore:"email"`
	Username string `json:"username" firestore:"username"`
	Phone    string `json:"phone" firestore:"phone"`
	Role     string `json:"role" firestore:"role"`     // buyer, seller, admin
	Status   string `json:"status" firestore:"status"` // active, suspended

	FullName string `json:"full_name,omitempty" firestore:"fullName,omitempty"`
	Address  string `json:"address,omitempty" firestore:"address,omitempty"`

	// Required before a seller can request a bank payout.
	BankDetail *BankDetail `json:"bank_detail,omitempty" firestore:"bankDetail,omitempty"`

	SellerRating      float64 `json:"seller_rating,omitempty" firestore:"sellerRating,omitempty"`
	SellerReviewCount int     `json:"seller_review_count,omitempty" firestore:"sellerReviewCount,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsSeller() bool {
	return u.Role == RoleSeller
}

func (u *User) HasBankDetail() bool {
	return u.BankDetail != nil &&
		u.BankDetail.BankName != "" &&
		u.BankDetail.AccountNumber != "" &&
		u.BankDetail.AccountName != ""
}
