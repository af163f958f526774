package usecase

import (
	"fmt"
	"math"
)

// PaymentSplit divides an order's gross amount into the platform fee and the
// seller's share. AdminFee + SellerAmount always equals Total exactly, because
// the seller amount is derived from the rounded fee rather than rounded
// independently.
type PaymentSplit struct {
	Total        float64 `json:"total"`
	AdminFee     float64 `json:"admin_fee"`
	SellerAmount float64 `json:"seller_amount"`
}

type SplitCalculator struct {
	adminPercentage float64
}

func NewSplitCalculator(adminPercentage float64) (*SplitCalculator, error) {
	if adminPercentage < 0 || adminPercentage > 1 {
		return nil, fmt.Errorf("admin percentage must be between 0 and 1, got %v", adminPercentage)
	}
	return &SplitCalculator{adminPercentage: adminPercentage}, nil
}

func (c *SplitCalculator) Split(total float64) PaymentSplit {
	total = round2(total)
	adminFee := round2(total * c.adminPercentage)

	return PaymentSplit{
		Total:        total,
		AdminFee:     adminFee,
		SellerAmount: round2(total - adminFee),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
