package service

import (
	"math"
	"time"

	"invitation_backend/models"
)

const (
	maskMarker     = "***"
	maskKeepSuffix = 6
	recentLimit    = 10
)

type RecentClaim struct {
	Code      string    `json:"code"`
	ClaimedAt time.Time `json:"claimed_at"`
	UserIP    string    `json:"user_ip"`
}

type OfferStats struct {
	TotalCodes     int           `json:"total_codes"`
	UsedCodes      int           `json:"used_codes"`
	RemainingCodes int           `json:"remaining_codes"`
	UsageRate      float64       `json:"usage_rate"`
	RecentClaims   []RecentClaim `json:"recent_claims"`
}

// MaskCode redacts a code for display, revealing at most its last six
// characters. Codes short enough that the suffix would give them away
// entirely are fully masked.
func MaskCode(code string) string {
	if len(code) > maskKeepSuffix {
		return maskMarker + code[len(code)-maskKeepSuffix:]
	}
	return maskMarker
}

// GetOfferStats derives the usage metrics of an offer plus a masked view of
// its ten most recent claims. Read-only.
func GetOfferStats(offerName string) (*OfferStats, error) {
	offer, err := models.GetOfferByName(models.DB, offerName)
	if err != nil {
		return nil, err
	}

	recent, err := models.ListRecentUsedCodes(models.DB, offer.ID, recentLimit)
	if err != nil {
		return nil, err
	}

	recentClaims := make([]RecentClaim, 0, len(recent))
	for _, code := range recent {
		claim := RecentClaim{
			Code:   MaskCode(code.Code),
			UserIP: code.UserIP,
		}
		if code.UsedAt != nil {
			claim.ClaimedAt = *code.UsedAt
		}
		recentClaims = append(recentClaims, claim)
	}

	used := offer.TotalCount - offer.RemainingCount
	var usageRate float64
	if offer.TotalCount > 0 {
		usageRate = float64(used) / float64(offer.TotalCount)
	}
	usageRate = math.Round(usageRate*1000) / 1000

	return &OfferStats{
		TotalCodes:     offer.TotalCount,
		UsedCodes:      used,
		RemainingCodes: offer.RemainingCount,
		UsageRate:      usageRate,
		RecentClaims:   recentClaims,
	}, nil
}
