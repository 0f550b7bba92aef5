package models

import (
	"errors"
	"time"

	"invitation_backend/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Offer is one invitation-code campaign. TotalCount and RemainingCount are
// denormalized from the invitation_code table: imports recompute them from
// the row counts, a claim decrements RemainingCount inside the same
// transaction that marks its code used.
type Offer struct {
	ID             int       `json:"id"`
	Name           string    `json:"name" gorm:"uniqueIndex;size:50"`
	Title          string    `json:"title" gorm:"size:100"`
	Description    string    `json:"description"`
	TotalCount     int       `json:"total_count"`
	RemainingCount int       `json:"remaining_count"`
	IsActive       bool      `json:"is_active" gorm:"default:true"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	InvitationCodes InvitationCodes `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

type Offers []Offer

func GetOfferByName(tx *gorm.DB, name string) (*Offer, error) {
	var offer Offer
	err := tx.Take(&offer, "name = ?", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrOfferAbsent
		}
		return nil, err
	}
	return &offer, nil
}

func CreateOffer(tx *gorm.DB, name, title, description string) (*Offer, error) {
	offer := Offer{
		Name:        name,
		Title:       title,
		Description: description,
		IsActive:    true,
	}
	err := tx.Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&Offer{}).Where("name = ?", name).Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return utils.ErrDuplicateOffer
		}
		return tx.Create(&offer).Error
	})
	if err != nil {
		return nil, err
	}
	return &offer, nil
}

// RecomputeOfferCounters rewrites the denormalized counters from the
// authoritative code rows. Always derives, never applies deltas, so a call
// after any drift heals the offer.
func RecomputeOfferCounters(tx *gorm.DB, offerID int) error {
	var total, remaining int64

	err := tx.Model(&InvitationCode{}).
		Where("offer_id = ?", offerID).
		Count(&total).Error
	if err != nil {
		return err
	}

	err = tx.Model(&InvitationCode{}).
		Where("offer_id = ? AND is_used = ?", offerID, false).
		Count(&remaining).Error
	if err != nil {
		return err
	}

	return tx.Model(&Offer{}).Where("id = ?", offerID).Updates(map[string]any{
		"total_count":     total,
		"remaining_count": remaining,
		"updated_at":      time.Now(),
	}).Error
}

// AuditAllOfferCounters recomputes counters for every offer. Runs from the
// daily cron task to self-heal any drift left by interrupted imports.
func AuditAllOfferCounters() {
	var offers Offers
	err := DB.Find(&offers).Error
	if err != nil {
		utils.Logger.Error("offer counter audit failed", zap.Error(err))
		return
	}
	for _, offer := range offers {
		err = RecomputeOfferCounters(DB, offer.ID)
		if err != nil {
			utils.Logger.Error("offer counter audit failed",
				zap.String("offer", offer.Name), zap.Error(err))
		}
	}
}
