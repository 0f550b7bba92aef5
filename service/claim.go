package service

import (
	"errors"
	"time"

	"invitation_backend/models"
	"invitation_backend/utils"

	"gorm.io/gorm"
)

// ClaimCode hands out exactly one unused code of the named offer.
//
// Selection and marking run as a conditional update inside one transaction
// together with the remaining_count decrement, so two concurrent claims can
// never win the same row. Losing the conditional update re-selects another
// candidate; the retry budget is the number of unused codes observed at
// entry, which keeps a claim from spinning once the pool drains under it.
func ClaimCode(offerName, userIP, userAgent string) (string, error) {
	var offer models.Offer
	err := models.DB.Take(&offer, "name = ? AND is_active = ?", offerName, true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// absent and deactivated offers answer identically
			return "", utils.ErrOfferNotFound
		}
		return "", err
	}

	budget, err := models.CountUnusedCodes(models.DB, offer.ID)
	if err != nil {
		return "", err
	}

	for attempt := int64(0); attempt < budget; attempt++ {
		var (
			claimed string
			won     bool
		)
		err = models.DB.Transaction(func(tx *gorm.DB) error {
			candidate, err := models.FindOneUnusedCode(tx, offer.ID)
			if err != nil {
				return err
			}
			if candidate == nil {
				return utils.ErrCodesExhausted
			}

			won, err = models.MarkCodeUsed(tx, candidate.ID, userIP, userAgent, time.Now())
			if err != nil {
				return err
			}
			if !won {
				// another claim took this row first, commit nothing
				return nil
			}

			err = tx.Model(&models.Offer{}).
				Where("id = ?", offer.ID).
				Updates(map[string]any{
					"remaining_count": gorm.Expr("remaining_count - 1"),
					"updated_at":      time.Now(),
				}).Error
			if err != nil {
				return err
			}

			claimed = candidate.Code
			return nil
		})
		if err != nil {
			return "", err
		}
		if won {
			return claimed, nil
		}
	}

	return "", utils.ErrCodesExhausted
}
