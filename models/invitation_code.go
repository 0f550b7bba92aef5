package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// InvitationCode is one opaque single-use code. A row flips IsUsed exactly
// once; UsedAt, UserIP and UserAgent are written at that moment and never
// touched again.
type InvitationCode struct {
	ID        int        `json:"id"`
	OfferID   int        `json:"offer_id" gorm:"index:idx_code_offer,priority:1;uniqueIndex:idx_code_offer_code,priority:1"`
	Code      string     `json:"code" gorm:"size:255;uniqueIndex:idx_code_offer_code,priority:2"`
	IsUsed    bool       `json:"is_used" gorm:"index:idx_code_offer,priority:2"`
	UsedAt    *time.Time `json:"used_at"`
	UserIP    string     `json:"user_ip" gorm:"size:45"`
	UserAgent string     `json:"user_agent"`
	CreatedAt time.Time  `json:"created_at"`
}

type InvitationCodes []InvitationCode

// CodeExists reports whether this exact code string (case-sensitive) is
// already stored for the offer.
func CodeExists(tx *gorm.DB, offerID int, code string) (bool, error) {
	var existing InvitationCode
	err := tx.Select("id").Take(&existing, "offer_id = ? AND code = ?", offerID, code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func InsertCode(tx *gorm.DB, offerID int, code string) error {
	return tx.Create(&InvitationCode{
		OfferID: offerID,
		Code:    code,
	}).Error
}

func CountCodes(tx *gorm.DB, offerID int) (int64, error) {
	var count int64
	err := tx.Model(&InvitationCode{}).
		Where("offer_id = ?", offerID).
		Count(&count).Error
	return count, err
}

func CountUnusedCodes(tx *gorm.DB, offerID int) (int64, error) {
	var count int64
	err := tx.Model(&InvitationCode{}).
		Where("offer_id = ? AND is_used = ?", offerID, false).
		Count(&count).Error
	return count, err
}

// FindOneUnusedCode returns some unused code for the offer. Row order is
// whatever the database yields; callers must not rely on it.
func FindOneUnusedCode(tx *gorm.DB, offerID int) (*InvitationCode, error) {
	var code InvitationCode
	err := tx.Take(&code, "offer_id = ? AND is_used = ?", offerID, false).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &code, nil
}

// MarkCodeUsed flips the row to used only if it is still unused, reporting
// whether this call won the row. The conditional predicate is what keeps
// two concurrent claims from receiving the same code.
func MarkCodeUsed(tx *gorm.DB, codeID int, userIP, userAgent string, usedAt time.Time) (bool, error) {
	result := tx.Model(&InvitationCode{}).
		Where("id = ? AND is_used = ?", codeID, false).
		Updates(map[string]any{
			"is_used":    true,
			"used_at":    usedAt,
			"user_ip":    userIP,
			"user_agent": userAgent,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func ListRecentUsedCodes(tx *gorm.DB, offerID int, limit int) (InvitationCodes, error) {
	var codes InvitationCodes
	err := tx.
		Where("offer_id = ? AND is_used = ?", offerID, true).
		Order("used_at DESC").
		Limit(limit).
		Find(&codes).Error
	return codes, err
}
