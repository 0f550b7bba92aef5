package service

import (
	"strings"

	"invitation_backend/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type ImportResult struct {
	NewCodes       int `json:"new_codes"`
	DuplicateCodes int `json:"duplicate_codes"`
	TotalProcessed int `json:"total_processed"`
}

// ImportCodes inserts the given code strings as unused codes of an existing
// offer. Strings are trimmed; blanks are skipped entirely and do not count
// as processed. A string already stored for the offer, or repeated earlier
// in the same batch, counts as duplicate and is not inserted again.
//
// The whole batch is one transaction, and the offer counters are recomputed
// from the code rows before it commits. Callers importing in multiple
// batches therefore leave consistent counters behind even when a later
// batch fails.
func ImportCodes(offerName string, codes []string) (*ImportResult, error) {
	offer, err := models.GetOfferByName(models.DB, offerName)
	if err != nil {
		return nil, err
	}

	var result ImportResult
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		seen := make(map[string]struct{}, len(codes))
		for _, raw := range codes {
			code := strings.TrimSpace(raw)
			if code == "" {
				continue
			}
			result.TotalProcessed++

			if _, dup := seen[code]; dup {
				result.DuplicateCodes++
				continue
			}
			seen[code] = struct{}{}

			exists, err := models.CodeExists(tx, offer.ID, code)
			if err != nil {
				return err
			}
			if exists {
				result.DuplicateCodes++
				continue
			}

			err = models.InsertCode(tx, offer.ID, code)
			if err != nil {
				return errors.WithMessagef(err, "insert code for offer %s", offerName)
			}
			result.NewCodes++
		}

		return models.RecomputeOfferCounters(tx, offer.ID)
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}
