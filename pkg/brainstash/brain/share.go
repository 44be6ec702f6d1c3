package brain

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"strconv"

	"github.com/brainstash/brainstash/pkg/brainstash/database"
	"github.com/brainstash/brainstash/pkg/brainstash/models"
	"gorm.io/gorm"
)

// tokenLength is the number of hex characters kept from the digest
const tokenLength = 8

// ErrTokenCollision means the candidate token is already persisted
// for a different owner (a digest-prefix collision). Surfaced as a
// conflict, never resolved by overwriting the holder's record.
var ErrTokenCollision = errors.New("share token already held by another user")

// ShareOutcome distinguishes the results of an issuance attempt
type ShareOutcome int

const (
	// ShareCreated means a new token record was persisted
	ShareCreated ShareOutcome = iota
	// ShareExists means the owner already had an active token
	ShareExists
)

// DeriveToken computes a user's share token: the first 8 hex
// characters of the MD5 digest of the decimal user ID. The
// derivation is pure, so disabling and re-enabling sharing yields
// the same link. Revocation still works: a deleted record resolves
// to nothing even though the token is recomputable.
func DeriveToken(userID uint) string {
	sum := md5.Sum([]byte(strconv.FormatUint(uint64(userID), 10)))
	return hex.EncodeToString(sum[:])[:tokenLength]
}

// EnableSharing issues a share token for the user. Idempotent: if a
// token is already active it is returned unchanged. Issuance is
// two-step: derive the candidate, then insert with the unique index
// on token as the final arbiter against prefix collisions between
// different owners.
func EnableSharing(db *gorm.DB, userID uint) (string, ShareOutcome, error) {
	var existing models.ShareLink
	if err := db.Where("user_id = ?", userID).First(&existing).Error; err == nil {
		return existing.Token, ShareExists, nil
	}

	token := DeriveToken(userID)

	var holder models.ShareLink
	if err := db.Where("token = ?", token).First(&holder).Error; err == nil {
		if holder.UserID == userID {
			return holder.Token, ShareExists, nil
		}
		return "", ShareCreated, ErrTokenCollision
	}

	link := models.ShareLink{Token: token, UserID: userID}
	if err := db.Create(&link).Error; err != nil {
		if database.IsUniqueViolation(err) {
			// Lost an insert race. Re-read to tell "our record landed
			// concurrently" apart from "another owner holds the token".
			if err := db.Where("user_id = ?", userID).First(&existing).Error; err == nil {
				return existing.Token, ShareExists, nil
			}
			return "", ShareCreated, ErrTokenCollision
		}
		return "", ShareCreated, err
	}

	return token, ShareCreated, nil
}

// DisableSharing removes the user's share token record. Disabling
// when sharing is already off is a no-op success.
func DisableSharing(db *gorm.DB, userID uint) error {
	return db.Where("user_id = ?", userID).Delete(&models.ShareLink{}).Error
}
