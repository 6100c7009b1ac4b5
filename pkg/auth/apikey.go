package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"time"

	"gorm.io/gorm"
	"transporter-coordinator/pkg/models"
)

const (
	APIKeyPrefix = "cc_"
	apiKeyBytes  = 32
)

// GenerateAPIKey returns a new machine credential. Only its hash is ever
// stored; the raw key is shown to the owner once at creation time.
func GenerateAPIKey() (string, error) {
	buf := make([]byte, apiKeyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return APIKeyPrefix + base64.RawURLEncoding.EncodeToString(buf), nil
}

func HashAPIKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

// CreateAPIKey stores a new key for the user and returns the raw key along
// with its record.
func CreateAPIKey(conn *gorm.DB, userID uint, name string) (string, *models.APIKey, error) {
	key, err := GenerateAPIKey()
	if err != nil {
		return "", nil, err
	}

	record := models.APIKey{
		UserID:    userID,
		KeyHash:   HashAPIKey(key),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if err := conn.Create(&record).Error; err != nil {
		return "", nil, err
	}
	return key, &record, nil
}

// VerifyAPIKey resolves a presented key to its record and owning user, and
// refreshes the key's last-used timestamp. Returns gorm.ErrRecordNotFound
// for unknown keys.
func VerifyAPIKey(conn *gorm.DB, key string) (*models.APIKey, *models.User, error) {
	var record models.APIKey
	if err := conn.First(&record, "key_hash = ?", HashAPIKey(key)).Error; err != nil {
		return nil, nil, err
	}

	var user models.User
	if err := conn.First(&user, "id = ?", record.UserID).Error; err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	conn.Model(&record).Update("last_used", &now)

	return &record, &user, nil
}
