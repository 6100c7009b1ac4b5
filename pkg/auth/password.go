package auth

import (
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"transporter-coordinator/pkg/common"
	"transporter-coordinator/pkg/models"
)

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// VerifyUser checks a username/password pair and returns the user on
// success, nil otherwise.
func VerifyUser(conn *gorm.DB, username, password string) (*models.User, error) {
	var user models.User
	if err := conn.First(&user, "username = ?", username).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	if !CheckPassword(user.PasswordHash, password) {
		return nil, nil
	}
	return &user, nil
}

// EnsureDefaultAdmin creates an admin/admin account when the user table is
// empty, so a fresh deployment can be logged into at all.
func EnsureDefaultAdmin(conn *gorm.DB) error {
	logger := common.GetLoggerWith(
		common.LoggerNameTransportCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryAuth),
	)

	var count int64
	if err := conn.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := HashPassword("admin")
	if err != nil {
		return err
	}

	admin := models.User{
		Username:     "admin",
		PasswordHash: hash,
		IsAdmin:      true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := conn.Create(&admin).Error; err != nil {
		return err
	}

	logger.Warn("Created default admin user, change its password", zap.String("username", admin.Username))
	return nil
}
