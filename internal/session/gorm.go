package session

import (
	"context"
	"errors"

	"github.com/aadi-anilkumar-2005/vehicle-rental-service/internal/models"
	"gorm.io/gorm"
)

// GormAccounts backs the session collaborators with the users table.
type GormAccounts struct {
	db *gorm.DB
}

func NewGormAccounts(db *gorm.DB) *GormAccounts {
	return &GormAccounts{db: db}
}

func (a *GormAccounts) VerifyCredentials(ctx context.Context, email, password string) (*Identity, error) {
	var user models.User
	if err := a.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := user.CheckPassword(password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return identityOf(&user), nil
}

func (a *GormAccounts) CreateUser(ctx context.Context, nu NewUser) (*Identity, error) {
	var count int64
	if err := a.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ?", nu.Email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateEmail
	}

	user := models.User{
		Name:        nu.Name,
		Email:       nu.Email,
		Password:    nu.Password,
		PhoneNumber: nu.PhoneNumber,
		Role:        nu.Role,
	}
	if err := user.HashPassword(); err != nil {
		return nil, err
	}

	if err := a.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}

	return identityOf(&user), nil
}

func identityOf(u *models.User) *Identity {
	return &Identity{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Role:        u.Role,
	}
}
