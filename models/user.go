package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/possync_backend/config"
	"bitbucket.org/mmdatafocus/possync_backend/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an owner/manager account for the reporting portal, or a platform admin.
// The column is primary_restaurant_id on purpose: the tenant guard scopes on
// restaurant_id and user lookups happen before a tenant is resolved.
type User struct {
	ID                  uuid.UUID    `gorm:"type:char(36);primary_key" json:"id"`
	Email               string       `gorm:"size:255;not null;uniqueIndex" json:"email"`
	FullName            string       `gorm:"size:255" json:"full_name"`
	MobileNumber        string       `gorm:"size:20" json:"mobile_number"`
	PasswordHash        string       `gorm:"size:255;not null" json:"-"`
	Role                UserRole     `gorm:"size:20;not null;default:OWNER" json:"role"`
	PrimaryRestaurantId *uuid.UUID   `gorm:"type:char(36)" json:"primary_restaurant_id"`
	Restaurants         []Restaurant `gorm:"many2many:user_restaurants" json:"restaurants"`
	MustChangePassword  *bool        `gorm:"not null;default:true" json:"must_change_password"`
	CreatedAt           time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

type NewUser struct {
	Email               string     `json:"email" binding:"required"`
	FullName            string     `json:"full_name"`
	MobileNumber        string     `json:"mobile_number"`
	Password            string     `json:"-"`
	Role                UserRole   `json:"role"`
	PrimaryRestaurantId *uuid.UUID `json:"primary_restaurant_id"`
}

func CreateUser(ctx context.Context, input *NewUser) (*User, error) {
	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = UserRoleOwner
	}

	user := User{
		Email:               input.Email,
		FullName:            input.FullName,
		MobileNumber:        input.MobileNumber,
		PasswordHash:        string(hash),
		Role:                role,
		PrimaryRestaurantId: input.PrimaryRestaurantId,
		MustChangePassword:  utils.NewTrue(),
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}

	if input.PrimaryRestaurantId != nil {
		if err := AssociateUserRestaurant(ctx, user.ID, *input.PrimaryRestaurantId); err != nil {
			return nil, err
		}
	}
	return &user, nil
}

// GetUserByEmail loads the account with its associated restaurants preloaded.
func GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	db := config.GetDB()
	err := db.WithContext(ctx).Preload("Restaurants").Where("email = ?", email).Take(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}
	return &user, nil
}

func AssociateUserRestaurant(ctx context.Context, userId uuid.UUID, restaurantId uuid.UUID) error {
	db := config.GetDB()
	return db.WithContext(ctx).
		Exec("INSERT IGNORE INTO user_restaurants (user_id, restaurant_id) VALUES (?, ?)", userId, restaurantId).
		Error
}

// ChangeUserPassword verifies the current password before storing the new hash.
func ChangeUserPassword(ctx context.Context, email string, currentPassword string, newPassword string) error {
	user, err := GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if err := utils.ComparePassword(user.PasswordHash, currentPassword); err != nil {
		return errors.New("current password is incorrect")
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}

	db := config.GetDB()
	return db.WithContext(ctx).Model(user).Updates(map[string]interface{}{
		"password_hash":        string(hash),
		"must_change_password": false,
	}).Error
}
