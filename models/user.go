package models

import (
	"time"
)

// User roles.
const (
	RoleAdmin = "ADMIN"
	RoleStaff = "STAFF"
)

// Privilege is the per-user CRUD permission set over ingredients and recipes.
type Privilege struct {
	CanCreateIngredient bool `gorm:"column:can_create_ingredient;not null;default:false" json:"canCreateIngredient"`
	CanReadIngredient   bool `gorm:"column:can_read_ingredient;not null;default:false" json:"canReadIngredient"`
	CanUpdateIngredient bool `gorm:"column:can_update_ingredient;not null;default:false" json:"canUpdateIngredient"`
	CanDeleteIngredient bool `gorm:"column:can_delete_ingredient;not null;default:false" json:"canDeleteIngredient"`
	CanCreateRecipe     bool `gorm:"column:can_create_recipe;not null;default:false" json:"canCreateRecipe"`
	CanReadRecipe       bool `gorm:"column:can_read_recipe;not null;default:false" json:"canReadRecipe"`
	CanUpdateRecipe     bool `gorm:"column:can_update_recipe;not null;default:false" json:"canUpdateRecipe"`
	CanDeleteRecipe     bool `gorm:"column:can_delete_recipe;not null;default:false" json:"canDeleteRecipe"`
}

// DefaultStaffPrivileges returns the permission set a new staff account
// starts with: read access plus ingredient stock updates.
func DefaultStaffPrivileges() Privilege {
	return Privilege{
		CanReadIngredient:   true,
		CanUpdateIngredient: true,
		CanReadRecipe:       true,
	}
}

// DefaultAdminPrivileges returns the full permission set.
func DefaultAdminPrivileges() Privilege {
	return Privilege{
		CanCreateIngredient: true,
		CanReadIngredient:   true,
		CanUpdateIngredient: true,
		CanDeleteIngredient: true,
		CanCreateRecipe:     true,
		CanReadRecipe:       true,
		CanUpdateRecipe:     true,
		CanDeleteRecipe:     true,
	}
}

// User is a staff or admin account. Password holds a bcrypt hash and is
// never serialized.
type User struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username    string    `gorm:"column:username;type:varchar(128);unique;not null" json:"username"`
	Password    string    `gorm:"column:password;type:varchar(256);not null" json:"-"`
	Role        string    `gorm:"column:role;type:varchar(16);not null" json:"role"`
	ExternalID  string    `gorm:"column:external_id;type:varchar(64);unique;not null" json:"externalId"`
	Privilege   Privilege `gorm:"embedded" json:"privilege"`
	DateCreated time.Time `gorm:"column:date_created;autoCreateTime" json:"dateCreated"`
	DateUpdated time.Time `gorm:"column:date_updated;autoUpdateTime" json:"dateUpdated"`
}

func (User) TableName() string { return "users" }

// CreateUserRequest is the payload for creating a staff or admin account.
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=ADMIN STAFF"`
}

// UpdateUserRequest merges the provided fields into a user account.
type UpdateUserRequest struct {
	Username  *string    `json:"username" binding:"omitempty,min=3"`
	Password  *string    `json:"password" binding:"omitempty,min=8"`
	Privilege *Privilege `json:"privilege"`
}

// LoginRequest is the payload for POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}
