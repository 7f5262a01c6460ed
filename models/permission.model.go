package models

import (
	"gorm.io/gorm"
)

const PermissionRevokeCertificate = "revoke-certificate"

type Permission struct {
	gorm.Model
	UserID     uint   `gorm:"index;not null"`
	User       User   `gorm:"foreignKey:UserID"`
	Permission string `gorm:"type:varchar(255)"` // e.g., "revoke-certificate"
	IsDeleted  bool   `gorm:"default:false"`
}
