package models

import "time"

// Admin 管理员
type Admin struct {
	ID           string    `gorm:"primaryKey;size:36" bson:"_id" json:"_id"`
	Name         string    `gorm:"size:100;not null" bson:"name" json:"name"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" bson:"email" json:"email"` // 统一小写
	PasswordHash string    `gorm:"column:password;not null" bson:"password" json:"-"`
	Role         string    `gorm:"size:32;not null;default:admin" bson:"role" json:"role"`
	CreatedAt    time.Time `gorm:"index" bson:"createdAt" json:"createdAt"`
}

// TableName 指定表名
func (Admin) TableName() string {
	return "admins"
}

// AdminSummary 对外展示的管理员信息
type AdminSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

// Summary 去除敏感字段
func (a *Admin) Summary() AdminSummary {
	if a == nil {
		return AdminSummary{}
	}
	return AdminSummary{ID: a.ID, Name: a.Name, Email: a.Email, Role: a.Role}
}
