package models

import "time"

// Product 菜品
type Product struct {
	ID          string    `gorm:"primaryKey;size:36" bson:"_id" json:"_id"`
	Name        string    `gorm:"size:255;not null" bson:"name" json:"name"`
	Price       Money     `gorm:"type:decimal(20,2);not null;default:0" bson:"price" json:"price"`
	Category    string    `gorm:"size:100;index;not null" bson:"category" json:"category"`
	Description string    `gorm:"type:text" bson:"description" json:"description"`
	Image       string    `gorm:"size:1024" bson:"image" json:"image"` // 图片 URL
	Stock       int       `gorm:"not null;default:0" bson:"stock" json:"stock"`
	CreatedByID string    `gorm:"column:created_by;size:36;index" bson:"createdBy" json:"-"`
	CreatedAt   time.Time `gorm:"index" bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`

	CreatedBy *AdminSummary `gorm:"-" bson:"-" json:"createdBy"`
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
