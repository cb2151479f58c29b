package models

import "time"

// Order 订单
type Order struct {
	ID        string    `gorm:"primaryKey;size:36" bson:"_id" json:"_id"`
	Name      string    `gorm:"size:255;not null" bson:"name" json:"name"`
	Phone     string    `gorm:"size:50;not null" bson:"phone" json:"phone"`
	Items     string    `gorm:"type:text;not null" bson:"items" json:"items"` // 自由文本
	Price     Money     `gorm:"type:decimal(20,2);not null;default:0" bson:"price" json:"price"`
	Address   string    `gorm:"type:text;not null" bson:"address" json:"address"`
	Notes     string    `gorm:"type:text" bson:"notes" json:"notes"`
	Status    string    `gorm:"size:20;index;not null;default:pending" bson:"status" json:"status"`
	CreatedAt time.Time `gorm:"index" bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
