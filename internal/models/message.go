package models

import "time"

// Message 联系留言
type Message struct {
	ID        string     `gorm:"primaryKey;size:36" bson:"_id" json:"_id"`
	Name      string     `gorm:"size:255;not null" bson:"name" json:"name"`
	Email     string     `gorm:"size:255;not null" bson:"email" json:"email"`
	Phone     string     `gorm:"size:50;not null" bson:"phone" json:"phone"`
	Subject   string     `gorm:"size:255;not null" bson:"subject" json:"subject"`
	Message   string     `gorm:"type:text;not null" bson:"message" json:"message"`
	Status    string     `gorm:"size:20;index;not null;default:unread" bson:"status" json:"status"`
	Reply     *string    `gorm:"type:text" bson:"reply" json:"reply"`
	RepliedAt *time.Time `bson:"repliedAt" json:"repliedAt"`
	CreatedAt time.Time  `gorm:"index" bson:"createdAt" json:"createdAt"`
}

// TableName 指定表名
func (Message) TableName() string {
	return "messages"
}

// MessageStats 留言统计
type MessageStats struct {
	Total   int64 `json:"total"`
	Unread  int64 `json:"unread"`
	Read    int64 `json:"read"`
	Replied int64 `json:"replied"`
}
