package model

type Notification struct {
	DTO
	UserID  uint   `gorm:"index" json:"userId"`
	Type    string `gorm:"size:40" json:"type"`
	Title   string `gorm:"size:150" json:"title"`
	Message string `json:"message"`
	IsRead  bool   `gorm:"default:false" json:"isRead"`
	Data    string `json:"data,omitempty"` // optional JSON payload for the SPA
}
