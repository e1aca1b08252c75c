package entities

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Email    string `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Name     string `gorm:"size:255" json:"name"`
	Password string `gorm:"size:255;not null" json:"-"`
	IsActive bool   `gorm:"default:true" json:"is_active"`

	Timestamp
}
