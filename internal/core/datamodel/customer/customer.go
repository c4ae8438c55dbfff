package customer

import "time"

type Customer struct {
	ID         int64     `gorm:"primaryKey"`
	Name       string    `gorm:"column:name;not null"`
	Phone      string    `gorm:"column:phone"`
	IsVerified bool      `gorm:"column:is_verified;default:false"`
	CreatedAt  time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt  time.Time `gorm:"column:updated_at;default:now()"`
}

func (Customer) TableName() string {
	return "customers"
}
