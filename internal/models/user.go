package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID   `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Email        string      `gorm:"type:text;uniqueIndex;not null" json:"email"`
	PasswordHash string      `gorm:"type:text;not null" json:"-"`
	FirstName    string      `gorm:"type:text" json:"firstName"`
	LastName     string      `gorm:"type:text" json:"lastName"`
	IsActive     bool        `gorm:"not null;default:true" json:"-"`
	Profile      UserProfile `gorm:"type:jsonb" json:"profile"`
	CreatedAt    time.Time   `gorm:"type:timestamp;default:now()" json:"createdAt"`
	UpdatedAt    time.Time   `gorm:"type:timestamp;default:now()" json:"updatedAt"`
}

func (u *User) TableName() string {
	return "users"
}

// UserProfile holds per-user review statistics, stored as a jsonb document.
type UserProfile struct {
	TotalReviews int        `json:"totalReviews"`
	AverageScore float64    `json:"averageScore"`
	LastLoginAt  *time.Time `json:"lastLoginAt"`
}

func (p UserProfile) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *UserProfile) Scan(value interface{}) error {
	if value == nil {
		*p = UserProfile{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for UserProfile: %T", value)
	}

	return json.Unmarshal(data, p)
}
