package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID          uuid.UUID  `gorm:"type:uuid;not null;index" json:"userId"`
	JobTitle        string     `gorm:"type:text;not null" json:"jobTitle"`
	JobDescription  string     `gorm:"type:text;not null" json:"jobDescription"`
	ResumeFileName  string     `gorm:"type:text;not null" json:"resumeFileName"`
	MatchScore      int        `gorm:"not null" json:"matchScore"`
	MissingKeywords StringList `gorm:"type:jsonb" json:"missingKeywords"`
	ProfileSummary  string     `gorm:"type:text" json:"profileSummary"`
	Recommendations StringList `gorm:"type:jsonb" json:"recommendations"`
	Indexed         bool       `gorm:"not null;default:false" json:"-"`
	CreatedAt       time.Time  `gorm:"type:timestamp;default:now()" json:"createdAt"`
	UpdatedAt       time.Time  `gorm:"type:timestamp;default:now()" json:"updatedAt"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Review) TableName() string {
	return "reviews"
}

// StringList is a []string stored as a jsonb array. It marshals to [] rather
// than null so API consumers always receive a list.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for StringList: %T", value)
	}

	return json.Unmarshal(data, l)
}

func (l StringList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}
