package dbmodels

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"scholarship-portal-backend/models"
)

// Заявка заявителя в рамках одного конкурса
type Application struct {
	BaseModel
	CallID      string                   `gorm:"type:varchar(36);index" json:"call_id"`
	Call        *Call                    `json:"-"`
	ApplicantID string                   `gorm:"type:varchar(36);index" json:"applicant_id"`
	Status      models.ApplicationStatus `gorm:"type:varchar(20);index" json:"status"`
	Score       *int                     `json:"score,omitempty"`
	Notes       string                   `json:"notes,omitempty"`
	SubmittedAt *time.Time               `json:"submitted_at,omitempty"`
	DecidedAt   *time.Time               `json:"decided_at,omitempty"`
	Answers     AnswerMap                `gorm:"type:jsonb" json:"answers"`
}

// Плоская карта ответов, ключ — name поля схемы
type AnswerMap map[string]interface{}

func (j AnswerMap) Value() (driver.Value, error) {
	if j == nil {
		j = AnswerMap{}
	}
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *AnswerMap) Scan(value interface{}) error {
	if value == nil {
		*j = AnswerMap{}
		return nil
	}
	if err := json.Unmarshal(value.([]byte), &j); err != nil {
		return err
	}
	return nil
}

type ApplicationFilter struct {
	CallID string                   `json:"call_id"`
	Status models.ApplicationStatus `json:"status"`
}
