package dbmodels

import (
	"github.com/pkg/errors"
)

// Конкурс (ежегодный набор), владеет ровно одной схемой анкеты
type Call struct {
	BaseModel
	Name        string     `json:"name"`
	Year        int        `gorm:"index" json:"year"`
	Description string     `json:"description"`
	IsOpen      bool       `json:"is_open"`
	Form        FormSchema `gorm:"type:jsonb" json:"form"`
}

type CallFilter struct {
	Year     int    `json:"year"`
	OnlyOpen bool   `json:"only_open"`
	Search   string `json:"search"`
}

type CreateCallData struct {
	Name        string `json:"name"`
	Year        int    `json:"year"`
	Description string `json:"description"`
}

func (c CreateCallData) Validate() error {
	if c.Name == "" {
		return errors.New("не указано название конкурса")
	}
	if c.Year <= 0 {
		return errors.New("не указан год конкурса")
	}
	return nil
}
