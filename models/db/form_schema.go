package dbmodels

import (
	"database/sql/driver"
	"encoding/json"

	"scholarship-portal-backend/models"
)

// Схема анкеты конкурса, хранится как jsonb-документ на записи Call
type FormSchema struct {
	Version  int           `json:"version"`
	Sections []FormSection `json:"sections"`
}

func (j FormSchema) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *FormSchema) Scan(value interface{}) error {
	if err := json.Unmarshal(value.([]byte), &j); err != nil {
		return err
	}
	return nil
}

type FormSection struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	CommentBox  bool        `json:"comment_box,omitempty"` // блок заметок интервью, заявителю не показывается
	Fields      []FormField `json:"fields"`
}

type FormField struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"` // ключ в карте ответов, уникален в рамках всей схемы
	Label       string           `json:"label"`
	Type        models.FieldType `json:"type"`
	HelpText    string           `json:"help_text,omitempty"`
	Placeholder string           `json:"placeholder,omitempty"`
	Required    bool             `json:"required"`
	Active      *bool            `json:"active"` // nil в legacy-данных трактуется как true
	AdminOnly   bool             `json:"admin_only,omitempty"`
	ReadOnly    bool             `json:"read_only,omitempty"`
	Multiple    bool             `json:"multiple,omitempty"`
	Min         *float64         `json:"min,omitempty"`
	Max         *float64         `json:"max,omitempty"`
	Step        *float64         `json:"step,omitempty"`
	MaxLength   *int             `json:"max_length,omitempty"`
	Options     []FieldOption    `json:"options,omitempty"`
}

type FieldOption struct {
	ID    string `json:"id"`
	Value string `json:"value"` // машинный токен, попадает в ответ
	Label string `json:"label"` // отображаемый текст
}

func (f FormField) IsActive() bool {
	return f.Active == nil || *f.Active
}

// Подпись варианта по сохранённому значению.
// При рассинхронизации схемы и ответов показываем само значение, а не скрываем его.
func (f FormField) LabelFor(value string) string {
	for _, opt := range f.Options {
		if opt.Value == value {
			return opt.Label
		}
	}
	return value
}

func (s FormSection) FindField(fieldID string) *FormField {
	for idx := range s.Fields {
		if s.Fields[idx].ID == fieldID {
			return &s.Fields[idx]
		}
	}
	return nil
}

func (j FormSchema) FindSection(sectionID string) *FormSection {
	for idx := range j.Sections {
		if j.Sections[idx].ID == sectionID {
			return &j.Sections[idx]
		}
	}
	return nil
}

// Поиск поля по имени ответа, имя уникально в рамках всей схемы
func (j FormSchema) FieldByName(name string) *FormField {
	for sIdx := range j.Sections {
		for fIdx := range j.Sections[sIdx].Fields {
			if j.Sections[sIdx].Fields[fIdx].Name == name {
				return &j.Sections[sIdx].Fields[fIdx]
			}
		}
	}
	return nil
}

// Обход всех полей схемы в порядке следования
func (j FormSchema) EachField(fn func(section FormSection, field FormField)) {
	for _, section := range j.Sections {
		for _, field := range section.Fields {
			fn(section, field)
		}
	}
}
