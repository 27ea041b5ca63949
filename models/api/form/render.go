package formapimodels

import (
	"scholarship-portal-backend/models"
)

// Отображается администратору вместо пустого значения,
// чтобы отличать «нет ответа» от пустой строки
const EmptyValueMarker = "—"

// Результат интерпретации схемы для конкретной роли
type RenderedForm struct {
	Role     models.RenderRole `json:"role"`
	Sections []RenderedSection `json:"sections"`
}

type RenderedSection struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	CommentBox  bool            `json:"comment_box,omitempty"`
	Fields      []RenderedField `json:"fields"`
}

type RenderedField struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Label       string           `json:"label"`
	Type        models.FieldType `json:"type"`
	HelpText    string           `json:"help_text,omitempty"`
	Placeholder string           `json:"placeholder,omitempty"`
	Required    bool             `json:"required"`
	ReadOnly    bool             `json:"read_only,omitempty"`
	Disabled    bool             `json:"disabled,omitempty"`
	AdminOnly   bool             `json:"admin_only,omitempty"`
	Multiple    bool             `json:"multiple,omitempty"`
	Min         *float64         `json:"min,omitempty"`
	Max         *float64         `json:"max,omitempty"`
	Step        *float64         `json:"step,omitempty"`
	MaxLength   *int             `json:"max_length,omitempty"`
	Options     []OptionView     `json:"options,omitempty"`

	// Редактируемые режимы: значение как есть
	Value interface{} `json:"value,omitempty"`
	// Режим чтения: значение, разрешённое в подписи вариантов
	Display     string   `json:"display,omitempty"`
	DisplayList []string `json:"display_list,omitempty"`
}

type OptionView struct {
	ID    string `json:"id"`
	Value string `json:"value"`
	Label string `json:"label"`
}
