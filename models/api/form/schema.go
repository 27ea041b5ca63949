package formapimodels

import (
	"github.com/pkg/errors"

	dbmodels "scholarship-portal-backend/models/db"
)

type SchemaView struct {
	CallID string             `json:"call_id"`
	Schema dbmodels.FormSchema `json:"schema"`
	// Кол-во заявок конкурса, вышедших из черновика.
	// Подсказка фронту: правка живой схемы может рассинхронизировать ответы.
	NonDraftApplications int64 `json:"non_draft_applications"`
}

// Сохранение всегда передаёт схему целиком.
// BaseVersion — версия, с которой начиналось редактирование.
type SaveSchemaRequest struct {
	BaseVersion int                 `json:"base_version"`
	Schema      dbmodels.FormSchema `json:"schema"`
}

// Пакет операций конструктора, применяется к текущей сохранённой схеме
type SchemaOpsRequest struct {
	BaseVersion int        `json:"base_version"`
	Ops         []SchemaOp `json:"ops"`
}

type SchemaOpKind string

const (
	OpAddSection    SchemaOpKind = "add_section"
	OpUpdateSection SchemaOpKind = "update_section"
	OpDeleteSection SchemaOpKind = "delete_section"
	OpMoveSection   SchemaOpKind = "move_section"
	OpAddField      SchemaOpKind = "add_field"
	OpUpdateField   SchemaOpKind = "update_field"
	OpDeleteField   SchemaOpKind = "delete_field"
	OpMoveField     SchemaOpKind = "move_field"
	OpAddOption     SchemaOpKind = "add_option"
	OpUpdateOption  SchemaOpKind = "update_option"
	OpDeleteOption  SchemaOpKind = "delete_option"
)

type SchemaOp struct {
	Kind      SchemaOpKind  `json:"kind"`
	SectionID string        `json:"section_id,omitempty"`
	FieldID   string        `json:"field_id,omitempty"`
	OptionID  string        `json:"option_id,omitempty"`
	FieldType string        `json:"field_type,omitempty"` // для add_field
	Offset    int           `json:"offset,omitempty"`     // для move_*: -1 вверх, +1 вниз
	Section   *SectionPatch `json:"section,omitempty"`
	Field     *FieldPatch   `json:"field,omitempty"`
	Option    *OptionPatch  `json:"option,omitempty"`
}

func (o SchemaOp) Validate() error {
	if o.Kind == "" {
		return errors.New("не указан тип операции")
	}
	return nil
}

// Патчи частичные: nil — свойство не менять
type SectionPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	CommentBox  *bool   `json:"comment_box,omitempty"`
}

type FieldPatch struct {
	Name        *string  `json:"name,omitempty"`
	Label       *string  `json:"label,omitempty"`
	Type        *string  `json:"type,omitempty"`
	HelpText    *string  `json:"help_text,omitempty"`
	Placeholder *string  `json:"placeholder,omitempty"`
	Required    *bool    `json:"required,omitempty"`
	Active      *bool    `json:"active,omitempty"`
	AdminOnly   *bool    `json:"admin_only,omitempty"`
	ReadOnly    *bool    `json:"read_only,omitempty"`
	Multiple    *bool    `json:"multiple,omitempty"`
	Min         *float64 `json:"min,omitempty"`
	Max         *float64 `json:"max,omitempty"`
	Step        *float64 `json:"step,omitempty"`
	MaxLength   *int     `json:"max_length,omitempty"`
}

type OptionPatch struct {
	Value *string `json:"value,omitempty"`
	Label *string `json:"label,omitempty"`
}

type CloneSchemaRequest struct {
	TargetCallID string `json:"target_call_id"`
}

func (r CloneSchemaRequest) Validate() error {
	if r.TargetCallID == "" {
		return errors.New("не указан конкурс-получатель схемы")
	}
	return nil
}
