package forms

import (
	"fmt"

	"scholarship-portal-backend/models"
	formapimodels "scholarship-portal-backend/models/api/form"
	dbmodels "scholarship-portal-backend/models/db"
)

// Builder — поверхность правок схемы до сохранения.
// Все операции чисто в памяти, инварианты держатся после каждой операции:
// имя поля уникально в рамках всей схемы, у полей с вариантами ответов
// сразу после добавления есть минимум один вариант.
type Builder struct {
	schema *dbmodels.FormSchema
}

func NewBuilder(schema *dbmodels.FormSchema) *Builder {
	*schema = Normalize(*schema)
	return &Builder{schema: schema}
}

func (b *Builder) Schema() *dbmodels.FormSchema {
	return b.schema
}

func (b *Builder) AddSection() *dbmodels.FormSection {
	b.schema.Sections = append(b.schema.Sections, dbmodels.FormSection{
		ID:     newTempID(),
		Fields: []dbmodels.FormField{},
	})
	return &b.schema.Sections[len(b.schema.Sections)-1]
}

func (b *Builder) UpdateSection(sectionID string, patch formapimodels.SectionPatch) error {
	section := b.schema.FindSection(sectionID)
	if section == nil {
		return newValidationError("", "секция не найдена")
	}
	if patch.Title != nil {
		section.Title = *patch.Title
	}
	if patch.Description != nil {
		section.Description = *patch.Description
	}
	if patch.CommentBox != nil {
		section.CommentBox = *patch.CommentBox
	}
	return nil
}

func (b *Builder) DeleteSection(sectionID string) error {
	for idx := range b.schema.Sections {
		if b.schema.Sections[idx].ID == sectionID {
			b.schema.Sections = append(b.schema.Sections[:idx], b.schema.Sections[idx+1:]...)
			return nil
		}
	}
	return newValidationError("", "секция не найдена")
}

func (b *Builder) MoveSection(sectionID string, offset int) error {
	for idx := range b.schema.Sections {
		if b.schema.Sections[idx].ID == sectionID {
			target := idx + offset
			if target < 0 || target >= len(b.schema.Sections) {
				return nil
			}
			b.schema.Sections[idx], b.schema.Sections[target] = b.schema.Sections[target], b.schema.Sections[idx]
			return nil
		}
	}
	return newValidationError("", "секция не найдена")
}

func (b *Builder) AddField(sectionID string, fieldType models.FieldType) (*dbmodels.FormField, error) {
	section := b.schema.FindSection(sectionID)
	if section == nil {
		return nil, newValidationError("", "секция не найдена")
	}
	fieldType = fieldType.Normalized()
	active := true
	field := dbmodels.FormField{
		ID:     newTempID(),
		Name:   b.uniqueName(string(fieldType), ""),
		Type:   fieldType,
		Active: &active,
	}
	if fieldType.HasOptions() {
		field.Options = []dbmodels.FieldOption{{ID: newTempID()}}
	}
	section.Fields = append(section.Fields, field)
	return &section.Fields[len(section.Fields)-1], nil
}

func (b *Builder) UpdateField(sectionID, fieldID string, patch formapimodels.FieldPatch) error {
	field, err := b.findField(sectionID, fieldID)
	if err != nil {
		return err
	}
	if patch.Name != nil {
		if *patch.Name == "" {
			return newValidationError(field.Name, "имя поля не может быть пустым")
		}
		field.Name = b.uniqueName(*patch.Name, fieldID)
	}
	if patch.Label != nil {
		field.Label = *patch.Label
	}
	if patch.Type != nil {
		b.changeFieldType(field, models.FieldType(*patch.Type).Normalized())
	}
	if patch.HelpText != nil {
		field.HelpText = *patch.HelpText
	}
	if patch.Placeholder != nil {
		field.Placeholder = *patch.Placeholder
	}
	if patch.Required != nil {
		field.Required = *patch.Required
	}
	if patch.Active != nil {
		active := *patch.Active
		field.Active = &active
	}
	if patch.AdminOnly != nil {
		field.AdminOnly = *patch.AdminOnly
	}
	if patch.ReadOnly != nil {
		field.ReadOnly = *patch.ReadOnly
	}
	if patch.Multiple != nil {
		field.Multiple = *patch.Multiple
	}
	if patch.Min != nil {
		field.Min = patch.Min
	}
	if patch.Max != nil {
		field.Max = patch.Max
	}
	if patch.Step != nil {
		field.Step = patch.Step
	}
	if patch.MaxLength != nil {
		field.MaxLength = patch.MaxLength
	}
	return nil
}

// Смена типа: уход от типа с вариантами очищает варианты,
// переход к такому типу при их отсутствии добавляет вариант-заглушку
func (b *Builder) changeFieldType(field *dbmodels.FormField, newType models.FieldType) {
	if field.Type == newType {
		return
	}
	field.Type = newType
	if !newType.HasOptions() {
		field.Options = nil
		field.Multiple = false
		return
	}
	if len(field.Options) == 0 {
		field.Options = []dbmodels.FieldOption{{ID: newTempID()}}
	}
}

func (b *Builder) DeleteField(sectionID, fieldID string) error {
	section := b.schema.FindSection(sectionID)
	if section == nil {
		return newValidationError("", "секция не найдена")
	}
	for idx := range section.Fields {
		if section.Fields[idx].ID == fieldID {
			section.Fields = append(section.Fields[:idx], section.Fields[idx+1:]...)
			return nil
		}
	}
	return newValidationError("", "поле не найдено")
}

func (b *Builder) MoveField(sectionID, fieldID string, offset int) error {
	section := b.schema.FindSection(sectionID)
	if section == nil {
		return newValidationError("", "секция не найдена")
	}
	for idx := range section.Fields {
		if section.Fields[idx].ID == fieldID {
			target := idx + offset
			if target < 0 || target >= len(section.Fields) {
				return nil
			}
			section.Fields[idx], section.Fields[target] = section.Fields[target], section.Fields[idx]
			return nil
		}
	}
	return newValidationError("", "поле не найдено")
}

func (b *Builder) AddOption(sectionID, fieldID string) (*dbmodels.FieldOption, error) {
	field, err := b.findField(sectionID, fieldID)
	if err != nil {
		return nil, err
	}
	if !field.Type.HasOptions() {
		return nil, newValidationError(field.Name, "тип поля %v не поддерживает варианты ответа", field.Type)
	}
	field.Options = append(field.Options, dbmodels.FieldOption{ID: newTempID()})
	return &field.Options[len(field.Options)-1], nil
}

func (b *Builder) UpdateOption(sectionID, fieldID, optionID string, patch formapimodels.OptionPatch) error {
	field, err := b.findField(sectionID, fieldID)
	if err != nil {
		return err
	}
	var option *dbmodels.FieldOption
	for idx := range field.Options {
		if field.Options[idx].ID == optionID {
			option = &field.Options[idx]
			break
		}
	}
	if option == nil {
		return newValidationError(field.Name, "вариант ответа не найден")
	}
	if patch.Value != nil {
		for _, other := range field.Options {
			if other.ID != optionID && other.Value == *patch.Value && *patch.Value != "" {
				return newValidationError(field.Name, "значение варианта %v уже используется", *patch.Value)
			}
		}
		option.Value = *patch.Value
	}
	if patch.Label != nil {
		option.Label = *patch.Label
	}
	return nil
}

func (b *Builder) DeleteOption(sectionID, fieldID, optionID string) error {
	field, err := b.findField(sectionID, fieldID)
	if err != nil {
		return err
	}
	for idx := range field.Options {
		if field.Options[idx].ID == optionID {
			field.Options = append(field.Options[:idx], field.Options[idx+1:]...)
			return nil
		}
	}
	return newValidationError(field.Name, "вариант ответа не найден")
}

func (b *Builder) findField(sectionID, fieldID string) (*dbmodels.FormField, error) {
	section := b.schema.FindSection(sectionID)
	if section == nil {
		return nil, newValidationError("", "секция не найдена")
	}
	field := section.FindField(fieldID)
	if field == nil {
		return nil, newValidationError("", "поле не найдено")
	}
	return field, nil
}

// Имя поля должно быть уникально в рамках всей схемы:
// ответы хранятся плоской картой по имени. При коллизии добавляется суффикс.
func (b *Builder) uniqueName(base string, excludeFieldID string) string {
	taken := map[string]bool{}
	b.schema.EachField(func(_ dbmodels.FormSection, field dbmodels.FormField) {
		if field.ID != excludeFieldID {
			taken[field.Name] = true
		}
	})
	if !taken[base] {
		return base
	}
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s_%d", base, n)
		if !taken[candidate] {
			return candidate
		}
	}
}
