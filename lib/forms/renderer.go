package forms

import (
	"fmt"

	"scholarship-portal-backend/models"
	formapimodels "scholarship-portal-backend/models/api/form"
	dbmodels "scholarship-portal-backend/models/db"
)

// Render интерпретирует схему и карту ответов для роли наблюдателя.
// Чистая функция от (схема, ответы, роль), без обращения к глобальному состоянию:
//   - applicant: редактируемая анкета, только активные поля без admin_only;
//   - admin:     анкета только для чтения, включая admin_only поля,
//     значения разрешаются в подписи вариантов;
//   - public:    как applicant, но все поля заблокированы,
//     блок заметок интервью не отдаётся никогда.
func Render(schema dbmodels.FormSchema, answers dbmodels.AnswerMap, role models.RenderRole) formapimodels.RenderedForm {
	schema = Normalize(schema)
	bound := Bind(schema, answers)
	result := formapimodels.RenderedForm{
		Role:     role,
		Sections: make([]formapimodels.RenderedSection, 0, len(schema.Sections)),
	}
	for _, section := range schema.Sections {
		rendered := formapimodels.RenderedSection{
			ID:          section.ID,
			Title:       section.Title,
			Description: section.Description,
		}
		if role == models.RenderRoleAdmin {
			rendered.CommentBox = section.CommentBox
		}
		for _, field := range section.Fields {
			renderedField, ok := renderField(field, bound, role)
			if !ok {
				continue
			}
			rendered.Fields = append(rendered.Fields, renderedField)
		}
		result.Sections = append(result.Sections, rendered)
	}
	return result
}

func renderField(field dbmodels.FormField, bound dbmodels.AnswerMap, role models.RenderRole) (formapimodels.RenderedField, bool) {
	if !field.IsActive() {
		return formapimodels.RenderedField{}, false
	}
	if field.AdminOnly && role != models.RenderRoleAdmin {
		return formapimodels.RenderedField{}, false
	}
	rendered := formapimodels.RenderedField{
		ID:          field.ID,
		Name:        field.Name,
		Label:       field.Label,
		Type:        field.Type,
		HelpText:    field.HelpText,
		Placeholder: field.Placeholder,
		Required:    field.Required,
		ReadOnly:    field.ReadOnly,
		AdminOnly:   field.AdminOnly,
		Multiple:    field.Multiple,
		Min:         field.Min,
		Max:         field.Max,
		Step:        field.Step,
		MaxLength:   field.MaxLength,
		Options:     convertOptions(field.Options),
	}
	value := bound[field.Name]
	switch role {
	case models.RenderRoleAdmin:
		renderReadOnlyValue(&rendered, field, value)
	case models.RenderRolePublic:
		rendered.Disabled = true
		rendered.Value = value
	default:
		rendered.Value = value
	}
	return rendered, true
}

// Значение для режима чтения: токены вариантов разрешаются в подписи,
// массивы — в список подписей, отсутствие ответа — явный маркер
func renderReadOnlyValue(rendered *formapimodels.RenderedField, field dbmodels.FormField, value interface{}) {
	if list, ok := value.([]interface{}); ok {
		if len(list) == 0 {
			rendered.Display = formapimodels.EmptyValueMarker
			return
		}
		rendered.DisplayList = make([]string, 0, len(list))
		for _, item := range list {
			rendered.DisplayList = append(rendered.DisplayList, displayScalar(field, item))
		}
		return
	}
	rendered.Display = displayScalar(field, value)
}

func displayScalar(field dbmodels.FormField, value interface{}) string {
	if value == nil {
		return formapimodels.EmptyValueMarker
	}
	text := fmt.Sprintf("%v", value)
	if text == "" {
		return formapimodels.EmptyValueMarker
	}
	if field.Type.HasOptions() {
		// при дрейфе схемы подпись может не найтись, тогда значение как есть
		return field.LabelFor(text)
	}
	return text
}

func convertOptions(options []dbmodels.FieldOption) []formapimodels.OptionView {
	if len(options) == 0 {
		return nil
	}
	views := make([]formapimodels.OptionView, 0, len(options))
	for _, opt := range options {
		views = append(views, formapimodels.OptionView{
			ID:    opt.ID,
			Value: opt.Value,
			Label: opt.Label,
		})
	}
	return views
}
