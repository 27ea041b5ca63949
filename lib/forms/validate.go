package forms

import (
	dbmodels "scholarship-portal-backend/models/db"
)

// ValidateSchema проверяет инварианты перед сохранением документа целиком:
// непустые имена полей, уникальность имён в рамках схемы,
// уникальность значений вариантов внутри поля.
func ValidateSchema(schema dbmodels.FormSchema) []ValidationError {
	result := []ValidationError{}
	seenNames := map[string]bool{}
	schema.EachField(func(_ dbmodels.FormSection, field dbmodels.FormField) {
		if field.Name == "" {
			result = append(result, *newValidationError(field.Label, "не задано имя поля"))
			return
		}
		if seenNames[field.Name] {
			result = append(result, *newValidationError(field.Name, "имя поля уже используется"))
		}
		seenNames[field.Name] = true

		if !field.Type.HasOptions() {
			return
		}
		seenValues := map[string]bool{}
		for _, opt := range field.Options {
			if opt.Value == "" {
				continue
			}
			if seenValues[opt.Value] {
				result = append(result, *newValidationError(field.Name, "значение варианта дублируется: %v", opt.Value))
			}
			seenValues[opt.Value] = true
		}
	})
	return result
}

// RequiredErrors — авторитетная проверка обязательности ответов при подаче.
// Считаются только активные поля, видимые заявителю.
func RequiredErrors(schema dbmodels.FormSchema, answers dbmodels.AnswerMap) []ValidationError {
	result := []ValidationError{}
	schema.EachField(func(_ dbmodels.FormSection, field dbmodels.FormField) {
		if !field.IsActive() || field.AdminOnly || !field.Required {
			return
		}
		if isEmptyAnswer(answers[field.Name]) {
			result = append(result, *newValidationError(field.Name, "обязательное поле не заполнено"))
		}
	})
	return result
}

func isEmptyAnswer(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []interface{}:
		return len(v) == 0
	case []string:
		return len(v) == 0
	default:
		return false
	}
}
