package forms

import (
	dbmodels "scholarship-portal-backend/models/db"
)

// Значение по умолчанию для поля без ответа:
// скаляры — пустая строка, множественный выбор — пустой массив,
// документы — nil (ссылка отсутствует)
func DefaultAnswer(field dbmodels.FormField) interface{} {
	switch {
	case field.Type.IsMultiValue(field.Multiple):
		return []interface{}{}
	case field.Type.IsDocument():
		return nil
	default:
		return ""
	}
}

// Bind накладывает плоскую карту ответов на схему для отображения:
// каждому активному полю без ответа подставляется умолчание.
// Неактивные поля в результат не попадают.
func Bind(schema dbmodels.FormSchema, answers dbmodels.AnswerMap) dbmodels.AnswerMap {
	bound := dbmodels.AnswerMap{}
	schema.EachField(func(_ dbmodels.FormSection, field dbmodels.FormField) {
		if !field.IsActive() {
			return
		}
		if value, ok := answers[field.Name]; ok {
			bound[field.Name] = value
			return
		}
		bound[field.Name] = DefaultAnswer(field)
	})
	return bound
}

// Flatten собирает карту ответов для сохранения. Ответы неактивных полей
// переносятся из stored без изменений: скрытие поля не теряет данные.
func Flatten(schema dbmodels.FormSchema, values dbmodels.AnswerMap, stored dbmodels.AnswerMap) dbmodels.AnswerMap {
	flat := dbmodels.AnswerMap{}
	for name, value := range stored {
		flat[name] = value
	}
	schema.EachField(func(_ dbmodels.FormSection, field dbmodels.FormField) {
		if !field.IsActive() {
			return
		}
		if value, ok := values[field.Name]; ok {
			flat[field.Name] = value
			return
		}
		if _, ok := flat[field.Name]; !ok {
			flat[field.Name] = DefaultAnswer(field)
		}
	})
	return flat
}
