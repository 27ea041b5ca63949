package forms

import (
	"strings"

	"github.com/google/uuid"

	dbmodels "scholarship-portal-backend/models/db"
)

// Префикс идентификаторов, выданных до сохранения.
// При сохранении схемы заменяются на серверные (см. IssueIDs).
const tempIDPrefix = "tmp-"

func newTempID() string {
	return tempIDPrefix + uuid.NewString()
}

func IsTempID(id string) bool {
	return strings.HasPrefix(id, tempIDPrefix)
}

// Normalize приводит частично заполненную схему из хранилища к полному виду:
// выдаёт идентификаторы, проставляет умолчания, деградирует неизвестные типы
// полей до text. Никогда не завершается ошибкой, идемпотентна.
func Normalize(schema dbmodels.FormSchema) dbmodels.FormSchema {
	if schema.Version < 1 {
		schema.Version = 1
	}
	if schema.Sections == nil {
		schema.Sections = []dbmodels.FormSection{}
	}
	for sIdx := range schema.Sections {
		section := &schema.Sections[sIdx]
		if section.ID == "" {
			section.ID = newTempID()
		}
		if section.Fields == nil {
			section.Fields = []dbmodels.FormField{}
		}
		for fIdx := range section.Fields {
			normalizeField(&section.Fields[fIdx])
		}
	}
	return schema
}

func normalizeField(field *dbmodels.FormField) {
	if field.ID == "" {
		field.ID = newTempID()
	}
	field.Type = field.Type.Normalized()
	if field.Active == nil {
		active := true
		field.Active = &active
	}
	if !field.Type.HasOptions() {
		field.Options = nil
		return
	}
	if len(field.Options) == 0 {
		// вариант-заглушка, чтобы редактор было с чего начать
		field.Options = []dbmodels.FieldOption{{ID: newTempID()}}
		return
	}
	for idx := range field.Options {
		if field.Options[idx].ID == "" {
			field.Options[idx].ID = newTempID()
		}
	}
}

// IssueIDs заменяет временные идентификаторы на серверные перед сохранением
func IssueIDs(schema dbmodels.FormSchema) dbmodels.FormSchema {
	for sIdx := range schema.Sections {
		section := &schema.Sections[sIdx]
		if section.ID == "" || IsTempID(section.ID) {
			section.ID = uuid.NewString()
		}
		for fIdx := range section.Fields {
			field := &section.Fields[fIdx]
			if field.ID == "" || IsTempID(field.ID) {
				field.ID = uuid.NewString()
			}
			for oIdx := range field.Options {
				if field.Options[oIdx].ID == "" || IsTempID(field.Options[oIdx].ID) {
					field.Options[oIdx].ID = uuid.NewString()
				}
			}
		}
	}
	return schema
}

// ReissueIDs выдаёт новые идентификаторы всем сущностям схемы.
// Используется при клонировании схемы в другой конкурс.
func ReissueIDs(schema dbmodels.FormSchema) dbmodels.FormSchema {
	for sIdx := range schema.Sections {
		section := &schema.Sections[sIdx]
		section.ID = uuid.NewString()
		for fIdx := range section.Fields {
			field := &section.Fields[fIdx]
			field.ID = uuid.NewString()
			for oIdx := range field.Options {
				field.Options[oIdx].ID = uuid.NewString()
			}
		}
	}
	return schema
}
