package models

type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeInteger  FieldType = "integer"
	FieldTypeDecimal  FieldType = "decimal"
	FieldTypeDate     FieldType = "date"
	FieldTypeSelect   FieldType = "select"
	FieldTypeRadio    FieldType = "radio"
	FieldTypeCheckbox FieldType = "checkbox"
	FieldTypeFile     FieldType = "file"
	FieldTypeImage    FieldType = "image"
)

var knownFieldTypes = map[FieldType]bool{
	FieldTypeText:     true,
	FieldTypeTextarea: true,
	FieldTypeInteger:  true,
	FieldTypeDecimal:  true,
	FieldTypeDate:     true,
	FieldTypeSelect:   true,
	FieldTypeRadio:    true,
	FieldTypeCheckbox: true,
	FieldTypeFile:     true,
	FieldTypeImage:    true,
}

func (t FieldType) IsKnown() bool {
	return knownFieldTypes[t]
}

// Типы со списком вариантов ответа
func (t FieldType) HasOptions() bool {
	return t == FieldTypeSelect || t == FieldTypeRadio || t == FieldTypeCheckbox
}

// Значение ответа — массив, а не скаляр
func (t FieldType) IsMultiValue(multiple bool) bool {
	if t == FieldTypeCheckbox {
		return true
	}
	return t == FieldTypeSelect && multiple
}

// Значение ответа — ссылка на документ
func (t FieldType) IsDocument() bool {
	return t == FieldTypeFile || t == FieldTypeImage
}

// Неизвестный тип из legacy-данных деградирует до text
func (t FieldType) Normalized() FieldType {
	if t.IsKnown() {
		return t
	}
	return FieldTypeText
}
