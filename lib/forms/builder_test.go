package forms

import (
	"testing"

	"github.com/stretchr/testify/require"

	"scholarship-portal-backend/models"
	formapimodels "scholarship-portal-backend/models/api/form"
	dbmodels "scholarship-portal-backend/models/db"
)

func strPtr(s string) *string { return &s }

func TestBuilderSections(t *testing.T) {
	t.Run(`добавление и правка секции`, func(t *testing.T) {
		schema := dbmodels.FormSchema{}
		b := NewBuilder(&schema)
		section := b.AddSection()
		require.NotEmpty(t, section.ID)

		err := b.UpdateSection(section.ID, formapimodels.SectionPatch{Title: strPtr("Datos")})
		require.Nil(t, err)
		require.Equal(t, "Datos", schema.Sections[0].Title)
	})

	t.Run(`удаление секции`, func(t *testing.T) {
		schema := dbmodels.FormSchema{}
		b := NewBuilder(&schema)
		first := b.AddSection().ID
		b.AddSection()

		require.Nil(t, b.DeleteSection(first))
		require.Len(t, schema.Sections, 1)

		err := b.DeleteSection(first)
		require.NotNil(t, err)
		require.True(t, IsValidationError(err))
	})

	t.Run(`перестановка секций`, func(t *testing.T) {
		schema := dbmodels.FormSchema{}
		b := NewBuilder(&schema)
		first := b.AddSection().ID
		second := b.AddSection().ID

		require.Nil(t, b.MoveSection(second, -1))
		require.Equal(t, second, schema.Sections[0].ID)
		require.Equal(t, first, schema.Sections[1].ID)

		// выход за границы игнорируется
		require.Nil(t, b.MoveSection(second, -1))
		require.Equal(t, second, schema.Sections[0].ID)
	})
}

func TestBuilderFields(t *testing.T) {
	t.Run(`поле с вариантами сразу получает вариант`, func(t *testing.T) {
		schema := dbmodels.FormSchema{}
		b := NewBuilder(&schema)
		section := b.AddSection()

		field, err := b.AddField(section.ID, models.FieldTypeSelect)
		require.Nil(t, err)
		require.True(t, len(field.Options) >= 1)
		require.True(t, field.IsActive())
	})

	t.Run(`имена полей уникальны во всей схеме`, func(t *testing.T) {
		schema := dbmodels.FormSchema{}
		b := NewBuilder(&schema)
		first := b.AddSection().ID
		second := b.AddSection().ID

		f1, err := b.AddField(first, models.FieldTypeText)
		require.Nil(t, err)
		f2, err := b.AddField(first, models.FieldTypeText)
		require.Nil(t, err)
		// коллизия имён между секциями тоже недопустима
		f3, err := b.AddField(second, models.FieldTypeText)
		require.Nil(t, err)

		names := map[string]bool{f1.Name: true, f2.Name: true, f3.Name: true}
		require.Len(t, names, 3)
	})

	t.Run(`переименование в занятое имя получает суффикс`, func(t *testing.T) {
		schema := dbmodels.FormSchema{}
		b := NewBuilder(&schema)
		section := b.AddSection()
		_, err := b.AddField(section.ID, models.FieldTypeText)
		require.Nil(t, err)
		second, err := b.AddField(section.ID, models.FieldTypeDate)
		require.Nil(t, err)
		secondID := second.ID

		err = b.UpdateField(section.ID, secondID, formapimodels.FieldPatch{Name: strPtr("text")})
		require.Nil(t, err)
		renamed := schema.FindSection(section.ID).FindField(secondID)
		require.Equal(t, "text_1", renamed.Name)
	})

	t.Run(`смена типа select -> text очищает варианты`, func(t *testing.T) {
		schema := dbmodels.FormSchema{}
		b := NewBuilder(&schema)
		section := b.AddSection()
		field, err := b.AddField(section.ID, models.FieldTypeSelect)
		require.Nil(t, err)
		fieldID := field.ID

		err = b.UpdateField(section.ID, fieldID, formapimodels.FieldPatch{Type: strPtr("text")})
		require.Nil(t, err)
		updated := schema.FindSection(section.ID).FindField(fieldID)
		require.Len(t, updated.Options, 0)

		// обратная смена к radio добавляет ровно один пустой вариант
		err = b.UpdateField(section.ID, fieldID, formapimodels.FieldPatch{Type: strPtr("radio")})
		require.Nil(t, err)
		updated = schema.FindSection(section.ID).FindField(fieldID)
		require.Len(t, updated.Options, 1)
		require.Empty(t, updated.Options[0].Value)
		require.Empty(t, updated.Options[0].Label)
	})

	t.Run(`удаление и перестановка полей`, func(t *testing.T) {
		schema := dbmodels.FormSchema{}
		b := NewBuilder(&schema)
		section := b.AddSection()
		f1, _ := b.AddField(section.ID, models.FieldTypeText)
		f1ID := f1.ID
		f2, _ := b.AddField(section.ID, models.FieldTypeDate)
		f2ID := f2.ID

		require.Nil(t, b.MoveField(section.ID, f2ID, -1))
		fields := schema.FindSection(section.ID).Fields
		require.Equal(t, f2ID, fields[0].ID)

		require.Nil(t, b.DeleteField(section.ID, f1ID))
		require.Len(t, schema.FindSection(section.ID).Fields, 1)
	})
}

func TestBuilderOptions(t *testing.T) {
	t.Run(`правка вариантов`, func(t *testing.T) {
		schema := dbmodels.FormSchema{}
		b := NewBuilder(&schema)
		section := b.AddSection()
		field, _ := b.AddField(section.ID, models.FieldTypeRadio)
		fieldID := field.ID
		optionID := field.Options[0].ID

		err := b.UpdateOption(section.ID, fieldID, optionID, formapimodels.OptionPatch{
			Value: strPtr("RM"),
			Label: strPtr("Metropolitana"),
		})
		require.Nil(t, err)

		opt, err := b.AddOption(section.ID, fieldID)
		require.Nil(t, err)

		// значение варианта уникально внутри поля
		err = b.UpdateOption(section.ID, fieldID, opt.ID, formapimodels.OptionPatch{Value: strPtr("RM")})
		require.NotNil(t, err)
		require.True(t, IsValidationError(err))
	})

	t.Run(`вариант недоступен для поля без вариантов`, func(t *testing.T) {
		schema := dbmodels.FormSchema{}
		b := NewBuilder(&schema)
		section := b.AddSection()
		field, _ := b.AddField(section.ID, models.FieldTypeText)

		_, err := b.AddOption(section.ID, field.ID)
		require.NotNil(t, err)
		require.True(t, IsValidationError(err))
	})

	t.Run(`удаление варианта`, func(t *testing.T) {
		schema := dbmodels.FormSchema{}
		b := NewBuilder(&schema)
		section := b.AddSection()
		field, _ := b.AddField(section.ID, models.FieldTypeCheckbox)
		fieldID := field.ID
		optionID := field.Options[0].ID

		require.Nil(t, b.DeleteOption(section.ID, fieldID, optionID))
		require.Len(t, schema.FindSection(section.ID).FindField(fieldID).Options, 0)
	})
}

func TestValidateSchema(t *testing.T) {
	t.Run(`дубль имени поля`, func(t *testing.T) {
		schema := Normalize(dbmodels.FormSchema{
			Sections: []dbmodels.FormSection{
				{Fields: []dbmodels.FormField{
					{Name: "rut", Type: models.FieldTypeText},
					{Name: "rut", Type: models.FieldTypeText},
				}},
			},
		})
		errs := ValidateSchema(schema)
		require.Len(t, errs, 1)
		require.Equal(t, "rut", errs[0].Field)
	})

	t.Run(`пустое имя поля`, func(t *testing.T) {
		schema := Normalize(dbmodels.FormSchema{
			Sections: []dbmodels.FormSection{
				{Fields: []dbmodels.FormField{{Label: "Sin nombre", Type: models.FieldTypeText}}},
			},
		})
		errs := ValidateSchema(schema)
		require.Len(t, errs, 1)
	})

	t.Run(`корректная схема проходит`, func(t *testing.T) {
		schema := dbmodels.FormSchema{}
		b := NewBuilder(&schema)
		section := b.AddSection()
		_, err := b.AddField(section.ID, models.FieldTypeText)
		require.Nil(t, err)
		_, err = b.AddField(section.ID, models.FieldTypeSelect)
		require.Nil(t, err)

		require.Len(t, ValidateSchema(schema), 0)
	})
}
