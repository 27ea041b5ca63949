package forms

import (
	"testing"

	"github.com/stretchr/testify/require"

	"scholarship-portal-backend/models"
	dbmodels "scholarship-portal-backend/models/db"
)

func TestNormalize(t *testing.T) {
	t.Run(`пустая схема`, func(t *testing.T) {
		schema := Normalize(dbmodels.FormSchema{})
		require.Equal(t, 1, schema.Version)
		require.NotNil(t, schema.Sections)
		require.Len(t, schema.Sections, 0)
	})

	t.Run(`выдача идентификаторов`, func(t *testing.T) {
		schema := Normalize(dbmodels.FormSchema{
			Sections: []dbmodels.FormSection{
				{Title: "Datos", Fields: []dbmodels.FormField{
					{Name: "nombre", Type: models.FieldTypeText},
				}},
			},
		})
		require.NotEmpty(t, schema.Sections[0].ID)
		require.True(t, IsTempID(schema.Sections[0].ID))
		require.NotEmpty(t, schema.Sections[0].Fields[0].ID)
		require.True(t, IsTempID(schema.Sections[0].Fields[0].ID))
	})

	t.Run(`умолчания поля`, func(t *testing.T) {
		schema := Normalize(dbmodels.FormSchema{
			Sections: []dbmodels.FormSection{
				{Fields: []dbmodels.FormField{{Name: "edad", Type: models.FieldTypeInteger}}},
			},
		})
		field := schema.Sections[0].Fields[0]
		require.True(t, field.IsActive())
		require.False(t, field.Required)
		require.False(t, field.ReadOnly)
		require.False(t, field.Multiple)
		require.Len(t, field.Options, 0)
	})

	t.Run(`явный active=false сохраняется`, func(t *testing.T) {
		inactive := false
		schema := Normalize(dbmodels.FormSchema{
			Sections: []dbmodels.FormSection{
				{Fields: []dbmodels.FormField{{Name: "oculto", Type: models.FieldTypeText, Active: &inactive}}},
			},
		})
		require.False(t, schema.Sections[0].Fields[0].IsActive())
	})

	t.Run(`неизвестный тип деградирует до text`, func(t *testing.T) {
		schema := Normalize(dbmodels.FormSchema{
			Sections: []dbmodels.FormSection{
				{Fields: []dbmodels.FormField{{Name: "legacy", Type: "slider"}}},
			},
		})
		require.Equal(t, models.FieldTypeText, schema.Sections[0].Fields[0].Type)
	})

	t.Run(`поле с вариантами без вариантов получает заглушку`, func(t *testing.T) {
		schema := Normalize(dbmodels.FormSchema{
			Sections: []dbmodels.FormSection{
				{Fields: []dbmodels.FormField{{Name: "region", Type: models.FieldTypeSelect}}},
			},
		})
		field := schema.Sections[0].Fields[0]
		require.Len(t, field.Options, 1)
		require.True(t, IsTempID(field.Options[0].ID))
		require.Empty(t, field.Options[0].Value)
	})

	t.Run(`дубли значений вариантов в legacy-данных не ломают нормализацию`, func(t *testing.T) {
		require.NotPanics(t, func() {
			Normalize(dbmodels.FormSchema{
				Sections: []dbmodels.FormSection{
					{Fields: []dbmodels.FormField{{
						Name: "region",
						Type: models.FieldTypeRadio,
						Options: []dbmodels.FieldOption{
							{Value: "RM", Label: "Metropolitana"},
							{Value: "RM", Label: "Duplicada"},
						},
					}}},
				},
			})
		})
	})

	t.Run(`идемпотентность`, func(t *testing.T) {
		once := Normalize(dbmodels.FormSchema{
			Sections: []dbmodels.FormSection{
				{Title: "Datos", Fields: []dbmodels.FormField{
					{Name: "region", Type: models.FieldTypeSelect},
					{Name: "legacy", Type: "slider"},
				}},
			},
		})
		twice := Normalize(once)
		require.Equal(t, once, twice)
	})
}

func TestIssueIDs(t *testing.T) {
	t.Run(`временные идентификаторы заменяются на серверные`, func(t *testing.T) {
		schema := Normalize(dbmodels.FormSchema{
			Sections: []dbmodels.FormSection{
				{Fields: []dbmodels.FormField{{Name: "region", Type: models.FieldTypeSelect}}},
			},
		})
		issued := IssueIDs(schema)
		require.False(t, IsTempID(issued.Sections[0].ID))
		require.False(t, IsTempID(issued.Sections[0].Fields[0].ID))
		require.False(t, IsTempID(issued.Sections[0].Fields[0].Options[0].ID))
	})

	t.Run(`серверные идентификаторы не меняются`, func(t *testing.T) {
		schema := dbmodels.FormSchema{
			Sections: []dbmodels.FormSection{
				{ID: "5e9f0f9e-0000-0000-0000-000000000001", Fields: []dbmodels.FormField{}},
			},
		}
		issued := IssueIDs(schema)
		require.Equal(t, "5e9f0f9e-0000-0000-0000-000000000001", issued.Sections[0].ID)
	})
}

func TestReissueIDs(t *testing.T) {
	t.Run(`клон не делит идентификаторы с источником`, func(t *testing.T) {
		source := IssueIDs(Normalize(dbmodels.FormSchema{
			Sections: []dbmodels.FormSection{
				{Title: "Datos", Fields: []dbmodels.FormField{{Name: "region", Type: models.FieldTypeSelect}}},
			},
		}))
		sourceIDs := collectIDs(source)

		clone := ReissueIDs(source)
		for _, id := range collectIDs(clone) {
			require.NotContains(t, sourceIDs, id)
		}
	})
}

func collectIDs(schema dbmodels.FormSchema) []string {
	ids := []string{}
	for _, section := range schema.Sections {
		ids = append(ids, section.ID)
		for _, field := range section.Fields {
			ids = append(ids, field.ID)
			for _, opt := range field.Options {
				ids = append(ids, opt.ID)
			}
		}
	}
	return ids
}
