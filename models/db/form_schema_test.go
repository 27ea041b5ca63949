package dbmodels

import (
	"testing"

	"github.com/stretchr/testify/require"

	"scholarship-portal-backend/models"
)

func helperSchema() FormSchema {
	active := true
	inactive := false
	return FormSchema{
		Version: 1,
		Sections: []FormSection{
			{
				ID:    "s1",
				Title: "Datos",
				Fields: []FormField{
					{ID: "f1", Name: "nombre", Type: models.FieldTypeText, Active: &active},
					{ID: "f2", Name: "region", Type: models.FieldTypeSelect, Active: &active,
						Options: []FieldOption{
							{ID: "o1", Value: "RM", Label: "Metropolitana"},
							{ID: "o2", Value: "V", Label: "Valparaíso"},
						},
					},
					{ID: "f3", Name: "oculto", Type: models.FieldTypeText, Active: &inactive},
				},
			},
		},
	}
}

func TestFieldByName(t *testing.T) {
	schema := helperSchema()

	t.Run("поле находится по имени", func(t *testing.T) {
		field := schema.FieldByName("region")
		require.NotNil(t, field)
		require.Equal(t, "f2", field.ID)
	})

	t.Run("неактивное поле тоже находится", func(t *testing.T) {
		field := schema.FieldByName("oculto")
		require.NotNil(t, field)
		require.False(t, field.IsActive())
	})

	t.Run("неизвестное имя", func(t *testing.T) {
		require.Nil(t, schema.FieldByName("desconocido"))
	})
}

func TestLabelFor(t *testing.T) {
	field := helperSchema().Sections[0].Fields[1]

	require.Equal(t, "Metropolitana", field.LabelFor("RM"))
	// значение, которого нет среди вариантов, не скрывается
	require.Equal(t, "XV", field.LabelFor("XV"))
}

func TestActiveDefault(t *testing.T) {
	// в legacy-данных признак может отсутствовать, поле считается видимым
	field := FormField{Name: "nombre"}
	require.True(t, field.IsActive())
}
