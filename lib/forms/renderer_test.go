package forms

import (
	"testing"

	"github.com/stretchr/testify/require"

	"scholarship-portal-backend/models"
	formapimodels "scholarship-portal-backend/models/api/form"
	dbmodels "scholarship-portal-backend/models/db"
)

func commentSchema() dbmodels.FormSchema {
	schema := testSchema()
	schema.Sections[0].CommentBox = true
	schema.Sections[0].Fields = append(schema.Sections[0].Fields, dbmodels.FormField{
		Name:      "nota_interna",
		Type:      models.FieldTypeTextarea,
		AdminOnly: true,
	})
	return Normalize(schema)
}

func fieldByName(form formapimodels.RenderedForm, name string) *formapimodels.RenderedField {
	for _, section := range form.Sections {
		for idx := range section.Fields {
			if section.Fields[idx].Name == name {
				return &section.Fields[idx]
			}
		}
	}
	return nil
}

func TestRenderApplicant(t *testing.T) {
	t.Run(`редактируемая анкета`, func(t *testing.T) {
		form := Render(commentSchema(), dbmodels.AnswerMap{}, models.RenderRoleApplicant)
		field := fieldByName(form, "region")
		require.NotNil(t, field)
		require.Equal(t, "", field.Value)
		require.False(t, field.Disabled)
		require.Len(t, field.Options, 1)
	})

	t.Run(`неактивные поля не отдаются`, func(t *testing.T) {
		form := Render(commentSchema(), dbmodels.AnswerMap{"oculto": "dato"}, models.RenderRoleApplicant)
		require.Nil(t, fieldByName(form, "oculto"))
	})

	t.Run(`admin_only поля не отдаются заявителю`, func(t *testing.T) {
		form := Render(commentSchema(), dbmodels.AnswerMap{}, models.RenderRoleApplicant)
		require.Nil(t, fieldByName(form, "nota_interna"))
	})

	t.Run(`флаг блока заметок не отдаётся заявителю`, func(t *testing.T) {
		form := Render(commentSchema(), dbmodels.AnswerMap{}, models.RenderRoleApplicant)
		require.False(t, form.Sections[0].CommentBox)
	})
}

func TestRenderAdmin(t *testing.T) {
	t.Run(`значение разрешается в подпись варианта`, func(t *testing.T) {
		form := Render(commentSchema(), dbmodels.AnswerMap{"region": "RM"}, models.RenderRoleAdmin)
		field := fieldByName(form, "region")
		require.NotNil(t, field)
		require.Equal(t, "Metropolitana", field.Display)
	})

	t.Run(`массив разрешается в список подписей`, func(t *testing.T) {
		form := Render(commentSchema(), dbmodels.AnswerMap{"idiomas": []interface{}{"es", "en"}}, models.RenderRoleAdmin)
		field := fieldByName(form, "idiomas")
		require.Equal(t, []string{"Español", "Inglés"}, field.DisplayList)
	})

	t.Run(`отсутствующий ответ отдаётся явным маркером`, func(t *testing.T) {
		form := Render(commentSchema(), dbmodels.AnswerMap{}, models.RenderRoleAdmin)
		require.Equal(t, formapimodels.EmptyValueMarker, fieldByName(form, "nombre").Display)
		require.Equal(t, formapimodels.EmptyValueMarker, fieldByName(form, "idiomas").Display)
	})

	t.Run(`дрейф схемы: неизвестный токен показывается как есть`, func(t *testing.T) {
		form := Render(commentSchema(), dbmodels.AnswerMap{"region": "XV"}, models.RenderRoleAdmin)
		require.Equal(t, "XV", fieldByName(form, "region").Display)
	})

	t.Run(`admin_only поля и блок заметок видны`, func(t *testing.T) {
		form := Render(commentSchema(), dbmodels.AnswerMap{}, models.RenderRoleAdmin)
		require.NotNil(t, fieldByName(form, "nota_interna"))
		require.True(t, form.Sections[0].CommentBox)
	})
}

func TestRenderPublic(t *testing.T) {
	t.Run(`все поля заблокированы`, func(t *testing.T) {
		form := Render(commentSchema(), dbmodels.AnswerMap{}, models.RenderRolePublic)
		for _, section := range form.Sections {
			for _, field := range section.Fields {
				require.True(t, field.Disabled)
			}
		}
	})

	t.Run(`блок заметок и admin_only не утекают`, func(t *testing.T) {
		form := Render(commentSchema(), dbmodels.AnswerMap{}, models.RenderRolePublic)
		require.False(t, form.Sections[0].CommentBox)
		require.Nil(t, fieldByName(form, "nota_interna"))
	})
}

// Полный проход: привязка пустых ответов и показ сохранённого ответа администратору
func TestBindAndRenderRoundTrip(t *testing.T) {
	schema := Normalize(dbmodels.FormSchema{
		Sections: []dbmodels.FormSection{
			{Title: "Datos", Fields: []dbmodels.FormField{
				{Name: "region", Type: models.FieldTypeSelect, Options: []dbmodels.FieldOption{
					{Value: "RM", Label: "Metropolitana"},
				}},
			}},
		},
	})

	bound := Bind(schema, dbmodels.AnswerMap{})
	require.Equal(t, "", bound["region"])

	form := Render(schema, dbmodels.AnswerMap{"region": "RM"}, models.RenderRoleAdmin)
	require.Equal(t, "Metropolitana", form.Sections[0].Fields[0].Display)
	require.NotEqual(t, "RM", form.Sections[0].Fields[0].Display)
}
