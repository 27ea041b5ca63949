package forms

import (
	"testing"

	"github.com/stretchr/testify/require"

	"scholarship-portal-backend/models"
	dbmodels "scholarship-portal-backend/models/db"
)

func testSchema() dbmodels.FormSchema {
	inactive := false
	return Normalize(dbmodels.FormSchema{
		Sections: []dbmodels.FormSection{
			{
				Title: "Datos",
				Fields: []dbmodels.FormField{
					{Name: "nombre", Type: models.FieldTypeText},
					{Name: "region", Type: models.FieldTypeSelect, Options: []dbmodels.FieldOption{
						{Value: "RM", Label: "Metropolitana"},
					}},
					{Name: "idiomas", Type: models.FieldTypeCheckbox, Options: []dbmodels.FieldOption{
						{Value: "es", Label: "Español"},
						{Value: "en", Label: "Inglés"},
					}},
					{Name: "certificado", Type: models.FieldTypeFile},
					{Name: "oculto", Type: models.FieldTypeText, Active: &inactive},
				},
			},
		},
	})
}

func TestBind(t *testing.T) {
	t.Run(`умолчания по типу поля`, func(t *testing.T) {
		bound := Bind(testSchema(), dbmodels.AnswerMap{})
		require.Equal(t, "", bound["nombre"])
		require.Equal(t, "", bound["region"])
		require.Equal(t, []interface{}{}, bound["idiomas"])
		require.Nil(t, bound["certificado"])
	})

	t.Run(`неактивные поля не попадают в привязку`, func(t *testing.T) {
		bound := Bind(testSchema(), dbmodels.AnswerMap{"oculto": "dato viejo"})
		_, exists := bound["oculto"]
		require.False(t, exists)
	})

	t.Run(`сохранённые ответы проходят как есть`, func(t *testing.T) {
		bound := Bind(testSchema(), dbmodels.AnswerMap{
			"region":  "RM",
			"idiomas": []interface{}{"es", "en"},
		})
		require.Equal(t, "RM", bound["region"])
		require.Equal(t, []interface{}{"es", "en"}, bound["idiomas"])
	})
}

func TestFlatten(t *testing.T) {
	t.Run(`flatten(bind(S, {})) даёт запись на каждое активное поле`, func(t *testing.T) {
		schema := testSchema()
		flat := Flatten(schema, Bind(schema, dbmodels.AnswerMap{}), dbmodels.AnswerMap{})
		require.Len(t, flat, 4)
		require.Equal(t, "", flat["nombre"])
		require.Equal(t, "", flat["region"])
		require.Equal(t, []interface{}{}, flat["idiomas"])
		require.Contains(t, flat, "certificado")
		require.Nil(t, flat["certificado"])
	})

	t.Run(`ответ неактивного поля переживает сохранение`, func(t *testing.T) {
		schema := testSchema()
		stored := dbmodels.AnswerMap{"oculto": "dato viejo", "nombre": "Ana"}
		flat := Flatten(schema, dbmodels.AnswerMap{"nombre": "Ana María"}, stored)
		// скрытое поле не редактируется, но его данные не теряются
		require.Equal(t, "dato viejo", flat["oculto"])
		require.Equal(t, "Ana María", flat["nombre"])
	})

	t.Run(`ответы на удалённые из схемы поля сохраняются`, func(t *testing.T) {
		schema := testSchema()
		stored := dbmodels.AnswerMap{"campo_antiguo": "valor"}
		flat := Flatten(schema, dbmodels.AnswerMap{}, stored)
		require.Equal(t, "valor", flat["campo_antiguo"])
	})
}
