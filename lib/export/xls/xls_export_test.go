package xlsexport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"scholarship-portal-backend/models"
	dbmodels "scholarship-portal-backend/models/db"
)

func exportTestCall() dbmodels.Call {
	active := true
	return dbmodels.Call{
		Name: "Becas 2026",
		Year: 2026,
		Form: dbmodels.FormSchema{
			Version: 3,
			Sections: []dbmodels.FormSection{
				{
					ID:    "s1",
					Title: "Datos",
					Fields: []dbmodels.FormField{
						{ID: "f1", Name: "nombre", Label: "Nombre", Type: models.FieldTypeText, Active: &active},
						{ID: "f2", Name: "region", Label: "Región", Type: models.FieldTypeSelect, Active: &active,
							Options: []dbmodels.FieldOption{
								{ID: "o1", Value: "RM", Label: "Metropolitana"},
							},
						},
					},
				},
			},
		},
	}
}

func TestExportCallApplications(t *testing.T) {
	NewHandler()
	call := exportTestCall()
	score := 87
	submitted := time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)
	list := []dbmodels.Application{
		{
			ApplicantID: "user-1",
			Status:      models.ApplicationStatusSubmitted,
			Score:       &score,
			SubmittedAt: &submitted,
			Answers: dbmodels.AnswerMap{
				"nombre": "Ana",
				"region": "RM",
			},
		},
	}

	buf, err := Instance.ExportCallApplications(call, list)
	require.NoError(t, err)
	require.NotZero(t, buf.Len())

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Заявки")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	t.Run("заголовок содержит фиксированные колонки и поля анкеты", func(t *testing.T) {
		header := rows[0]
		require.Equal(t, "Заявитель", header[0])
		require.Contains(t, header, "Nombre")
		require.Contains(t, header, "Región")
	})

	t.Run("значение варианта выводится подписью", func(t *testing.T) {
		row := rows[1]
		require.Equal(t, "user-1", row[0])
		require.Equal(t, string(models.ApplicationStatusSubmitted), row[1])
		require.Equal(t, "87", row[2])
		require.Equal(t, "12.03.2026", row[3])
		require.Contains(t, row, "Ana")
		require.Contains(t, row, "Metropolitana")
	})
}

func TestExportEmptyCall(t *testing.T) {
	NewHandler()
	buf, err := Instance.ExportCallApplications(exportTestCall(), nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Заявки")
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
