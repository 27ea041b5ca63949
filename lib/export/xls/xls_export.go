package xlsexport

import (
	"bytes"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"scholarship-portal-backend/lib/forms"
	"scholarship-portal-backend/models"
	dbmodels "scholarship-portal-backend/models/db"
)

type Provider interface {
	ExportCallApplications(call dbmodels.Call, list []dbmodels.Application) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var applicationHeaders = []string{"Заявитель", "Статус", "Оценка", "Дата подачи", "Дата решения"}

// ExportCallApplications выгружает заявки конкурса: фиксированные колонки
// и по колонке на каждое активное поле анкеты. Значения выводятся так же,
// как в режиме чтения администратора
func (i impl) ExportCallApplications(call dbmodels.Call, list []dbmodels.Application) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	schema := forms.Normalize(call.Form)
	headers := make([]string, 0, len(applicationHeaders))
	headers = append(headers, applicationHeaders...)
	fieldNames := []string{}
	schema.EachField(func(_ dbmodels.FormSection, field dbmodels.FormField) {
		if !field.IsActive() {
			return
		}
		headers = append(headers, field.Label)
		fieldNames = append(fieldNames, field.Name)
	})

	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, headers)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	if len(list) != 0 {
		row, err = writeApplicationData(f, sheet, schema, fieldNames, list, row, len(headers))
		if err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
	}
	f.SetSheetName(sheet, "Заявки")
	return f.WriteToBuffer()
}

func writeApplicationData(f *excelize.File, sheet string, schema dbmodels.FormSchema, fieldNames []string, list []dbmodels.Application, row, colCount int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, colCount, len(list)+1); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		// "Заявитель"
		col := 1
		if err := writeColumn(f, sheet, col, row, item.ApplicantID); err != nil {
			return row, err
		}

		// "Статус"
		col++
		if err := writeColumn(f, sheet, col, row, string(item.Status)); err != nil {
			return row, err
		}

		// "Оценка"
		col++
		if item.Score != nil {
			if err := writeColumn(f, sheet, col, row, *item.Score); err != nil {
				return row, err
			}
		}

		// "Дата подачи"
		col++
		if item.SubmittedAt != nil {
			if err := writeColumn(f, sheet, col, row, item.SubmittedAt.Format("02.01.2006")); err != nil {
				return row, err
			}
		}

		// "Дата решения"
		col++
		if item.DecidedAt != nil {
			if err := writeColumn(f, sheet, col, row, item.DecidedAt.Format("02.01.2006")); err != nil {
				return row, err
			}
		}

		rendered := forms.Render(schema, item.Answers, models.RenderRoleAdmin)
		displayByName := map[string]string{}
		for _, section := range rendered.Sections {
			for _, field := range section.Fields {
				if len(field.DisplayList) != 0 {
					displayByName[field.Name] = strings.Join(field.DisplayList, ", ")
					continue
				}
				displayByName[field.Name] = field.Display
			}
		}
		for _, name := range fieldNames {
			col++
			if err := writeColumn(f, sheet, col, row, displayByName[name]); err != nil {
				return row, err
			}
		}
	}
	return row, nil
}
