package call

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"scholarship-portal-backend/db"
	applicationstore "scholarship-portal-backend/lib/application/store"
	callstore "scholarship-portal-backend/lib/call/store"
	xlsexport "scholarship-portal-backend/lib/export/xls"
	"scholarship-portal-backend/lib/forms"
	"scholarship-portal-backend/models"
	callapimodels "scholarship-portal-backend/models/api/call"
	formapimodels "scholarship-portal-backend/models/api/form"
	dbmodels "scholarship-portal-backend/models/db"
)

type Provider interface {
	Create(data dbmodels.CreateCallData) (*callapimodels.CallView, error)
	List(filter dbmodels.CallFilter) ([]callapimodels.CallView, error)
	GetByID(id string) (*callapimodels.CallView, error)
	SetOpen(id string, isOpen bool) error
	GetSchema(callID string) (*formapimodels.SchemaView, error)
	SaveSchema(callID string, req formapimodels.SaveSchemaRequest) (*formapimodels.SchemaView, error)
	ApplySchemaOps(callID string, req formapimodels.SchemaOpsRequest) (*formapimodels.SchemaView, error)
	CloneSchema(sourceCallID, targetCallID string) (*formapimodels.SchemaView, error)
	PublicPreview(callID string) (*formapimodels.RenderedForm, error)
	ExportApplications(callID string) (*bytes.Buffer, error)
}

// Схема устарела относительно версии, с которой начиналось редактирование.
// Клиенту предлагается перечитать схему и повторить правки, а не перезаписывать вслепую.
var ErrStaleSchema = errors.New("схема была изменена другим пользователем, обновите редактор")

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:            callstore.NewInstance(db.DB),
		applicationStore: applicationstore.NewInstance(db.DB),
	}
}

type impl struct {
	store            callstore.Provider
	applicationStore applicationstore.Provider
}

func (i impl) Create(data dbmodels.CreateCallData) (*callapimodels.CallView, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}
	rec := dbmodels.Call{
		Name:        data.Name,
		Year:        data.Year,
		Description: data.Description,
		Form:        forms.Normalize(dbmodels.FormSchema{}),
	}
	id, err := i.store.Create(rec)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка создания конкурса")
	}
	return i.GetByID(id)
}

func (i impl) List(filter dbmodels.CallFilter) ([]callapimodels.CallView, error) {
	list, err := i.store.List(filter)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка конкурсов")
	}
	result := make([]callapimodels.CallView, 0, len(list))
	for _, rec := range list {
		result = append(result, callapimodels.Convert(rec))
	}
	return result, nil
}

func (i impl) GetByID(id string) (*callapimodels.CallView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения конкурса")
	}
	if rec == nil {
		return nil, errors.New("конкурс не найден")
	}
	result := callapimodels.Convert(*rec)
	return &result, nil
}

func (i impl) SetOpen(id string, isOpen bool) error {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return errors.Wrap(err, "ошибка получения конкурса")
	}
	if rec == nil {
		return errors.New("конкурс не найден")
	}
	return i.store.Update(id, map[string]interface{}{"is_open": isOpen})
}

func (i impl) GetSchema(callID string) (*formapimodels.SchemaView, error) {
	rec, err := i.store.GetByID(callID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения конкурса")
	}
	if rec == nil {
		return nil, errors.New("конкурс не найден")
	}
	return i.schemaView(*rec, forms.Normalize(rec.Form))
}

func (i impl) SaveSchema(callID string, req formapimodels.SaveSchemaRequest) (*formapimodels.SchemaView, error) {
	rec, err := i.store.GetByID(callID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения конкурса")
	}
	if rec == nil {
		return nil, errors.New("конкурс не найден")
	}
	return i.persistSchema(*rec, req.BaseVersion, forms.Normalize(req.Schema))
}

// ApplySchemaOps применяет пакет операций конструктора к текущей сохранённой схеме
func (i impl) ApplySchemaOps(callID string, req formapimodels.SchemaOpsRequest) (*formapimodels.SchemaView, error) {
	rec, err := i.store.GetByID(callID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения конкурса")
	}
	if rec == nil {
		return nil, errors.New("конкурс не найден")
	}
	if rec.Form.Version != req.BaseVersion {
		return nil, ErrStaleSchema
	}
	schema := cloneForm(rec.Form)
	builder := forms.NewBuilder(&schema)
	for _, op := range req.Ops {
		if err := applyOp(builder, op); err != nil {
			return nil, err
		}
	}
	return i.persistSchema(*rec, req.BaseVersion, schema)
}

func applyOp(builder *forms.Builder, op formapimodels.SchemaOp) error {
	if err := op.Validate(); err != nil {
		return err
	}
	switch op.Kind {
	case formapimodels.OpAddSection:
		builder.AddSection()
		return nil
	case formapimodels.OpUpdateSection:
		if op.Section == nil {
			return errors.New("не переданы данные секции")
		}
		return builder.UpdateSection(op.SectionID, *op.Section)
	case formapimodels.OpDeleteSection:
		return builder.DeleteSection(op.SectionID)
	case formapimodels.OpMoveSection:
		return builder.MoveSection(op.SectionID, op.Offset)
	case formapimodels.OpAddField:
		_, err := builder.AddField(op.SectionID, models.FieldType(op.FieldType))
		return err
	case formapimodels.OpUpdateField:
		if op.Field == nil {
			return errors.New("не переданы данные поля")
		}
		return builder.UpdateField(op.SectionID, op.FieldID, *op.Field)
	case formapimodels.OpDeleteField:
		return builder.DeleteField(op.SectionID, op.FieldID)
	case formapimodels.OpMoveField:
		return builder.MoveField(op.SectionID, op.FieldID, op.Offset)
	case formapimodels.OpAddOption:
		_, err := builder.AddOption(op.SectionID, op.FieldID)
		return err
	case formapimodels.OpUpdateOption:
		if op.Option == nil {
			return errors.New("не переданы данные варианта")
		}
		return builder.UpdateOption(op.SectionID, op.FieldID, op.OptionID, *op.Option)
	case formapimodels.OpDeleteOption:
		return builder.DeleteOption(op.SectionID, op.FieldID, op.OptionID)
	}
	return errors.Errorf("неизвестная операция конструктора: %v", op.Kind)
}

// persistSchema — общий путь сохранения: проверка инвариантов, выдача
// серверных идентификаторов, инкремент версии и условная запись
func (i impl) persistSchema(rec dbmodels.Call, baseVersion int, schema dbmodels.FormSchema) (*formapimodels.SchemaView, error) {
	if vErrs := forms.ValidateSchema(schema); len(vErrs) > 0 {
		first := vErrs[0]
		return nil, &first
	}
	schema = forms.IssueIDs(schema)
	schema.Version = baseVersion + 1
	err := i.store.SaveForm(rec.ID, baseVersion, schema)
	if err != nil {
		if errors.Is(err, callstore.ErrVersionConflict) {
			return nil, ErrStaleSchema
		}
		return nil, err
	}
	log.WithField("call_id", rec.ID).
		WithField("form_version", schema.Version).
		Info("схема анкеты сохранена")
	return i.schemaView(rec, schema)
}

// CloneSchema копирует схему в другой конкурс: полностью новые идентификаторы,
// дальнейшие правки независимы от источника
func (i impl) CloneSchema(sourceCallID, targetCallID string) (*formapimodels.SchemaView, error) {
	source, err := i.store.GetByID(sourceCallID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения конкурса-источника")
	}
	if source == nil {
		return nil, errors.New("конкурс-источник не найден")
	}
	target, err := i.store.GetByID(targetCallID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения конкурса-получателя")
	}
	if target == nil {
		return nil, errors.New("конкурс-получатель не найден")
	}
	clone := forms.ReissueIDs(forms.Normalize(cloneForm(source.Form)))
	return i.persistSchema(*target, target.Form.Version, clone)
}

func (i impl) PublicPreview(callID string) (*formapimodels.RenderedForm, error) {
	rec, err := i.store.GetByID(callID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения конкурса")
	}
	if rec == nil || !rec.IsOpen {
		return nil, errors.New("конкурс не найден")
	}
	rendered := forms.Render(rec.Form, dbmodels.AnswerMap{}, models.RenderRolePublic)
	return &rendered, nil
}

// ExportApplications выгружает все заявки конкурса в xlsx
func (i impl) ExportApplications(callID string) (*bytes.Buffer, error) {
	rec, err := i.store.GetByID(callID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения конкурса")
	}
	if rec == nil {
		return nil, errors.New("конкурс не найден")
	}
	list, err := i.applicationStore.ListAllByCall(callID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения заявок конкурса")
	}
	return xlsexport.Instance.ExportCallApplications(*rec, list)
}

func (i impl) schemaView(rec dbmodels.Call, schema dbmodels.FormSchema) (*formapimodels.SchemaView, error) {
	nonDraft, err := i.applicationStore.CountNonDraft(rec.ID)
	if err != nil {
		log.WithError(err).
			WithField("call_id", rec.ID).
			Error("ошибка подсчёта заявок вне черновика")
	}
	return &formapimodels.SchemaView{
		CallID:               rec.ID,
		Schema:               schema,
		NonDraftApplications: nonDraft,
	}, nil
}

// Глубокая копия документа схемы, чтобы правки не задели загруженную запись
func cloneForm(form dbmodels.FormSchema) dbmodels.FormSchema {
	raw, err := json.Marshal(form)
	if err != nil {
		return form
	}
	clone := dbmodels.FormSchema{}
	if err := json.Unmarshal(raw, &clone); err != nil {
		return form
	}
	return clone
}
