package application

import (
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"scholarship-portal-backend/db"
	applicationhistoryhandler "scholarship-portal-backend/lib/application-history"
	applicationstore "scholarship-portal-backend/lib/application/store"
	"scholarship-portal-backend/lib/forms"
	"scholarship-portal-backend/models"
	applicationapimodels "scholarship-portal-backend/models/api/application"
	dbmodels "scholarship-portal-backend/models/db"
)

type Provider interface {
	GetView(id string, role models.RenderRole) (*applicationapimodels.ApplicationView, error)
	GetOwn(id, applicantID string) (*applicationapimodels.ApplicationView, error)
	ListOwn(applicantID string) ([]applicationapimodels.ApplicationView, error)
	List(callID string, filter applicationapimodels.ApplicationListFilter) ([]applicationapimodels.ApplicationView, int64, error)
	SaveAnswers(id, applicantID string, answers dbmodels.AnswerMap) error
	Transition(id string, req applicationapimodels.TransitionRequest, actorID, actorName string, asApplicant bool) (*applicationapimodels.ApplicationView, error)
	SetScore(id string, req applicationapimodels.ScoreRequest) error
	History(id string) ([]applicationapimodels.HistoryView, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: applicationstore.NewInstance(db.DB),
	}
}

type impl struct {
	store applicationstore.Provider
}

func (i impl) GetView(id string, role models.RenderRole) (*applicationapimodels.ApplicationView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения заявки")
	}
	if rec == nil {
		return nil, errors.New("заявка не найдена")
	}
	return i.view(*rec, role), nil
}

func (i impl) GetOwn(id, applicantID string) (*applicationapimodels.ApplicationView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения заявки")
	}
	if rec == nil || rec.ApplicantID != applicantID {
		return nil, errors.New("заявка не найдена")
	}
	return i.view(*rec, models.RenderRoleApplicant), nil
}

func (i impl) ListOwn(applicantID string) ([]applicationapimodels.ApplicationView, error) {
	list, err := i.store.ListByApplicant(applicantID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения заявок")
	}
	result := make([]applicationapimodels.ApplicationView, 0, len(list))
	for _, rec := range list {
		result = append(result, applicationapimodels.Convert(rec))
	}
	return result, nil
}

func (i impl) List(callID string, filter applicationapimodels.ApplicationListFilter) ([]applicationapimodels.ApplicationView, int64, error) {
	rowCount, err := i.store.ListCount(callID, filter)
	if err != nil {
		return nil, 0, err
	}
	page, limit := filter.GetPage()
	offset := (page - 1) * limit
	if int64(offset) > rowCount {
		return []applicationapimodels.ApplicationView{}, rowCount, nil
	}
	list, err := i.store.List(callID, filter)
	if err != nil {
		log.WithError(err).Error("ошибка получения списка заявок")
		return nil, 0, errors.New("ошибка получения списка заявок")
	}
	result := make([]applicationapimodels.ApplicationView, 0, len(list))
	for _, rec := range list {
		result = append(result, applicationapimodels.Convert(rec))
	}
	return result, rowCount, nil
}

// SaveAnswers сохраняет черновик ответов. Ответы скрытых полей и полей,
// удалённых из схемы после заполнения, не теряются.
func (i impl) SaveAnswers(id, applicantID string, answers dbmodels.AnswerMap) error {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return errors.Wrap(err, "ошибка получения заявки")
	}
	if rec == nil || rec.ApplicantID != applicantID {
		return errors.New("заявка не найдена")
	}
	if !rec.Status.IsEditable() {
		return errors.Errorf("заявка в статусе %v недоступна для редактирования", rec.Status)
	}
	if rec.Call == nil {
		return errors.New("конкурс заявки не найден")
	}
	schema := forms.Normalize(rec.Call.Form)
	flat := forms.Flatten(schema, answers, rec.Answers)
	err = i.store.Update(id, map[string]interface{}{"answers": flat})
	if err != nil {
		return errors.Wrap(err, "ошибка сохранения ответов")
	}
	return nil
}

// Transition выполняет именованный переход статуса.
// Легальность проверяется до обращения к хранилищу, сам переход атомарен:
// смена статуса и запись журнала в одной транзакции, при гонке статусов
// запись отклоняется как обычная, восстановимая ошибка.
func (i impl) Transition(id string, req applicationapimodels.TransitionRequest, actorID, actorName string, asApplicant bool) (*applicationapimodels.ApplicationView, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения заявки")
	}
	if rec == nil {
		return nil, errors.New("заявка не найдена")
	}
	if asApplicant {
		if rec.ApplicantID != actorID {
			return nil, errors.New("заявка не найдена")
		}
		if !models.ApplicantOps()[req.Op] {
			return nil, errors.Wrapf(models.ErrIllegalTransition, "операция %v недоступна заявителю", req.Op)
		}
	}
	next, err := rec.Status.ValidateTransition(req.Op, req.Reason)
	if err != nil {
		return nil, err
	}
	if next == models.ApplicationStatusSubmitted && rec.Call != nil {
		// авторитетная проверка обязательных полей выполняется при подаче,
		// черновик сохраняется без неё
		schema := forms.Normalize(rec.Call.Form)
		if vErrs := forms.RequiredErrors(schema, rec.Answers); len(vErrs) > 0 {
			first := vErrs[0]
			return nil, &first
		}
	}

	updMap := map[string]interface{}{}
	now := time.Now()
	if next == models.ApplicationStatusSubmitted {
		updMap["submitted_at"] = now
	}
	if next.IsTerminal() {
		updMap["decided_at"] = now
	}

	fromStatus := rec.Status
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		txStore := applicationstore.NewInstance(tx)
		if err := txStore.UpdateStatus(id, fromStatus, next, updMap); err != nil {
			return err
		}
		history := applicationhistoryhandler.NewTxHandler(tx)
		return history.Save(id, &fromStatus, next, req.Reason, actorID, actorName)
	})
	if err != nil {
		if errors.Is(err, applicationstore.ErrStatusConflict) {
			return nil, errors.Wrap(models.ErrIllegalTransition, "статус заявки уже изменён, обновите страницу")
		}
		return nil, err
	}
	log.WithField("application_id", id).
		WithField("from_status", fromStatus).
		WithField("to_status", next).
		WithField("op", req.Op).
		Info("выполнен переход статуса заявки")

	role := models.RenderRoleAdmin
	if asApplicant {
		role = models.RenderRoleApplicant
	}
	return i.GetView(id, role)
}

// SetScore фиксирует оценку и заметки рецензента, только на этапе рассмотрения
func (i impl) SetScore(id string, req applicationapimodels.ScoreRequest) error {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return errors.Wrap(err, "ошибка получения заявки")
	}
	if rec == nil {
		return errors.New("заявка не найдена")
	}
	if rec.Status != models.ApplicationStatusInReview {
		return errors.Errorf("оценка доступна только на этапе рассмотрения, текущий статус %v", rec.Status)
	}
	updMap := map[string]interface{}{
		"notes": req.Notes,
	}
	if req.Score != nil {
		updMap["score"] = *req.Score
	}
	return i.store.Update(id, updMap)
}

func (i impl) History(id string) ([]applicationapimodels.HistoryView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения заявки")
	}
	if rec == nil {
		return nil, errors.New("заявка не найдена")
	}
	// журнал только читается из хранилища, локально записи не синтезируются
	return applicationhistoryhandler.Instance.List(id)
}

func (i impl) view(rec dbmodels.Application, role models.RenderRole) *applicationapimodels.ApplicationView {
	result := applicationapimodels.Convert(rec)
	if rec.Call != nil {
		rendered := forms.Render(rec.Call.Form, rec.Answers, role)
		result.Form = &rendered
	}
	return &result
}
