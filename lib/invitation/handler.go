package invitation

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"scholarship-portal-backend/config"
	"scholarship-portal-backend/db"
	applicationhistoryhandler "scholarship-portal-backend/lib/application-history"
	applicationstore "scholarship-portal-backend/lib/application/store"
	callstore "scholarship-portal-backend/lib/call/store"
	invitationstore "scholarship-portal-backend/lib/invitation/store"
	"scholarship-portal-backend/lib/smtp"
	"scholarship-portal-backend/models"
	applicationapimodels "scholarship-portal-backend/models/api/application"
	invitationapimodels "scholarship-portal-backend/models/api/invitation"
	dbmodels "scholarship-portal-backend/models/db"
)

type Provider interface {
	Create(data dbmodels.CreateInvitationData) (*invitationapimodels.InvitationView, error)
	ListByCall(callID string) ([]invitationapimodels.InvitationView, error)
	Consume(code, applicantID string) (*applicationapimodels.ApplicationView, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:            invitationstore.NewInstance(db.DB),
		callStore:        callstore.NewInstance(db.DB),
		applicationStore: applicationstore.NewInstance(db.DB),
	}
}

type impl struct {
	store            invitationstore.Provider
	callStore        callstore.Provider
	applicationStore applicationstore.Provider
}

func (i impl) Create(data dbmodels.CreateInvitationData) (*invitationapimodels.InvitationView, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}
	callRec, err := i.callStore.GetByID(data.CallID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения конкурса")
	}
	if callRec == nil {
		return nil, errors.New("конкурс не найден")
	}
	rec := dbmodels.Invitation{
		CallID: data.CallID,
		Email:  data.Email,
		Code:   uuid.NewString(),
	}
	id, err := i.store.Create(rec)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка создания приглашения")
	}

	logger := log.WithField("call_id", data.CallID).
		WithField("invitation_id", id)
	link := fmt.Sprintf("%s/apply?code=%s", config.Conf.Portal.PublicURL, rec.Code)
	message := fmt.Sprintf("Вы приглашены подать заявку на конкурс «%v».\r\nСсылка для подачи: %v", callRec.Name, link)
	err = smtp.Instance.SendEMail(config.Conf.Smtp.User, data.Email, message, "Приглашение к участию в конкурсе")
	if err != nil {
		// приглашение создано, письмо можно отправить повторно
		logger.WithError(err).Error("ошибка отправки письма с приглашением")
	} else {
		now := time.Now()
		if updErr := i.store.Update(id, map[string]interface{}{"sent_at": now}); updErr != nil {
			logger.WithError(updErr).Error("ошибка отметки отправки приглашения")
		}
	}

	saved, err := i.store.GetByCode(rec.Code)
	if err != nil || saved == nil {
		return nil, errors.New("ошибка получения созданного приглашения")
	}
	result := invitationapimodels.Convert(*saved)
	return &result, nil
}

func (i impl) ListByCall(callID string) ([]invitationapimodels.InvitationView, error) {
	list, err := i.store.ListByCall(callID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка приглашений")
	}
	result := make([]invitationapimodels.InvitationView, 0, len(list))
	for _, rec := range list {
		result = append(result, invitationapimodels.Convert(rec))
	}
	return result, nil
}

// Consume одноразово использует приглашение: создаётся черновик заявки
// и первая запись журнала, приглашение помечается использованным
func (i impl) Consume(code, applicantID string) (*applicationapimodels.ApplicationView, error) {
	rec, err := i.store.GetByCode(code)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения приглашения")
	}
	if rec == nil {
		return nil, errors.New("приглашение не найдено")
	}
	if rec.IsUsed() {
		return nil, errors.New("приглашение уже использовано")
	}
	existing, err := i.applicationStore.GetByApplicant(rec.CallID, applicantID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка проверки заявок")
	}
	if existing != nil {
		return nil, errors.New("заявка на этот конкурс уже создана")
	}

	var applicationID string
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		txApplications := applicationstore.NewInstance(tx)
		applicationID, err = txApplications.Create(dbmodels.Application{
			CallID:      rec.CallID,
			ApplicantID: applicantID,
			Status:      models.ApplicationStatusDraft,
			Answers:     dbmodels.AnswerMap{},
		})
		if err != nil {
			return errors.Wrap(err, "ошибка создания заявки")
		}
		history := applicationhistoryhandler.NewTxHandler(tx)
		if err := history.Save(applicationID, nil, models.ApplicationStatusDraft, "", applicantID, "Заявитель"); err != nil {
			return err
		}
		txInvitations := invitationstore.NewInstance(tx)
		now := time.Now()
		return txInvitations.Update(rec.ID, map[string]interface{}{
			"used_at":        now,
			"application_id": applicationID,
		})
	})
	if err != nil {
		return nil, err
	}
	log.WithField("invitation_id", rec.ID).
		WithField("application_id", applicationID).
		Info("приглашение использовано, создан черновик заявки")

	created, err := i.applicationStore.GetByID(applicationID)
	if err != nil || created == nil {
		return nil, errors.New("ошибка получения созданной заявки")
	}
	result := applicationapimodels.Convert(*created)
	return &result, nil
}
