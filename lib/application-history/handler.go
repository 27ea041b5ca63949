package applicationhistoryhandler

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"scholarship-portal-backend/db"
	applicationhistorystore "scholarship-portal-backend/lib/application-history/store"
	"scholarship-portal-backend/models"
	applicationapimodels "scholarship-portal-backend/models/api/application"
	dbmodels "scholarship-portal-backend/models/db"
)

// Журнал заявки ведётся только здесь: переход статуса пишет ровно одну запись
// в той же транзакции, наружу журнал отдаётся только из хранилища
type Provider interface {
	List(applicationID string) ([]applicationapimodels.HistoryView, error)
	Save(applicationID string, fromStatus *models.ApplicationStatus, toStatus models.ApplicationStatus, reason, userID, userName string) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: applicationhistorystore.NewInstance(db.DB),
	}
}

// Для записи в рамках внешней транзакции
func NewTxHandler(tx *gorm.DB) Provider {
	return impl{
		store: applicationhistorystore.NewInstance(tx),
	}
}

type impl struct {
	store applicationhistorystore.Provider
}

func (i impl) List(applicationID string) ([]applicationapimodels.HistoryView, error) {
	list, err := i.store.List(applicationID)
	if err != nil {
		log.WithError(err).
			WithField("application_id", applicationID).
			Error("ошибка получения журнала заявки")
		return nil, errors.New("ошибка получения журнала заявки")
	}
	result := make([]applicationapimodels.HistoryView, 0, len(list))
	for _, rec := range list {
		result = append(result, applicationapimodels.ConvertHistory(rec))
	}
	return result, nil
}

func (i impl) Save(applicationID string, fromStatus *models.ApplicationStatus, toStatus models.ApplicationStatus, reason, userID, userName string) error {
	rec := dbmodels.ApplicationHistory{
		ApplicationID: applicationID,
		FromStatus:    fromStatus,
		ToStatus:      toStatus,
		Reason:        reason,
		ChangedByName: userName,
	}
	if userID != "" {
		rec.ChangedBy = &userID
	}
	if rec.ChangedByName == "" {
		rec.ChangedByName = "Система"
	}
	_, err := i.store.Create(rec)
	if err != nil {
		return errors.Wrap(err, "ошибка сохранения записи журнала заявки")
	}
	return nil
}
