package applicationstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"scholarship-portal-backend/models"
	applicationapimodels "scholarship-portal-backend/models/api/application"
	dbmodels "scholarship-portal-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Application) (id string, err error)
	GetByID(id string) (*dbmodels.Application, error)
	GetByApplicant(callID, applicantID string) (*dbmodels.Application, error)
	ListByApplicant(applicantID string) (list []dbmodels.Application, err error)
	ListAllByCall(callID string) (list []dbmodels.Application, err error)
	List(callID string, filter applicationapimodels.ApplicationListFilter) (list []dbmodels.Application, err error)
	ListCount(callID string, filter applicationapimodels.ApplicationListFilter) (count int64, err error)
	Update(id string, updMap map[string]interface{}) error
	UpdateStatus(id string, current, next models.ApplicationStatus, updMap map[string]interface{}) error
	CountNonDraft(callID string) (count int64, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Application) (id string, err error) {
	err = i.db.
		Omit("Call").
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Application, error) {
	rec := dbmodels.Application{}
	err := i.db.
		Model(dbmodels.Application{}).
		Preload("Call").
		Where("id = ?", id).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) GetByApplicant(callID, applicantID string) (*dbmodels.Application, error) {
	rec := dbmodels.Application{}
	err := i.db.
		Model(dbmodels.Application{}).
		Preload("Call").
		Where("call_id = ?", callID).
		Where("applicant_id = ?", applicantID).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) ListByApplicant(applicantID string) (list []dbmodels.Application, err error) {
	list = []dbmodels.Application{}
	err = i.db.
		Model(dbmodels.Application{}).
		Preload("Call").
		Where("applicant_id = ?", applicantID).
		Order("created_at desc").
		Find(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) ListAllByCall(callID string) (list []dbmodels.Application, err error) {
	list = []dbmodels.Application{}
	err = i.db.
		Model(dbmodels.Application{}).
		Where("call_id = ?", callID).
		Order("created_at").
		Find(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) List(callID string, filter applicationapimodels.ApplicationListFilter) (list []dbmodels.Application, err error) {
	list = []dbmodels.Application{}
	tx := i.listQuery(callID, filter)
	page, limit := filter.GetPage()
	offset := (page - 1) * limit
	tx = tx.Limit(limit).Offset(offset)
	err = tx.Order("created_at").Find(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) ListCount(callID string, filter applicationapimodels.ApplicationListFilter) (count int64, err error) {
	err = i.listQuery(callID, filter).Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "ошибка получения количества заявок")
	}
	return count, nil
}

func (i impl) listQuery(callID string, filter applicationapimodels.ApplicationListFilter) *gorm.DB {
	tx := i.db.
		Model(dbmodels.Application{}).
		Where("call_id = ?", callID)
	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}
	return tx
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	err := i.db.
		Model(&dbmodels.Application{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return errors.Wrap(err, "ошибка обновления заявки")
	}
	return nil
}

// ErrStatusConflict — статус заявки изменился между проверкой и записью
// (например, двойной клик по кнопке перехода)
var ErrStatusConflict = errors.New("статус заявки уже изменён")

// UpdateStatus меняет статус только если заявка всё ещё в ожидаемом статусе
func (i impl) UpdateStatus(id string, current, next models.ApplicationStatus, updMap map[string]interface{}) error {
	if updMap == nil {
		updMap = map[string]interface{}{}
	}
	updMap["status"] = next
	tx := i.db.
		Model(&dbmodels.Application{}).
		Where("id = ?", id).
		Where("status = ?", current).
		Updates(updMap)
	if tx.Error != nil {
		return errors.Wrap(tx.Error, "ошибка смены статуса заявки")
	}
	if tx.RowsAffected == 0 {
		return ErrStatusConflict
	}
	return nil
}

func (i impl) CountNonDraft(callID string) (count int64, err error) {
	err = i.db.
		Model(dbmodels.Application{}).
		Where("call_id = ?", callID).
		Where("status <> ?", models.ApplicationStatusDraft).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
