package documentstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "scholarship-portal-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.ApplicationDocument) (id string, err error)
	GetByID(id string) (*dbmodels.ApplicationDocument, error)
	ListByApplication(applicationID string) (list []dbmodels.ApplicationDocument, err error)
	Delete(id string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.ApplicationDocument) (id string, err error) {
	err = i.db.
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.ApplicationDocument, error) {
	rec := dbmodels.ApplicationDocument{}
	err := i.db.
		Model(dbmodels.ApplicationDocument{}).
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

func (i impl) ListByApplication(applicationID string) (list []dbmodels.ApplicationDocument, err error) {
	list = []dbmodels.ApplicationDocument{}
	err = i.db.
		Model(dbmodels.ApplicationDocument{}).
		Where("application_id = ?", applicationID).
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

func (i impl) Delete(id string) error {
	err := i.db.
		Where("id = ?", id).
		Delete(&dbmodels.ApplicationDocument{}).
		Error
	if err != nil {
		return errors.Wrap(err, "ошибка удаления документа")
	}
	return nil
}
