package applicationhistorystore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "scholarship-portal-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.ApplicationHistory) (id string, err error)
	List(applicationID string) (list []dbmodels.ApplicationHistory, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.ApplicationHistory) (id string, err error) {
	err = i.db.
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) List(applicationID string) (list []dbmodels.ApplicationHistory, err error) {
	list = []dbmodels.ApplicationHistory{}
	err = i.db.
		Model(dbmodels.ApplicationHistory{}).
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
