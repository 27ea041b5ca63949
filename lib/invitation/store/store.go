package invitationstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "scholarship-portal-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Invitation) (id string, err error)
	GetByCode(code string) (*dbmodels.Invitation, error)
	ListByCall(callID string) (list []dbmodels.Invitation, err error)
	Update(id string, updMap map[string]interface{}) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Invitation) (id string, err error) {
	err = i.db.
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByCode(code string) (*dbmodels.Invitation, error) {
	rec := dbmodels.Invitation{}
	err := i.db.
		Model(dbmodels.Invitation{}).
		Where("code = ?", code).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) ListByCall(callID string) (list []dbmodels.Invitation, err error) {
	list = []dbmodels.Invitation{}
	err = i.db.
		Model(dbmodels.Invitation{}).
		Where("call_id = ?", callID).
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

func (i impl) Update(id string, updMap map[string]interface{}) error {
	err := i.db.
		Model(&dbmodels.Invitation{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return errors.Wrap(err, "ошибка обновления приглашения")
	}
	return nil
}
