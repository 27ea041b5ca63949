package callstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "scholarship-portal-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Call) (id string, err error)
	GetByID(id string) (*dbmodels.Call, error)
	List(filter dbmodels.CallFilter) (list []dbmodels.Call, err error)
	Update(id string, updMap map[string]interface{}) error
	SaveForm(id string, baseVersion int, form dbmodels.FormSchema) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Call) (id string, err error) {
	err = i.db.
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Call, error) {
	rec := dbmodels.Call{}
	err := i.db.
		Model(dbmodels.Call{}).
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

func (i impl) List(filter dbmodels.CallFilter) (list []dbmodels.Call, err error) {
	list = []dbmodels.Call{}
	tx := i.db.Model(dbmodels.Call{})
	if filter.Year > 0 {
		tx = tx.Where("year = ?", filter.Year)
	}
	if filter.OnlyOpen {
		tx = tx.Where("is_open = true")
	}
	if filter.Search != "" {
		tx = tx.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	err = tx.Order("year desc, created_at desc").Find(&list).Error
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
		Model(&dbmodels.Call{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return errors.Wrap(err, "ошибка обновления конкурса")
	}
	return nil
}

// ErrVersionConflict возвращается, когда сохранённая схема уже не той версии,
// с которой начиналось редактирование
var ErrVersionConflict = errors.New("версия схемы устарела")

// SaveForm перезаписывает документ схемы целиком с контролем версии
func (i impl) SaveForm(id string, baseVersion int, form dbmodels.FormSchema) error {
	tx := i.db.
		Model(&dbmodels.Call{}).
		Where("id = ?", id).
		Where("(form->>'version')::int = ?", baseVersion).
		Update("form", form)
	if tx.Error != nil {
		return errors.Wrap(tx.Error, "ошибка сохранения схемы анкеты")
	}
	if tx.RowsAffected == 0 {
		return ErrVersionConflict
	}
	return nil
}
