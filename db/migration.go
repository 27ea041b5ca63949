package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	dbmodels "scholarship-portal-backend/models/db"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("Запуск миграций")
	if err := DB.AutoMigrate(&dbmodels.Call{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Call")
	}
	if err := DB.AutoMigrate(&dbmodels.Application{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Application")
	}
	if err := DB.AutoMigrate(&dbmodels.ApplicationHistory{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры ApplicationHistory")
	}
	if err := DB.AutoMigrate(&dbmodels.Invitation{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Invitation")
	}
	if err := DB.AutoMigrate(&dbmodels.ApplicationDocument{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры ApplicationDocument")
	}
	log.Info("Миграция прошла успешно")
	return nil
}
