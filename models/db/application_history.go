package dbmodels

import (
	"scholarship-portal-backend/models"
)

// Журнал переходов статуса заявки.
// Записи только добавляются, изменение и удаление не предусмотрены.
type ApplicationHistory struct {
	BaseModel
	ApplicationID string                    `gorm:"type:varchar(36);index" json:"application_id"`
	FromStatus    *models.ApplicationStatus `gorm:"type:varchar(20)" json:"from_status,omitempty"`
	ToStatus      models.ApplicationStatus  `gorm:"type:varchar(20)" json:"to_status"`
	Reason        string                    `json:"reason,omitempty"`
	ChangedBy     *string                   `gorm:"type:varchar(36)" json:"changed_by,omitempty"`
	ChangedByName string                    `json:"changed_by_name"`
}
