package dbmodels

import (
	"time"

	"github.com/pkg/errors"
)

// Приглашение к участию в конкурсе, одноразовое
type Invitation struct {
	BaseModel
	CallID        string     `gorm:"type:varchar(36);index" json:"call_id"`
	Email         string     `gorm:"index" json:"email"`
	Code          string     `gorm:"uniqueIndex" json:"code"`
	SentAt        *time.Time `json:"sent_at,omitempty"`
	UsedAt        *time.Time `json:"used_at,omitempty"`
	ApplicationID *string    `gorm:"type:varchar(36)" json:"application_id,omitempty"`
}

func (i Invitation) IsUsed() bool {
	return i.UsedAt != nil
}

type CreateInvitationData struct {
	CallID string `json:"call_id"`
	Email  string `json:"email"`
}

func (d CreateInvitationData) Validate() error {
	if d.CallID == "" {
		return errors.New("не указан идентификатор конкурса")
	}
	if d.Email == "" {
		return errors.New("не указан email приглашаемого")
	}
	return nil
}
