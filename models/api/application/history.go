package applicationapimodels

import (
	"time"

	"scholarship-portal-backend/models"
	dbmodels "scholarship-portal-backend/models/db"
)

type HistoryView struct {
	ID            string                    `json:"id"`
	FromStatus    *models.ApplicationStatus `json:"from_status,omitempty"`
	ToStatus      models.ApplicationStatus  `json:"to_status"`
	Reason        string                    `json:"reason,omitempty"`
	ChangedBy     *string                   `json:"changed_by,omitempty"`
	ChangedByName string                    `json:"changed_by_name"`
	ChangedAt     time.Time                 `json:"changed_at"`
}

func ConvertHistory(rec dbmodels.ApplicationHistory) HistoryView {
	return HistoryView{
		ID:            rec.ID,
		FromStatus:    rec.FromStatus,
		ToStatus:      rec.ToStatus,
		Reason:        rec.Reason,
		ChangedBy:     rec.ChangedBy,
		ChangedByName: rec.ChangedByName,
		ChangedAt:     rec.CreatedAt,
	}
}
