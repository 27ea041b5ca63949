package invitationapimodels

import (
	"time"

	dbmodels "scholarship-portal-backend/models/db"
)

type InvitationView struct {
	ID            string     `json:"id"`
	CallID        string     `json:"call_id"`
	Email         string     `json:"email"`
	Code          string     `json:"code"`
	SentAt        *time.Time `json:"sent_at,omitempty"`
	UsedAt        *time.Time `json:"used_at,omitempty"`
	ApplicationID *string    `json:"application_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func Convert(rec dbmodels.Invitation) InvitationView {
	return InvitationView{
		ID:            rec.ID,
		CallID:        rec.CallID,
		Email:         rec.Email,
		Code:          rec.Code,
		SentAt:        rec.SentAt,
		UsedAt:        rec.UsedAt,
		ApplicationID: rec.ApplicationID,
		CreatedAt:     rec.CreatedAt,
	}
}

type ConsumeRequest struct {
	Code string `json:"code"`
}
