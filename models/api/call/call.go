package callapimodels

import (
	"time"

	dbmodels "scholarship-portal-backend/models/db"
)

type CallView struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Year        int       `json:"year"`
	Description string    `json:"description,omitempty"`
	IsOpen      bool      `json:"is_open"`
	FormVersion int       `json:"form_version"`
	CreatedAt   time.Time `json:"created_at"`
}

func Convert(rec dbmodels.Call) CallView {
	return CallView{
		ID:          rec.ID,
		Name:        rec.Name,
		Year:        rec.Year,
		Description: rec.Description,
		IsOpen:      rec.IsOpen,
		FormVersion: rec.Form.Version,
		CreatedAt:   rec.CreatedAt,
	}
}
