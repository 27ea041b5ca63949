package applicationapimodels

import (
	"time"

	"github.com/pkg/errors"

	"scholarship-portal-backend/models"
	apimodels "scholarship-portal-backend/models/api"
	formapimodels "scholarship-portal-backend/models/api/form"
	dbmodels "scholarship-portal-backend/models/db"
)

type ApplicationView struct {
	ID          string                   `json:"id"`
	CallID      string                   `json:"call_id"`
	CallName    string                   `json:"call_name,omitempty"`
	ApplicantID string                   `json:"applicant_id"`
	Status      models.ApplicationStatus `json:"status"`
	Score       *int                     `json:"score,omitempty"`
	Notes       string                   `json:"notes,omitempty"`
	SubmittedAt *time.Time               `json:"submitted_at,omitempty"`
	DecidedAt   *time.Time               `json:"decided_at,omitempty"`
	CreatedAt   time.Time                `json:"created_at"`

	Form *formapimodels.RenderedForm `json:"form,omitempty"`
}

func Convert(rec dbmodels.Application) ApplicationView {
	view := ApplicationView{
		ID:          rec.ID,
		CallID:      rec.CallID,
		ApplicantID: rec.ApplicantID,
		Status:      rec.Status,
		Score:       rec.Score,
		Notes:       rec.Notes,
		SubmittedAt: rec.SubmittedAt,
		DecidedAt:   rec.DecidedAt,
		CreatedAt:   rec.CreatedAt,
	}
	if rec.Call != nil {
		view.CallName = rec.Call.Name
	}
	return view
}

type SaveAnswersRequest struct {
	Answers dbmodels.AnswerMap `json:"answers"`
}

type TransitionRequest struct {
	Op     models.TransitionOp `json:"op"`
	Reason string              `json:"reason,omitempty"`
}

func (r TransitionRequest) Validate() error {
	if r.Op == "" {
		return errors.New("не указана операция перехода")
	}
	return nil
}

type ScoreRequest struct {
	Score *int   `json:"score,omitempty"`
	Notes string `json:"notes,omitempty"`
}

type ApplicationListFilter struct {
	apimodels.Pagination
	Status models.ApplicationStatus `json:"status,omitempty"`
}
