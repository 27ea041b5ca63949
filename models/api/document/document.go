package documentapimodels

import (
	"time"

	dbmodels "scholarship-portal-backend/models/db"
)

type DocumentView struct {
	ID            string    `json:"id"`
	ApplicationID string    `json:"application_id"`
	FieldName     string    `json:"field_name"`
	FileName      string    `json:"file_name"`
	ContentType   string    `json:"content_type"`
	Size          int64     `json:"size"`
	UploadedAt    time.Time `json:"uploaded_at"`
}

func Convert(rec dbmodels.ApplicationDocument) DocumentView {
	return DocumentView{
		ID:            rec.ID,
		ApplicationID: rec.ApplicationID,
		FieldName:     rec.FieldName,
		FileName:      rec.FileName,
		ContentType:   rec.ContentType,
		Size:          rec.Size,
		UploadedAt:    rec.CreatedAt,
	}
}
