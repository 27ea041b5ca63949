package dbmodels

// Документ, приложенный к заявке как ответ на поле типа file/image.
// В карте ответов хранится только идентификатор записи, тело лежит в S3.
type ApplicationDocument struct {
	BaseModel
	ApplicationID string `gorm:"type:varchar(36);index" json:"application_id"`
	FieldName     string `json:"field_name"`
	FileName      string `json:"file_name"`
	ContentType   string `json:"content_type"`
	Size          int64  `json:"size"`
}
