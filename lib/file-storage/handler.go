package filestorage

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"scholarship-portal-backend/config"
	"scholarship-portal-backend/db"
	applicationstore "scholarship-portal-backend/lib/application/store"
	documentstore "scholarship-portal-backend/lib/file-storage/store"
	"scholarship-portal-backend/lib/forms"
	documentapimodels "scholarship-portal-backend/models/api/document"
	dbmodels "scholarship-portal-backend/models/db"
	s3client "scholarship-portal-backend/s3"
)

type Provider interface {
	UploadDocument(ctx context.Context, applicationID, applicantID, fieldName, fileName, contentType string, fileReader io.Reader, fileSize int64) (*documentapimodels.DocumentView, error)
	// applicantID пустой при запросе от сотрудника, иначе проверяется владение заявкой
	GetDocument(ctx context.Context, documentID, applicantID string) (*dbmodels.ApplicationDocument, []byte, error)
	ListByApplication(applicationID string) ([]documentapimodels.DocumentView, error)
	DeleteDocument(ctx context.Context, documentID, applicantID string) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		s3client:         s3client.Client,
		store:            documentstore.NewInstance(db.DB),
		applicationStore: applicationstore.NewInstance(db.DB),
	}
}

type impl struct {
	s3client         *minio.Client
	store            documentstore.Provider
	applicationStore applicationstore.Provider
}

func (i impl) objectName(applicationID, documentID string) string {
	return fmt.Sprintf("documents/%s/%s", applicationID, documentID)
}

// UploadDocument загружает файл ответа и привязывает его к полю анкеты
func (i impl) UploadDocument(ctx context.Context, applicationID, applicantID, fieldName, fileName, contentType string, fileReader io.Reader, fileSize int64) (*documentapimodels.DocumentView, error) {
	rec, err := i.applicationStore.GetByID(applicationID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения заявки")
	}
	if rec == nil || rec.ApplicantID != applicantID {
		return nil, errors.New("заявка не найдена")
	}
	if !rec.Status.IsEditable() {
		return nil, errors.Errorf("заявка в статусе %v недоступна для редактирования", rec.Status)
	}
	if rec.Call == nil {
		return nil, errors.New("конкурс заявки не найден")
	}
	schema := forms.Normalize(rec.Call.Form)
	field := schema.FieldByName(fieldName)
	if field == nil || !field.IsActive() {
		return nil, errors.Errorf("поле %v не найдено в анкете", fieldName)
	}
	if !field.Type.IsDocument() {
		return nil, errors.Errorf("поле %v не предназначено для загрузки файлов", fieldName)
	}

	docID, err := i.store.Create(dbmodels.ApplicationDocument{
		ApplicationID: applicationID,
		FieldName:     fieldName,
		FileName:      fileName,
		ContentType:   contentType,
		Size:          fileSize,
	})
	if err != nil {
		return nil, errors.Wrap(err, "ошибка сохранения документа")
	}
	_, err = i.s3client.PutObject(ctx, config.Conf.S3.BucketName, i.objectName(applicationID, docID), fileReader, fileSize,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		if delErr := i.store.Delete(docID); delErr != nil {
			log.WithError(delErr).WithField("document_id", docID).Error("ошибка удаления записи документа")
		}
		return nil, errors.Wrap(err, "ошибка загрузки файла в хранилище")
	}

	// ответом поля-документа служит идентификатор загруженного файла
	answers := dbmodels.AnswerMap{fieldName: docID}
	flat := forms.Flatten(schema, answers, rec.Answers)
	if err := i.applicationStore.Update(applicationID, map[string]interface{}{"answers": flat}); err != nil {
		return nil, errors.Wrap(err, "ошибка привязки документа к ответу")
	}

	log.WithField("application_id", applicationID).
		WithField("document_id", docID).
		WithField("field", fieldName).
		Info("документ загружен")
	saved, err := i.store.GetByID(docID)
	if err != nil || saved == nil {
		return nil, errors.New("ошибка получения сохранённого документа")
	}
	result := documentapimodels.Convert(*saved)
	return &result, nil
}

func (i impl) GetDocument(ctx context.Context, documentID, applicantID string) (*dbmodels.ApplicationDocument, []byte, error) {
	rec, err := i.store.GetByID(documentID)
	if err != nil {
		return nil, nil, errors.Wrap(err, "ошибка получения документа")
	}
	if rec == nil {
		return nil, nil, errors.New("документ не найден")
	}
	if applicantID != "" {
		app, err := i.applicationStore.GetByID(rec.ApplicationID)
		if err != nil {
			return nil, nil, errors.Wrap(err, "ошибка получения заявки")
		}
		if app == nil || app.ApplicantID != applicantID {
			return nil, nil, errors.New("документ не найден")
		}
	}
	object, err := i.s3client.GetObject(ctx, config.Conf.S3.BucketName, i.objectName(rec.ApplicationID, rec.ID), minio.GetObjectOptions{})
	if err != nil {
		return nil, nil, errors.Wrap(err, "ошибка получения файла из хранилища")
	}
	defer object.Close()
	data, err := io.ReadAll(object)
	if err != nil {
		return nil, nil, errors.Wrap(err, "ошибка чтения файла из хранилища")
	}
	return rec, data, nil
}

func (i impl) ListByApplication(applicationID string) ([]documentapimodels.DocumentView, error) {
	list, err := i.store.ListByApplication(applicationID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка документов")
	}
	result := make([]documentapimodels.DocumentView, 0, len(list))
	for _, rec := range list {
		result = append(result, documentapimodels.Convert(rec))
	}
	return result, nil
}

func (i impl) DeleteDocument(ctx context.Context, documentID, applicantID string) error {
	rec, err := i.store.GetByID(documentID)
	if err != nil {
		return errors.Wrap(err, "ошибка получения документа")
	}
	if rec == nil {
		return errors.New("документ не найден")
	}
	app, err := i.applicationStore.GetByID(rec.ApplicationID)
	if err != nil {
		return errors.Wrap(err, "ошибка получения заявки")
	}
	if app == nil || app.ApplicantID != applicantID {
		return errors.New("документ не найден")
	}
	if !app.Status.IsEditable() {
		return errors.Errorf("заявка в статусе %v недоступна для редактирования", app.Status)
	}
	err = i.s3client.RemoveObject(ctx, config.Conf.S3.BucketName, i.objectName(rec.ApplicationID, rec.ID), minio.RemoveObjectOptions{})
	if err != nil {
		return errors.Wrap(err, "ошибка удаления файла из хранилища")
	}
	return i.store.Delete(documentID)
}
