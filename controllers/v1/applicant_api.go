package apiv1

import (
	"io"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"scholarship-portal-backend/controllers"
	"scholarship-portal-backend/lib/application"
	filestorage "scholarship-portal-backend/lib/file-storage"
	"scholarship-portal-backend/lib/invitation"
	"scholarship-portal-backend/middleware"
	apimodels "scholarship-portal-backend/models/api"
	applicationapimodels "scholarship-portal-backend/models/api/application"
	invitationapimodels "scholarship-portal-backend/models/api/invitation"
)

type applicantApiController struct {
	controllers.BaseAPIController
}

// Маршруты заявителя: работа только с собственными заявками
func InitApplicantApiRouters(app *fiber.App) {
	controller := applicantApiController{}
	app.Post("invitation/consume", controller.consumeInvitation)
	app.Get("application/list", controller.listApplications)
	app.Get("document/:id", controller.downloadDocument)
	app.Route("application/:id", func(idRouter fiber.Router) {
		idRouter.Get("", controller.getApplication)
		idRouter.Put("answers", controller.saveAnswers)
		idRouter.Put("transition", controller.transition)
		idRouter.Post("document", controller.uploadDocument)
		idRouter.Delete("document/:docId", controller.deleteDocument)
	})
}

// @Summary Использовать приглашение
// @Tags Кабинет заявителя
// @Description Использовать код приглашения, создаётся черновик заявки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param request body invitationapimodels.ConsumeRequest true "request"
// @Success 200 {object} apimodels.Response{data=applicationapimodels.ApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/my/invitation/consume [post]
func (c *applicantApiController) consumeInvitation(ctx *fiber.Ctx) error {
	req := invitationapimodels.ConsumeRequest{}
	if err := c.BodyParser(ctx, &req); err != nil {
		return c.SendError(ctx, err)
	}
	view, err := invitation.Instance.Consume(req.Code, middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Мои заявки
// @Tags Кабинет заявителя
// @Description Список заявок текущего заявителя
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]applicationapimodels.ApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/my/application/list [get]
func (c *applicantApiController) listApplications(ctx *fiber.Ctx) error {
	list, err := application.Instance.ListOwn(middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Моя заявка
// @Tags Кабинет заявителя
// @Description Заявка с анкетой в режиме заполнения
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id	path	string	true	"ID заявки"
// @Success 200 {object} apimodels.Response{data=applicationapimodels.ApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/my/application/{id} [get]
func (c *applicantApiController) getApplication(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendError(ctx, err)
	}
	view, err := application.Instance.GetOwn(id, middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Сохранить ответы
// @Tags Кабинет заявителя
// @Description Сохранить ответы анкеты (черновик)
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id	path	string	true	"ID заявки"
// @Param request body applicationapimodels.SaveAnswersRequest true "request"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/my/application/{id}/answers [put]
func (c *applicantApiController) saveAnswers(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendError(ctx, err)
	}
	req := applicationapimodels.SaveAnswersRequest{}
	if err := c.BodyParser(ctx, &req); err != nil {
		return c.SendError(ctx, err)
	}
	if err := application.Instance.SaveAnswers(id, middleware.GetUserID(ctx), req.Answers); err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Подать заявку
// @Tags Кабинет заявителя
// @Description Переход статуса собственной заявки (submit/resubmit)
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id	path	string	true	"ID заявки"
// @Param request body applicationapimodels.TransitionRequest true "request"
// @Success 200 {object} apimodels.Response{data=applicationapimodels.ApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/my/application/{id}/transition [put]
func (c *applicantApiController) transition(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendError(ctx, err)
	}
	req := applicationapimodels.TransitionRequest{}
	if err := c.BodyParser(ctx, &req); err != nil {
		return c.SendError(ctx, err)
	}
	view, err := application.Instance.Transition(id, req, middleware.GetUserID(ctx), middleware.GetUserName(ctx), true)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Загрузить документ
// @Tags Кабинет заявителя
// @Description Загрузить файл для поля анкеты типа file/image
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id	path	string	true	"ID заявки"
// @Param   field_name	formData	string	true	"имя поля анкеты"
// @Param   document	formData	file	true	"file to upload"
// @Success 200 {object} apimodels.Response{data=documentapimodels.DocumentView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/my/application/{id}/document [post]
func (c *applicantApiController) uploadDocument(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendError(ctx, err)
	}
	fieldName := ctx.FormValue("field_name")
	if fieldName == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не указано имя поля анкеты"))
	}
	file, err := ctx.FormFile("document")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	buffer, err := file.Open()
	if err != nil {
		log.WithError(err).Error("Ошибка при получении файла документа")
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	defer buffer.Close()
	var reader io.Reader = buffer

	view, err := filestorage.Instance.UploadDocument(ctx.UserContext(), id, middleware.GetUserID(ctx),
		fieldName, file.Filename, file.Header.Get(fiber.HeaderContentType), reader, file.Size)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Скачать свой документ
// @Tags Кабинет заявителя
// @Description Скачать ранее загруженный документ
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id	path	string	true	"ID документа"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/my/document/{id} [get]
func (c *applicantApiController) downloadDocument(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendError(ctx, err)
	}
	rec, body, err := filestorage.Instance.GetDocument(ctx.UserContext(), id, middleware.GetUserID(ctx))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	ctx.Set(fiber.HeaderContentType, rec.ContentType)
	return ctx.Send(body)
}

// @Summary Удалить документ
// @Tags Кабинет заявителя
// @Description Удалить загруженный документ, пока заявка редактируется
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id	path	string	true	"ID заявки"
// @Param   docId	path	string	true	"ID документа"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/my/application/{id}/document/{docId} [delete]
func (c *applicantApiController) deleteDocument(ctx *fiber.Ctx) error {
	docID := ctx.Params("docId")
	if docID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не указан идентификатор документа"))
	}
	if err := filestorage.Instance.DeleteDocument(ctx.UserContext(), docID, middleware.GetUserID(ctx)); err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
