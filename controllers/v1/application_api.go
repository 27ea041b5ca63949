package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"scholarship-portal-backend/controllers"
	"scholarship-portal-backend/lib/application"
	filestorage "scholarship-portal-backend/lib/file-storage"
	"scholarship-portal-backend/middleware"
	"scholarship-portal-backend/models"
	apimodels "scholarship-portal-backend/models/api"
	applicationapimodels "scholarship-portal-backend/models/api/application"
)

type applicationApiController struct {
	controllers.BaseAPIController
}

func InitApplicationApiRouters(app *fiber.App) {
	controller := applicationApiController{}
	app.Route("application", func(router fiber.Router) {
		router.Post("list/:id", controller.list) // список заявок конкурса
		router.Route(":id", func(idRouter fiber.Router) {
			idRouter.Get("", controller.get)
			idRouter.Put("transition", controller.transition)
			idRouter.Put("score", controller.score)
			idRouter.Get("history", controller.history)
			idRouter.Get("documents", controller.documents)
			idRouter.Get("document/:docId", controller.downloadDocument)
		})
	})
}

// @Summary Список заявок конкурса
// @Tags Заявка
// @Description Список заявок конкурса с фильтром по статусу
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id	path	string	true	"ID конкурса"
// @Param request body applicationapimodels.ApplicationListFilter true "фильтр"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]applicationapimodels.ApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/staff/application/list/{id} [post]
func (c *applicationApiController) list(ctx *fiber.Ctx) error {
	callID, err := c.GetID(ctx)
	if err != nil {
		return c.SendError(ctx, err)
	}
	filter := applicationapimodels.ApplicationListFilter{}
	if err := c.BodyParser(ctx, &filter); err != nil {
		return c.SendError(ctx, err)
	}
	list, rowCount, err := application.Instance.List(callID, filter)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Карточка заявки
// @Tags Заявка
// @Description Карточка заявки с анкетой в режиме чтения
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id	path	string	true	"ID заявки"
// @Success 200 {object} apimodels.Response{data=applicationapimodels.ApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/staff/application/{id} [get]
func (c *applicationApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendError(ctx, err)
	}
	view, err := application.Instance.GetView(id, models.RenderRoleAdmin)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Переход статуса заявки
// @Tags Заявка
// @Description Выполнить переход статуса заявки (start-review/request-fix/approve/reject)
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id	path	string	true	"ID заявки"
// @Param request body applicationapimodels.TransitionRequest true "request"
// @Success 200 {object} apimodels.Response{data=applicationapimodels.ApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/staff/application/{id}/transition [put]
func (c *applicationApiController) transition(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendError(ctx, err)
	}
	req := applicationapimodels.TransitionRequest{}
	if err := c.BodyParser(ctx, &req); err != nil {
		return c.SendError(ctx, err)
	}
	view, err := application.Instance.Transition(id, req, middleware.GetUserID(ctx), middleware.GetUserName(ctx), false)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Оценка заявки
// @Tags Заявка
// @Description Сохранить оценку и заметки рецензента
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id	path	string	true	"ID заявки"
// @Param request body applicationapimodels.ScoreRequest true "request"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/staff/application/{id}/score [put]
func (c *applicationApiController) score(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendError(ctx, err)
	}
	req := applicationapimodels.ScoreRequest{}
	if err := c.BodyParser(ctx, &req); err != nil {
		return c.SendError(ctx, err)
	}
	if err := application.Instance.SetScore(id, req); err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Журнал заявки
// @Tags Заявка
// @Description Журнал смен статуса заявки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id	path	string	true	"ID заявки"
// @Success 200 {object} apimodels.Response{data=[]applicationapimodels.HistoryView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/staff/application/{id}/history [get]
func (c *applicationApiController) history(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendError(ctx, err)
	}
	list, err := application.Instance.History(id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Документы заявки
// @Tags Заявка
// @Description Список документов, загруженных к заявке
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id	path	string	true	"ID заявки"
// @Success 200 {object} apimodels.Response{data=[]documentapimodels.DocumentView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/staff/application/{id}/documents [get]
func (c *applicationApiController) documents(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendError(ctx, err)
	}
	list, err := filestorage.Instance.ListByApplication(id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Скачать документ заявки
// @Tags Заявка
// @Description Скачать документ заявки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id	path	string	true	"ID заявки"
// @Param   docId	path	string	true	"ID документа"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/staff/application/{id}/document/{docId} [get]
func (c *applicationApiController) downloadDocument(ctx *fiber.Ctx) error {
	docID := ctx.Params("docId")
	if docID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не указан идентификатор документа"))
	}
	rec, body, err := filestorage.Instance.GetDocument(ctx.UserContext(), docID, "")
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	ctx.Set(fiber.HeaderContentType, rec.ContentType)
	return ctx.Send(body)
}
