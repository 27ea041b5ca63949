package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"scholarship-portal-backend/controllers"
	"scholarship-portal-backend/lib/call"
	"scholarship-portal-backend/lib/invitation"
	"scholarship-portal-backend/middleware"
	apimodels "scholarship-portal-backend/models/api"
	formapimodels "scholarship-portal-backend/models/api/form"
	dbmodels "scholarship-portal-backend/models/db"
)

type callApiController struct {
	controllers.BaseAPIController
}

func InitCallApiRouters(app *fiber.App) {
	controller := callApiController{}
	app.Route("call", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Post("", middleware.AdminRequired(), controller.create)
		router.Route(":id", func(idRouter fiber.Router) {
			idRouter.Get("", controller.get)
			idRouter.Put("open", middleware.AdminRequired(), controller.setOpen)
			idRouter.Get("schema", controller.getSchema)
			idRouter.Put("schema", middleware.AdminRequired(), controller.saveSchema)
			idRouter.Post("schema/ops", middleware.AdminRequired(), controller.applySchemaOps)
			idRouter.Post("schema/clone", middleware.AdminRequired(), controller.cloneSchema)
			idRouter.Get("export", controller.export)
			idRouter.Post("invitation", middleware.AdminRequired(), controller.createInvitation)
			idRouter.Get("invitation/list", controller.listInvitations)
		})
	})
}

// @Summary Создать конкурс
// @Tags Конкурс
// @Description Создать конкурс
// @Param   Authorization		header		string	true	"Authorization token"
// @Param request body dbmodels.CreateCallData true "request"
// @Success 200 {object} apimodels.Response{data=callapimodels.CallView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/staff/call [post]
func (c *callApiController) create(ctx *fiber.Ctx) error {
	data := dbmodels.CreateCallData{}
	if err := c.BodyParser(ctx, &data); err != nil {
		return c.SendError(ctx, err)
	}
	view, err := call.Instance.Create(data)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Список конкурсов
// @Tags Конкурс
// @Description Список конкурсов
// @Param   Authorization		header		string	true	"Authorization token"
// @Param request body dbmodels.CallFilter true "фильтр"
// @Success 200 {object} apimodels.Response{data=[]callapimodels.CallView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/staff/call/list [post]
func (c *callApiController) list(ctx *fiber.Ctx) error {
	filter := dbmodels.CallFilter{}
	if err := c.BodyParser(ctx, &filter); err != nil {
		return c.SendError(ctx, err)
	}
	list, err := call.Instance.List(filter)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Карточка конкурса
// @Tags Конкурс
// @Description Карточка конкурса
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id	path	string	true	"ID конкурса"
// @Success 200 {object} apimodels.Response{data=callapimodels.CallView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/staff/call/{id} [get]
func (c *callApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendError(ctx, err)
	}
	view, err := call.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

type setOpenRequest struct {
	IsOpen bool `json:"is_open"`
}

// @Summary Открыть/закрыть приём заявок
// @Tags Конкурс
// @Description Открыть/закрыть приём заявок
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id	path	string	true	"ID конкурса"
// @Param request body setOpenRequest true "request"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/staff/call/{id}/open [put]
func (c *callApiController) setOpen(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendError(ctx, err)
	}
	req := setOpenRequest{}
	if err := c.BodyParser(ctx, &req); err != nil {
		return c.SendError(ctx, err)
	}
	if err := call.Instance.SetOpen(id, req.IsOpen); err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Схема анкеты конкурса
// @Tags Схема анкеты
// @Description Схема анкеты конкурса
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id	path	string	true	"ID конкурса"
// @Success 200 {object} apimodels.Response{data=formapimodels.SchemaView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/staff/call/{id}/schema [get]
func (c *callApiController) getSchema(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendError(ctx, err)
	}
	view, err := call.Instance.GetSchema(id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Сохранить схему анкеты
// @Tags Схема анкеты
// @Description Сохранить схему анкеты целиком
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id	path	string	true	"ID конкурса"
// @Param request body formapimodels.SaveSchemaRequest true "request"
// @Success 200 {object} apimodels.Response{data=formapimodels.SchemaView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/staff/call/{id}/schema [put]
func (c *callApiController) saveSchema(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendError(ctx, err)
	}
	req := formapimodels.SaveSchemaRequest{}
	if err := c.BodyParser(ctx, &req); err != nil {
		return c.SendError(ctx, err)
	}
	view, err := call.Instance.SaveSchema(id, req)
	if err != nil {
		return c.sendSchemaError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Применить операции конструктора
// @Tags Схема анкеты
// @Description Применить пакет операций конструктора к схеме анкеты
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id	path	string	true	"ID конкурса"
// @Param request body formapimodels.SchemaOpsRequest true "request"
// @Success 200 {object} apimodels.Response{data=formapimodels.SchemaView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/staff/call/{id}/schema/ops [post]
func (c *callApiController) applySchemaOps(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendError(ctx, err)
	}
	req := formapimodels.SchemaOpsRequest{}
	if err := c.BodyParser(ctx, &req); err != nil {
		return c.SendError(ctx, err)
	}
	view, err := call.Instance.ApplySchemaOps(id, req)
	if err != nil {
		return c.sendSchemaError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Скопировать схему анкеты
// @Tags Схема анкеты
// @Description Скопировать схему анкеты в другой конкурс
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id	path	string	true	"ID конкурса-источника"
// @Param request body formapimodels.CloneSchemaRequest true "request"
// @Success 200 {object} apimodels.Response{data=formapimodels.SchemaView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/staff/call/{id}/schema/clone [post]
func (c *callApiController) cloneSchema(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendError(ctx, err)
	}
	req := formapimodels.CloneSchemaRequest{}
	if err := c.BodyParser(ctx, &req); err != nil {
		return c.SendError(ctx, err)
	}
	if err := req.Validate(); err != nil {
		return c.SendError(ctx, err)
	}
	view, err := call.Instance.CloneSchema(id, req.TargetCallID)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// конфликт версий схемы отдаётся как 409, чтобы фронт перечитал редактор
func (c *callApiController) sendSchemaError(ctx *fiber.Ctx, err error) error {
	if err == call.ErrStaleSchema {
		return ctx.Status(fiber.StatusConflict).JSON(apimodels.NewError(err.Error()))
	}
	return c.SendError(ctx, err)
}

// @Summary Выгрузка заявок конкурса
// @Tags Конкурс
// @Description Выгрузка заявок конкурса в xlsx
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id	path	string	true	"ID конкурса"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/staff/call/{id}/export [get]
func (c *callApiController) export(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendError(ctx, err)
	}
	buf, err := call.Instance.ExportApplications(id)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="applications.xlsx"`)
	return ctx.Send(buf.Bytes())
}

type createInvitationRequest struct {
	Email string `json:"email"`
}

// @Summary Пригласить заявителя
// @Tags Приглашение
// @Description Создать и отправить приглашение на участие в конкурсе
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id	path	string	true	"ID конкурса"
// @Param request body createInvitationRequest true "request"
// @Success 200 {object} apimodels.Response{data=invitationapimodels.InvitationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/staff/call/{id}/invitation [post]
func (c *callApiController) createInvitation(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendError(ctx, err)
	}
	req := createInvitationRequest{}
	if err := c.BodyParser(ctx, &req); err != nil {
		return c.SendError(ctx, err)
	}
	view, err := invitation.Instance.Create(dbmodels.CreateInvitationData{
		CallID: id,
		Email:  req.Email,
	})
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Список приглашений конкурса
// @Tags Приглашение
// @Description Список приглашений конкурса
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id	path	string	true	"ID конкурса"
// @Success 200 {object} apimodels.Response{data=[]invitationapimodels.InvitationView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/staff/call/{id}/invitation/list [get]
func (c *callApiController) listInvitations(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendError(ctx, err)
	}
	list, err := invitation.Instance.ListByCall(id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}
