package publicapi

import (
	"github.com/gofiber/fiber/v2"

	"scholarship-portal-backend/controllers"
	"scholarship-portal-backend/lib/call"
	apimodels "scholarship-portal-backend/models/api"
)

type previewApiController struct {
	controllers.BaseAPIController
}

// Маршруты без авторизации
func InitPreviewApiRouters(app *fiber.App) {
	controller := previewApiController{}
	app.Route("call", func(router fiber.Router) {
		router.Get(":id/preview", controller.preview)
	})
}

// @Summary Предпросмотр анкеты конкурса
// @Tags Публичный портал
// @Description Пустая анкета открытого конкурса, без служебных полей
// @Param   id	path	string	true	"ID конкурса"
// @Success 200 {object} apimodels.Response{data=formapimodels.RenderedForm}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/public/call/{id}/preview [get]
func (c *previewApiController) preview(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendError(ctx, err)
	}
	view, err := call.Instance.PublicPreview(id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}
