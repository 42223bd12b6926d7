package contentrouter

import (
	"github.com/gofiber/fiber/v3"

	"content_pilot/internal/api/aigen"
	contenthdl "content_pilot/internal/api/content/handler"
	"content_pilot/internal/api/middleware"
	apirouter "content_pilot/internal/api/router"
)

// recordCRUDConfig cho content records: tạo và đọc qua CRUD chuẩn, nhưng
// không mở route update generic — mọi thay đổi nội dung và trạng thái đi
// qua action dispatcher để giữ edit gating và version CAS.
var recordCRUDConfig = apirouter.CRUDConfig{
	InsOne: true, InsMany: true,
	Find: true, FindOne: true, FindById: true,
	FindIds: true, Paginate: true,
	UpdOne: false, UpdMany: false, UpdById: false,
	Count: true, Distinct: true, Exists: true,
}

// Register đăng ký các route của content domain. generator được truyền từ
// tầng khởi tạo để action handler gọi AI collaborator.
func Register(generator aigen.Generator) apirouter.RegisterFunc {
	return func(v1 fiber.Router, r *apirouter.Router) error {
		recordHandler, err := contenthdl.NewContentRecordHandler()
		if err != nil {
			return err
		}
		actionHandler, err := contenthdl.NewContentActionHandler(generator)
		if err != nil {
			return err
		}
		projectHandler, err := contenthdl.NewContentProjectHandler()
		if err != nil {
			return err
		}

		// Content records: CRUD chuẩn + stats
		r.RegisterCRUDRoutes(v1, "/content/records", recordHandler, recordCRUDConfig, "ContentRecord")

		authReadMiddleware := middleware.AuthMiddleware("ContentRecord.Read")
		apirouter.RegisterRouteWithMiddleware(v1, "/content/records", "GET", "/stats",
			[]fiber.Handler{authReadMiddleware}, recordHandler.HandleStats)

		// Action dispatcher: play, pause, stop, delete, regenerate, recreate, update, view
		authActionMiddleware := middleware.AuthMiddleware("ContentRecord.Action")
		apirouter.RegisterRouteWithMiddleware(v1, "/content/records", "POST", "/:id/actions/:action",
			[]fiber.Handler{authActionMiddleware}, actionHandler.HandleAction)

		// Cải thiện một field đơn lẻ bằng AI
		apirouter.RegisterRouteWithMiddleware(v1, "/content/records", "POST", "/:id/enhance/:field",
			[]fiber.Handler{authActionMiddleware}, actionHandler.HandleEnhanceField)

		// Content projects: CRUD chuẩn + calendar
		r.RegisterCRUDRoutes(v1, "/content/projects", projectHandler, apirouter.ReadWriteConfig, "ContentProject")

		authProjectMiddleware := middleware.AuthMiddleware("ContentProject.Update")
		apirouter.RegisterRouteWithMiddleware(v1, "/content/projects", "POST", "/:id/extend-calendar",
			[]fiber.Handler{authProjectMiddleware}, projectHandler.HandleExtendCalendar)

		authProjectReadMiddleware := middleware.AuthMiddleware("ContentProject.Read")
		apirouter.RegisterRouteWithMiddleware(v1, "/content/projects", "GET", "/:id/calendar",
			[]fiber.Handler{authProjectReadMiddleware}, recordHandler.HandleCalendar)

		return nil
	}
}
