package routes

import (
	"github.com/atlasops/planner-api/internal/handlers"
	"github.com/atlasops/planner-api/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

// Handlers bundles the per-aggregate handler sets wired in main.
type Handlers struct {
	Auth          *handlers.AuthHandler
	Products      *handlers.ProductHandler
	Formations    *handlers.FormationHandler
	Initiatives   *handlers.InitiativeHandler
	Threads       *handlers.ThreadHandler
	Notifications *handlers.NotificationHandler
}

func Setup(app *fiber.App, h Handlers) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)

	protected := api.Group("/", middleware.Protected())

	protected.Get("/me", h.Auth.GetMe)
	protected.Put("/me", h.Auth.UpdateProfile)
	protected.Get("/employees/:id", h.Auth.GetEmployee)
	protected.Get("/employees/:id/allocation", h.Formations.GetAllocation)

	products := protected.Group("/products")
	products.Get("/", h.Products.List)
	products.Post("/", h.Products.Create)
	products.Get("/:id", h.Products.Get)
	products.Put("/:id", h.Products.Update)
	products.Delete("/:id", h.Products.Delete)

	products.Post("/:id/milestones", h.Products.AddMilestone)
	products.Put("/:id/milestones/:milestoneId", h.Products.UpdateMilestone)
	products.Delete("/:id/milestones/:milestoneId", h.Products.RemoveMilestone)

	products.Post("/:id/docs", h.Products.AddDoc)
	products.Delete("/:id/docs/:docId", h.Products.RemoveDoc)

	formations := protected.Group("/formations")
	formations.Get("/", h.Formations.List)
	formations.Post("/", h.Formations.Create)
	formations.Get("/:id", h.Formations.Get)
	formations.Put("/:id", h.Formations.Update)
	formations.Delete("/:id", h.Formations.Delete)

	formations.Post("/:id/members", h.Formations.AddMember)
	formations.Put("/:id/members/:employeeId", h.Formations.UpdateMember)
	formations.Delete("/:id/members/:employeeId", h.Formations.RemoveMember)

	formations.Post("/:id/initiatives", h.Formations.LinkInitiative)
	formations.Put("/:id/initiatives/:initiativeId", h.Formations.UpdateLink)
	formations.Delete("/:id/initiatives/:initiativeId", h.Formations.UnlinkInitiative)

	initiatives := protected.Group("/initiatives")
	initiatives.Get("/", h.Initiatives.List)
	initiatives.Post("/", h.Initiatives.Create)
	initiatives.Get("/:id", h.Initiatives.Get)
	initiatives.Put("/:id", h.Initiatives.Update)
	initiatives.Delete("/:id", h.Initiatives.Delete)

	initiatives.Put("/:id/stage", h.Initiatives.ChangeStage)
	initiatives.Put("/:id/status", h.Initiatives.ChangeStatus)
	initiatives.Put("/:id/state", h.Initiatives.ChangeState)
	initiatives.Get("/:id/transitions", h.Initiatives.Transitions)

	initiatives.Get("/:id/todos", h.Initiatives.ListTodos)
	initiatives.Post("/:id/todos", h.Initiatives.AddTodo)
	initiatives.Put("/:id/todos/:todoId", h.Initiatives.UpdateTodo)
	initiatives.Delete("/:id/todos/:todoId", h.Initiatives.RemoveTodo)

	threads := protected.Group("/threads")
	threads.Get("/", h.Threads.List)
	threads.Post("/", h.Threads.Create)
	threads.Get("/:id", h.Threads.Get)
	threads.Put("/:id", h.Threads.Update)
	threads.Delete("/:id", h.Threads.Delete)

	threads.Put("/:id/state", h.Threads.ChangeState)
	threads.Get("/:id/replies", h.Threads.GetReplies)
	threads.Post("/:id/replies", h.Threads.CreateReply)

	notifications := protected.Group("/notifications")
	notifications.Get("/", h.Notifications.List)
	notifications.Put("/:id/read", h.Notifications.MarkRead)
	notifications.Post("/read-all", h.Notifications.MarkAllRead)
}
