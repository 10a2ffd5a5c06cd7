package route

import (
	"marketplace-service/src/internal/delivery/http"
	"marketplace-service/src/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouteConfig struct {
	App                    *fiber.App
	Prefix                 string
	CORSOrigins            string
	MetricsEnabled         bool
	IdentityController     *http.IdentityController
	AssetController        *http.AssetController
	JobController          *http.JobController
	LedgerController       *http.LedgerController
	ChatController         *http.ChatController
	NotificationController *http.NotificationController
	AuthMiddleware         fiber.Handler
}

func (c *RouteConfig) Setup() {
	c.App.Use(middleware.NewLogger())
	c.App.Use(middleware.NewCORS(c.CORSOrigins))
	if c.MetricsEnabled {
		c.App.Use(middleware.NewMetrics())
		c.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}
	c.App.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.SendString("OK")
	})
	c.SetupGuestRoute()
	c.SetupAuthRoute()
}

func (c *RouteConfig) SetupGuestRoute() {
	guest := c.App.Group(c.Prefix)
	guest.Post("/auth/register", c.IdentityController.Register)
	guest.Post("/auth/token/login", c.IdentityController.Login)
	guest.Post("/token/refresh", c.IdentityController.Refresh)
	guest.Get("/public/jobposts", c.JobController.ListPublicPosts)
	guest.Post("/book-demo", c.NotificationController.BookDemo)
}

func (c *RouteConfig) SetupAuthRoute() {
	api := c.App.Group(c.Prefix, c.AuthMiddleware)
	api.Get("/auth/user", c.IdentityController.CurrentUser)

	api.Get("/drivers", c.IdentityController.ListDrivers)
	api.Get("/drivers/:id", c.IdentityController.GetDriver)
	api.Patch("/drivers/:id", c.IdentityController.UpdateDriver)
	api.Put("/drivers/:id/identity-document", c.IdentityController.UploadIdentityDocument)
	api.Get("/clients", c.IdentityController.ListClients)
	api.Get("/clients/:id", c.IdentityController.GetClient)

	api.Post("/cars", c.AssetController.CreateCar)
	api.Get("/cars", c.AssetController.ListCars)
	api.Get("/cars/:id", c.AssetController.GetCar)
	api.Patch("/cars/:id", c.AssetController.UpdateCar)
	api.Delete("/cars/:id", c.AssetController.DeleteCar)
	api.Post("/cardocs", c.AssetController.CreateCarDoc)
	api.Get("/cardocs", c.AssetController.ListCarDocs)
	api.Get("/cardocs/:id", c.AssetController.GetCarDoc)
	api.Patch("/cardocs/:id", c.AssetController.UpdateCarDoc)
	api.Delete("/cardocs/:id", c.AssetController.DeleteCarDoc)

	api.Post("/jobposts", c.JobController.CreatePost)
	api.Get("/jobposts", c.JobController.ListPosts)
	api.Get("/jobposts/:id", c.JobController.GetPost)
	api.Patch("/jobposts/:id", c.JobController.UpdatePost)
	api.Delete("/jobposts/:id", c.JobController.DeletePost)
	api.Post("/jobbids", c.JobController.SubmitBid)
	api.Get("/jobbids", c.JobController.ListBids)
	api.Get("/jobbids/:id", c.JobController.GetBid)
	api.Patch("/jobbids/:id", c.JobController.UpdateBid)
	api.Delete("/jobbids/:id", c.JobController.WithdrawBid)
	api.Post("/joboffers", c.JobController.CreateOffer)
	api.Get("/joboffers", c.JobController.ListOffers)
	api.Get("/joboffers/:id", c.JobController.GetOffer)
	api.Post("/trips", c.JobController.RecordTrip)
	api.Get("/trips", c.JobController.ListTrips)
	api.Get("/trips/:id", c.JobController.GetTrip)
	api.Patch("/trips/:id", c.JobController.UpdateTrip)

	api.Post("/payments", c.LedgerController.RecordPayment)
	api.Get("/payments", c.LedgerController.ListPayments)
	api.Post("/ratings", c.LedgerController.RateDriver)
	api.Get("/ratings", c.LedgerController.ListRatings)

	api.Post("/chats", c.ChatController.PostMessage)
	api.Get("/chats", c.ChatController.ListMessages)
	api.Get("/chats/unread", c.ChatController.UnreadCount)
	api.Get("/chats/:id", c.ChatController.GetMessage)
	api.Post("/chats/:id/mark_as_read", c.ChatController.MarkRead)

	api.Post("/notifications", c.NotificationController.Create)
	api.Get("/notifications", c.NotificationController.List)
	api.Post("/notifications/:id/mark_as_read", c.NotificationController.MarkRead)
	api.Delete("/notifications/:id", c.NotificationController.Delete)
}
