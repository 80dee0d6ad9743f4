package internal

import (
	"net/http"

	"sfd/internal/controllers"
	"sfd/internal/providers"
	"sfd/internal/structures"
)

func InitRoutes(apiController *controllers.ApiController, conf *structures.Config) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/feedback", http.HandlerFunc(apiController.SubmitFeedback))
	routers.Get("/feedback", http.HandlerFunc(apiController.ListFeedback))
	routers.Delete("/feedback", http.HandlerFunc(apiController.DeleteFeedback))
	routers.Get("/feedback/summary", http.HandlerFunc(apiController.GetSummary))
	routers.Patch("/feedback/archive", http.HandlerFunc(apiController.ArchiveFeedback))
	routers.Get("/export", http.HandlerFunc(apiController.ExportReport))
	routers.Post("/login", http.HandlerFunc(apiController.Login))
	routers.Get("/events", http.HandlerFunc(apiController.StreamEvents))
	routers.Get("/theme", http.HandlerFunc(apiController.GetTheme))
	routers.Put("/theme", http.HandlerFunc(apiController.PutTheme))
	return routers
}
