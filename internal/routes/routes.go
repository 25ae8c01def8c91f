package routes

import (
	"github.com/gin-gonic/gin"

	"dolpcrm/internal/authz"
	"dolpcrm/internal/handlers"
	"dolpcrm/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	clientHandler *handlers.ClientHandler,
	opportunityHandler *handlers.OpportunityHandler,
	pipelineHandler *handlers.PipelineHandler,
	referenceHandler *handlers.ReferenceHandler,
	catalogHandler *handlers.CatalogHandler,
	interactionHandler *handlers.InteractionHandler,
	taskHandler *handlers.TaskHandler,
	reportHandler *handlers.ReportHandler,
	documentHandler *handlers.DocumentHandler,
	integrationsHandler *handlers.IntegrationsHandler, // nil when Telegram is off
) *gin.Engine {

	// ---- public
	r.POST("/login", authHandler.Login)
	r.POST("/refresh", authHandler.RefreshToken)

	// ---- protected
	r.Use(middleware.AuthMiddleware())
	r.Use(middleware.ReadOnlyGuard())

	if integrationsHandler != nil {
		integr := r.Group("/integrations")
		{
			integr.POST("/telegram/request-link", integrationsHandler.TelegramLink)
		}
	}

	// USERS (admin manages accounts, everyone reads their own)
	users := r.Group("/users")
	{
		users.GET("/me", userHandler.Me)
		users.POST("/", middleware.RequireRoles(authz.RoleAdmin), userHandler.Create)
		users.GET("/", middleware.RequireRoles(authz.RoleAdmin, authz.RoleDiretoria), userHandler.List)
	}

	// CLIENTS
	clients := r.Group("/clients")
	{
		clients.POST("/", clientHandler.Create)
		clients.GET("/", clientHandler.List)
		clients.GET("/:id", clientHandler.GetByID)
		clients.PUT("/:id", clientHandler.Update)
		clients.DELETE("/:id", clientHandler.Delete)
		clients.GET("/:id/news", clientHandler.ListNews)
		clients.POST("/:id/news/fetch", clientHandler.FetchNews)
	}

	// OPPORTUNITIES
	opps := r.Group("/opportunities")
	{
		opps.POST("/", opportunityHandler.Create)
		opps.GET("/", opportunityHandler.List)
		opps.GET("/:id", opportunityHandler.GetByID)
		opps.PUT("/:id", opportunityHandler.Update)
		opps.DELETE("/:id", opportunityHandler.Delete)

		opps.POST("/:id/pricing", opportunityHandler.RecalculatePricing)
		opps.GET("/:id/pricing/preview", opportunityHandler.PreviewPricing)

		opps.POST("/:id/approve", pipelineHandler.Approve)
		opps.POST("/:id/reject", pipelineHandler.Reject)

		opps.POST("/:id/interactions", interactionHandler.Create)
		opps.GET("/:id/interactions", interactionHandler.ListByOpportunity)

		opps.POST("/:id/tasks", taskHandler.Create)
		opps.GET("/:id/tasks", taskHandler.ListByOpportunity)

		opps.POST("/:id/summary", documentHandler.ExecutiveSummary)
	}

	// PIPELINE board
	r.GET("/pipeline", pipelineHandler.Board)

	// TASKS
	tasks := r.Group("/tasks")
	{
		tasks.POST("/:id/complete", taskHandler.Complete)
	}

	// REFERENCE PRICES (elevated roles maintain the price book)
	refs := r.Group("/references",
		middleware.RequireRoles(authz.RoleOperacoes, authz.RoleDiretoria, authz.RoleAdmin),
	)
	{
		refs.POST("/", referenceHandler.Create)
		refs.GET("/", referenceHandler.List)
		refs.GET("/companies", referenceHandler.Companies)
		refs.GET("/active", referenceHandler.GetActive)
		refs.POST("/:id/deactivate", referenceHandler.Deactivate)
	}

	// CATALOG (reads are open, writes admin-only)
	catalog := r.Group("/catalog")
	{
		catalog.GET("/servicos", catalogHandler.ListServicos)
		catalog.GET("/tipos-equipe", catalogHandler.ListTiposEquipe)
		catalog.GET("/setores", catalogHandler.ListSetores)
		catalog.GET("/segmentos", catalogHandler.ListSegmentos)

		admin := catalog.Group("", middleware.RequireRoles(authz.RoleAdmin))
		{
			admin.POST("/servicos", catalogHandler.CreateServico)
			admin.PUT("/servicos/:id", catalogHandler.UpdateServico)
			admin.POST("/tipos-equipe", catalogHandler.CreateTipoEquipe)
			admin.POST("/setores", catalogHandler.AddSetor)
			admin.POST("/segmentos", catalogHandler.AddSegmento)
		}
	}

	// REPORTS
	reports := r.Group("/reports",
		middleware.RequireRoles(authz.RoleAuditoria, authz.RoleOperacoes, authz.RoleDiretoria, authz.RoleAdmin),
	)
	{
		reports.GET("/pipeline", reportHandler.Pipeline)
		reports.GET("/history", reportHandler.History)
	}

	return r
}
