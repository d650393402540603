package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/company-tracker-api/internal/metrics"
	"github.com/yukikurage/company-tracker-api/internal/middleware"
	"github.com/yukikurage/company-tracker-api/internal/services"
	"go.uber.org/zap"
)

// Dependencies are the services the HTTP layer is built on.
type Dependencies struct {
	Tokens        *services.TokenService
	Auth          *services.AuthService
	Companies     *services.CompanyService
	Employees     *services.EmployeeService
	OrgStructure  *services.OrgStructureService
	Processes     *services.ProcessService
	Instructions  *services.InstructionService
	Tasks         *services.TaskService
	Results       *services.ResultService
	Telegram      *services.TelegramService
	WebhookSecret string
	Log           *zap.Logger
}

// NewRouter registers every route on a new gin engine.
func NewRouter(d Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		metrics.Middleware(),
		middleware.AccessLog(d.Log),
	)

	authHandler := NewAuthHandler(d.Auth, d.Companies)
	companyHandler := NewCompanyHandler(d.Companies)
	employeeHandler := NewEmployeeHandler(d.Employees)
	orgHandler := NewOrgStructureHandler(d.OrgStructure)
	processHandler := NewProcessHandler(d.Processes)
	instructionHandler := NewInstructionHandler(d.Instructions)
	taskHandler := NewTaskHandler(d.Tasks)
	resultHandler := NewResultHandler(d.Results)
	telegramHandler := NewTelegramHandler(d.Telegram, d.Log)

	requireAuth := middleware.RequireAuth(d.Tokens)
	requireTemporary := middleware.RequireTemporaryToken(d.Tokens)

	// Ops endpoints
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	auth := r.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/me", requireAuth, authHandler.Me)
		auth.POST("/logout", requireAuth, authHandler.Logout)

		// Telegram handshake: login issues a temporary token, the rest consume it
		auth.POST("/telegram/login", authHandler.TelegramLogin)
		auth.GET("/telegram/companies", requireTemporary, authHandler.TelegramCompanies)
		auth.POST("/telegram/select-company", requireTemporary, authHandler.SelectCompany)
		auth.POST("/telegram/create-company-and-login", requireTemporary, authHandler.CreateCompanyAndLogin)
	}

	companies := r.Group("/companies")
	companies.Use(requireAuth)
	{
		companies.GET("", companyHandler.ListCompanies)
		companies.POST("", companyHandler.CreateCompany)

		company := companies.Group("/:id")
		company.Use(middleware.RequireCompanyAccess(d.Companies))

		company.GET("/employees", employeeHandler.ListEmployees)
		company.POST("/employees", employeeHandler.CreateEmployee)
		company.PATCH("/employees/:eid", employeeHandler.UpdateEmployee)
		company.DELETE("/employees/:eid", employeeHandler.DeleteEmployee)

		company.GET("/org-structure", orgHandler.GetOrgStructure)
		company.POST("/org-structure", orgHandler.CreateOrgNode)
		company.PATCH("/org-structure/:nid", orgHandler.UpdateOrgNode)
		company.DELETE("/org-structure/:nid", orgHandler.DeleteOrgNode)

		company.GET("/tasks", taskHandler.ListTasks)
		company.POST("/tasks", taskHandler.CreateTask)
		company.PATCH("/tasks/:tid", taskHandler.UpdateTask)
		company.DELETE("/tasks/:tid", taskHandler.DeleteTask)

		company.GET("/results", resultHandler.ListResults)
		company.POST("/results", resultHandler.CreateResult)
		company.PATCH("/results/:rid", resultHandler.UpdateResult)
		company.DELETE("/results/:rid", resultHandler.DeleteResult)
	}

	processes := r.Group("/processes")
	processes.Use(requireAuth)
	{
		processes.GET("", processHandler.ListProcesses)
		processes.POST("", processHandler.CreateProcess)
		processes.PATCH("/:pid", processHandler.UpdateProcess)
		processes.DELETE("/:pid", processHandler.DeleteProcess)
	}

	instructions := r.Group("/instructions")
	instructions.Use(requireAuth)
	{
		instructions.GET("", instructionHandler.ListInstructions)
		instructions.POST("", instructionHandler.CreateInstruction)
		instructions.PATCH("/:iid", instructionHandler.UpdateInstruction)
		instructions.DELETE("/:iid", instructionHandler.DeleteInstruction)
	}

	tg := r.Group("/telegram")
	{
		tg.POST("/webhook", middleware.RequireWebhookSecret(d.WebhookSecret), telegramHandler.Webhook)
		tg.GET("/groups", requireAuth, telegramHandler.ListGroups)
		tg.POST("/groups/link", requireAuth, telegramHandler.LinkGroup)
		tg.GET("/groups/:gid/members", requireAuth, telegramHandler.ListMembers)
	}

	return r
}
