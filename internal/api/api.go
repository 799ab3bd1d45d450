package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"task-manager/internal/services"
)

// Handler defines the HTTP handlers for every folder, task and agenda operation.
type Handler interface {
	HandleAuth(c *gin.Context)

	HandleListFolders(c *gin.Context)
	HandleCreateFolder(c *gin.Context)
	HandleGetFolder(c *gin.Context)
	HandleUpdateFolder(c *gin.Context)
	HandleDeleteFolder(c *gin.Context)

	HandleListAllTasks(c *gin.Context)
	HandleListFolderTasks(c *gin.Context)
	HandleCreateTask(c *gin.Context)
	HandleGetTask(c *gin.Context)
	HandleUpdateTask(c *gin.Context)
	HandleCompleteTask(c *gin.Context)
	HandleDeleteTask(c *gin.Context)

	HandleTasksByDate(c *gin.Context)
	HandleFolderTasksByDate(c *gin.Context)
	HandleNearingDueTasks(c *gin.Context)
}

type handlerImpl struct {
	logger  zerolog.Logger
	auth    *Authenticator
	folders services.FolderService
	tasks   services.TaskService
	agenda  services.AgendaService
	loc     *time.Location
}

// New creates a Handler backed by the given services.
func New(logger zerolog.Logger, auth *Authenticator, container *services.ServiceContainer) Handler {
	loc := container.Location
	if loc == nil {
		loc = time.Local
	}
	return &handlerImpl{
		logger:  logger,
		auth:    auth,
		folders: container.Folders,
		tasks:   container.Tasks,
		agenda:  container.Agenda,
		loc:     loc,
	}
}

// NewRouter builds the gin engine serving the /api/v1 routes.
func NewRouter(logger zerolog.Logger, h Handler) *gin.Engine {
	router := gin.New()
	router.Use(accessLog(logger), recovery(logger))
	registerRoutes(router, h)
	return router
}

func registerRoutes(router gin.IRouter, h Handler) {
	v1 := router.Group("/api/v1", h.HandleAuth)

	folders := v1.Group("/folders")
	folders.GET("", h.HandleListFolders)
	folders.POST("", h.HandleCreateFolder)
	folders.GET("/:folderId", h.HandleGetFolder)
	folders.PATCH("/:folderId", h.HandleUpdateFolder)
	folders.DELETE("/:folderId", h.HandleDeleteFolder)

	folderTasks := folders.Group("/:folderId/tasks")
	folderTasks.GET("", h.HandleListFolderTasks)
	folderTasks.GET("/by-date", h.HandleFolderTasksByDate)
	folderTasks.POST("", h.HandleCreateTask)
	folderTasks.GET("/:taskId", h.HandleGetTask)
	folderTasks.PATCH("/:taskId", h.HandleUpdateTask)
	folderTasks.POST("/:taskId/complete", h.HandleCompleteTask)
	folderTasks.DELETE("/:taskId", h.HandleDeleteTask)

	tasks := v1.Group("/tasks")
	tasks.GET("", h.HandleListAllTasks)
	tasks.GET("/by-date", h.HandleTasksByDate)
	tasks.GET("/nearing-due", h.HandleNearingDueTasks)
}
