package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"task-manager/internal/domain"
	"task-manager/internal/services"
)

type createTaskRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
}

type updateTaskRequest struct {
	Title       domain.Optional[string] `json:"title"`
	Description domain.Optional[string] `json:"description"`
	Status      domain.Optional[string] `json:"status"`
	Priority    domain.Optional[string] `json:"priority"`
	StartDate   domain.Optional[string] `json:"start_date"`
	EndDate     domain.Optional[string] `json:"end_date"`
	DoneDate    domain.Optional[string] `json:"done_date"`
}

func (h *handlerImpl) HandleListAllTasks(c *gin.Context) {
	respond(c, http.StatusOK, h.tasks.ListAllTasks(c.Request.Context(), userID(c)))
}

func (h *handlerImpl) HandleListFolderTasks(c *gin.Context) {
	respond(c, http.StatusOK, h.tasks.ListTasksInFolder(c.Request.Context(), userID(c), c.Param("folderId"), c.Query("order_by")))
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	var req createTaskRequest
	if !h.bindJSON(c, &req) {
		return
	}

	start, err := h.parseDate(domain.FieldStartDate, req.StartDate)
	if err != nil {
		reject(c, err)
		return
	}
	end, err := h.parseDate(domain.FieldEndDate, req.EndDate)
	if err != nil {
		reject(c, err)
		return
	}

	input := services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		StartDate:   start,
		EndDate:     end,
	}
	respond(c, http.StatusCreated, h.tasks.CreateTask(c.Request.Context(), userID(c), c.Param("folderId"), input))
}

func (h *handlerImpl) HandleGetTask(c *gin.Context) {
	respond(c, http.StatusOK, h.tasks.GetTask(c.Request.Context(), userID(c), c.Param("folderId"), c.Param("taskId")))
}

func (h *handlerImpl) HandleUpdateTask(c *gin.Context) {
	var req updateTaskRequest
	if !h.bindJSON(c, &req) {
		return
	}

	patch, err := h.toTaskPatch(req)
	if err != nil {
		reject(c, err)
		return
	}
	respond(c, http.StatusOK, h.tasks.UpdateTask(c.Request.Context(), userID(c), c.Param("folderId"), c.Param("taskId"), patch))
}

func (h *handlerImpl) HandleCompleteTask(c *gin.Context) {
	respond(c, http.StatusOK, h.tasks.CompleteTask(c.Request.Context(), userID(c), c.Param("folderId"), c.Param("taskId")))
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	respond(c, http.StatusOK, h.tasks.DeleteTask(c.Request.Context(), userID(c), c.Param("folderId"), c.Param("taskId")))
}

func (h *handlerImpl) toTaskPatch(req updateTaskRequest) (domain.TaskPatch, error) {
	patch := domain.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
	}

	var err error
	if patch.StartDate, err = h.parseOptionalDate(domain.FieldStartDate, req.StartDate); err != nil {
		return patch, err
	}
	if patch.EndDate, err = h.parseOptionalDate(domain.FieldEndDate, req.EndDate); err != nil {
		return patch, err
	}
	if patch.DoneDate, err = h.parseOptionalDate(domain.FieldDoneDate, req.DoneDate); err != nil {
		return patch, err
	}
	return patch, nil
}
