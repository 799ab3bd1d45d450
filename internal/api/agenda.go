package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *handlerImpl) HandleTasksByDate(c *gin.Context) {
	date, ok := h.queryDate(c)
	if !ok {
		return
	}
	respond(c, http.StatusOK, h.agenda.TasksByDate(c.Request.Context(), userID(c), date))
}

func (h *handlerImpl) HandleFolderTasksByDate(c *gin.Context) {
	date, ok := h.queryDate(c)
	if !ok {
		return
	}
	respond(c, http.StatusOK, h.agenda.TasksByDateInFolder(c.Request.Context(), userID(c), c.Param("folderId"), date))
}

func (h *handlerImpl) HandleNearingDueTasks(c *gin.Context) {
	days, ok := queryDays(c)
	if !ok {
		return
	}
	respond(c, http.StatusOK, h.agenda.NearingDueTasks(c.Request.Context(), userID(c), days))
}
