package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"task-manager/internal/domain"
	"task-manager/internal/services"
)

type createFolderRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type updateFolderRequest struct {
	Title       domain.Optional[string] `json:"title"`
	Description domain.Optional[string] `json:"description"`
	IsDeleted   domain.Optional[bool]   `json:"is_deleted"`
}

func (h *handlerImpl) HandleListFolders(c *gin.Context) {
	respond(c, http.StatusOK, h.folders.ListFolders(c.Request.Context(), userID(c)))
}

func (h *handlerImpl) HandleCreateFolder(c *gin.Context) {
	var req createFolderRequest
	if !h.bindJSON(c, &req) {
		return
	}

	input := services.CreateFolderInput{Title: req.Title, Description: req.Description}
	respond(c, http.StatusCreated, h.folders.CreateFolder(c.Request.Context(), userID(c), input))
}

func (h *handlerImpl) HandleGetFolder(c *gin.Context) {
	respond(c, http.StatusOK, h.folders.GetFolder(c.Request.Context(), userID(c), c.Param("folderId")))
}

func (h *handlerImpl) HandleUpdateFolder(c *gin.Context) {
	var req updateFolderRequest
	if !h.bindJSON(c, &req) {
		return
	}

	patch := domain.FolderPatch{
		Title:       req.Title,
		Description: req.Description,
		IsDeleted:   req.IsDeleted,
	}
	respond(c, http.StatusOK, h.folders.UpdateFolder(c.Request.Context(), userID(c), c.Param("folderId"), patch))
}

func (h *handlerImpl) HandleDeleteFolder(c *gin.Context) {
	respond(c, http.StatusOK, h.folders.DeleteFolder(c.Request.Context(), userID(c), c.Param("folderId")))
}
