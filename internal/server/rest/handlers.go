package rest

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"daylist/internal/common"
	"daylist/internal/server/services"
	"daylist/internal/server/storage"
)

// Multipart limits for the "attachments" field, matching what clients send.
const (
	attachmentsField = "attachments"
	maxFileCount     = 5
	maxFileSize      = 5 << 20
)

func (s *Server) handleHealth(c *gin.Context) {
	c.String(http.StatusOK, "To-Do List Backend is running!")
}

type createTodoRequest struct {
	DayTitle        string `json:"day_title"`
	TaskNumber      int    `json:"task_number"`
	TaskDescription string `json:"task_description"`
	TaskTitle       string `json:"task_title"`
}

func (s *Server) handleCreateTodo(c *gin.Context) {
	var req createTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body."})
		return
	}

	todo, err := s.todos.Create(c.Request.Context(), services.CreateParams{
		DayTitle:        req.DayTitle,
		TaskNumber:      req.TaskNumber,
		TaskDescription: req.TaskDescription,
		TaskTitle:       req.TaskTitle,
	})
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "To-Do item created successfully.",
		"data":    todo,
	})
}

func (s *Server) handleListTodos(c *gin.Context) {
	items, err := s.todos.List(c.Request.Context())
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (s *Server) handleUpdateTodo(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid todo id."})
		return
	}

	params := services.UpdateParams{}
	if v, ok := c.GetPostForm("task_description"); ok {
		params.TaskDescription = &v
	}
	if v, ok := c.GetPostForm("day_title"); ok {
		params.DayTitle = &v
	}
	if v, ok := c.GetPostForm("task_title"); ok {
		params.TaskTitle = &v
	}
	if v, ok := c.GetPostForm("is_completed"); ok {
		params.IsCompleted = &v
	}
	params.ShortcutName = c.PostForm("file_name_shortcut")

	files, err := s.formFiles(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	params.Files = files

	if err := s.todos.Update(c.Request.Context(), id, params); err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "To-Do item and attachments updated successfully."})
}

func (s *Server) handleDeleteTodo(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid todo id."})
		return
	}

	if err := s.todos.Delete(c.Request.Context(), id); err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "To-Do item and associated attachments deleted successfully."})
}

func (s *Server) handleDeleteDayGroup(c *gin.Context) {
	day := c.Param("dayTitle")
	if decoded, err := url.PathUnescape(day); err == nil {
		day = decoded
	}

	if err := s.todos.DeleteDayGroup(c.Request.Context(), day); err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Day group %q and attachments deleted successfully.", day),
	})
}

func (s *Server) handleUploadAttachments(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid todo id."})
		return
	}

	shortcut := c.PostForm("file_name_shortcut")
	files, err := s.formFiles(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if err := s.todos.AttachFiles(c.Request.Context(), id, files, shortcut); err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Attachments uploaded successfully."})
}

func (s *Server) handleDeleteAttachment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Attachment ID is missing or invalid."})
		return
	}

	if err := s.todos.DeleteAttachment(c.Request.Context(), id); err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Attachment deleted successfully."})
}

// formFiles decodes the multipart "attachments" parts into memory buffers.
// A missing or non-multipart body yields no files rather than an error.
func (s *Server) formFiles(c *gin.Context) ([]storage.FilePayload, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil
	}

	parts := form.File[attachmentsField]
	if len(parts) > maxFileCount {
		return nil, fmt.Errorf("too many files: at most %d attachments are accepted", maxFileCount)
	}

	files := make([]storage.FilePayload, 0, len(parts))
	for _, fh := range parts {
		if fh.Size > maxFileSize {
			return nil, fmt.Errorf("file %q exceeds the %d MB limit", fh.Filename, maxFileSize>>20)
		}
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("read upload %q: %w", fh.Filename, err)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("read upload %q: %w", fh.Filename, err)
		}
		files = append(files, storage.FilePayload{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}
	return files, nil
}

// renderError translates service errors into HTTP statuses.
func (s *Server) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrorBadRequest):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, common.ErrorNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	case errors.Is(err, common.ErrorAlreadyGone):
		c.Status(http.StatusNoContent)
	default:
		s.logger.Error(c.Request.Context(), "request failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Internal Server Error",
			"detail":  err.Error(),
		})
	}
}
