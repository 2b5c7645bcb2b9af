/**
 * 处理器:资产批量导入
 * @author: sun977
 * @date: 2025.09.21
 * @description: 导入文件受理、进度查询和批次汇总接口
 * @func: ImportHandler
 */
package asset

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"assetmaster/internal/model"
	"assetmaster/internal/pkg/logger"
	"assetmaster/internal/pkg/utils"
	importerservice "assetmaster/internal/service/importer"
)

// ImportHandler 导入处理器
type ImportHandler struct {
	service     *importerservice.ImportService
	maxFileSize int64
}

// NewImportHandler 创建 ImportHandler 实例
func NewImportHandler(service *importerservice.ImportService, maxFileSize int64) *ImportHandler {
	return &ImportHandler{
		service:     service,
		maxFileSize: maxFileSize,
	}
}

// SubmitImport 受理导入文件
// POST /api/v1/assets/import
// 文件合法即返回202和任务ID，解析入库异步进行
func (h *ImportHandler) SubmitImport(c *gin.Context) {
	clientIP := utils.GetClientIP(c)
	userAgent := c.GetHeader("User-Agent")
	XRequestID := c.GetHeader("X-Request-ID")
	pathUrl := c.Request.URL.String()
	userID := utils.GetCurrentUserIDFromGinContext(c)
	operator := utils.GetCurrentUsernameFromGinContext(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, model.APIResponse{
			Code:    http.StatusBadRequest,
			Status:  "failed",
			Message: "Missing upload file",
			Error:   err.Error(),
		})
		return
	}

	if ext := strings.ToLower(filepath.Ext(fileHeader.Filename)); ext != ".xlsx" {
		c.JSON(http.StatusBadRequest, model.APIResponse{
			Code:    http.StatusBadRequest,
			Status:  "failed",
			Message: "Only .xlsx files are supported, legacy .xls format is not accepted",
		})
		return
	}

	if h.maxFileSize > 0 && fileHeader.Size > h.maxFileSize {
		c.JSON(http.StatusRequestEntityTooLarge, model.APIResponse{
			Code:    http.StatusRequestEntityTooLarge,
			Status:  "failed",
			Message: "Upload file too large",
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, model.APIResponse{
			Code:    http.StatusBadRequest,
			Status:  "failed",
			Message: "Failed to open upload file",
			Error:   err.Error(),
		})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, model.APIResponse{
			Code:    http.StatusBadRequest,
			Status:  "failed",
			Message: "Failed to read upload file",
			Error:   err.Error(),
		})
		return
	}

	task, err := h.service.SubmitImport(c.Request.Context(), fileHeader.Filename, data, operator)
	if err != nil {
		logger.LogBusinessError(err, XRequestID, userID, clientIP, pathUrl, "POST", map[string]interface{}{
			"operation":  "submit_import",
			"file_name":  fileHeader.Filename,
			"user_agent": userAgent,
		})
		c.JSON(http.StatusInternalServerError, model.APIResponse{
			Code:    http.StatusInternalServerError,
			Status:  "failed",
			Message: "Failed to accept import task",
			Error:   err.Error(),
		})
		return
	}

	logger.LogBusinessOperation("submit_import", userID, operator, clientIP, XRequestID, "success",
		"Import task accepted", map[string]interface{}{
			"task_id":   task.TaskID,
			"batch_id":  task.BatchID,
			"file_name": fileHeader.Filename,
		})

	c.JSON(http.StatusAccepted, model.APIResponse{
		Code:    http.StatusAccepted,
		Status:  "success",
		Message: "Import task accepted",
		Data:    task,
	})
}

// GetProgress 查询导入任务进度
// GET /api/v1/assets/import/:task_id
func (h *ImportHandler) GetProgress(c *gin.Context) {
	taskID := c.Param("task_id")

	task, err := h.service.GetTask(c.Request.Context(), taskID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.APIResponse{
			Code:    http.StatusInternalServerError,
			Status:  "failed",
			Message: "Failed to query import task",
			Error:   err.Error(),
		})
		return
	}
	if task == nil {
		c.JSON(http.StatusNotFound, model.APIResponse{
			Code:    http.StatusNotFound,
			Status:  "failed",
			Message: "Import task not found",
		})
		return
	}

	c.JSON(http.StatusOK, model.APIResponse{
		Code:    http.StatusOK,
		Status:  "success",
		Message: "Import task retrieved successfully",
		Data: gin.H{
			"task":     task,
			"progress": task.Progress(),
		},
	})
}

// GetBatchSummary 查询导入批次汇总
// GET /api/v1/assets/import/:task_id/summary
func (h *ImportHandler) GetBatchSummary(c *gin.Context) {
	taskID := c.Param("task_id")

	summary, err := h.service.Summarize(c.Request.Context(), taskID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.APIResponse{
			Code:    http.StatusInternalServerError,
			Status:  "failed",
			Message: "Failed to build batch summary",
			Error:   err.Error(),
		})
		return
	}
	if summary == nil {
		c.JSON(http.StatusNotFound, model.APIResponse{
			Code:    http.StatusNotFound,
			Status:  "failed",
			Message: "Import task not found",
		})
		return
	}

	c.JSON(http.StatusOK, model.APIResponse{
		Code:    http.StatusOK,
		Status:  "success",
		Message: "Batch summary retrieved successfully",
		Data:    summary,
	})
}

// GetBatch 按批次号查询入库汇总
// GET /api/v1/assets/import/batches/:batch_id
// 任务记录过期后仍可凭批次号核对该批次实际入库数
func (h *ImportHandler) GetBatch(c *gin.Context) {
	batchID := c.Param("batch_id")

	summary, err := h.service.SummarizeBatch(c.Request.Context(), batchID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.APIResponse{
			Code:    http.StatusInternalServerError,
			Status:  "failed",
			Message: "Failed to summarize import batch",
			Error:   err.Error(),
		})
		return
	}
	if summary == nil {
		c.JSON(http.StatusNotFound, model.APIResponse{
			Code:    http.StatusNotFound,
			Status:  "failed",
			Message: "Import batch not found",
		})
		return
	}

	c.JSON(http.StatusOK, model.APIResponse{
		Code:    http.StatusOK,
		Status:  "success",
		Message: "Import batch retrieved successfully",
		Data:    summary,
	})
}
