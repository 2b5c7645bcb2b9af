/**
 * 处理器:资产查询与维护
 * @author: sun977
 * @date: 2025.09.21
 * @description: 资产列表、详情、删除、留痕和分类接口
 * @func: AssetHandler
 */
package asset

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"assetmaster/internal/model"
	"assetmaster/internal/pkg/logger"
	"assetmaster/internal/pkg/utils"
	assetservice "assetmaster/internal/service/asset"
)

// AssetHandler 资产处理器
type AssetHandler struct {
	service *assetservice.AssetService
}

// NewAssetHandler 创建 AssetHandler 实例
func NewAssetHandler(service *assetservice.AssetService) *AssetHandler {
	return &AssetHandler{
		service: service,
	}
}

// ListAssets 资产列表
// GET /api/v1/assets
func (h *AssetHandler) ListAssets(c *gin.Context) {
	clientIP := utils.GetClientIP(c)
	XRequestID := c.GetHeader("X-Request-ID")
	pathUrl := c.Request.URL.String()

	var req model.AssetListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.APIResponse{
			Code:    http.StatusBadRequest,
			Status:  "failed",
			Message: "Invalid query parameters",
			Error:   err.Error(),
		})
		return
	}

	assets, pagination, err := h.service.ListAssets(c.Request.Context(), &req)
	if err != nil {
		logger.LogBusinessError(err, XRequestID, 0, clientIP, pathUrl, "GET", map[string]interface{}{
			"operation": "list_assets",
		})
		c.JSON(http.StatusInternalServerError, model.APIResponse{
			Code:    http.StatusInternalServerError,
			Status:  "failed",
			Message: "Failed to list assets",
			Error:   err.Error(),
		})
		return
	}

	pagination.Data = assets
	c.JSON(http.StatusOK, model.APIResponse{
		Code:    http.StatusOK,
		Status:  "success",
		Message: "Assets retrieved successfully",
		Data:    pagination,
	})
}

// GetAsset 资产详情
// GET /api/v1/assets/:id
func (h *AssetHandler) GetAsset(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	a, err := h.service.GetAsset(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, assetservice.ErrAssetNotFound) {
			c.JSON(http.StatusNotFound, model.APIResponse{
				Code:    http.StatusNotFound,
				Status:  "failed",
				Message: "Asset not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, model.APIResponse{
			Code:    http.StatusInternalServerError,
			Status:  "failed",
			Message: "Failed to get asset",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, model.APIResponse{
		Code:    http.StatusOK,
		Status:  "success",
		Message: "Asset retrieved successfully",
		Data:    a,
	})
}

// DeleteAsset 删除资产
// DELETE /api/v1/assets/:id
func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	clientIP := utils.GetClientIP(c)
	userAgent := c.GetHeader("User-Agent")
	XRequestID := c.GetHeader("X-Request-ID")
	userID := utils.GetCurrentUserIDFromGinContext(c)
	operator := utils.GetCurrentUsernameFromGinContext(c)

	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteAsset(c.Request.Context(), id, operator); err != nil {
		if errors.Is(err, assetservice.ErrAssetNotFound) {
			c.JSON(http.StatusNotFound, model.APIResponse{
				Code:    http.StatusNotFound,
				Status:  "failed",
				Message: "Asset not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, model.APIResponse{
			Code:    http.StatusInternalServerError,
			Status:  "failed",
			Message: "Failed to delete asset",
			Error:   err.Error(),
		})
		return
	}

	logger.LogAuditOperation(userID, operator, "delete", "asset", "success",
		clientIP, userAgent, XRequestID, map[string]interface{}{
			"asset_id": id,
		})

	c.JSON(http.StatusOK, model.APIResponse{
		Code:    http.StatusOK,
		Status:  "success",
		Message: "Asset deleted successfully",
	})
}

// ListTraces 资产变更留痕
// GET /api/v1/assets/:id/traces
func (h *AssetHandler) ListTraces(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	traces, err := h.service.ListTraces(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, assetservice.ErrAssetNotFound) {
			c.JSON(http.StatusNotFound, model.APIResponse{
				Code:    http.StatusNotFound,
				Status:  "failed",
				Message: "Asset not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, model.APIResponse{
			Code:    http.StatusInternalServerError,
			Status:  "failed",
			Message: "Failed to list asset traces",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, model.APIResponse{
		Code:    http.StatusOK,
		Status:  "success",
		Message: "Asset traces retrieved successfully",
		Data:    traces,
	})
}

// ListCategories 分类列表
// GET /api/v1/categories
func (h *AssetHandler) ListCategories(c *gin.Context) {
	categories, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.APIResponse{
			Code:    http.StatusInternalServerError,
			Status:  "failed",
			Message: "Failed to list categories",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, model.APIResponse{
		Code:    http.StatusOK,
		Status:  "success",
		Message: "Categories retrieved successfully",
		Data:    categories,
	})
}

// parseID 解析路径中的资产ID
func (h *AssetHandler) parseID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, model.APIResponse{
			Code:    http.StatusBadRequest,
			Status:  "failed",
			Message: "Invalid ID",
			Error:   err.Error(),
		})
		return 0, false
	}
	return id, true
}
