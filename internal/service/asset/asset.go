/**
 * 服务:资产查询与维护
 * @author: sun977
 * @date: 2025.09.21
 * @description: 资产主档的查询、删除和留痕查询
 * @func: AssetService
 */
package asset

import (
	"context"
	"errors"
	"fmt"

	"assetmaster/internal/model"
	"assetmaster/internal/model/asset"
	"assetmaster/internal/pkg/logger"
	mysqlasset "assetmaster/internal/repo/mysql/asset"
)

// 分页默认值
const (
	defaultPage     = 1
	defaultPageSize = 20
	maxPageSize     = 200
)

// ErrAssetNotFound 资产不存在
var ErrAssetNotFound = errors.New("asset not found")

// AssetService 资产服务
type AssetService struct {
	assets     *mysqlasset.AssetRepository
	categories *mysqlasset.CategoryRepository
	traces     *mysqlasset.ChangeTraceRepository
}

// NewAssetService 创建资产服务
func NewAssetService(assets *mysqlasset.AssetRepository, categories *mysqlasset.CategoryRepository, traces *mysqlasset.ChangeTraceRepository) *AssetService {
	return &AssetService{
		assets:     assets,
		categories: categories,
		traces:     traces,
	}
}

// GetAsset 根据ID获取资产详情
func (s *AssetService) GetAsset(ctx context.Context, id uint64) (*asset.Asset, error) {
	a, err := s.assets.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}
	if a == nil {
		return nil, ErrAssetNotFound
	}
	return a, nil
}

// ListAssets 分页查询资产列表
func (s *AssetService) ListAssets(ctx context.Context, req *model.AssetListRequest) ([]*asset.Asset, *model.PaginationResponse, error) {
	page := req.Page
	if page < 1 {
		page = defaultPage
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	assets, total, err := s.assets.List(ctx, page, pageSize, req.Keyword, req.Status, req.BatchID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list assets: %w", err)
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	pagination := &model.PaginationResponse{
		Total:       total,
		Page:        page,
		PageSize:    pageSize,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
	}
	return assets, pagination, nil
}

// DeleteAsset 删除资产
// 留痕记录保留在库中，删除动作本身另行写审计日志
func (s *AssetService) DeleteAsset(ctx context.Context, id uint64, operator string) error {
	a, err := s.assets.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get asset: %w", err)
	}
	if a == nil {
		return ErrAssetNotFound
	}

	if err := s.assets.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}

	logger.LogBusinessOperation("asset_delete", 0, operator, "", "", "success",
		"asset deleted", map[string]interface{}{
			"asset_id": id,
			"number":   a.Number,
		})
	return nil
}

// ListTraces 查询资产变更留痕
func (s *AssetService) ListTraces(ctx context.Context, assetID uint64) ([]*asset.AssetChangeTrace, error) {
	a, err := s.assets.GetByID(ctx, assetID)
	if err != nil {
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}
	if a == nil {
		return nil, ErrAssetNotFound
	}
	return s.traces.ListByAssetID(ctx, assetID)
}

// ListCategories 查询全部启用分类
func (s *AssetService) ListCategories(ctx context.Context) ([]*asset.AssetCategory, error) {
	return s.categories.List(ctx)
}
