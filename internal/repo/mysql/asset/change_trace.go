package asset

import (
	"context"
	"errors"

	"assetmaster/internal/model/asset"
	"assetmaster/internal/pkg/logger"

	"gorm.io/gorm"
)

// ChangeTraceRepository 资产变更留痕仓库
type ChangeTraceRepository struct {
	db *gorm.DB
}

// NewChangeTraceRepository 创建 ChangeTraceRepository 实例
func NewChangeTraceRepository(db *gorm.DB) *ChangeTraceRepository {
	return &ChangeTraceRepository{db: db}
}

// Create 创建留痕记录
func (r *ChangeTraceRepository) Create(ctx context.Context, trace *asset.AssetChangeTrace) error {
	if trace == nil {
		return errors.New("trace is nil")
	}
	err := r.db.WithContext(ctx).Create(trace).Error
	if err != nil {
		logger.LogError(err, "", 0, "", "create_change_trace", "REPO", map[string]interface{}{
			"operation":   "create_change_trace",
			"asset_id":    trace.AssetID,
			"change_type": trace.ChangeType,
		})
		return err
	}
	return nil
}

// ListByAssetID 获取指定资产的留痕记录，按操作时间倒序
func (r *ChangeTraceRepository) ListByAssetID(ctx context.Context, assetID uint64) ([]*asset.AssetChangeTrace, error) {
	var traces []*asset.AssetChangeTrace
	err := r.db.WithContext(ctx).
		Where("asset_id = ?", assetID).
		Order("operated_at desc, id desc").
		Find(&traces).Error
	if err != nil {
		logger.LogError(err, "", 0, "", "list_traces_by_asset", "REPO", map[string]interface{}{
			"operation": "list_traces_by_asset",
			"asset_id":  assetID,
		})
		return nil, err
	}
	return traces, nil
}

// ListByBatchID 获取指定导入批次产生的留痕记录
func (r *ChangeTraceRepository) ListByBatchID(ctx context.Context, batchID string) ([]*asset.AssetChangeTrace, error) {
	var traces []*asset.AssetChangeTrace
	err := r.db.WithContext(ctx).
		Where("batch_id = ?", batchID).
		Order("id asc").
		Find(&traces).Error
	if err != nil {
		logger.LogError(err, "", 0, "", "list_traces_by_batch", "REPO", map[string]interface{}{
			"operation": "list_traces_by_batch",
			"batch_id":  batchID,
		})
		return nil, err
	}
	return traces, nil
}
