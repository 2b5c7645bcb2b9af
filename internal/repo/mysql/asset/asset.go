package asset

import (
	"context"
	"errors"

	"assetmaster/internal/model/asset"
	"assetmaster/internal/pkg/logger"

	"gorm.io/gorm"
)

// AssetRepository 资产仓库
// 负责资产主档及关联的位置、维保、留痕数据访问
type AssetRepository struct {
	db *gorm.DB
}

// NewAssetRepository 创建 AssetRepository 实例
func NewAssetRepository(db *gorm.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

// AssetBundle 一行导入数据产出的完整入库单元
// 主档、位置、维保、留痕必须同事务落库，任意一步失败全部回滚
type AssetBundle struct {
	Asset     *asset.Asset
	Locations []*asset.AssetLocation
	Warranty  *asset.AssetWarranty
	Traces    []*asset.AssetChangeTrace
}

// CreateBundle 事务性创建资产及其关联记录
func (r *AssetRepository) CreateBundle(ctx context.Context, bundle *AssetBundle) error {
	if bundle == nil || bundle.Asset == nil {
		return errors.New("bundle or asset is nil")
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(bundle.Asset).Error; err != nil {
			return err
		}

		for _, loc := range bundle.Locations {
			loc.AssetID = bundle.Asset.ID
			if err := tx.Create(loc).Error; err != nil {
				return err
			}
		}

		if bundle.Warranty != nil {
			bundle.Warranty.AssetID = bundle.Asset.ID
			if err := tx.Create(bundle.Warranty).Error; err != nil {
				return err
			}
		}

		for _, trace := range bundle.Traces {
			trace.AssetID = bundle.Asset.ID
			if err := tx.Create(trace).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		logger.LogError(err, "", 0, "", "create_asset_bundle", "REPO", map[string]interface{}{
			"operation": "create_asset_bundle",
			"number":    bundle.Asset.Number,
			"batch_id":  bundle.Asset.ImportBatchID,
		})
		return err
	}
	return nil
}

// ExistsByFingerprint 判断指纹是否已存在
func (r *AssetRepository) ExistsByFingerprint(ctx context.Context, fingerprint string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&asset.Asset{}).
		Where("fingerprint = ?", fingerprint).Count(&count).Error
	if err != nil {
		logger.LogError(err, "", 0, "", "exists_by_fingerprint", "REPO", map[string]interface{}{
			"operation": "exists_by_fingerprint",
		})
		return false, err
	}
	return count > 0, nil
}

// ExistsByNumber 判断资产编号是否已存在
func (r *AssetRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&asset.Asset{}).
		Where("number = ?", number).Count(&count).Error
	if err != nil {
		logger.LogError(err, "", 0, "", "exists_by_number", "REPO", map[string]interface{}{
			"operation": "exists_by_number",
			"number":    number,
		})
		return false, err
	}
	return count > 0, nil
}

// GetByID 根据ID获取资产，附带当前位置和维保信息
func (r *AssetRepository) GetByID(ctx context.Context, id uint64) (*asset.Asset, error) {
	var a asset.Asset
	err := r.db.WithContext(ctx).
		Preload("Locations").
		Preload("Warranty").
		First(&a, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		logger.LogError(err, "", 0, "", "get_asset_by_id", "REPO", map[string]interface{}{
			"operation": "get_asset_by_id",
			"id":        id,
		})
		return nil, err
	}
	return &a, nil
}

// GetByNumber 根据资产编号获取资产
func (r *AssetRepository) GetByNumber(ctx context.Context, number string) (*asset.Asset, error) {
	var a asset.Asset
	err := r.db.WithContext(ctx).Where("number = ?", number).First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		logger.LogError(err, "", 0, "", "get_asset_by_number", "REPO", map[string]interface{}{
			"operation": "get_asset_by_number",
			"number":    number,
		})
		return nil, err
	}
	return &a, nil
}

// List 获取资产列表 (分页 + 筛选)
func (r *AssetRepository) List(ctx context.Context, page, pageSize int, keyword, status, batchID string) ([]*asset.Asset, int64, error) {
	var assets []*asset.Asset
	var total int64

	query := r.db.WithContext(ctx).Model(&asset.Asset{})

	if keyword != "" {
		like := "%" + keyword + "%"
		query = query.Where("number LIKE ? OR name LIKE ? OR serial_number LIKE ?", like, like, like)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if batchID != "" {
		query = query.Where("import_batch_id = ?", batchID)
	}

	err := query.Count(&total).Error
	if err != nil {
		logger.LogError(err, "", 0, "", "list_assets_count", "REPO", map[string]interface{}{
			"operation": "list_assets_count",
		})
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err = query.Offset(offset).Limit(pageSize).Order("id desc").Find(&assets).Error
	if err != nil {
		logger.LogError(err, "", 0, "", "list_assets_find", "REPO", map[string]interface{}{
			"operation": "list_assets_find",
		})
		return nil, 0, err
	}

	return assets, total, nil
}

// CountByBatchID 统计指定批次实际入库的资产数
func (r *AssetRepository) CountByBatchID(ctx context.Context, batchID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&asset.Asset{}).
		Where("import_batch_id = ?", batchID).Count(&count).Error
	if err != nil {
		logger.LogError(err, "", 0, "", "count_by_batch_id", "REPO", map[string]interface{}{
			"operation": "count_by_batch_id",
			"batch_id":  batchID,
		})
		return 0, err
	}
	return count, nil
}

// Delete 删除资产及其关联记录
func (r *AssetRepository) Delete(ctx context.Context, id uint64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("asset_id = ?", id).Delete(&asset.AssetLocation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("asset_id = ?", id).Delete(&asset.AssetWarranty{}).Error; err != nil {
			return err
		}
		// 留痕记录保留，审计要求不随资产删除
		return tx.Delete(&asset.Asset{}, id).Error
	})
	if err != nil {
		logger.LogError(err, "", 0, "", "delete_asset", "REPO", map[string]interface{}{
			"operation": "delete_asset",
			"id":        id,
		})
		return err
	}
	return nil
}
