/**
 * 导入服务数据契约定义
 * @author: sun977
 * @date: 2025.09.21
 * @description: 定义导入管线对存储层的依赖接口，便于替换实现和单元测试
 */
package importer

import (
	"context"

	"assetmaster/internal/model/asset"
	"assetmaster/internal/model/importer"
	mysqlasset "assetmaster/internal/repo/mysql/asset"
)

// AssetStore 资产持久化接口
// 由 repo/mysql/asset.AssetRepository 实现
type AssetStore interface {
	CreateBundle(ctx context.Context, bundle *mysqlasset.AssetBundle) error
	ExistsByFingerprint(ctx context.Context, fingerprint string) (bool, error)
	ExistsByNumber(ctx context.Context, number string) (bool, error)
	CountByBatchID(ctx context.Context, batchID string) (int64, error)
}

// CategoryStore 分类查询接口
// 由 repo/mysql/asset.CategoryRepository 实现
type CategoryStore interface {
	GetByNameAndLevel(ctx context.Context, name string, level int) (*asset.AssetCategory, error)
}

// TaskRegistry 导入任务注册表接口
// 内存实现 repo/memory.ImportTaskStore，多实例部署用 repo/redis.ImportTaskStore
type TaskRegistry interface {
	Save(ctx context.Context, task *importer.ImportTask) error
	Get(ctx context.Context, taskID string) (*importer.ImportTask, error)
	Delete(ctx context.Context, taskID string) error
	Close() error
}
