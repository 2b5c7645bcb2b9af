package importer

import (
	"context"
	"sync"
	"testing"

	"assetmaster/internal/model/asset"
	"assetmaster/internal/model/importer"
	mysqlasset "assetmaster/internal/repo/mysql/asset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAssetStore 内存资产存储，按指纹和编号查重
type fakeAssetStore struct {
	mu      sync.Mutex
	bundles []*mysqlasset.AssetBundle
}

func (s *fakeAssetStore) CreateBundle(ctx context.Context, bundle *mysqlasset.AssetBundle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bundles = append(s.bundles, bundle)
	return nil
}

func (s *fakeAssetStore) ExistsByFingerprint(ctx context.Context, fingerprint string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.bundles {
		if b.Asset.Fingerprint == fingerprint {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeAssetStore) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.bundles {
		if b.Asset.Number == number {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeAssetStore) CountByBatchID(ctx context.Context, batchID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, b := range s.bundles {
		if b.Asset.ImportBatchID == batchID {
			count++
		}
	}
	return count, nil
}

func newTestPipeline() (*RowPipeline, *fakeAssetStore) {
	store := &fakeAssetStore{}
	validator := NewCategoryValidator(seedCategoryTree())
	return NewRowPipeline(store, validator), store
}

func validRow() *importer.AssetRow {
	return &importer.AssetRow{
		RowNumber:    2,
		Number:       "IT-001",
		Name:         "Dell R740",
		SerialNumber: "SN12345",
		CategoryL1:   "服务器",
		CategoryL2:   "机架服务器",
		CategoryL3:   "2U机架服务器",
		StatusLabel:  "在用",
		Owner:        "张三",
		Custodian:    "李四",
		Site:         "华东一区",
		Room:         "201",
		Cabinet:      "A-12",
		Slot:         "18",
		Environment:  "生产",
	}
}

func TestProcessRow_Success(t *testing.T) {
	p, store := newTestPipeline()

	skipped, err := p.ProcessRow(context.Background(), validRow(), "IMP-20250921-abc", "admin")
	require.NoError(t, err)
	assert.False(t, skipped)
	require.Len(t, store.bundles, 1)

	bundle := store.bundles[0]
	a := bundle.Asset
	assert.Equal(t, "IT-001", a.Number)
	assert.Equal(t, asset.StatusInUse, a.Status)
	assert.Equal(t, uint64(1), a.CategoryL1ID)
	assert.Equal(t, uint64(3), a.CategoryL3ID)
	assert.Equal(t, "IMP-20250921-abc", a.ImportBatchID)
	assert.NotEmpty(t, a.AssetUUID)
	assert.Len(t, a.Fingerprint, 64)
	assert.Equal(t, 1, a.Version)

	// 单一当前位置
	require.Len(t, bundle.Locations, 1)
	loc := bundle.Locations[0]
	assert.True(t, loc.IsCurrent)
	assert.Equal(t, "华东一区", loc.Site)
	assert.Nil(t, loc.ValidTo)

	// 没有合同编号不产生维保记录
	assert.Nil(t, bundle.Warranty)

	// 首次录入留痕
	require.Len(t, bundle.Traces, 1)
	assert.Equal(t, asset.ChangeTypeInitial, bundle.Traces[0].ChangeType)
	assert.Equal(t, "admin", bundle.Traces[0].Operator)
}

func TestProcessRow_MissingRequiredFields(t *testing.T) {
	p, store := newTestPipeline()

	row := validRow()
	row.Number = ""
	_, err := p.ProcessRow(context.Background(), row, "B1", "admin")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "资产编号")

	row = validRow()
	row.Name = ""
	_, err = p.ProcessRow(context.Background(), row, "B1", "admin")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "资产名称")

	assert.Empty(t, store.bundles)
}

func TestProcessRow_DuplicateFingerprintSkips(t *testing.T) {
	p, store := newTestPipeline()

	skipped, err := p.ProcessRow(context.Background(), validRow(), "B1", "admin")
	require.NoError(t, err)
	assert.False(t, skipped)

	// 同一行重复导入: 跳过且不算失败，不产生新记录
	skipped, err = p.ProcessRow(context.Background(), validRow(), "B1", "admin")
	require.NoError(t, err)
	assert.True(t, skipped)
	assert.Len(t, store.bundles, 1)
}

func TestProcessRow_DuplicateNumberDifferentFingerprint(t *testing.T) {
	p, _ := newTestPipeline()

	_, err := p.ProcessRow(context.Background(), validRow(), "B1", "admin")
	require.NoError(t, err)

	// 同编号不同序列号: 指纹不同，但编号唯一性兜底
	row := validRow()
	row.SerialNumber = "SN-OTHER"
	skipped, err := p.ProcessRow(context.Background(), row, "B1", "admin")
	require.Error(t, err)
	assert.False(t, skipped)
	assert.Contains(t, err.Error(), "资产编号")
}

func TestProcessRow_UnknownStatusDefaultsToInventory(t *testing.T) {
	p, store := newTestPipeline()

	row := validRow()
	row.StatusLabel = "闲置中"
	_, err := p.ProcessRow(context.Background(), row, "B1", "admin")
	require.NoError(t, err)

	assert.Equal(t, asset.StatusInventory, store.bundles[0].Asset.Status)
}

func TestProcessRow_LevelOneOnlyCategory(t *testing.T) {
	p, store := newTestPipeline()

	row := validRow()
	row.CategoryL2 = ""
	row.CategoryL3 = ""
	_, err := p.ProcessRow(context.Background(), row, "B1", "admin")
	require.NoError(t, err)

	a := store.bundles[0].Asset
	assert.Equal(t, uint64(1), a.CategoryL1ID)
	assert.Zero(t, a.CategoryL2ID)
	assert.Zero(t, a.CategoryL3ID)
}

func TestProcessRow_SpaceChangeProducesDelta(t *testing.T) {
	p, store := newTestPipeline()

	row := validRow()
	row.NewSite = "华北二区"
	row.NewCabinet = "B-03"
	_, err := p.ProcessRow(context.Background(), row, "B1", "admin")
	require.NoError(t, err)

	bundle := store.bundles[0]
	require.Len(t, bundle.Locations, 2)

	current := bundle.Locations[0]
	changed := bundle.Locations[1]

	// 主位置列保持当前有效
	assert.True(t, current.IsCurrent)
	assert.Nil(t, current.ValidTo)
	assert.Equal(t, "华东一区", current.Site)

	// 变更后位置按非当前登记
	assert.False(t, changed.IsCurrent)
	assert.Equal(t, "华北二区", changed.Site)
	assert.Equal(t, "B-03", changed.Cabinet)
	// 未变更字段沿用原值
	assert.Equal(t, "201", changed.Room)

	// initial + space 两条留痕，before为主位置，after为变更后位置
	require.Len(t, bundle.Traces, 2)
	assert.Equal(t, asset.ChangeTypeSpace, bundle.Traces[1].ChangeType)
	assert.Contains(t, bundle.Traces[1].Before, "华东一区")
	assert.Contains(t, bundle.Traces[1].After, "华北二区")
}

func TestProcessRow_StatusChangeTrace(t *testing.T) {
	p, store := newTestPipeline()

	row := validRow()
	row.NewStatusLabel = "维修"
	_, err := p.ProcessRow(context.Background(), row, "B1", "admin")
	require.NoError(t, err)

	bundle := store.bundles[0]
	// 资产保持主状态列的值，变更只做留痕
	assert.Equal(t, asset.StatusInUse, bundle.Asset.Status)

	require.Len(t, bundle.Traces, 2)
	trace := bundle.Traces[1]
	assert.Equal(t, asset.ChangeTypeStatus, trace.ChangeType)
	assert.Contains(t, trace.Before, "in_use")
	assert.Contains(t, trace.After, "maintenance")
}

func TestProcessRow_WarrantyFromSheet(t *testing.T) {
	p, store := newTestPipeline()

	row := validRow()
	row.ContractNumber = "HT-2025-001"
	row.WarrantyProvider = "Dell"
	row.WarrantyStart = "2025-01-01"
	row.WarrantyEnd = "2028-01-01"
	row.LifeYears = "8"
	_, err := p.ProcessRow(context.Background(), row, "B1", "admin")
	require.NoError(t, err)

	w := store.bundles[0].Warranty
	require.NotNil(t, w)
	assert.Equal(t, "HT-2025-001", w.ContractNumber)
	assert.Equal(t, 2028, w.EndDate.Year())
	assert.Equal(t, 8, w.LifeYears)
}

func TestProcessRow_WarrantyDefaults(t *testing.T) {
	p, store := newTestPipeline()

	// 只有合同编号: 维保期缺省当天起一年，使用年限缺省5年
	row := validRow()
	row.ContractNumber = "HT-2025-002"
	_, err := p.ProcessRow(context.Background(), row, "B1", "admin")
	require.NoError(t, err)

	w := store.bundles[0].Warranty
	require.NotNil(t, w)
	assert.Equal(t, 5, w.LifeYears)
	assert.Equal(t, w.StartDate.AddDate(1, 0, 0), w.EndDate)
}

func TestProcessRow_BadDates(t *testing.T) {
	p, _ := newTestPipeline()

	row := validRow()
	row.ContractNumber = "HT-2025-003"
	row.WarrantyStart = "not-a-date"
	_, err := p.ProcessRow(context.Background(), row, "B1", "admin")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "维保开始日期")

	row = validRow()
	row.ContractNumber = "HT-2025-003"
	row.WarrantyStart = "2025-01-01"
	row.WarrantyEnd = "2024-01-01"
	_, err = p.ProcessRow(context.Background(), row, "B1", "admin")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "维保结束日期早于开始日期")

	row = validRow()
	row.ContractNumber = "HT-2025-003"
	row.LifeYears = "abc"
	_, err = p.ProcessRow(context.Background(), row, "B1", "admin")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "使用年限")
}

func TestProcessRow_InvalidCategory(t *testing.T) {
	p, store := newTestPipeline()

	row := validRow()
	row.CategoryL3 = "4U机架服务器"
	_, err := p.ProcessRow(context.Background(), row, "B1", "admin")
	require.Error(t, err)
	assert.Empty(t, store.bundles)
}
