package importer

import (
	"context"
	"testing"

	"assetmaster/internal/model/asset"
	"assetmaster/internal/model/basemodel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCategoryStore 内存分类表，key 为 name+level
type fakeCategoryStore struct {
	categories map[string]*asset.AssetCategory
}

func newFakeCategoryStore() *fakeCategoryStore {
	return &fakeCategoryStore{categories: make(map[string]*asset.AssetCategory)}
}

func (s *fakeCategoryStore) add(id uint64, name string, level int, parentID uint64, enabled bool) {
	s.categories[categoryKey(name, level)] = &asset.AssetCategory{
		BaseModel: basemodel.BaseModel{ID: id},
		Name:      name,
		Level:     level,
		ParentID:  parentID,
		Enabled:   enabled,
	}
}

func (s *fakeCategoryStore) GetByNameAndLevel(ctx context.Context, name string, level int) (*asset.AssetCategory, error) {
	return s.categories[categoryKey(name, level)], nil
}

func categoryKey(name string, level int) string {
	return name + "#" + string(rune('0'+level))
}

// seedCategoryTree 服务器 -> 机架服务器 -> 2U机架服务器
func seedCategoryTree() *fakeCategoryStore {
	store := newFakeCategoryStore()
	store.add(1, "服务器", 1, 0, true)
	store.add(2, "机架服务器", 2, 1, true)
	store.add(3, "2U机架服务器", 3, 2, true)
	return store
}

func TestCategoryValidator_ValidChain(t *testing.T) {
	v := NewCategoryValidator(seedCategoryTree())

	chain, err := v.Validate(context.Background(), "服务器", "机架服务器", "2U机架服务器")
	require.NoError(t, err)
	require.NotNil(t, chain)

	assert.Equal(t, uint64(1), chain.L1.ID)
	assert.Equal(t, uint64(2), chain.L2.ID)
	assert.Equal(t, uint64(3), chain.L3.ID)
}

func TestCategoryValidator_LevelOneOnly(t *testing.T) {
	v := NewCategoryValidator(seedCategoryTree())

	chain, err := v.Validate(context.Background(), "服务器", "", "")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), chain.L1.ID)
	assert.Nil(t, chain.L2)
	assert.Nil(t, chain.L3)
}

func TestCategoryValidator_LevelTwoOnly(t *testing.T) {
	v := NewCategoryValidator(seedCategoryTree())

	chain, err := v.Validate(context.Background(), "服务器", "机架服务器", "")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), chain.L2.ID)
	assert.Nil(t, chain.L3)
}

func TestCategoryValidator_MissingLevelOne(t *testing.T) {
	v := NewCategoryValidator(seedCategoryTree())

	_, err := v.Validate(context.Background(), "", "机架服务器", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "分类不完整")
}

func TestCategoryValidator_LevelThreeWithoutLevelTwo(t *testing.T) {
	v := NewCategoryValidator(seedCategoryTree())

	_, err := v.Validate(context.Background(), "服务器", "", "2U机架服务器")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "分类不完整")
}

func TestCategoryValidator_UnknownCategory(t *testing.T) {
	v := NewCategoryValidator(seedCategoryTree())

	_, err := v.Validate(context.Background(), "网络设备", "机架服务器", "2U机架服务器")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "分类不存在")
}

func TestCategoryValidator_BrokenChain(t *testing.T) {
	store := seedCategoryTree()
	// 存储属于另一棵树的二级分类
	store.add(10, "存储设备", 1, 0, true)
	store.add(11, "磁盘阵列", 2, 10, true)

	v := NewCategoryValidator(store)

	// 二级分类挂在存储设备下，不属于服务器
	_, err := v.Validate(context.Background(), "服务器", "磁盘阵列", "2U机架服务器")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "分类链路断裂")
}

func TestCategoryValidator_BrokenChainLevelThree(t *testing.T) {
	store := seedCategoryTree()
	store.add(20, "刀片服务器", 2, 1, true)

	v := NewCategoryValidator(store)

	// 三级分类的父级是机架服务器而不是刀片服务器
	_, err := v.Validate(context.Background(), "服务器", "刀片服务器", "2U机架服务器")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "分类链路断裂")
}

func TestCategoryValidator_DisabledCategory(t *testing.T) {
	store := seedCategoryTree()
	store.add(3, "2U机架服务器", 3, 2, false) // overwrite as disabled

	v := NewCategoryValidator(store)

	_, err := v.Validate(context.Background(), "服务器", "机架服务器", "2U机架服务器")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "分类已停用")
}
