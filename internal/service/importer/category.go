/**
 * 服务:分类校验
 * @author: sun977
 * @date: 2025.09.21
 * @description: 校验导入行的三级分类链路，三级必须逐级挂接
 * @func: CategoryValidator
 */
package importer

import (
	"context"
	"fmt"

	"assetmaster/internal/model/asset"
)

// CategoryChain 校验通过的分类链
// 只分类到一级或二级时，L2/L3 为 nil
type CategoryChain struct {
	L1 *asset.AssetCategory
	L2 *asset.AssetCategory
	L3 *asset.AssetCategory
}

// CategoryValidator 分类校验器
// 校验规则：
//  1. 一级分类必填，二级和三级可选
//  2. 出现的每一级分类必须已存在于分类表且处于启用状态
//  3. 二级分类的父级必须是该行的一级分类
//  4. 三级分类的父级必须是该行的二级分类，有三级则必须有二级
//  5. 链路任何一环断裂则整条路径无效，不做部分采信
type CategoryValidator struct {
	categories CategoryStore
}

// NewCategoryValidator 创建分类校验器
func NewCategoryValidator(categories CategoryStore) *CategoryValidator {
	return &CategoryValidator{categories: categories}
}

// Validate 校验分类链路，通过时返回分类链
func (v *CategoryValidator) Validate(ctx context.Context, l1Name, l2Name, l3Name string) (*CategoryChain, error) {
	if l1Name == "" {
		return nil, fmt.Errorf("分类不完整: 一级分类不能为空")
	}
	if l3Name != "" && l2Name == "" {
		return nil, fmt.Errorf("分类不完整: 填写三级分类时二级分类不能为空")
	}

	l1, err := v.lookup(ctx, l1Name, asset.CategoryLevelOne)
	if err != nil {
		return nil, err
	}

	chain := &CategoryChain{L1: l1}
	if l2Name == "" {
		return chain, nil
	}

	l2, err := v.lookup(ctx, l2Name, asset.CategoryLevelTwo)
	if err != nil {
		return nil, err
	}
	if l2.ParentID != l1.ID {
		return nil, fmt.Errorf("分类链路断裂: 二级分类 %q 不属于一级分类 %q", l2Name, l1Name)
	}
	chain.L2 = l2
	if l3Name == "" {
		return chain, nil
	}

	l3, err := v.lookup(ctx, l3Name, asset.CategoryLevelThree)
	if err != nil {
		return nil, err
	}
	if l3.ParentID != l2.ID {
		return nil, fmt.Errorf("分类链路断裂: 三级分类 %q 不属于二级分类 %q", l3Name, l2Name)
	}
	chain.L3 = l3

	return chain, nil
}

// lookup 查询单级分类并检查启用状态
func (v *CategoryValidator) lookup(ctx context.Context, name string, level int) (*asset.AssetCategory, error) {
	category, err := v.categories.GetByNameAndLevel(ctx, name, level)
	if err != nil {
		return nil, fmt.Errorf("查询分类失败: %w", err)
	}
	if category == nil {
		return nil, fmt.Errorf("分类不存在: %d级分类 %q", level, name)
	}
	if !category.Enabled {
		return nil, fmt.Errorf("分类已停用: %d级分类 %q", level, name)
	}
	return category, nil
}
