/**
 * 服务:导入行处理管线
 * @author: sun977
 * @date: 2025.09.21
 * @description: 单行资产数据的处理管线，去重->校验->构建->入库->留痕
 * @func: RowPipeline
 */
package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"assetmaster/internal/model/asset"
	"assetmaster/internal/model/importer"
	"assetmaster/internal/pkg/utils"
	mysqlasset "assetmaster/internal/repo/mysql/asset"
)

// 行处理默认值
const (
	defaultLifeYears    = 5 // 使用年限缺省值
	defaultWarrantyYear = 1 // 维保期限缺省一年
)

// dateLayouts 表格中可能出现的日期格式
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006.01.02",
	"2006-1-2",
	"2006/1/2",
}

// RowPipeline 行处理管线
// 每行数据独立处理，失败只影响本行，不影响批次内其他行
type RowPipeline struct {
	assets    AssetStore
	validator *CategoryValidator
}

// NewRowPipeline 创建行处理管线
func NewRowPipeline(assets AssetStore, validator *CategoryValidator) *RowPipeline {
	return &RowPipeline{
		assets:    assets,
		validator: validator,
	}
}

// ProcessRow 处理一行导入数据
// 流程: 必填校验 -> 指纹去重 -> 分类校验 -> 构建实体 -> 事务入库(含留痕)
// 指纹重复返回 skipped=true 且不报错：同一文件重复提交应当幂等，
// 重复行计入成功行，不产生任何新记录
func (p *RowPipeline) ProcessRow(ctx context.Context, row *importer.AssetRow, batchID, operator string) (skipped bool, err error) {
	if row == nil {
		return false, fmt.Errorf("行数据为空")
	}

	// 必填校验
	if row.Number == "" {
		return false, fmt.Errorf("资产编号不能为空")
	}
	if row.Name == "" {
		return false, fmt.Errorf("资产名称不能为空")
	}

	// 指纹去重，指纹相同视为同一台设备重复导入
	fingerprint := Fingerprint(row.Number, row.Name, row.SerialNumber)
	exists, err := p.assets.ExistsByFingerprint(ctx, fingerprint)
	if err != nil {
		return false, fmt.Errorf("指纹查重失败: %w", err)
	}
	if exists {
		return true, nil
	}

	// 资产编号独立查重，编号相同但指纹不同说明编号被复用
	exists, err = p.assets.ExistsByNumber(ctx, row.Number)
	if err != nil {
		return false, fmt.Errorf("编号查重失败: %w", err)
	}
	if exists {
		return false, fmt.Errorf("重复资产: 资产编号 %q 已存在", row.Number)
	}

	// 分类校验
	chain, err := p.validator.Validate(ctx, row.CategoryL1, row.CategoryL2, row.CategoryL3)
	if err != nil {
		return false, err
	}

	bundle, err := p.buildBundle(row, chain, fingerprint, batchID, operator)
	if err != nil {
		return false, err
	}

	if err := p.assets.CreateBundle(ctx, bundle); err != nil {
		return false, fmt.Errorf("入库失败: %w", err)
	}
	return false, nil
}

// buildBundle 构建一行数据对应的入库单元
func (p *RowPipeline) buildBundle(row *importer.AssetRow, chain *CategoryChain, fingerprint, batchID, operator string) (*mysqlasset.AssetBundle, error) {
	now := time.Now()

	status, _ := asset.StatusFromLabel(row.StatusLabel)

	acceptedAt, err := parseOptionalDate(row.AcceptedAt)
	if err != nil {
		return nil, fmt.Errorf("验收日期格式错误: %q", row.AcceptedAt)
	}

	a := &asset.Asset{
		AssetUUID:     utils.GenerateAssetUUID(),
		Number:        row.Number,
		Name:          row.Name,
		SerialNumber:  row.SerialNumber,
		Status:        status,
		CategoryL1ID:  chain.L1.ID,
		Owner:         row.Owner,
		Custodian:     row.Custodian,
		Fingerprint:   fingerprint,
		ImportBatchID: batchID,
		RowNumber:     row.RowNumber,
		AcceptedAt:    acceptedAt,
		Version:       1,
	}
	// 只分类到一级或二级时，下级分类ID保持为0
	if chain.L2 != nil {
		a.CategoryL2ID = chain.L2.ID
	}
	if chain.L3 != nil {
		a.CategoryL3ID = chain.L3.ID
	}

	warranty, err := buildWarranty(row, now)
	if err != nil {
		return nil, err
	}

	locations := buildLocations(row, now)

	traces := []*asset.AssetChangeTrace{
		newTrace(batchID, asset.ChangeTypeInitial, operator, now, nil, map[string]interface{}{
			"number": a.Number,
			"name":   a.Name,
			"status": string(a.Status),
			"row":    row.RowNumber,
		}),
	}

	// 空间变更留痕
	if row.HasSpaceChange() && len(locations) == 2 {
		traces = append(traces, newTrace(batchID, asset.ChangeTypeSpace, operator, now,
			locationSnapshot(locations[0]), locationSnapshot(locations[1])))
	}

	// 状态变更留痕，与空间变更一致只做登记，资产保持主状态列的值
	if row.NewStatusLabel != "" {
		newStatus, _ := asset.StatusFromLabel(row.NewStatusLabel)
		if newStatus != status {
			traces = append(traces, newTrace(batchID, asset.ChangeTypeStatus, operator, now,
				map[string]interface{}{"status": string(status)},
				map[string]interface{}{"status": string(newStatus)}))
		}
	}

	return &mysqlasset.AssetBundle{
		Asset:     a,
		Locations: locations,
		Warranty:  warranty,
		Traces:    traces,
	}, nil
}

// buildWarranty 构建维保记录
// 没有合同编号的行不产生维保记录
// 开始日期缺省为当天，结束日期缺省为开始日期加一年
func buildWarranty(row *importer.AssetRow, now time.Time) (*asset.AssetWarranty, error) {
	if row.ContractNumber == "" {
		return nil, nil
	}

	start, err := parseOptionalDate(row.WarrantyStart)
	if err != nil {
		return nil, fmt.Errorf("维保开始日期格式错误: %q", row.WarrantyStart)
	}
	end, err := parseOptionalDate(row.WarrantyEnd)
	if err != nil {
		return nil, fmt.Errorf("维保结束日期格式错误: %q", row.WarrantyEnd)
	}

	startDate := now
	if start != nil {
		startDate = *start
	}
	endDate := startDate.AddDate(defaultWarrantyYear, 0, 0)
	if end != nil {
		endDate = *end
	}
	if endDate.Before(startDate) {
		return nil, fmt.Errorf("维保结束日期早于开始日期")
	}

	lifeYears := defaultLifeYears
	if row.LifeYears != "" {
		n, err := strconv.Atoi(row.LifeYears)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("使用年限格式错误: %q", row.LifeYears)
		}
		lifeYears = n
	}

	return &asset.AssetWarranty{
		ContractNumber: row.ContractNumber,
		Provider:       row.WarrantyProvider,
		StartDate:      startDate,
		EndDate:        endDate,
		LifeYears:      lifeYears,
		Active:         true,
	}, nil
}

// buildLocations 构建空间位置记录
// 主位置列产出当前记录；携带变更后列时额外产出一条非当前的
// "变更后"记录，表示已登记待生效的搬迁，保证每个资产至多一条当前位置
func buildLocations(row *importer.AssetRow, now time.Time) []*asset.AssetLocation {
	hasOriginal := row.Site != "" || row.Room != "" || row.Cabinet != "" ||
		row.Slot != "" || row.Environment != ""
	if !hasOriginal && !row.HasSpaceChange() {
		return nil
	}

	original := &asset.AssetLocation{
		Site:        row.Site,
		Room:        row.Room,
		Cabinet:     row.Cabinet,
		Slot:        row.Slot,
		Environment: row.Environment,
		Custodian:   row.Custodian,
		ValidFrom:   now,
		IsCurrent:   true,
	}

	if !row.HasSpaceChange() {
		return []*asset.AssetLocation{original}
	}

	// 变更后字段为空时沿用原值
	changed := &asset.AssetLocation{
		Site:        fallback(row.NewSite, row.Site),
		Room:        fallback(row.NewRoom, row.Room),
		Cabinet:     fallback(row.NewCabinet, row.Cabinet),
		Slot:        fallback(row.NewSlot, row.Slot),
		Environment: fallback(row.NewEnvironment, row.Environment),
		Custodian:   fallback(row.NewCustodian, row.Custodian),
		ValidFrom:   now,
		IsCurrent:   false,
	}

	if !hasOriginal {
		// 只有变更后列时按唯一位置入档
		changed.IsCurrent = true
		return []*asset.AssetLocation{changed}
	}

	return []*asset.AssetLocation{original, changed}
}

// newTrace 构建留痕记录，快照序列化失败时存空对象
func newTrace(batchID string, changeType asset.ChangeType, operator string, at time.Time, before, after map[string]interface{}) *asset.AssetChangeTrace {
	return &asset.AssetChangeTrace{
		BatchID:    batchID,
		ChangeType: changeType,
		Before:     marshalSnapshot(before),
		After:      marshalSnapshot(after),
		Operator:   operator,
		OperatedAt: at,
	}
}

// locationSnapshot 位置快照
func locationSnapshot(loc *asset.AssetLocation) map[string]interface{} {
	return map[string]interface{}{
		"site":        loc.Site,
		"room":        loc.Room,
		"cabinet":     loc.Cabinet,
		"slot":        loc.Slot,
		"environment": loc.Environment,
		"custodian":   loc.Custodian,
	}
}

// marshalSnapshot 快照序列化
func marshalSnapshot(snapshot map[string]interface{}) string {
	if snapshot == nil {
		return "{}"
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		return "{}"
	}
	return string(data)
}

// parseOptionalDate 解析可选日期，空串返回 nil
func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("unrecognized date: %q", s)
}

// fallback 返回首个非空字符串
func fallback(value, def string) string {
	if value != "" {
		return value
	}
	return def
}
