/**
 * 服务:导入表格解析
 * @author: sun977
 * @date: 2025.09.21
 * @description: 解析上传的Excel资产表格，表头按列名定位，输出类型化行数据
 * @func: SheetReader
 */
package importer

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"assetmaster/internal/model/importer"

	"github.com/xuri/excelize/v2"
)

// ErrInvalidSheet 表格结构错误
// 结构错误属于文件级错误，整个任务直接置为失败，一行都不会入库
var ErrInvalidSheet = errors.New("invalid sheet structure")

// 表头列名常量，与导入模板保持一致
const (
	colNumber       = "资产编号"
	colName         = "资产名称"
	colSerialNumber = "序列号"
	colCategoryL1   = "一级分类"
	colCategoryL2   = "二级分类"
	colCategoryL3   = "三级分类"
	colStatus       = "使用状态"
	colOwner        = "责任人"
	colCustodian    = "保管人"
	colSite         = "机房/站点"
	colRoom         = "房间"
	colCabinet      = "机柜"
	colSlot         = "U位"
	colEnvironment  = "环境"
	colContract     = "合同编号"
	colProvider     = "维保供应商"
	colWarrantyFrom = "维保开始日期"
	colWarrantyTo   = "维保结束日期"
	colLifeYears    = "使用年限"
	colAcceptedAt   = "验收日期"

	colNewSite        = "变更后机房/站点"
	colNewRoom        = "变更后房间"
	colNewCabinet     = "变更后机柜"
	colNewSlot        = "变更后U位"
	colNewEnvironment = "变更后环境"
	colNewStatus      = "变更后使用状态"
	colNewCustodian   = "变更后保管人"
)

// requiredColumns 缺少任一必需列即判定结构错误
var requiredColumns = []string{
	colNumber, colName, colCategoryL1, colCategoryL2, colCategoryL3,
}

// SheetReader 表格解析器
// sheetName 为空时取工作簿的第一个工作表
type SheetReader struct {
	sheetName string
}

// NewSheetReader 创建表格解析器
func NewSheetReader(sheetName string) *SheetReader {
	return &SheetReader{sheetName: sheetName}
}

// Read 解析表格，返回类型化行数据
// 第一行是表头，列顺序不做要求；整行为空的数据行跳过
func (sr *SheetReader) Read(r io.Reader) ([]*importer.AssetRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open workbook: %v", ErrInvalidSheet, err)
	}
	defer f.Close()

	sheet := sr.sheetName
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: workbook has no sheets", ErrInvalidSheet)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read sheet %q: %v", ErrInvalidSheet, sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet %q is empty", ErrInvalidSheet, sheet)
	}

	// 按表头文本定位列
	colIndex := make(map[string]int)
	for i, cell := range rows[0] {
		header := strings.TrimSpace(cell)
		if header != "" {
			colIndex[header] = i
		}
	}

	for _, required := range requiredColumns {
		if _, ok := colIndex[required]; !ok {
			return nil, fmt.Errorf("%w: missing required column %q", ErrInvalidSheet, required)
		}
	}

	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: sheet %q has no data rows", ErrInvalidSheet, sheet)
	}

	assetRows := make([]*importer.AssetRow, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if isEmptyRow(row) {
			continue
		}

		cell := func(name string) string {
			idx, ok := colIndex[name]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		assetRows = append(assetRows, &importer.AssetRow{
			RowNumber: i + 2, // 表头占第1行

			Number:       cell(colNumber),
			Name:         cell(colName),
			SerialNumber: cell(colSerialNumber),

			CategoryL1: cell(colCategoryL1),
			CategoryL2: cell(colCategoryL2),
			CategoryL3: cell(colCategoryL3),

			StatusLabel: cell(colStatus),
			Owner:       cell(colOwner),
			Custodian:   cell(colCustodian),

			Site:        cell(colSite),
			Room:        cell(colRoom),
			Cabinet:     cell(colCabinet),
			Slot:        cell(colSlot),
			Environment: cell(colEnvironment),

			ContractNumber:   cell(colContract),
			WarrantyProvider: cell(colProvider),
			WarrantyStart:    cell(colWarrantyFrom),
			WarrantyEnd:      cell(colWarrantyTo),
			LifeYears:        cell(colLifeYears),
			AcceptedAt:       cell(colAcceptedAt),

			NewSite:        cell(colNewSite),
			NewRoom:        cell(colNewRoom),
			NewCabinet:     cell(colNewCabinet),
			NewSlot:        cell(colNewSlot),
			NewEnvironment: cell(colNewEnvironment),
			NewStatusLabel: cell(colNewStatus),
			NewCustodian:   cell(colNewCustodian),
		})
	}

	if len(assetRows) == 0 {
		return nil, fmt.Errorf("%w: sheet %q has no data rows", ErrInvalidSheet, sheet)
	}

	return assetRows, nil
}

// isEmptyRow 判断整行是否为空
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
