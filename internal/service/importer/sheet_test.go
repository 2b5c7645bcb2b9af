package importer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// buildWorkbook 在内存中构建测试工作簿
func buildWorkbook(t *testing.T, headers []string, rows [][]string) *bytes.Reader {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue(sheet, cell, h))
	}
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, v))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return bytes.NewReader(buf.Bytes())
}

var testHeaders = []string{
	"资产编号", "资产名称", "序列号", "一级分类", "二级分类", "三级分类",
	"使用状态", "责任人", "保管人", "机房/站点", "变更后机房/站点",
}

func TestSheetReader_Read(t *testing.T) {
	r := buildWorkbook(t, testHeaders, [][]string{
		{"IT-001", "Dell R740", "SN1", "服务器", "机架服务器", "2U机架服务器", "在用", "张三", "李四", "华东一区", ""},
		{"IT-002", "H3C S5130", "SN2", "网络设备", "交换机", "接入交换机", "库存", "", "", "", "华北二区"},
	})

	rows, err := NewSheetReader("").Read(r)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	first := rows[0]
	assert.Equal(t, 2, first.RowNumber) // 表头占第1行
	assert.Equal(t, "IT-001", first.Number)
	assert.Equal(t, "Dell R740", first.Name)
	assert.Equal(t, "服务器", first.CategoryL1)
	assert.Equal(t, "在用", first.StatusLabel)
	assert.Equal(t, "华东一区", first.Site)
	assert.False(t, first.HasSpaceChange())

	second := rows[1]
	assert.Equal(t, 3, second.RowNumber)
	assert.Equal(t, "华北二区", second.NewSite)
	assert.True(t, second.HasSpaceChange())
}

func TestSheetReader_SkipsEmptyRows(t *testing.T) {
	r := buildWorkbook(t, testHeaders, [][]string{
		{"IT-001", "Dell R740", "SN1", "服务器", "机架服务器", "2U机架服务器", "", "", "", "", ""},
		{"", "", "", "", "", "", "", "", "", "", ""},
		{"IT-003", "Dell R750", "SN3", "服务器", "机架服务器", "2U机架服务器", "", "", "", "", ""},
	})

	rows, err := NewSheetReader("").Read(r)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// 行号保持表格中的真实位置
	assert.Equal(t, 2, rows[0].RowNumber)
	assert.Equal(t, 4, rows[1].RowNumber)
}

func TestSheetReader_MissingRequiredColumn(t *testing.T) {
	headers := []string{"资产编号", "资产名称", "一级分类", "二级分类"} // 缺少三级分类
	r := buildWorkbook(t, headers, [][]string{
		{"IT-001", "Dell R740", "服务器", "机架服务器"},
	})

	_, err := NewSheetReader("").Read(r)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSheet)
	assert.Contains(t, err.Error(), "三级分类")
}

func TestSheetReader_NoDataRows(t *testing.T) {
	r := buildWorkbook(t, testHeaders, nil)

	_, err := NewSheetReader("").Read(r)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSheet)
}

func TestSheetReader_NotAWorkbook(t *testing.T) {
	_, err := NewSheetReader("").Read(bytes.NewReader([]byte("definitely not xlsx")))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSheet)
}

func TestSheetReader_HeaderOrderIndependent(t *testing.T) {
	// 列顺序打乱，按表头文本定位
	headers := []string{"资产名称", "三级分类", "资产编号", "一级分类", "二级分类"}
	r := buildWorkbook(t, headers, [][]string{
		{"Dell R740", "2U机架服务器", "IT-001", "服务器", "机架服务器"},
	})

	rows, err := NewSheetReader("").Read(r)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "IT-001", rows[0].Number)
	assert.Equal(t, "2U机架服务器", rows[0].CategoryL3)
}
