/**
 * 模型:导入任务模型
 * @author: sun977
 * @date: 2025.09.21
 * @description: 资产批量导入任务数据模型，任务注册表中流转的实体
 * @func: ImportTask 结构体及任务状态枚举
 */
package importer

import (
	"time"
)

// TaskState 导入任务状态
type TaskState string

const (
	// TaskStatePending 已受理未开始，当前实现提交即开始处理，保留该状态供排队场景使用
	TaskStatePending TaskState = "pending"
	// TaskStateProcessing 处理中
	TaskStateProcessing TaskState = "processing"
	// TaskStateCompleted 处理完成（允许包含失败行）
	TaskStateCompleted TaskState = "completed"
	// TaskStateFailed 整体失败（文件级错误，一行都没有入库）
	TaskStateFailed TaskState = "failed"
)

// IsTerminal 判断任务状态是否为终态
func (s TaskState) IsTerminal() bool {
	return s == TaskStateCompleted || s == TaskStateFailed
}

// RowError 单行处理错误
type RowError struct {
	Row     int    `json:"row"`     // 表格行号（含表头，从1开始）
	Message string `json:"message"` // 错误描述
}

// ImportTask 导入任务
// 提交文件后立即返回 TaskID，客户端凭 TaskID 轮询本结构
type ImportTask struct {
	TaskID        string     `json:"task_id"`                // 任务ID，轮询凭证
	BatchID       string     `json:"batch_id"`               // 导入批次号，写入资产记录
	State         TaskState  `json:"state"`                  // 任务状态
	FileName      string     `json:"file_name"`              // 上传文件名
	Operator      string     `json:"operator"`               // 提交人
	TotalRows     int        `json:"total_rows"`             // 数据行总数（不含表头）
	ProcessedRows int        `json:"processed_rows"`         // 已处理行数
	SuccessRows   int        `json:"success_rows"`           // 成功行数（含重复跳过的行）
	FailedRows    []int      `json:"failed_rows"`            // 失败行的表格行号，按处理顺序排列
	Errors        []RowError `json:"errors,omitempty"`       // 行级错误列表，与 FailedRows 一一对应
	FatalError    string     `json:"fatal_error,omitempty"`  // 文件级错误描述
	CreatedAt     time.Time  `json:"created_at"`             // 任务创建时间
	FinishedAt    *time.Time `json:"finished_at,omitempty"`  // 任务结束时间
}

// Progress 返回处理进度，取值范围 [0,1]
// 终态固定返回1，处理过程中单调不减
func (t *ImportTask) Progress() float64 {
	if t.State.IsTerminal() {
		return 1
	}
	if t.TotalRows <= 0 {
		return 0
	}
	p := float64(t.ProcessedRows) / float64(t.TotalRows)
	if p > 1 {
		p = 1
	}
	return p
}

// Clone 深拷贝任务
// 注册表对外只暴露副本，避免调用方与工作协程并发读写同一实例
func (t *ImportTask) Clone() *ImportTask {
	if t == nil {
		return nil
	}
	cp := *t
	if t.FailedRows != nil {
		cp.FailedRows = make([]int, len(t.FailedRows))
		copy(cp.FailedRows, t.FailedRows)
	}
	if t.Errors != nil {
		cp.Errors = make([]RowError, len(t.Errors))
		copy(cp.Errors, t.Errors)
	}
	if t.FinishedAt != nil {
		ft := *t.FinishedAt
		cp.FinishedAt = &ft
	}
	return &cp
}
