/**
 * 模型:导入批次汇总模型
 * @author: sun977
 * @date: 2025.09.21
 * @description: 导入批次结果汇总
 * @func: BatchSummary 结构体
 */
package importer

import "time"

// BatchSummary 导入批次汇总
// 任务完成后根据任务记录和入库数据聚合生成
type BatchSummary struct {
	BatchID      string     `json:"batch_id"`               // 批次号
	TaskID       string     `json:"task_id"`                // 任务ID
	State        TaskState  `json:"state"`                  // 最终状态
	FileName     string     `json:"file_name"`              // 上传文件名
	Operator     string     `json:"operator"`               // 提交人
	TotalRows    int        `json:"total_rows"`             // 数据行总数
	SuccessRows  int        `json:"success_rows"`           // 成功行数（含重复跳过的行）
	FailedRows   []int      `json:"failed_rows"`            // 失败行的表格行号
	PersistedCnt int64      `json:"persisted_count"`        // 数据库中该批次实际入库数
	Errors       []RowError `json:"errors,omitempty"`       // 行级错误列表
	FatalError   string     `json:"fatal_error,omitempty"`  // 文件级错误描述
	CreatedAt    time.Time  `json:"created_at"`             // 任务创建时间
	FinishedAt   *time.Time `json:"finished_at,omitempty"`  // 任务结束时间
}
