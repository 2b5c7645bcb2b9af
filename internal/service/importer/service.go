/**
 * 服务:资产批量导入
 * @author: sun977
 * @date: 2025.09.21
 * @description: 批量导入任务的受理、异步执行和进度查询
 * @func: ImportService
 */
package importer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"assetmaster/internal/model/importer"
	"assetmaster/internal/pkg/logger"
	"assetmaster/internal/pkg/utils"

	"github.com/sirupsen/logrus"
)

// ImportService 资产批量导入服务
// 提交后立即返回任务ID，解析和入库由工作协程异步完成，
// 客户端凭任务ID轮询注册表获取进度和结果
type ImportService struct {
	registry         TaskRegistry
	reader           *SheetReader
	pipeline         *RowPipeline
	assets           AssetStore
	progressInterval int

	// 服务生命周期上下文，Close 时取消，工作协程据此中止
	ctx    context.Context
	cancel context.CancelFunc
}

// NewImportService 创建导入服务
// progressInterval 为进度落注册表的行数间隔
func NewImportService(registry TaskRegistry, reader *SheetReader, pipeline *RowPipeline, assets AssetStore, progressInterval int) *ImportService {
	if progressInterval <= 0 {
		progressInterval = 10
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &ImportService{
		registry:         registry,
		reader:           reader,
		pipeline:         pipeline,
		assets:           assets,
		progressInterval: progressInterval,
		ctx:              ctx,
		cancel:           cancel,
	}
}

// SubmitImport 受理导入任务
// 文件内容在受理时已读入内存，工作协程不依赖请求生命周期
func (s *ImportService) SubmitImport(ctx context.Context, fileName string, data []byte, operator string) (*importer.ImportTask, error) {
	if len(data) == 0 {
		return nil, errors.New("uploaded file is empty")
	}

	task := &importer.ImportTask{
		TaskID:    utils.GenerateTaskID(),
		BatchID:   utils.GenerateBatchID(),
		State:     importer.TaskStateProcessing,
		FileName:  fileName,
		Operator:  operator,
		CreatedAt: time.Now(),
	}

	if err := s.registry.Save(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to register import task: %w", err)
	}

	// 请求上下文在响应后失效，工作协程挂在服务生命周期上下文上
	go s.run(s.ctx, task.Clone(), data)

	logger.LogBusinessOperation("import_submit", 0, operator, "", "", "success",
		"import task accepted", map[string]interface{}{
			"task_id":   task.TaskID,
			"batch_id":  task.BatchID,
			"file_name": fileName,
		})

	return task.Clone(), nil
}

// run 工作协程主体，逐行处理并周期发布进度
func (s *ImportService) run(ctx context.Context, task *importer.ImportTask, data []byte) {
	rows, err := s.reader.Read(bytes.NewReader(data))
	if err != nil {
		s.markFailed(ctx, task, err)
		return
	}

	task.TotalRows = len(rows)
	s.save(ctx, task)

	for _, row := range rows {
		// 服务关闭时停止处理，任务停留在 processing 状态
		if ctx.Err() != nil {
			logger.LogSystemEvent("importer", "aborted",
				fmt.Sprintf("import task %s aborted: %v", task.TaskID, ctx.Err()), logrus.WarnLevel, nil)
			return
		}

		// 指纹重复的行按成功跳过计数，保证同一文件重复提交幂等
		if _, err := s.pipeline.ProcessRow(ctx, row, task.BatchID, task.Operator); err != nil {
			task.FailedRows = append(task.FailedRows, row.RowNumber)
			task.Errors = append(task.Errors, importer.RowError{
				Row:     row.RowNumber,
				Message: err.Error(),
			})
		} else {
			task.SuccessRows++
		}
		task.ProcessedRows++

		// 最后一行紧跟终态保存，不做间隔发布，
		// 保证非终态快照的进度永远小于1
		if task.ProcessedRows%s.progressInterval == 0 && task.ProcessedRows < task.TotalRows {
			s.save(ctx, task)
			logger.LogImportProgress(task.TaskID, task.BatchID, task.ProcessedRows, task.TotalRows, nil)
		}
	}

	now := time.Now()
	task.State = importer.TaskStateCompleted
	task.FinishedAt = &now
	s.save(ctx, task)

	logger.LogImportProgress(task.TaskID, task.BatchID, task.ProcessedRows, task.TotalRows, map[string]interface{}{
		"state":        string(task.State),
		"success_rows": task.SuccessRows,
		"failed_rows":  len(task.FailedRows),
	})
	logger.LogBusinessOperation("import_finish", 0, task.Operator, "", "", "success",
		"import task finished", map[string]interface{}{
			"task_id":      task.TaskID,
			"batch_id":     task.BatchID,
			"total_rows":   task.TotalRows,
			"success_rows": task.SuccessRows,
			"failed_rows":  len(task.FailedRows),
		})
}

// markFailed 文件级错误，整个任务置为失败
func (s *ImportService) markFailed(ctx context.Context, task *importer.ImportTask, cause error) {
	now := time.Now()
	task.State = importer.TaskStateFailed
	task.FatalError = cause.Error()
	task.FinishedAt = &now
	s.save(ctx, task)

	logger.LogBusinessError(cause, "", 0, "", "import_run", "SERVICE", map[string]interface{}{
		"task_id":  task.TaskID,
		"batch_id": task.BatchID,
	})
}

// save 保存任务进度，注册表故障只记日志不中断处理
func (s *ImportService) save(ctx context.Context, task *importer.ImportTask) {
	if err := s.registry.Save(ctx, task); err != nil {
		logger.LogBusinessError(err, "", 0, "", "import_save_progress", "SERVICE", map[string]interface{}{
			"task_id": task.TaskID,
		})
	}
}

// GetTask 查询任务进度，不存在返回 nil
func (s *ImportService) GetTask(ctx context.Context, taskID string) (*importer.ImportTask, error) {
	return s.registry.Get(ctx, taskID)
}

// Summarize 生成批次汇总
// 除任务记录外附带数据库中该批次实际入库数，便于核对
func (s *ImportService) Summarize(ctx context.Context, taskID string) (*importer.BatchSummary, error) {
	task, err := s.registry.Get(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, nil
	}

	var persisted int64
	if task.State.IsTerminal() {
		persisted, err = s.assets.CountByBatchID(ctx, task.BatchID)
		if err != nil {
			return nil, fmt.Errorf("failed to count persisted assets: %w", err)
		}
	}

	return &importer.BatchSummary{
		BatchID:      task.BatchID,
		TaskID:       task.TaskID,
		State:        task.State,
		FileName:     task.FileName,
		Operator:     task.Operator,
		TotalRows:    task.TotalRows,
		SuccessRows:  task.SuccessRows,
		FailedRows:   task.FailedRows,
		PersistedCnt: persisted,
		Errors:       task.Errors,
		FatalError:   task.FatalError,
		CreatedAt:    task.CreatedAt,
		FinishedAt:   task.FinishedAt,
	}, nil
}

// SummarizeBatch 按批次号汇总已入库资产
// 任务记录有保留期，过期或进程重启后仍可凭批次号从资产库核对入库数
func (s *ImportService) SummarizeBatch(ctx context.Context, batchID string) (*importer.BatchSummary, error) {
	if batchID == "" {
		return nil, errors.New("batch id is empty")
	}

	persisted, err := s.assets.CountByBatchID(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to count persisted assets: %w", err)
	}
	if persisted == 0 {
		return nil, nil
	}

	return &importer.BatchSummary{
		BatchID:      batchID,
		PersistedCnt: persisted,
	}, nil
}

// Close 停止工作协程并释放注册表资源
func (s *ImportService) Close() error {
	s.cancel()
	return s.registry.Close()
}
