package importer

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	modelimporter "assetmaster/internal/model/importer"
	"assetmaster/internal/repo/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingRegistry 记录每次发布的任务快照，用于检查对外可见的中间状态
type recordingRegistry struct {
	*memory.ImportTaskStore

	mu        sync.Mutex
	snapshots []*modelimporter.ImportTask
}

func (r *recordingRegistry) Save(ctx context.Context, task *modelimporter.ImportTask) error {
	r.mu.Lock()
	r.snapshots = append(r.snapshots, task.Clone())
	r.mu.Unlock()
	return r.ImportTaskStore.Save(ctx, task)
}

func newTestService(t *testing.T) (*ImportService, *fakeAssetStore) {
	t.Helper()

	store := &fakeAssetStore{}
	validator := NewCategoryValidator(seedCategoryTree())
	pipeline := NewRowPipeline(store, validator)
	registry := memory.NewImportTaskStore(time.Hour)
	t.Cleanup(func() { _ = registry.Close() })

	return NewImportService(registry, NewSheetReader(""), pipeline, store, 2), store
}

func workbookBytes(t *testing.T, headers []string, rows [][]string) []byte {
	t.Helper()
	data, err := io.ReadAll(buildWorkbook(t, headers, rows))
	require.NoError(t, err)
	return data
}

// waitTerminal 轮询任务直到进入终态
func waitTerminal(t *testing.T, s *ImportService, taskID string) *modelimporter.ImportTask {
	t.Helper()

	var task *modelimporter.ImportTask
	require.Eventually(t, func() bool {
		got, err := s.GetTask(context.Background(), taskID)
		if err != nil || got == nil || !got.State.IsTerminal() {
			return false
		}
		task = got
		return true
	}, 5*time.Second, 10*time.Millisecond)
	return task
}

func TestSubmitImport_AcceptsImmediately(t *testing.T) {
	s, _ := newTestService(t)

	data := workbookBytes(t, testHeaders, [][]string{
		{"IT-001", "Dell R740", "SN1", "服务器", "机架服务器", "2U机架服务器", "在用", "", "", "", ""},
	})

	task, err := s.SubmitImport(context.Background(), "assets.xlsx", data, "admin")
	require.NoError(t, err)
	require.NotNil(t, task)

	// 提交即返回，任务进入处理中
	assert.NotEmpty(t, task.TaskID)
	assert.NotEmpty(t, task.BatchID)
	assert.Contains(t, task.BatchID, "IMP-")
	assert.Equal(t, modelimporter.TaskStateProcessing, task.State)
	assert.Equal(t, "assets.xlsx", task.FileName)

	final := waitTerminal(t, s, task.TaskID)
	assert.Equal(t, modelimporter.TaskStateCompleted, final.State)
	assert.Equal(t, 1, final.TotalRows)
	assert.Equal(t, 1, final.SuccessRows)
	assert.Empty(t, final.FailedRows)
	assert.Equal(t, 1.0, final.Progress())
}

func TestSubmitImport_RowErrorsDoNotAbortBatch(t *testing.T) {
	s, store := newTestService(t)

	data := workbookBytes(t, testHeaders, [][]string{
		{"IT-001", "Dell R740", "SN1", "服务器", "机架服务器", "2U机架服务器", "在用", "", "", "", ""},
		{"", "No Number", "SN2", "服务器", "机架服务器", "2U机架服务器", "在用", "", "", "", ""},
		{"IT-003", "Dell R750", "SN3", "服务器", "未知分类", "2U机架服务器", "在用", "", "", "", ""},
		{"IT-004", "Dell R760", "SN4", "服务器", "机架服务器", "2U机架服务器", "库存", "", "", "", ""},
	})

	task, err := s.SubmitImport(context.Background(), "assets.xlsx", data, "admin")
	require.NoError(t, err)

	final := waitTerminal(t, s, task.TaskID)
	assert.Equal(t, modelimporter.TaskStateCompleted, final.State)
	assert.Equal(t, 4, final.TotalRows)
	assert.Equal(t, 2, final.SuccessRows)
	assert.Equal(t, []int{3, 4}, final.FailedRows)
	require.Len(t, final.Errors, 2)

	// 错误带表格行号
	assert.Equal(t, 3, final.Errors[0].Row)
	assert.Equal(t, 4, final.Errors[1].Row)

	// 成功行已入库
	count, err := store.CountByBatchID(context.Background(), final.BatchID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestSubmitImport_FullProgressOnlyAtTerminalState(t *testing.T) {
	store := &fakeAssetStore{}
	registry := &recordingRegistry{ImportTaskStore: memory.NewImportTaskStore(time.Hour)}
	t.Cleanup(func() { _ = registry.Close() })

	pipeline := NewRowPipeline(store, NewCategoryValidator(seedCategoryTree()))
	// 行数恰好是发布间隔的整数倍
	s := NewImportService(registry, NewSheetReader(""), pipeline, store, 2)

	data := workbookBytes(t, testHeaders, [][]string{
		{"IT-001", "Dell R740", "SN1", "服务器", "机架服务器", "2U机架服务器", "在用", "", "", "", ""},
		{"IT-002", "Dell R750", "SN2", "服务器", "机架服务器", "2U机架服务器", "库存", "", "", "", ""},
	})

	task, err := s.SubmitImport(context.Background(), "assets.xlsx", data, "admin")
	require.NoError(t, err)
	waitTerminal(t, s, task.TaskID)

	// 对外发布的快照中，进度为1的必须已经是终态
	registry.mu.Lock()
	defer registry.mu.Unlock()
	require.NotEmpty(t, registry.snapshots)
	for _, snapshot := range registry.snapshots {
		if !snapshot.State.IsTerminal() {
			assert.Less(t, snapshot.Progress(), 1.0,
				"non-terminal snapshot published with full progress: processed=%d/%d",
				snapshot.ProcessedRows, snapshot.TotalRows)
		}
	}
}

func TestSummarizeBatch_OutlivesTaskRecord(t *testing.T) {
	s, store := newTestService(t)

	data := workbookBytes(t, testHeaders, [][]string{
		{"IT-001", "Dell R740", "SN1", "服务器", "机架服务器", "2U机架服务器", "在用", "", "", "", ""},
		{"IT-002", "Dell R750", "SN2", "服务器", "机架服务器", "2U机架服务器", "库存", "", "", "", ""},
	})

	task, err := s.SubmitImport(context.Background(), "assets.xlsx", data, "admin")
	require.NoError(t, err)
	waitTerminal(t, s, task.TaskID)

	// 批次汇总只依赖资产库，任务记录是否还在注册表中无关紧要
	require.NoError(t, s.registry.Delete(context.Background(), task.TaskID))

	summary, err := s.SummarizeBatch(context.Background(), task.BatchID)
	require.NoError(t, err)
	require.NotNil(t, summary)
	assert.Equal(t, task.BatchID, summary.BatchID)
	assert.Equal(t, int64(2), summary.PersistedCnt)

	count, err := store.CountByBatchID(context.Background(), task.BatchID)
	require.NoError(t, err)
	assert.Equal(t, summary.PersistedCnt, count)
}

func TestSummarizeBatch_Unknown(t *testing.T) {
	s, _ := newTestService(t)

	summary, err := s.SummarizeBatch(context.Background(), "IMP-unknown")
	require.NoError(t, err)
	assert.Nil(t, summary)
}

func TestClose_StopsWorkers(t *testing.T) {
	s, store := newTestService(t)
	require.NoError(t, s.Close())

	data := workbookBytes(t, testHeaders, [][]string{
		{"IT-001", "Dell R740", "SN1", "服务器", "机架服务器", "2U机架服务器", "在用", "", "", "", ""},
	})

	task, err := s.SubmitImport(context.Background(), "assets.xlsx", data, "admin")
	require.NoError(t, err)

	// 服务已关闭，工作协程在处理任何行之前退出
	assert.Never(t, func() bool {
		got, err := s.GetTask(context.Background(), task.TaskID)
		return err == nil && got != nil && got.State.IsTerminal()
	}, 300*time.Millisecond, 20*time.Millisecond)
	assert.Empty(t, store.bundles)
}

func TestSubmitImport_ResubmitIsIdempotent(t *testing.T) {
	s, store := newTestService(t)

	data := workbookBytes(t, testHeaders, [][]string{
		{"IT-001", "Dell R740", "SN1", "服务器", "机架服务器", "2U机架服务器", "在用", "", "", "", ""},
		{"IT-002", "Dell R750", "SN2", "服务器", "机架服务器", "2U机架服务器", "库存", "", "", "", ""},
	})

	first, err := s.SubmitImport(context.Background(), "assets.xlsx", data, "admin")
	require.NoError(t, err)
	waitTerminal(t, s, first.TaskID)

	// 同一文件再次提交: 所有行按成功跳过处理，不产生新记录
	second, err := s.SubmitImport(context.Background(), "assets.xlsx", data, "admin")
	require.NoError(t, err)
	assert.NotEqual(t, first.TaskID, second.TaskID)
	assert.NotEqual(t, first.BatchID, second.BatchID)

	final := waitTerminal(t, s, second.TaskID)
	assert.Equal(t, modelimporter.TaskStateCompleted, final.State)
	assert.Equal(t, 2, final.SuccessRows)
	assert.Empty(t, final.FailedRows)

	count, err := store.CountByBatchID(context.Background(), second.BatchID)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Len(t, store.bundles, 2)
}

func TestSubmitImport_StructuralErrorFailsTask(t *testing.T) {
	s, store := newTestService(t)

	// 缺少必需列
	data := workbookBytes(t, []string{"资产编号", "资产名称"}, [][]string{
		{"IT-001", "Dell R740"},
	})

	task, err := s.SubmitImport(context.Background(), "bad.xlsx", data, "admin")
	require.NoError(t, err)

	final := waitTerminal(t, s, task.TaskID)
	assert.Equal(t, modelimporter.TaskStateFailed, final.State)
	assert.Contains(t, final.FatalError, "一级分类")
	assert.Zero(t, final.SuccessRows)
	assert.Empty(t, store.bundles)
}

func TestSubmitImport_EmptyFile(t *testing.T) {
	s, _ := newTestService(t)

	_, err := s.SubmitImport(context.Background(), "empty.xlsx", nil, "admin")
	require.Error(t, err)
}

func TestGetTask_Unknown(t *testing.T) {
	s, _ := newTestService(t)

	task, err := s.GetTask(context.Background(), "no-such-task")
	require.NoError(t, err)
	assert.Nil(t, task)
}

func TestSummarize(t *testing.T) {
	s, _ := newTestService(t)

	data := workbookBytes(t, testHeaders, [][]string{
		{"IT-001", "Dell R740", "SN1", "服务器", "机架服务器", "2U机架服务器", "在用", "", "", "", ""},
		{"IT-002", "Dell R750", "SN2", "服务器", "机架服务器", "2U机架服务器", "库存", "", "", "", ""},
	})

	task, err := s.SubmitImport(context.Background(), "assets.xlsx", data, "admin")
	require.NoError(t, err)
	waitTerminal(t, s, task.TaskID)

	summary, err := s.Summarize(context.Background(), task.TaskID)
	require.NoError(t, err)
	require.NotNil(t, summary)

	assert.Equal(t, task.BatchID, summary.BatchID)
	assert.Equal(t, modelimporter.TaskStateCompleted, summary.State)
	assert.Equal(t, 2, summary.SuccessRows)
	assert.Equal(t, int64(2), summary.PersistedCnt)
	require.NotNil(t, summary.FinishedAt)
}

func TestSummarize_Unknown(t *testing.T) {
	s, _ := newTestService(t)

	summary, err := s.Summarize(context.Background(), "no-such-task")
	require.NoError(t, err)
	assert.Nil(t, summary)
}
