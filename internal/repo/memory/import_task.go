/**
 * 仓库:导入任务内存存储
 * @author: sun977
 * @date: 2025.09.21
 * @description: 导入任务注册表的内存实现，单实例部署的默认选择
 * @func: ImportTaskStore
 */
package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"assetmaster/internal/model/importer"
)

// taskEntry 任务及其过期时间
type taskEntry struct {
	task      *importer.ImportTask
	expiresAt time.Time
}

// ImportTaskStore 导入任务内存存储
// 读写全部走深拷贝，调用方拿到的永远是快照
type ImportTaskStore struct {
	mu     sync.RWMutex
	tasks  map[string]*taskEntry
	ttl    time.Duration
	stopCh chan struct{}
	once   sync.Once
}

// NewImportTaskStore 创建内存任务存储
// ttl 为任务终态后的保留时间，后台协程周期清理过期任务
func NewImportTaskStore(ttl time.Duration) *ImportTaskStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	store := &ImportTaskStore{
		tasks:  make(map[string]*taskEntry),
		ttl:    ttl,
		stopCh: make(chan struct{}),
	}

	go store.cleanupLoop()

	return store
}

// Save 保存任务（新建或覆盖）
func (s *ImportTaskStore) Save(ctx context.Context, task *importer.ImportTask) error {
	if task == nil || task.TaskID == "" {
		return errors.New("task or task id is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks[task.TaskID] = &taskEntry{
		task:      task.Clone(),
		expiresAt: time.Now().Add(s.ttl),
	}
	return nil
}

// Get 获取任务快照，不存在返回 nil
func (s *ImportTaskStore) Get(ctx context.Context, taskID string) (*importer.ImportTask, error) {
	if taskID == "" {
		return nil, errors.New("task id is empty")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.tasks[taskID]
	if !ok {
		return nil, nil
	}
	if time.Now().After(entry.expiresAt) {
		return nil, nil
	}
	return entry.task.Clone(), nil
}

// Delete 删除任务
func (s *ImportTaskStore) Delete(ctx context.Context, taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tasks, taskID)
	return nil
}

// Close 停止后台清理协程
func (s *ImportTaskStore) Close() error {
	s.once.Do(func() {
		close(s.stopCh)
	})
	return nil
}

// cleanupLoop 周期清理过期任务
func (s *ImportTaskStore) cleanupLoop() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.removeExpired()
		}
	}
}

// removeExpired 删除所有已过期任务
func (s *ImportTaskStore) removeExpired() {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, entry := range s.tasks {
		if now.After(entry.expiresAt) {
			delete(s.tasks, id)
		}
	}
}
