/**
 * 仓库:导入任务Redis存储
 * @author: sun977
 * @date: 2025.09.21
 * @description: 导入任务注册表的Redis实现，多实例部署时共享任务进度
 * @func: ImportTaskStore
 */
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"assetmaster/internal/model/importer"

	"github.com/go-redis/redis/v8"
)

// taskKeyPrefix 任务键前缀
const taskKeyPrefix = "assetmaster:import:task:"

// ImportTaskStore 导入任务Redis存储
// 任务以JSON存储，TTL由Redis过期机制维护
type ImportTaskStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewImportTaskStore 创建Redis任务存储
func NewImportTaskStore(client *redis.Client, ttl time.Duration) *ImportTaskStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &ImportTaskStore{
		client: client,
		ttl:    ttl,
	}
}

// taskKey 生成任务存储键
func taskKey(taskID string) string {
	return taskKeyPrefix + taskID
}

// Save 保存任务（新建或覆盖），同时刷新TTL
func (s *ImportTaskStore) Save(ctx context.Context, task *importer.ImportTask) error {
	if task == nil || task.TaskID == "" {
		return errors.New("task or task id is empty")
	}

	data, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal import task: %w", err)
	}

	if err := s.client.Set(ctx, taskKey(task.TaskID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save import task to redis: %w", err)
	}
	return nil
}

// Get 获取任务，不存在返回 nil
func (s *ImportTaskStore) Get(ctx context.Context, taskID string) (*importer.ImportTask, error) {
	if taskID == "" {
		return nil, errors.New("task id is empty")
	}

	data, err := s.client.Get(ctx, taskKey(taskID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get import task from redis: %w", err)
	}

	var task importer.ImportTask
	if err := json.Unmarshal(data, &task); err != nil {
		return nil, fmt.Errorf("failed to unmarshal import task: %w", err)
	}
	return &task, nil
}

// Delete 删除任务
func (s *ImportTaskStore) Delete(ctx context.Context, taskID string) error {
	return s.client.Del(ctx, taskKey(taskID)).Err()
}

// Close 存储自身无需关闭，Redis客户端生命周期由上层管理
func (s *ImportTaskStore) Close() error {
	return nil
}
