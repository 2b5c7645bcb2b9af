package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTestConfig 写入一个最小可用的测试配置文件
func writeTestConfig(t *testing.T, dir string) string {
	t.Helper()

	content := `
server:
  host: "0.0.0.0"
  port: 8000
  mode: "test"
  read_timeout: 30s
  write_timeout: 30s

database:
  mysql:
    host: "127.0.0.1"
    port: 3306
    username: "root"
    password: "root"
    database: "assetmaster_test"
    charset: "utf8mb4"
    parse_time: true
    loc: "Local"
  redis:
    host: "127.0.0.1"
    port: 6379
    database: 0

log:
  level: "info"
  format: "json"
  output: "stdout"

security:
  jwt:
    secret: "test-secret-key-at-least-32-characters!"
    issuer: "assetmaster"
    access_token_expire: 1h
    refresh_token_expire: 24h

import:
  task_store: "memory"
  max_file_size: 10485760
  progress_interval: 10

app:
  name: "assetmaster"
  version: "1.0.0"
  environment: "test"
`
	path := filepath.Join(dir, "config.test.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return dir
}

func TestLoadConfig(t *testing.T) {
	dir := writeTestConfig(t, t.TempDir())

	cfg, err := LoadConfig(dir, "test")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "test", cfg.Server.Mode)
	assert.Equal(t, "assetmaster_test", cfg.Database.MySQL.Database)
	assert.Equal(t, "memory", cfg.Import.TaskStore)
	assert.Equal(t, int64(10485760), cfg.Import.MaxFileSize)
}

func TestLoadConfig_ImportDefaults(t *testing.T) {
	dir := t.TempDir()
	content := `
server:
  host: "0.0.0.0"
  port: 8000
  mode: "test"

database:
  mysql:
    host: "127.0.0.1"
    port: 3306
    database: "assetmaster_test"

log:
  level: "info"
  format: "json"
  output: "stdout"

security:
  jwt:
    secret: "test-secret-key-at-least-32-characters!"

app:
  environment: "test"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.test.yaml"), []byte(content), 0644))

	cfg, err := LoadConfig(dir, "test")
	require.NoError(t, err)

	// 未配置导入段时使用默认值
	assert.Equal(t, "memory", cfg.Import.TaskStore)
	assert.Equal(t, 24*time.Hour, cfg.Import.TaskTTL)
	assert.Equal(t, int64(10*1024*1024), cfg.Import.MaxFileSize)
	assert.Equal(t, 10, cfg.Import.ProgressInterval)
}

func TestLoadConfig_InvalidTaskStore(t *testing.T) {
	dir := t.TempDir()
	content := `
server:
  host: "0.0.0.0"
  port: 8000
  mode: "test"

database:
  mysql:
    host: "127.0.0.1"
    port: 3306
    database: "assetmaster_test"

log:
  level: "info"
  format: "json"
  output: "stdout"

security:
  jwt:
    secret: "test-secret-key-at-least-32-characters!"

import:
  task_store: "etcd"

app:
  environment: "test"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.test.yaml"), []byte(content), 0644))

	_, err := LoadConfig(dir, "test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid import task store")
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(t.TempDir(), "test")
	assert.Error(t, err)
}

func TestGetMySQLDSN(t *testing.T) {
	cfg := &MySQLConfig{
		Host:      "127.0.0.1",
		Port:      3306,
		Username:  "root",
		Password:  "secret",
		Database:  "assetmaster",
		Charset:   "utf8mb4",
		ParseTime: true,
		Loc:       "Local",
	}

	dsn := cfg.GetMySQLDSN()
	assert.Equal(t, "root:secret@tcp(127.0.0.1:3306)/assetmaster?charset=utf8mb4&parseTime=true&loc=Local", dsn)
}
