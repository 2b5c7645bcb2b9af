package asset

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assetmaster/internal/repo/memory"
	importerservice "assetmaster/internal/service/importer"
)

func newImportRouter(t *testing.T, maxFileSize int64) *gin.Engine {
	t.Helper()

	registry := memory.NewImportTaskStore(time.Hour)
	t.Cleanup(func() { _ = registry.Close() })

	service := importerservice.NewImportService(registry,
		importerservice.NewSheetReader(""), importerservice.NewRowPipeline(nil, nil), nil, 10)
	t.Cleanup(func() { _ = service.Close() })

	handler := NewImportHandler(service, maxFileSize)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/v1/assets/import", handler.SubmitImport)
	return router
}

// uploadFile 构造带单个文件字段的 multipart 请求体
func uploadFile(t *testing.T, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestSubmitImportHandler_MissingFile(t *testing.T) {
	router := newImportRouter(t, 0)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/assets/import", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Missing upload file")
}

func TestSubmitImportHandler_RejectsLegacyFormat(t *testing.T) {
	router := newImportRouter(t, 0)

	// 旧版二进制 .xls 明确拒绝并提示支持的格式
	body, contentType := uploadFile(t, "assets.xls", []byte("stub"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/assets/import", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), ".xlsx")
	assert.Contains(t, rec.Body.String(), ".xls format is not accepted")
}

func TestSubmitImportHandler_FileTooLarge(t *testing.T) {
	router := newImportRouter(t, 8)

	body, contentType := uploadFile(t, "assets.xlsx", bytes.Repeat([]byte("a"), 64))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/assets/import", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
