// filepath: internal/api/handlers/upload_handler_test.go
package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/KodyMike/DropZone/internal/config"
	"github.com/KodyMike/DropZone/internal/models"
	"github.com/KodyMike/DropZone/internal/services"
	"github.com/KodyMike/DropZone/internal/services/mocks"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// setupUploadHandlerTestAPI creates a new test server for the upload handler.
func setupUploadHandlerTestAPI(t *testing.T) (*httptest.Server, *mocks.MockUploadService, *MockAuditor, func()) {
	t.Helper()

	mockUploadSvc := new(mocks.MockUploadService)
	mockAuditor := new(MockAuditor)

	dummyCfg := &config.Config{
		MaxUploadBytes: 15 << 20,
	}

	h := NewHandlers(mockUploadSvc, mockAuditor, dummyCfg)

	r := mux.NewRouter()
	r.HandleFunc("/upload", h.UploadFile).Methods("POST")

	server := httptest.NewServer(r)

	cleanup := func() {
		server.Close()
	}

	return server, mockUploadSvc, mockAuditor, cleanup
}

// buildMultipartBody assembles a multipart form with a single file part.
func buildMultipartBody(t *testing.T, partName, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", `form-data; name="`+partName+`"; filename="`+filename+`"`)
	hdr.Set("Content-Type", "application/octet-stream")
	part, err := writer.CreatePart(hdr)
	assert.NoError(t, err)
	part.Write(content)
	writer.Close()

	return body, writer.FormDataContentType()
}

func TestUploadFile_Success(t *testing.T) {
	server, mockUploadSvc, mockAuditor, cleanup := setupUploadHandlerTestAPI(t)
	defer cleanup()

	body, contentType := buildMultipartBody(t, "file", "report.json", []byte(`{"a":1}`))

	mockUploadSvc.On("StoreUpload", mock.Anything, "report.json", mock.Anything).
		Return(&models.StoredFile{Filename: "report.json", SizeBytes: 7, Routed: true}, nil).Once()

	mockAuditor.On("Log",
		mock.Anything, // Context
		"upload.store",
		"report.json",
		mock.MatchedBy(func(details map[string]interface{}) bool {
			return details["size_bytes"] == int64(7) && details["routed"] == true
		}),
	).Return().Once()

	resp, err := http.Post(server.URL+"/upload", contentType, body)
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var ack UploadResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&ack))
	assert.Equal(t, "report.json", ack.Filename)
	assert.Equal(t, int64(7), ack.SizeBytes)

	mockUploadSvc.AssertExpectations(t)
	mockAuditor.AssertExpectations(t)
}

func TestUploadFile_MissingFilePart(t *testing.T) {
	server, mockUploadSvc, _, cleanup := setupUploadHandlerTestAPI(t)
	defer cleanup()

	// A form with only an unrelated part
	body, contentType := buildMultipartBody(t, "attachment", "report.json", []byte(`{}`))

	resp, err := http.Post(server.URL+"/upload", contentType, body)
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	mockUploadSvc.AssertNotCalled(t, "StoreUpload", mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadFile_NotMultipart(t *testing.T) {
	server, mockUploadSvc, _, cleanup := setupUploadHandlerTestAPI(t)
	defer cleanup()

	resp, err := http.Post(server.URL+"/upload", "application/json", bytes.NewReader([]byte(`{}`)))
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	mockUploadSvc.AssertNotCalled(t, "StoreUpload", mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadFile_ServiceErrors(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{"Validation Error", services.ErrValidation, http.StatusBadRequest},
		{"Too Large", services.ErrTooLarge, http.StatusRequestEntityTooLarge},
		{"Storage Failure", assert.AnError, http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server, mockUploadSvc, _, cleanup := setupUploadHandlerTestAPI(t)
			defer cleanup()

			body, contentType := buildMultipartBody(t, "file", "report.json", []byte(`{}`))

			mockUploadSvc.On("StoreUpload", mock.Anything, "report.json", mock.Anything).
				Return(nil, tc.serviceErr).Once()

			resp, err := http.Post(server.URL+"/upload", contentType, body)
			assert.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.wantStatus, resp.StatusCode)

			// Error bodies must stay generic
			var errResp ErrorResponse
			assert.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
			assert.NotContains(t, errResp.Error, "/")

			mockUploadSvc.AssertExpectations(t)
		})
	}
}
