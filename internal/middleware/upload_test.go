package middleware

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/man-in-dev/goal-backend-sub001/internal/models"
	"github.com/man-in-dev/goal-backend-sub001/internal/service"
	appErrors "github.com/man-in-dev/goal-backend-sub001/pkg/errors"
	"github.com/man-in-dev/goal-backend-sub001/pkg/response"
	"github.com/man-in-dev/goal-backend-sub001/pkg/storage"
)

var (
	pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)
	pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\n%%EOF\n")
)

type part struct {
	field, filename string
	content         []byte
}

func multipartBody(t *testing.T, values map[string]string, parts ...part) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range values {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, p := range parts {
		fw, err := w.CreateFormFile(p.field, p.filename)
		require.NoError(t, err)
		_, err = fw.Write(p.content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func uploadEngine(t *testing.T, policy UploadPolicy, handler gin.HandlerFunc) (*gin.Engine, *storage.LocalStorage, *service.MetricsService) {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	metrics := service.NewMetricsService()
	r := newEngine(false)
	r.POST("/upload", Upload(store, policy, metrics, nil), handler)
	return r, store, metrics
}

func storedFiles(t *testing.T, store *storage.LocalStorage) []string {
	t.Helper()
	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func echoFiles(c *gin.Context) {
	response.Created(c, "ok", UploadedFiles(c))
}

func TestUploadStoresAdmissionDocuments(t *testing.T) {
	r, store, _ := uploadEngine(t, AdmissionUploads(2<<20, 4), echoFiles)

	body, contentType := multipartBody(t, map[string]string{"fullName": "Meera"},
		part{models.DocumentPassportPhoto, "my photo.PNG", pngBytes},
		part{models.DocumentIDProof, "aadhaar.pdf", pdfBytes},
	)
	w := perform(r, http.MethodPost, "/upload", body, map[string]string{"Content-Type": contentType})

	require.Equal(t, http.StatusCreated, w.Code)
	files := decode(t, w).Data.(map[string]interface{})
	require.Len(t, files, 2)
	assert.True(t, strings.HasPrefix(files[models.DocumentPassportPhoto].(string), "passportPhoto-myphoto-"))
	assert.True(t, strings.HasSuffix(files[models.DocumentPassportPhoto].(string), ".png"))
	assert.True(t, strings.HasSuffix(files[models.DocumentIDProof].(string), ".pdf"))
	assert.Len(t, storedFiles(t, store), 2)
}

func TestUploadRejections(t *testing.T) {
	cases := []struct {
		name  string
		parts []part
		code  string
	}{
		{
			name: "too many files",
			parts: []part{
				{models.DocumentPassportPhoto, "a.png", pngBytes},
				{models.DocumentReportCard, "b.pdf", pdfBytes},
				{models.DocumentBirthCertificate, "c.pdf", pdfBytes},
				{models.DocumentIDProof, "d.pdf", pdfBytes},
				{models.DocumentIDProof, "e.pdf", pdfBytes},
			},
			code: appErrors.ErrTooManyFiles.Code,
		},
		{
			name:  "unknown field",
			parts: []part{{"selfie", "a.png", pngBytes}},
			code:  appErrors.ErrUnexpectedField.Code,
		},
		{
			name: "second file for a field",
			parts: []part{
				{models.DocumentPassportPhoto, "a.png", pngBytes},
				{models.DocumentPassportPhoto, "b.png", pngBytes},
			},
			code: appErrors.ErrUnexpectedField.Code,
		},
		{
			name:  "file too large",
			parts: []part{{models.DocumentReportCard, "big.pdf", append(pdfBytes, make([]byte, 128)...)}},
			code:  appErrors.ErrFileTooLarge.Code,
		},
		{
			name: "invalid type",
			parts: []part{
				{models.DocumentPassportPhoto, "a.png", pngBytes},
				{models.DocumentReportCard, "notes.pdf", []byte("just some plain text")},
			},
			code: appErrors.ErrInvalidFileType.Code,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, store, _ := uploadEngine(t, AdmissionUploads(128, 4), echoFiles)
			body, contentType := multipartBody(t, nil, tc.parts...)
			w := perform(r, http.MethodPost, "/upload", body, map[string]string{"Content-Type": contentType})

			require.Equal(t, http.StatusBadRequest, w.Code)
			env := decode(t, w)
			require.NotNil(t, env.Error)
			assert.Equal(t, tc.code, env.Error.Code)
			assert.Empty(t, storedFiles(t, store))
		})
	}
}

func TestUploadRemovesFilesWhenHandlerFails(t *testing.T) {
	r, store, _ := uploadEngine(t, ComplaintUploads(2<<20), func(c *gin.Context) {
		require.NotEmpty(t, UploadedFiles(c)[models.AttachmentField])
		response.Error(c, appErrors.ErrDuplicate)
	})

	body, contentType := multipartBody(t, nil, part{models.AttachmentField, "note.pdf", pdfBytes})
	w := perform(r, http.MethodPost, "/upload", body, map[string]string{"Content-Type": contentType})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, storedFiles(t, store))
}

func TestUploadRequiredFile(t *testing.T) {
	r, _, _ := uploadEngine(t, CareerUploads(2<<20), echoFiles)

	w := perform(r, http.MethodPost, "/upload", jsonBody(t, map[string]string{"name": "Ravi"}), map[string]string{"Content-Type": "application/json"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Resume is required", decode(t, w).Message)

	body, contentType := multipartBody(t, map[string]string{"name": "Ravi"})
	w = perform(r, http.MethodPost, "/upload", body, map[string]string{"Content-Type": contentType})
	assert.Equal(t, "Resume is required", decode(t, w).Message)
}

func TestUploadOptionalFileAcceptsJSON(t *testing.T) {
	r, _, _ := uploadEngine(t, ComplaintUploads(2<<20), echoFiles)

	w := perform(r, http.MethodPost, "/upload", jsonBody(t, map[string]string{"name": "Ravi"}), map[string]string{"Content-Type": "application/json"})
	assert.Equal(t, http.StatusCreated, w.Code)
}
