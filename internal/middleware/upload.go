package middleware

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/man-in-dev/goal-backend-sub001/internal/models"
	"github.com/man-in-dev/goal-backend-sub001/internal/service"
	appErrors "github.com/man-in-dev/goal-backend-sub001/pkg/errors"
	"github.com/man-in-dev/goal-backend-sub001/pkg/response"
)

const contextFilesKey = "uploadedFiles"

// slack allowed on top of the file payload for form values and boundaries.
const multipartOverhead = 1 << 20

var allowedMIMETypes = []string{"image/jpeg", "image/png", "application/pdf"}

// FileStore persists validated uploads.
type FileStore interface {
	SaveStream(field, originalName string, r io.Reader) (string, error)
	Delete(filename string) error
}

// UploadPolicy describes the file fields a route accepts.
type UploadPolicy struct {
	// Fields maps each accepted field to the number of files it may carry.
	Fields      map[string]int
	MaxFiles    int
	MaxFileSize int64
	// Required maps mandatory fields to the message returned when missing.
	Required map[string]string
}

// AdmissionUploads accepts one file for each admission document.
func AdmissionUploads(maxFileSize int64, maxFiles int) UploadPolicy {
	fields := make(map[string]int, len(models.AdmissionDocumentFields))
	for _, name := range models.AdmissionDocumentFields {
		fields[name] = 1
	}
	return UploadPolicy{Fields: fields, MaxFiles: maxFiles, MaxFileSize: maxFileSize}
}

// ComplaintUploads accepts an optional single attachment.
func ComplaintUploads(maxFileSize int64) UploadPolicy {
	return UploadPolicy{Fields: map[string]int{models.AttachmentField: 1}, MaxFiles: 1, MaxFileSize: maxFileSize}
}

// CareerUploads requires exactly one resume.
func CareerUploads(maxFileSize int64) UploadPolicy {
	return UploadPolicy{
		Fields:      map[string]int{models.ResumeField: 1},
		MaxFiles:    1,
		MaxFileSize: maxFileSize,
		Required:    map[string]string{models.ResumeField: "Resume is required"},
	}
}

// Upload parses multipart requests, enforces policy and stores the accepted
// files. Stored names are exposed through UploadedFiles. Files saved for a
// request that ends in an error are removed again.
func Upload(store FileStore, policy UploadPolicy, metrics *service.MetricsService, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		if !strings.HasPrefix(c.ContentType(), gin.MIMEMultipartPOSTForm) {
			if err := policy.missing(nil); err != nil {
				response.Error(c, err)
				return
			}
			c.Next()
			return
		}

		limit := policy.MaxFileSize*int64(policy.MaxFiles) + multipartOverhead
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		if err := c.Request.ParseMultipartForm(maxMultipartMemory); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				response.Error(c, appErrors.ErrFileTooLarge)
				return
			}
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Invalid multipart payload"))
			return
		}

		files := c.Request.MultipartForm.File
		if err := policy.check(files); err != nil {
			recordRejection(metrics, files)
			response.Error(c, err)
			return
		}

		saved, err := saveAll(store, files, metrics)
		if err != nil {
			discard(store, saved, logger)
			response.Error(c, err)
			return
		}

		c.Set(contextFilesKey, saved)
		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			discard(store, saved, logger)
		}
	}
}

// UploadedFiles returns the stored file name per field for the current request.
func UploadedFiles(c *gin.Context) map[string]string {
	if value, ok := c.Get(contextFilesKey); ok {
		if files, ok := value.(map[string]string); ok {
			return files
		}
	}
	return nil
}

// check applies the count, field and size limits in that order.
func (p UploadPolicy) check(files map[string][]*multipart.FileHeader) error {
	total := 0
	for _, headers := range files {
		total += len(headers)
	}
	if p.MaxFiles > 0 && total > p.MaxFiles {
		return appErrors.ErrTooManyFiles
	}

	for field, headers := range files {
		limit, ok := p.Fields[field]
		if !ok || len(headers) > limit {
			return appErrors.ErrUnexpectedField
		}
	}

	for _, headers := range files {
		for _, header := range headers {
			if p.MaxFileSize > 0 && header.Size > p.MaxFileSize {
				return appErrors.ErrFileTooLarge
			}
		}
	}
	return p.missing(files)
}

func (p UploadPolicy) missing(files map[string][]*multipart.FileHeader) error {
	fields := make([]string, 0, len(p.Required))
	for field := range p.Required {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		if len(files[field]) == 0 {
			return appErrors.Clone(appErrors.ErrValidation, p.Required[field])
		}
	}
	return nil
}

func saveAll(store FileStore, files map[string][]*multipart.FileHeader, metrics *service.MetricsService) (map[string]string, error) {
	saved := make(map[string]string, len(files))
	for field, headers := range files {
		for _, header := range headers {
			name, err := saveOne(store, field, header)
			if err != nil {
				metrics.RecordUpload(field, "rejected")
				return saved, err
			}
			metrics.RecordUpload(field, "stored")
			saved[field] = name
		}
	}
	return saved, nil
}

func saveOne(store FileStore, field string, header *multipart.FileHeader) (string, error) {
	file, err := header.Open()
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read upload")
	}
	defer file.Close() //nolint:errcheck

	mtype, err := mimetype.DetectReader(file)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read upload")
	}
	if !mimetype.EqualsAny(mtype.String(), allowedMIMETypes...) {
		return "", appErrors.ErrInvalidFileType
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read upload")
	}

	// the stored extension follows the sniffed content, not the client's name
	stem := strings.TrimSuffix(header.Filename, filepath.Ext(header.Filename))
	name, err := store.SaveStream(field, stem+mtype.Extension(), file)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store upload")
	}
	return name, nil
}

func discard(store FileStore, saved map[string]string, logger *zap.Logger) {
	for _, name := range saved {
		if err := store.Delete(name); err != nil {
			logger.Warn("failed to remove upload", zap.String("file", name), zap.Error(err))
		}
	}
}

func recordRejection(metrics *service.MetricsService, files map[string][]*multipart.FileHeader) {
	for field := range files {
		metrics.RecordUpload(field, "rejected")
	}
}
