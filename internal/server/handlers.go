package server

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"catalog-csv/internal/catalog"
	"catalog-csv/internal/fileutils"
	"catalog-csv/internal/models"
	"catalog-csv/internal/parsererror"
)

const indexPage = `<!DOCTYPE html>
<html>
<head><title>Catalog Converter</title></head>
<body>
<h1>Catalog Converter</h1>
<p>Upload a catalog file (CSV, Excel, text or PDF) to convert it to the standardized format.</p>
<form action="/upload" method="post" enctype="multipart/form-data">
  <p><input type="file" name="file" required></p>
  <p>Sheet name (Excel only): <input type="text" name="sheet_name"></p>
  <p>Sheet index (Excel only): <input type="number" name="sheet_index" value="0"></p>
  <p>Output format:
    <select name="output_format">
      <option value="csv">CSV</option>
      <option value="json">JSON</option>
    </select>
  </p>
  <p><button type="submit">Convert</button></p>
</form>
</body>
</html>
`

// UploadResponse is the JSON body returned by the upload endpoint.
type UploadResponse struct {
	ID          string   `json:"id"`
	InputFile   string   `json:"input_file"`
	FileType    string   `json:"file_type"`
	RecordCount int      `json:"record_count"`
	Headers     []string `json:"headers"`
	DownloadURL string   `json:"download_url"`
}

func (s *Server) handleIndex(c echo.Context) error {
	return c.HTML(http.StatusOK, indexPage)
}

// handleUpload converts an uploaded catalog file and stores the output
// under a per-upload directory, returning its download URL.
func (s *Server) handleUpload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "file field is required"})
	}

	opts, err := parseOptionsFromForm(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	outputFormat := c.FormValue("output_format")
	if outputFormat == "" {
		outputFormat = "csv"
	}
	if outputFormat != "csv" && outputFormat != "json" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "output_format must be csv or json"})
	}

	id := uuid.New().String()
	dir := filepath.Join(s.uploadDir, id)
	if err := os.MkdirAll(dir, models.PermissionDirectory); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to store upload"})
	}

	inputName := filepath.Base(fileHeader.Filename)
	inputPath := filepath.Join(dir, inputName)
	if err := saveUpload(fileHeader, inputPath); err != nil {
		log.WithError(err).Error("Failed to save uploaded file")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to store upload"})
	}

	result, err := s.processor.ProcessFile(inputPath, opts)
	if err != nil {
		log.WithError(err).WithField("upload_id", id).Warning("Upload conversion failed")
		return c.JSON(statusForError(err), map[string]string{"error": err.Error()})
	}

	outName := strings.TrimSuffix(inputName, filepath.Ext(inputName)) + "." + outputFormat
	outPath := filepath.Join(dir, outName)
	if outputFormat == "json" {
		err = result.SaveJSON(outPath)
	} else {
		err = result.SaveCSV(outPath)
	}
	if err != nil {
		log.WithError(err).Error("Failed to write converted output")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to write output"})
	}

	return c.JSON(http.StatusOK, UploadResponse{
		ID:          id,
		InputFile:   inputName,
		FileType:    result.FileType,
		RecordCount: result.RecordCount,
		Headers:     result.Headers,
		DownloadURL: "/download/" + id + "/" + outName,
	})
}

// handleDownload serves a previously converted file. The upload id must
// be a UUID, which also keeps path traversal out.
func (s *Server) handleDownload(c echo.Context) error {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid upload id"})
	}

	filename := filepath.Base(c.Param("filename"))
	path := filepath.Join(s.uploadDir, id, filename)
	if !fileutils.FileExists(path) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "file not found"})
	}
	return c.Attachment(path, filename)
}

// handleParse converts an uploaded file and returns the records as
// JSON without keeping anything on disk. Setting include_data=false
// omits the records and returns only the summary.
func (s *Server) handleParse(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "file field is required"})
	}

	opts, err := parseOptionsFromForm(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	includeData := c.FormValue("include_data") != "false"

	dir, err := os.MkdirTemp(s.uploadDir, "parse-")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to store upload"})
	}
	defer func() {
		if err := os.RemoveAll(dir); err != nil {
			log.WithError(err).Warning("Failed to clean up parse directory")
		}
	}()

	inputPath := filepath.Join(dir, filepath.Base(fileHeader.Filename))
	if err := saveUpload(fileHeader, inputPath); err != nil {
		log.WithError(err).Error("Failed to save uploaded file")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to store upload"})
	}

	result, err := s.processor.ProcessFile(inputPath, opts)
	if err != nil {
		return c.JSON(statusForError(err), map[string]string{"error": err.Error()})
	}

	result.InputFile = filepath.Base(result.InputFile)
	if !includeData {
		result.Records = nil
	}
	return c.JSON(http.StatusOK, result)
}

// parseOptionsFromForm reads the sheet selection fields.
func parseOptionsFromForm(c echo.Context) (catalog.ParseOptions, error) {
	opts := catalog.ParseOptions{SheetName: c.FormValue("sheet_name")}

	if raw := c.FormValue("sheet_index"); raw != "" {
		index, err := strconv.Atoi(raw)
		if err != nil || index < 0 {
			return opts, errors.New("sheet_index must be a non-negative integer")
		}
		opts.SheetIndex = index
	}
	return opts, nil
}

func saveUpload(fileHeader *multipart.FileHeader, destPath string) error {
	src, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer func() {
		if err := src.Close(); err != nil {
			log.WithError(err).Warning("Failed to close uploaded file")
		}
	}()

	dst, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, models.PermissionOutputFile)
	if err != nil {
		return err
	}
	defer func() {
		if err := dst.Close(); err != nil {
			log.WithError(err).Warning("Failed to close stored upload")
		}
	}()

	_, err = io.Copy(dst, src)
	return err
}

// statusForError maps conversion failures onto HTTP statuses.
func statusForError(err error) int {
	var unsupported *parsererror.UnsupportedFormatError
	if errors.As(err, &unsupported) {
		return http.StatusUnsupportedMediaType
	}
	var parseErr *parsererror.ParseError
	var headerErr *parsererror.HeaderDetectionError
	var mappingErr *parsererror.MappingError
	var extractErr *parsererror.ExtractionError
	if errors.As(err, &parseErr) || errors.As(err, &headerErr) ||
		errors.As(err, &mappingErr) || errors.As(err, &extractErr) {
		return http.StatusUnprocessableEntity
	}
	var validationErr *parsererror.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
