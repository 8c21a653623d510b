// Package filetype determines which catalog format a file holds, combining
// the file extension with content sniffing so mislabelled files still route
// to the right parser.
package filetype

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/sirupsen/logrus"

	"catalog-csv/internal/models"
	"catalog-csv/internal/parsererror"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Detect returns the catalog file type for filePath, one of the
// models.FileType* constants. The extension is checked first; for CSV and
// Excel extensions the content is sniffed to catch files saved under the
// wrong extension.
func Detect(filePath string) (string, error) {
	log.WithField("file", filePath).Info("Detecting file type")

	info, err := os.Stat(filePath)
	if err != nil || info.IsDir() {
		return "", fmt.Errorf("file does not exist: %s", filePath)
	}

	ext := strings.ToLower(filepath.Ext(filePath))
	if fileType, ok := models.FileTypeForExtension(ext); ok {
		log.WithFields(logrus.Fields{
			"file": filePath,
			"type": fileType,
		}).Info("Detected file type by extension")

		switch fileType {
		case models.FileTypeCSV:
			if mime, err := mimetype.DetectFile(filePath); err == nil && !isTextMIME(mime) {
				if real, ok := detectByContent(filePath, mime); ok && real != fileType {
					log.WithFields(logrus.Fields{
						"file": filePath,
						"type": real,
					}).Warning("File with .csv extension holds a different format")
					return real, nil
				}
			}
		case models.FileTypeExcel:
			if mime, err := mimetype.DetectFile(filePath); err == nil && !isSpreadsheetMIME(mime) {
				log.WithFields(logrus.Fields{
					"file": filePath,
					"mime": mime.String(),
				}).Warning("File with Excel extension has unexpected MIME type")
				if real, ok := detectByContent(filePath, mime); ok {
					return real, nil
				}
			}
		}

		return fileType, nil
	}

	mime, mimeErr := mimetype.DetectFile(filePath)
	if mimeErr == nil {
		if fileType, ok := detectByContent(filePath, mime); ok {
			log.WithFields(logrus.Fields{
				"file": filePath,
				"type": fileType,
			}).Info("Detected file type by content")
			return fileType, nil
		}
	}

	mimeStr := ""
	if mimeErr == nil {
		mimeStr = mime.String()
	}
	return "", &parsererror.UnsupportedFormatError{
		FilePath:  filePath,
		Extension: ext,
		MIMEType:  mimeStr,
	}
}

func isTextMIME(mime *mimetype.MIME) bool {
	for m := mime; m != nil; m = m.Parent() {
		if strings.HasPrefix(m.String(), "text/") {
			return true
		}
	}
	return false
}

func isSpreadsheetMIME(mime *mimetype.MIME) bool {
	s := mime.String()
	return strings.Contains(s, "excel") ||
		strings.Contains(s, "spreadsheet") ||
		strings.Contains(s, "officedocument")
}

// detectByContent maps a sniffed MIME type to a catalog file type. Text
// content is further split into CSV or plain text by comma density: two or
// more commas per line on average reads as CSV.
func detectByContent(filePath string, mime *mimetype.MIME) (string, bool) {
	if isSpreadsheetMIME(mime) {
		return models.FileTypeExcel, true
	}
	if mime.Is("application/pdf") {
		return models.FileTypePDF, true
	}
	if isTextMIME(mime) {
		sample, err := readSample(filePath, 4096)
		if err != nil {
			log.WithError(err).Warning("Error during content-based detection")
			return "", false
		}
		commas := strings.Count(sample, ",")
		lines := strings.Count(sample, "\n")
		if lines > 0 && float64(commas)/float64(lines) >= 2 {
			return models.FileTypeCSV, true
		}
		return models.FileTypeText, true
	}
	return "", false
}

func readSample(filePath string, n int) (string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			log.WithError(cerr).Warning("Failed to close file")
		}
	}()

	buf := make([]byte, n)
	read, err := f.Read(buf)
	if read == 0 && err != nil {
		return "", err
	}
	return string(buf[:read]), nil
}
