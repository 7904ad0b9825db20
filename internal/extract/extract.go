package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"resume-matcher/internal/shared/storage/object"
)

const (
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeZip  = "application/zip"
)

var (
	// ErrUnsupportedMediaType is returned for document types without an extraction routine.
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	// ErrExtractionFailed is returned when extraction fails and no fallback applies.
	ErrExtractionFailed = errors.New("extraction failed")
)

// ExtractText reads a stored object and extracts its plain text.
// PDF text uses github.com/ledongthuc/pdf; DOCX is read straight from word/document.xml.
func ExtractText(ctx context.Context, store object.Reader, storageKey string, mimeType string, fileName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	body, err := store.Open(ctx, storageKey)
	if err != nil {
		return "", fmt.Errorf("extract text key=%s mime=%s: %w", storageKey, mimeType, err)
	}
	defer body.Close()

	raw, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("extract text key=%s mime=%s: read: %w", storageKey, mimeType, err)
	}

	text, err := ExtractTextFromBytes(ctx, raw, mimeType, fileName)
	if err != nil {
		return "", fmt.Errorf("extract text key=%s: %w", storageKey, err)
	}
	return text, nil
}

// ExtractTextFromBytes extracts text from an in-memory payload.
func ExtractTextFromBytes(ctx context.Context, data []byte, mimeType string, fileName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	normalized := normalizeMimeType(mimeType, fileName, data)
	switch normalized {
	case MimePDF:
		text, err := extractPDF(data)
		if err == nil {
			return text, nil
		}
		// Sample uploads are sometimes plain text labelled as PDF.
		if fallback, ok := plainTextFallback(data); ok {
			return fallback, nil
		}
		return "", fmt.Errorf("%w: pdf: %v", ErrExtractionFailed, err)
	case MimeDOCX:
		text, err := extractDOCX(data)
		if err != nil {
			return "", fmt.Errorf("%w: docx: %v", ErrExtractionFailed, err)
		}
		return text, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedMediaType, normalized)
	}
}

// Supported reports whether mimeType has an extraction routine.
func Supported(mimeType string, fileName string) bool {
	switch normalizeMimeType(mimeType, fileName, nil) {
	case MimePDF, MimeDOCX:
		return true
	default:
		return false
	}
}

func plainTextFallback(data []byte) (string, bool) {
	if len(data) == 0 || bytes.IndexByte(data, 0) >= 0 || !utf8.Valid(data) {
		return "", false
	}
	text := string(data)
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	return text, true
}

func extractPDF(data []byte) (text string, err error) {
	// ledongthuc/pdf panics on some malformed inputs.
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = fmt.Errorf("pdf reader panic: %v", rec)
		}
	}()

	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	if strings.TrimSpace(buf.String()) == "" {
		return "", errors.New("pdf contains no text")
	}
	return buf.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty docx data")
	}
	readerAt := bytes.NewReader(data)
	zr, err := zip.NewReader(readerAt, int64(len(data)))
	if err != nil {
		return "", err
	}

	var docFile *zip.File
	for _, f := range zr.File {
		name := strings.ReplaceAll(f.Name, "\\", "/")
		if name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", errors.New("document.xml file not found")
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}

	text, err := stripDocxXML(string(raw))
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", errors.New("docx contains no text")
	}
	return text, nil
}

func stripDocxXML(raw string) (string, error) {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	inText := false
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("decode document.xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			if inText {
				buf.WriteString(string(t))
			}
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				buf.WriteString("\t")
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p", "br":
				if last := buf.Len(); last > 0 {
					buf.WriteString("\n")
				}
			}
		}
	}
	return strings.TrimSpace(buf.String()), nil
}

func normalizeMimeType(mimeType string, fileName string, data []byte) string {
	clean := strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	switch clean {
	case "application/x-pdf":
		return MimePDF
	case "application/msword", mimeZip, "application/octet-stream", "":
	default:
		return clean
	}

	if mapped := mapOOXMLFromZip(data); mapped != "" {
		return mapped
	}

	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".docx":
		return MimeDOCX
	case ".pdf":
		return MimePDF
	default:
		if clean == "" {
			return "unknown"
		}
		return clean
	}
}

func mapOOXMLFromZip(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	readerAt := bytes.NewReader(data)
	zr, err := zip.NewReader(readerAt, int64(len(data)))
	if err != nil {
		return ""
	}
	for _, f := range zr.File {
		name := strings.ReplaceAll(f.Name, "\\", "/")
		switch name {
		case "word/document.xml":
			return MimeDOCX
		case "xl/workbook.xml":
			return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		case "ppt/presentation.xml":
			return "application/vnd.openxmlformats-officedocument.presentationml.presentation"
		}
	}
	return ""
}
