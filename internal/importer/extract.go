package importer

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// ExtractText pulls plain text from an uploaded CV payload. The content type
// must already be normalized by ValidateUpload.
func ExtractText(data []byte, contentType string) (string, error) {
	switch contentType {
	case mimePDF:
		return extractPDF(data)
	case mimeDOCX:
		return extractDOCX(data)
	case mimeDOC:
		return extractDOC(data)
	default:
		return "", fmt.Errorf("no extractor for content type: %s", contentType)
	}
}

func extractPDF(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("failed to read pdf text: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}

func extractDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty docx data")
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open docx: %w", err)
	}

	var docFile *zip.File
	for _, f := range zr.File {
		if strings.ReplaceAll(f.Name, "\\", "/") == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", errors.New("document.xml not found in docx")
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open document.xml: %w", err)
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("failed to read document.xml: %w", err)
	}

	return stripDocxXML(string(raw)), nil
}

// stripDocxXML flattens WordprocessingML to plain text, inserting newlines at
// paragraph and line break boundaries.
func stripDocxXML(raw string) string {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return raw
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.WriteString(string(t))
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				if buf.Len() > 0 {
					buf.WriteString("\n")
				}
			}
		}
	}
	return strings.TrimSpace(buf.String())
}

// extractDOC scavenges readable text from legacy binary .doc files. There is
// no reliable pure-Go parser for the format, so this keeps printable runs and
// drops the binary noise; the LLM structuring step tolerates the mess.
func extractDOC(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty doc data")
	}

	var buf strings.Builder
	var run []byte
	flush := func() {
		// Runs shorter than a word are almost always binary noise.
		if utf8.RuneCount(run) >= 4 {
			buf.Write(run)
			buf.WriteString("\n")
		}
		run = run[:0]
	}
	for _, b := range data {
		if b >= 0x20 && b < 0x7f || b == '\t' {
			run = append(run, b)
		} else {
			flush()
		}
	}
	flush()

	text := strings.TrimSpace(buf.String())
	if text == "" {
		return "", errors.New("no readable text found in doc file")
	}
	return text, nil
}
