package http

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"
)

const defaultUploadMIME = "application/octet-stream"

// Multipart is a single-file upload form: the file goes in the "files" field
// and the target directory in "directory".
type Multipart struct {
	FileName  string
	MIME      string
	Contents  []byte
	Directory string
}

func (m Multipart) encode() (*bytes.Reader, string, error) {
	var buf bytes.Buffer

	writer := multipart.NewWriter(&buf)

	mimeType := m.MIME
	if mimeType == "" {
		mimeType = defaultUploadMIME
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files"; filename="%s"`, escapeQuotes(m.FileName)))
	header.Set("Content-Type", mimeType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("creating file part: %w", err)
	}

	if _, err := part.Write(m.Contents); err != nil {
		return nil, "", fmt.Errorf("writing file part: %w", err)
	}

	if err := writer.WriteField("directory", m.Directory); err != nil {
		return nil, "", fmt.Errorf("writing directory field: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("closing multipart body: %w", err)
	}

	return bytes.NewReader(buf.Bytes()), writer.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
