package client

import (
	"context"
	"errors"
	"fmt"
	nethttp "net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fivetwenty-io/ptero/internal/constants"
	"github.com/fivetwenty-io/ptero/internal/http"
	"github.com/fivetwenty-io/ptero/pkg/ptero"
)

// uploader posts multipart bodies to signed URLs.
type uploader interface {
	Upload(ctx context.Context, signedURL string, file http.Multipart) (*http.Response, error)
}

// FilesClient implements ptero.FilesClient.
type FilesClient struct {
	requester ptero.Requester
	uploader  uploader
}

// NewFilesClient creates a new files client. Uploads go through httpClient,
// which must not add the panel token to requests.
func NewFilesClient(requester ptero.Requester, httpClient *http.Client) *FilesClient {
	return &FilesClient{
		requester: requester,
		uploader:  httpClient,
	}
}

// List implements ptero.FilesClient.List.
func (c *FilesClient) List(identifier, directory string) ptero.ListQuery {
	if directory == "" {
		directory = "/"
	}

	return ptero.NewListQuery(c.requester, clientServerPath(identifier, "files", "list")).
		Param("directory", directory)
}

// Read implements ptero.FilesClient.Read. Plain text bodies are exposed as
// {"contents": raw}.
func (c *FilesClient) Read(ctx context.Context, identifier, path string) *ptero.ItemResponse {
	query := url.Values{"file": {"/" + strings.TrimLeft(path, "/")}}

	resp := c.requester.Do(ctx, nethttp.MethodGet, clientServerPath(identifier, "files", "contents"), query, nil)
	if resp.Data == nil {
		resp = resp.WithData(map[string]any{"contents": resp.Raw})
	}

	return ptero.NewItemResponse(resp)
}

// Download implements ptero.FilesClient.Download.
func (c *FilesClient) Download(ctx context.Context, identifier, path string) *ptero.ItemResponse {
	query := url.Values{"file": {path}}

	return ptero.NewItemResponse(c.requester.Do(ctx, nethttp.MethodGet, clientServerPath(identifier, "files", "download"), query, nil))
}

// Rename implements ptero.FilesClient.Rename.
func (c *FilesClient) Rename(ctx context.Context, identifier, root, from, to string) *ptero.ActionResponse {
	body := map[string]any{
		"root":  rootOrSlash(root),
		"files": []map[string]string{{"from": from, "to": to}},
	}

	return ptero.NewActionResponse(c.requester.Do(ctx, nethttp.MethodPut, clientServerPath(identifier, "files", "rename"), nil, body))
}

// Copy implements ptero.FilesClient.Copy.
func (c *FilesClient) Copy(ctx context.Context, identifier, location string) *ptero.ActionResponse {
	body := map[string]any{"location": location}

	return ptero.NewActionResponse(c.requester.Do(ctx, nethttp.MethodPost, clientServerPath(identifier, "files", "copy"), nil, body))
}

// Write implements ptero.FilesClient.Write. The panel answers 204, so Data
// defaults to {"written": true}.
func (c *FilesClient) Write(ctx context.Context, identifier, path, contents string) *ptero.ActionResponse {
	query := url.Values{"file": {path}}

	resp := c.requester.Do(ctx, nethttp.MethodPost, clientServerPath(identifier, "files", "write"), query, contents)
	if resp.Data == nil {
		resp = resp.WithData(map[string]any{"written": true})
	}

	return ptero.NewActionResponse(resp)
}

// Compress implements ptero.FilesClient.Compress.
func (c *FilesClient) Compress(ctx context.Context, identifier, root string, files []string) *ptero.ActionResponse {
	body := map[string]any{"root": rootOrSlash(root), "files": nonNil(files)}

	return ptero.NewActionResponse(c.requester.Do(ctx, nethttp.MethodPost, clientServerPath(identifier, "files", "compress"), nil, body))
}

// Decompress implements ptero.FilesClient.Decompress.
func (c *FilesClient) Decompress(ctx context.Context, identifier, root, file string) *ptero.ActionResponse {
	body := map[string]any{"root": rootOrSlash(root), "file": file}

	return ptero.NewActionResponse(c.requester.Do(ctx, nethttp.MethodPost, clientServerPath(identifier, "files", "decompress"), nil, body))
}

// Delete implements ptero.FilesClient.Delete.
func (c *FilesClient) Delete(ctx context.Context, identifier, root string, files []string) *ptero.ActionResponse {
	body := map[string]any{"root": rootOrSlash(root), "files": nonNil(files)}

	return ptero.NewActionResponse(c.requester.Do(ctx, nethttp.MethodPost, clientServerPath(identifier, "files", "delete"), nil, body))
}

// CreateFolder implements ptero.FilesClient.CreateFolder.
func (c *FilesClient) CreateFolder(ctx context.Context, identifier, root, name string) *ptero.ActionResponse {
	body := map[string]any{"root": rootOrSlash(root), "name": name}

	return ptero.NewActionResponse(c.requester.Do(ctx, nethttp.MethodPost, clientServerPath(identifier, "files", "create-folder"), nil, body))
}

// Exists implements ptero.FilesClient.Exists. It only looks at the first
// page of the listing, which the panel never splits.
func (c *FilesClient) Exists(ctx context.Context, identifier, directory, name string) (bool, *ptero.ListResponse) {
	listing := c.List(identifier, directory).Send(ctx)

	for _, attrs := range listing.ItemAttributes() {
		if value, ok := attrs["name"].(string); ok && value == name {
			return true, listing
		}
	}

	return false, listing
}

// UploadURL implements ptero.FilesClient.UploadURL. The returned url always
// carries the target directory.
func (c *FilesClient) UploadURL(ctx context.Context, identifier, directory string) *ptero.ItemResponse {
	directory = rootOrSlash(directory)
	query := url.Values{"directory": {directory}}

	resp := c.requester.Do(ctx, nethttp.MethodGet, clientServerPath(identifier, "files", "upload"), query, nil)

	data := resp.DataMap()
	if signed, ok := data["url"].(string); ok && !strings.Contains(signed, "directory=") {
		separator := "?"
		if strings.Contains(signed, "?") {
			separator = "&"
		}

		patched := make(map[string]any, len(data))
		for key, value := range data {
			patched[key] = value
		}

		patched["url"] = signed + separator + "directory=" + strings.ReplaceAll(url.QueryEscape(directory), "+", "%20")
		resp = resp.WithData(patched)
	}

	return ptero.NewItemResponse(resp)
}

// Upload implements ptero.FilesClient.Upload.
func (c *FilesClient) Upload(ctx context.Context, identifier string, file ptero.UploadFile, directory, signedURL string) *ptero.ActionResponse {
	directory = rootOrSlash(directory)

	form, failure := multipartOf(file, directory)
	if failure != nil {
		return ptero.NewActionResponse(failure)
	}

	if signedURL == "" {
		var resolved *ptero.Response

		signedURL, resolved = c.resolveUploadURL(ctx, identifier, directory)
		if resolved != nil {
			return ptero.NewActionResponse(resolved)
		}
	}

	raw, err := c.uploader.Upload(ctx, signedURL, form)
	if err != nil {
		failed := ptero.TransportFailure(err).WithData(map[string]any{"uploaded": 0, "name": form.FileName})

		return ptero.NewActionResponse(failed)
	}

	resp := &ptero.Response{
		OK:      raw.StatusCode == nethttp.StatusOK || raw.StatusCode == nethttp.StatusNoContent,
		Status:  raw.StatusCode,
		Headers: map[string]string{},
		Raw:     string(raw.Body),
	}

	uploaded := 0
	if resp.OK {
		uploaded = 1
	} else {
		resp.Error = ptero.NewResponse(raw.StatusCode, raw.Headers, raw.Body).Error
	}

	resp.Data = map[string]any{"uploaded": uploaded, "name": form.FileName}

	return ptero.NewActionResponse(resp)
}

// NewUpload implements ptero.FilesClient.NewUpload.
func (c *FilesClient) NewUpload(identifier string) ptero.UploadBuilder {
	return ptero.NewUploadBuilder(c, identifier)
}

// resolveUploadURL asks the panel for a signed URL. A non-nil response is the
// failure to return to the caller.
func (c *FilesClient) resolveUploadURL(ctx context.Context, identifier, directory string) (string, *ptero.Response) {
	signed := c.UploadURL(ctx, identifier, directory)
	if !signed.OK {
		failure := ptero.Failure(signed.Status, signed.Error)
		if failure.Error == "" {
			failure.Error = "Cannot get upload URL"
		}

		failure.Headers = signed.Headers
		failure.Raw = signed.Raw

		return "", failure
	}

	for _, source := range []map[string]any{signed.Attributes(), signed.DataMap()} {
		if value, ok := source["url"].(string); ok && value != "" {
			return value, nil
		}
	}

	failure := ptero.Failure(signed.Status, "Upload URL missing in response")
	failure.Headers = signed.Headers
	failure.Raw = signed.Raw

	return "", failure
}

// multipartOf reads the file into a form. A non-nil response reports a
// local failure with status 0.
func multipartOf(file ptero.UploadFile, directory string) (http.Multipart, *ptero.Response) {
	switch {
	case file.Contents != nil:
		name := file.Name
		if name == "" {
			name = "file"
		}

		return http.Multipart{FileName: name, MIME: file.MIME, Contents: file.Contents, Directory: directory}, nil

	case file.Path != "":
		contents, err := os.ReadFile(file.Path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return http.Multipart{}, ptero.Failure(0, "File not found: "+file.Path)
			}

			return http.Multipart{}, ptero.Failure(0, fmt.Sprintf("Cannot read %s: %v", file.Path, err))
		}

		name := file.Name
		if name == "" {
			name = filepath.Base(file.Path)
		}

		return http.Multipart{FileName: name, MIME: file.MIME, Contents: contents, Directory: directory}, nil

	default:
		return http.Multipart{}, ptero.Failure(0, "Upload item requires path or contents")
	}
}

func rootOrSlash(root string) string {
	if root == "" {
		return constants.DefaultUploadDirectory
	}

	return root
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}

	return values
}
