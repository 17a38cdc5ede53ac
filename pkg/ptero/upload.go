package ptero

import (
	"context"
	"path/filepath"
	"slices"
)

// UploadFile is one file queued for upload. Either Path or Contents must be
// set; Contents wins when both are.
type UploadFile struct {
	// Name is the file name on the server.
	Name string

	// Path is a local file to read.
	Path string

	// Contents is an in-memory file. A non-nil empty slice uploads an empty
	// file.
	Contents []byte

	// MIME is the content type. Empty means application/octet-stream.
	MIME string
}

// UploadBuilder queues files for one server and uploads them one request at
// a time. It is a value type; every method returns a new builder.
//
// A signed URL given through SignedURL or Send is only used for the first
// file. Later files fetch a fresh URL because the panel treats them as
// single use.
type UploadBuilder struct {
	files      FilesClient
	identifier string
	directory  string
	signedURL  string
	items      []UploadFile
}

// NewUploadBuilder returns an empty builder targeting "/".
func NewUploadBuilder(files FilesClient, identifier string) UploadBuilder {
	return UploadBuilder{files: files, identifier: identifier, directory: "/"}
}

// Dir sets the remote directory as given. An empty directory means "/".
func (b UploadBuilder) Dir(directory string) UploadBuilder {
	if directory == "" {
		directory = "/"
	}

	b.directory = directory

	return b
}

// SignedURL presets the upload URL for the first file.
func (b UploadBuilder) SignedURL(url string) UploadBuilder {
	b.signedURL = url

	return b
}

// AddFile queues a local file. An empty asName uses the base name of
// localPath.
func (b UploadBuilder) AddFile(localPath, asName, mime string) UploadBuilder {
	if asName == "" {
		asName = filepath.Base(localPath)
	}

	return b.add(UploadFile{Name: asName, Path: localPath, MIME: mime})
}

// AddContents queues an in-memory file.
func (b UploadBuilder) AddContents(name string, contents []byte, mime string) UploadBuilder {
	if contents == nil {
		contents = []byte{}
	}

	return b.add(UploadFile{Name: name, Contents: contents, MIME: mime})
}

// AddMany queues several files. Entries with a Path go through AddFile;
// entries with Contents need a Name. Anything else is skipped.
func (b UploadBuilder) AddMany(files ...UploadFile) UploadBuilder {
	for _, file := range files {
		switch {
		case file.Path != "":
			b = b.AddFile(file.Path, file.Name, file.MIME)
		case file.Contents != nil && file.Name != "":
			b = b.AddContents(file.Name, file.Contents, file.MIME)
		}
	}

	return b
}

// Clear empties the queue.
func (b UploadBuilder) Clear() UploadBuilder {
	b.items = nil

	return b
}

// Count returns the number of queued files.
func (b UploadBuilder) Count() int {
	return len(b.items)
}

// Directory returns the remote directory.
func (b UploadBuilder) Directory() string {
	return b.directory
}

// Items returns a copy of the queue.
func (b UploadBuilder) Items() []UploadFile {
	return slices.Clone(b.items)
}

// Names returns the target names in queue order.
func (b UploadBuilder) Names() []string {
	names := make([]string, len(b.items))
	for i, item := range b.items {
		names[i] = item.Name
	}

	return names
}

// Send uploads every queued file and stops at the first failure, returning
// that failure. Otherwise it returns the last upload's result. An empty
// queue fails with status 0.
func (b UploadBuilder) Send(ctx context.Context, signedURL string) *ActionResponse {
	if signedURL == "" {
		signedURL = b.signedURL
	}

	var last *ActionResponse

	for i, item := range b.items {
		url := ""
		if i == 0 {
			url = signedURL
		}

		last = b.files.Upload(ctx, b.identifier, item, b.directory, url)
		if !last.OK {
			return last
		}
	}

	if last == nil {
		return NewActionResponse(Failure(0, "No items to upload"))
	}

	return last
}

// UploadVerification is the outcome of checking a directory after upload.
type UploadVerification struct {
	Verified bool     `json:"verified" yaml:"verified"`
	Missing  []string `json:"missing"  yaml:"missing"`
}

// SendAndVerify runs Send and then lists the directory to confirm every
// queued name exists. The response Data holds the same verification as a
// map. A failed Send is returned as is with a zero verification.
func (b UploadBuilder) SendAndVerify(ctx context.Context, signedURL string) (*ActionResponse, UploadVerification) {
	sent := b.Send(ctx, signedURL)
	if !sent.OK {
		return sent, UploadVerification{}
	}

	listing := b.files.List(b.identifier, b.directory).Send(ctx)

	present := map[string]struct{}{}
	for _, attrs := range listing.ItemAttributes() {
		if name, ok := attrs["name"].(string); ok {
			present[name] = struct{}{}
		}
	}

	verification := UploadVerification{Missing: []string{}}

	for _, name := range b.Names() {
		if name == "" {
			continue
		}

		if _, ok := present[name]; !ok {
			verification.Missing = append(verification.Missing, name)
		}
	}

	verification.Verified = len(verification.Missing) == 0

	resp := sent.WithData(map[string]any{"verified": verification.Verified, "missing": verification.Missing})
	if !verification.Verified {
		resp.OK = false
		resp.Error = "Uploaded but not all files found on panel"
	}

	return NewActionResponse(resp), verification
}

func (b UploadBuilder) add(file UploadFile) UploadBuilder {
	items := make([]UploadFile, len(b.items), len(b.items)+1)
	copy(items, b.items)
	b.items = append(items, file)

	return b
}
