package ptero_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/ptero/pkg/ptero"
)

type uploadCall struct {
	file      ptero.UploadFile
	directory string
	signedURL string
}

// fakeFiles records uploads and serves a fixed directory listing. Methods the
// builder never calls panic through the nil embedded interface.
type fakeFiles struct {
	ptero.FilesClient

	t       *testing.T
	calls   []uploadCall
	failAt  int
	listing []string
}

func (f *fakeFiles) Upload(_ context.Context, _ string, file ptero.UploadFile, directory, signedURL string) *ptero.ActionResponse {
	f.calls = append(f.calls, uploadCall{file: file, directory: directory, signedURL: signedURL})

	if f.failAt == len(f.calls) {
		return ptero.NewActionResponse(ptero.Failure(http.StatusInternalServerError, "upload failed: "+file.Name))
	}

	return ptero.NewActionResponse(jsonResponse(f.t, map[string]any{"uploaded": 1, "name": file.Name}))
}

func (f *fakeFiles) List(_, directory string) ptero.ListQuery {
	requester := &MockRequester{}
	requester.On("Do", mock.Anything, http.MethodGet, "files/list", mock.Anything, mock.Anything).
		Return(jsonResponse(f.t, listPage(1, 1, f.listing...)))

	return ptero.NewListQuery(requester, "files/list").Param("directory", directory)
}

func TestUploadBuilder_Immutable(t *testing.T) {
	t.Parallel()

	base := ptero.NewUploadBuilder(&fakeFiles{t: t}, "1a2b3c4d")
	assert.Equal(t, "/", base.Directory())

	next := base.Dir("plugins").AddContents("a.txt", []byte("a"), "text/plain")

	assert.Zero(t, base.Count(), "builders are values")
	assert.Equal(t, "/", base.Directory())
	assert.Equal(t, 1, next.Count())
	assert.Equal(t, "plugins", next.Directory())
	assert.Equal(t, "/", next.Dir("").Directory())

	forked := next.AddContents("b.txt", nil, "")
	other := next.AddContents("c.txt", nil, "")

	assert.Equal(t, []string{"a.txt", "b.txt"}, forked.Names())
	assert.Equal(t, []string{"a.txt", "c.txt"}, other.Names())
	assert.Zero(t, forked.Clear().Count())
	assert.Equal(t, 2, forked.Count())
}

func TestUploadBuilder_AddFileAndMany(t *testing.T) {
	t.Parallel()

	builder := ptero.NewUploadBuilder(&fakeFiles{t: t}, "1a2b3c4d").
		AddFile("/tmp/world/level.dat", "", "").
		AddFile("/tmp/server.properties", "props.txt", "text/plain").
		AddMany(
			ptero.UploadFile{Path: "/tmp/eula.txt"},
			ptero.UploadFile{Name: "motd.txt", Contents: []byte("hello")},
			ptero.UploadFile{Contents: []byte("nameless")},
			ptero.UploadFile{Name: "empty"},
		)

	assert.Equal(t, []string{"level.dat", "props.txt", "eula.txt", "motd.txt"}, builder.Names())

	items := builder.Items()
	require.Len(t, items, 4)
	assert.Equal(t, "/tmp/world/level.dat", items[0].Path)
	assert.Equal(t, "text/plain", items[1].MIME)
	assert.Equal(t, []byte("hello"), items[3].Contents)

	items[0].Name = "changed"
	assert.Equal(t, "level.dat", builder.Names()[0], "Items returns a copy")

	empty := builder.Clear().AddContents("blank", nil, "").Items()
	require.Len(t, empty, 1)
	assert.NotNil(t, empty[0].Contents, "nil contents become an empty file")
}

func TestUploadBuilder_SignedURLOnlyForFirstFile(t *testing.T) {
	t.Parallel()

	files := &fakeFiles{t: t}
	resp := ptero.NewUploadBuilder(files, "1a2b3c4d").
		Dir("/config").
		SignedURL("https://node.example.com/upload/file?token=preset").
		AddContents("a.txt", []byte("a"), "").
		AddContents("b.txt", []byte("b"), "").
		Send(context.Background(), "")

	require.True(t, resp.OK)
	require.Len(t, files.calls, 2)
	assert.Equal(t, "https://node.example.com/upload/file?token=preset", files.calls[0].signedURL)
	assert.Empty(t, files.calls[1].signedURL)
	assert.Equal(t, "/config", files.calls[1].directory)
	assert.Equal(t, "b.txt", resp.DataMap()["name"])
}

func TestUploadBuilder_SendArgumentOverridesPreset(t *testing.T) {
	t.Parallel()

	files := &fakeFiles{t: t}
	ptero.NewUploadBuilder(files, "1a2b3c4d").
		SignedURL("https://preset").
		AddContents("a.txt", []byte("a"), "").
		Send(context.Background(), "https://given")

	require.Len(t, files.calls, 1)
	assert.Equal(t, "https://given", files.calls[0].signedURL)
}

func TestUploadBuilder_SendStopsAtFirstFailure(t *testing.T) {
	t.Parallel()

	files := &fakeFiles{t: t, failAt: 2}
	resp := ptero.NewUploadBuilder(files, "1a2b3c4d").
		AddContents("a.txt", []byte("a"), "").
		AddContents("b.txt", []byte("b"), "").
		AddContents("c.txt", []byte("c"), "").
		Send(context.Background(), "")

	assert.False(t, resp.OK)
	assert.Equal(t, "upload failed: b.txt", resp.Error)
	assert.Len(t, files.calls, 2)
}

func TestUploadBuilder_SendEmptyQueue(t *testing.T) {
	t.Parallel()

	resp := ptero.NewUploadBuilder(&fakeFiles{t: t}, "1a2b3c4d").Send(context.Background(), "")

	assert.False(t, resp.OK)
	assert.Zero(t, resp.Status)
	assert.Equal(t, "No items to upload", resp.Error)
}

func TestUploadBuilder_SendAndVerify(t *testing.T) {
	t.Parallel()

	t.Run("all present", func(t *testing.T) {
		t.Parallel()

		files := &fakeFiles{t: t, listing: []string{"a.txt", "b.txt", "other"}}
		resp, verification := ptero.NewUploadBuilder(files, "1a2b3c4d").
			AddContents("a.txt", []byte("a"), "").
			AddContents("b.txt", []byte("b"), "").
			SendAndVerify(context.Background(), "")

		assert.True(t, resp.OK)
		assert.True(t, verification.Verified)
		assert.Empty(t, verification.Missing)
		assert.Equal(t, true, resp.DataMap()["verified"])
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		files := &fakeFiles{t: t, listing: []string{"a.txt"}}
		resp, verification := ptero.NewUploadBuilder(files, "1a2b3c4d").
			AddContents("a.txt", []byte("a"), "").
			AddContents("b.txt", []byte("b"), "").
			SendAndVerify(context.Background(), "")

		assert.False(t, resp.OK)
		assert.Equal(t, "Uploaded but not all files found on panel", resp.Error)
		assert.Equal(t, "Uploaded but not all files found on panel", resp.Explain())
		assert.False(t, verification.Verified)
		assert.Equal(t, []string{"b.txt"}, verification.Missing)
	})

	t.Run("failed send", func(t *testing.T) {
		t.Parallel()

		files := &fakeFiles{t: t, failAt: 1}
		resp, verification := ptero.NewUploadBuilder(files, "1a2b3c4d").
			AddContents("a.txt", []byte("a"), "").
			SendAndVerify(context.Background(), "")

		assert.False(t, resp.OK)
		assert.Equal(t, ptero.UploadVerification{}, verification)
	})
}
