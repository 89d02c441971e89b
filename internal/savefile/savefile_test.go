package savefile

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultName(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	ts := time.Date(2023, 6, 19, 16, 22, 33, 999, loc)
	name := DefaultName(ts)
	assert.Equal(t, "screenshot_20230619_142233", name)
	assert.LessOrEqual(t, len(name), MaxNameLen)
}

func TestDefaultNameAsync(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	name, err := DefaultNameAsync(context.Background(), func() time.Time { return ts })
	require.NoError(t, err)
	assert.Equal(t, "screenshot_20240102_030405", name)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = DefaultNameAsync(ctx, time.Now)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResolveDirFallsBackToHome(t *testing.T) {
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	existing := t.TempDir()
	assert.Equal(t, existing, ResolveDir(existing))

	missing := filepath.Join(existing, "does", "not", "exist")
	got := ResolveDir(missing)
	assert.Equal(t, home, got)
	assert.Equal(t, home, ResolveDir(""))
	assert.Equal(t, home, ResolveDir("~"))
}

func TestFormatFor(t *testing.T) {
	assert.Equal(t, "PNG", FormatFor("a.png").Name)
	assert.Equal(t, "JPEG", FormatFor("a.JPG").Name)
	assert.Equal(t, "JPEG", FormatFor("a.jpeg").Name)
	assert.Equal(t, "GIF", FormatFor("dir/a.gif").Name)
	assert.Equal(t, "PNG", FormatFor("noext").Name)
}

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.SetRGBA(1, 1, color.RGBA{R: 200, A: 255})
	return img
}

func TestWriteFormats(t *testing.T) {
	dir := t.TempDir()
	img := testImage()

	var encoded bytes.Buffer
	require.NoError(t, png.Encode(&encoded, img))

	pngPath := filepath.Join(dir, "a.png")
	require.NoError(t, Write(pngPath, img, encoded.Bytes()))
	data, err := os.ReadFile(pngPath)
	require.NoError(t, err)
	assert.Equal(t, encoded.Bytes(), data)

	jpgPath := filepath.Join(dir, "a.jpg")
	require.NoError(t, Write(jpgPath, img, encoded.Bytes()))
	f, err := os.Open(jpgPath)
	require.NoError(t, err)
	_, err = jpeg.Decode(f)
	f.Close()
	require.NoError(t, err)

	gifPath := filepath.Join(dir, "a.gif")
	require.NoError(t, Write(gifPath, img, nil))
	f, err = os.Open(gifPath)
	require.NoError(t, err)
	decoded, err := gif.Decode(f)
	f.Close()
	require.NoError(t, err)
	assert.Equal(t, img.Bounds().Size(), decoded.Bounds().Size())
}

func TestWriteErrors(t *testing.T) {
	assert.Error(t, Write(filepath.Join(t.TempDir(), "x.png"), nil, nil))
	assert.Error(t, Write(filepath.Join(t.TempDir(), "missing", "x.png"), testImage(), nil))
}

func TestDialogs(t *testing.T) {
	dir := t.TempDir()
	path, ok, err := AutoDialog{}.SaveFile("shot", dir)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "shot.png"), path)

	_, _, err = AutoDialog{}.SaveFile("shot", filepath.Join(dir, "nope"))
	assert.Error(t, err)

	_, ok, err = FixedDialog{}.SaveFile("shot", dir)
	require.NoError(t, err)
	assert.False(t, ok)

	path, ok, _ = FixedDialog{Path: dir}.SaveFile("shot", "~")
	assert.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "shot.png"), path)

	path, _, _ = FixedDialog{Path: "/tmp/out.gif"}.SaveFile("shot", dir)
	assert.Equal(t, "/tmp/out.gif", path)
}
