package ocr

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/visiting-cards/constants"
)

type call struct {
	name string
	args []string
}

type stubRunner struct {
	mu     sync.Mutex
	calls  []call
	handle func(name string, args []string) ([]byte, []byte, error)
}

func (s *stubRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	s.mu.Lock()
	s.calls = append(s.calls, call{name: name, args: args})
	s.mu.Unlock()
	return s.handle(name, args)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestExtractPlainText(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "card.txt", "Jane Doe\r\n\r\n\r\n\r\nDirector\t\tInitech   LLC  \n")

	r := &stubRunner{handle: func(string, []string) ([]byte, []byte, error) {
		t.Fatal("runner must not be called for text files")
		return nil, nil, nil
	}}
	res, err := NewExtractor(Config{}, nil, WithRunner(r)).Extract(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\n\nDirector Initech LLC", res.Text)
	assert.Equal(t, constants.TXT, res.SourceType)
	assert.Equal(t, "plain-text", res.Method)
}

func TestExtractImageUsesTesseract(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "card.PNG", "not really a png")

	r := &stubRunner{handle: func(name string, args []string) ([]byte, []byte, error) {
		return []byte("Jane Doe\n-----\njane@initech.com\n+1 415 555 1234\n"), nil, nil
	}}
	e := NewExtractor(Config{TesseractLang: "eng+deu", PSM: 11}, nil, WithRunner(r))
	res, err := e.Extract(context.Background(), p)
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe\n\njane@initech.com\n+1 415 555 1234", res.Text)
	assert.Equal(t, constants.IMAGE, res.SourceType)
	assert.Equal(t, "image-ocr", res.Method)
	assert.Equal(t, "eng+deu", res.Language)
	assert.Greater(t, res.Confidence, float32(0.5))

	require.Len(t, r.calls, 1)
	assert.Equal(t, "tesseract", r.calls[0].name)
	assert.Equal(t, []string{p, "stdout", "-l", "eng+deu", "--psm", "11"}, r.calls[0].args)
}

func TestExtractImageTSVConfidence(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "card.jpg", "x")

	tsv := strings.Join([]string{
		"level\tpage_num\tblock_num\tpar_num\tline_num\tword_num\tleft\ttop\twidth\theight\tconf\ttext",
		"1\t1\t0\t0\t0\t0\t0\t0\t100\t100\t-1\t",
		"5\t1\t1\t1\t1\t1\t10\t10\t50\t10\t90\tJane",
		"5\t1\t1\t1\t1\t2\t70\t10\t50\t10\t70\tDoe",
	}, "\n")
	r := &stubRunner{handle: func(_ string, args []string) ([]byte, []byte, error) {
		if args[len(args)-1] == "tsv" {
			return []byte(tsv), nil, nil
		}
		return []byte("Jane Doe"), nil, nil
	}}
	res, err := NewExtractor(Config{EnableTSVConfidence: true}, nil, WithRunner(r)).Extract(context.Background(), p)
	require.NoError(t, err)
	assert.Len(t, r.calls, 2)
	assert.InDelta(t, 0.7*0.8+0.3*heuristicConfidence("Jane Doe"), res.Confidence, 0.001)
}

func TestExtractImageRunnerError(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "card.jpeg", "x")
	r := &stubRunner{handle: func(string, []string) ([]byte, []byte, error) {
		return nil, []byte("Error opening data file"), errors.New("exit status 1")
	}}
	res, err := NewExtractor(Config{}, nil, WithRunner(r)).Extract(context.Background(), p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tesseract")
	assert.Equal(t, []string{"Error opening data file"}, res.Warnings)
}

func TestExtractUnsupportedExtension(t *testing.T) {
	_, err := NewExtractor(Config{}, nil).Extract(context.Background(), "card.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported extension")
}

func TestExtractHEICConvertsAndCaches(t *testing.T) {
	dir := t.TempDir()
	cache := filepath.Join(dir, "cache")
	p := writeFile(t, dir, "card.heic", "heic bytes")

	r := &stubRunner{handle: func(name string, args []string) ([]byte, []byte, error) {
		if name == "magick" {
			return nil, nil, os.WriteFile(args[len(args)-1], []byte("png"), 0o644)
		}
		return []byte("Jane Doe"), nil, nil
	}}
	e := NewExtractor(Config{HeicConverter: "magick", ArtifactCacheDir: cache}, nil, WithRunner(r))
	ctx := WithContentHash(context.Background(), "abc123")

	_, err := e.Extract(ctx, p)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(cache, "abc123.png"))

	_, err = e.Extract(ctx, p)
	require.NoError(t, err)

	var converts int
	for _, c := range r.calls {
		if c.name == "magick" {
			converts++
		}
	}
	assert.Equal(t, 1, converts, "second run should reuse the cached png")
	assert.Equal(t, filepath.Join(cache, "abc123.png"), r.calls[len(r.calls)-1].args[0])
}

func TestExtractHEICWithoutConverter(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "card.heif", "x")
	_, err := NewExtractor(Config{}, nil).Extract(context.Background(), p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HEIC not supported")
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"  a  \r\nb\t\tc ", "a\nb c"},
		{"a\n\n\n\n\nb", "a\n\nb"},
		{"Suite 01", "Suite 01"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "input %q", tt.in)
	}
}

func TestHeuristicConfidence(t *testing.T) {
	assert.Equal(t, float32(0), heuristicConfidence("  "))
	low := heuristicConfidence("blurry")
	high := heuristicConfidence("Jane Doe\nDirector\nInitech LLC\njane@initech.com\n+1 415 555 1234")
	assert.Less(t, low, high)
	assert.LessOrEqual(t, high, float32(1))
}
