package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanName(t *testing.T) {
	cases := map[string]string{
		"photo.png":            "photo.png",
		"../../etc/passwd":     "passwd",
		`C:\Users\me\pic.jpg`:  "pic.jpg",
		"nested/dir/avatar.gi": "avatar.gi",
	}
	for in, want := range cases {
		got, err := cleanName(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, bad := range []string{"", "..", "/", "  "} {
		_, err := cleanName(bad)
		assert.ErrorIs(t, err, ErrInvalidFilename, bad)
	}
}

func TestLocal_Save(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "assets")
	l, err := NewLocal(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, l.Dir())

	path, err := l.Save(context.Background(), "../p1.jpeg", strings.NewReader("jpeg-bytes"), 10, "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "p1.jpeg", path)

	b, err := os.ReadFile(filepath.Join(dir, "p1.jpeg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(b))

	// same name overwrites
	_, err = l.Save(context.Background(), "p1.jpeg", strings.NewReader("v2"), 2, "image/jpeg")
	require.NoError(t, err)
	b, err = os.ReadFile(filepath.Join(dir, "p1.jpeg"))
	require.NoError(t, err)
	assert.Equal(t, "v2", string(b))
}

type stubPutter struct {
	input *s3.PutObjectInput
	body  string
	err   error
}

func (s *stubPutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	s.input = in
	if in.Body != nil {
		b, _ := io.ReadAll(in.Body)
		s.body = string(b)
	}
	return &s3.PutObjectOutput{}, s.err
}

func TestS3_Save(t *testing.T) {
	putter := &stubPutter{}
	st := newS3(putter, "pictures", "https://cdn.example.com/")
	st.newKey = func(name string) string { return "fixed-" + name }

	path, err := st.Save(context.Background(), "dir/pic.png", strings.NewReader("png"), 3, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/fixed-pic.png", path)

	require.NotNil(t, putter.input)
	assert.Equal(t, "pictures", aws.ToString(putter.input.Bucket))
	assert.Equal(t, "fixed-pic.png", aws.ToString(putter.input.Key))
	assert.Equal(t, "image/png", aws.ToString(putter.input.ContentType))
	assert.Equal(t, int64(3), aws.ToInt64(putter.input.ContentLength))
	assert.Equal(t, "png", putter.body)
}

func TestS3_SaveWithoutPublicURL(t *testing.T) {
	st := newS3(&stubPutter{}, "pictures", "")
	st.newKey = func(name string) string { return "k-" + name }

	path, err := st.Save(context.Background(), "a.png", strings.NewReader(""), 0, "")
	require.NoError(t, err)
	assert.Equal(t, "k-a.png", path)
}

func TestS3_SaveError(t *testing.T) {
	st := newS3(&stubPutter{err: errors.New("access denied")}, "pictures", "")

	_, err := st.Save(context.Background(), "a.png", strings.NewReader("x"), 1, "image/png")
	assert.Error(t, err)
}

func TestS3_DefaultKeyIsUnique(t *testing.T) {
	st := newS3(&stubPutter{}, "pictures", "")
	a := st.newKey("a.png")
	b := st.newKey("a.png")
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasSuffix(a, "-a.png"))
}
