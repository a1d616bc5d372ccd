package translations_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tilsley/docstatus/apps/server/internal/translations"
)

func ptr[T any](v T) *T { return &v }

func TestFileDescriptor_Decode(t *testing.T) {
	tests := []struct {
		name    string
		file    translations.FileDescriptor
		want    string
		wantErr bool
	}{
		{
			name: "base64",
			file: translations.FileDescriptor{Path: "a", Encoding: "base64", Content: ptr("67KI7JetOiDtmY3quLjrj5kK")},
			want: "번역: 홍길동\n",
		},
		{
			name: "wrapped at sixty columns",
			file: translations.FileDescriptor{Path: "a", Encoding: "base64", Content: ptr("67KI7Jet\nOiDtmY3q\nuLjrj5kK\n")},
			want: "번역: 홍길동\n",
		},
		{
			name: "encoding omitted",
			file: translations.FileDescriptor{Path: "a", Content: ptr("aGk=")},
			want: "hi",
		},
		{
			name: "empty file",
			file: translations.FileDescriptor{Path: "a", Encoding: "base64", Content: ptr("")},
			want: "",
		},
		{name: "no content", file: translations.FileDescriptor{Path: "a", Encoding: "base64"}, wantErr: true},
		{name: "bad base64", file: translations.FileDescriptor{Path: "a", Encoding: "base64", Content: ptr("%%%")}, wantErr: true},
		{name: "unknown encoding", file: translations.FileDescriptor{Path: "a", Encoding: "none", Content: ptr("x")}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.file.Decode()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFetchResult_IsDir(t *testing.T) {
	assert.True(t, (&translations.FetchResult{}).IsDir())
	assert.True(t, (&translations.FetchResult{Entries: []translations.Entry{{Name: "a"}}}).IsDir())
	assert.False(t, (&translations.FetchResult{File: &translations.FileDescriptor{}}).IsDir())
}

func TestNode_JSONShape(t *testing.T) {
	n := translations.Node{
		Name: "index.md", Path: "a/index.md", URL: "https://github.com/o/r/blob/master/a/index.md",
		Status: translations.StatusGreen, Children: []*translations.Node{},
	}

	data, err := json.Marshal(n)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"name": "index.md",
		"path": "a/index.md",
		"url": "https://github.com/o/r/blob/master/a/index.md",
		"status": "green",
		"isDir": false,
		"children": []
	}`, string(data))
}

func TestErrors(t *testing.T) {
	cause := errors.New("connection reset")

	assert.Equal(t, `fetch "a/b": remote returned 404`, translations.FetchError{Path: "a/b", StatusCode: 404}.Error())
	assert.Equal(t, `fetch "a/b": connection reset`, translations.FetchError{Path: "a/b", Err: cause}.Error())
	assert.ErrorIs(t, translations.FetchError{Path: "a/b", Err: cause}, cause)
	assert.Equal(t, "configuration: GITHUB_TOKEN is not set",
		translations.ConfigurationError{Field: "GITHUB_TOKEN", Reason: "is not set"}.Error())
	assert.Contains(t, translations.ShapeError{Path: "x", Expected: "directory listing"}.Error(), "directory listing")
}
