package extension

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMetadata(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Metadata
	}{
		{
			"all fields",
			`{"name":"YouTube","author":"someone","description":"Embeds videos","version":"1.2","entrypoint":"YouTube","type":"user"}`,
			Metadata{Name: "YouTube", Author: "someone", Description: "Embeds videos", Version: "1.2", Entrypoint: "YouTube", Type: "user"},
		},
		{
			"only required fields",
			`{"name":"Minimal","entrypoint":"Minimal"}`,
			Metadata{Name: "Minimal", Entrypoint: "Minimal"},
		},
		{
			"integer version normalized",
			`{"name":"Foo","entrypoint":"Foo","version":2}`,
			Metadata{Name: "Foo", Entrypoint: "Foo", Version: "2"},
		},
		{
			"float version normalized",
			`{"name":"Foo","entrypoint":"Foo","version":1.5}`,
			Metadata{Name: "Foo", Entrypoint: "Foo", Version: "1.5"},
		},
		{
			"system type",
			`{"name":"Foo","entrypoint":"Foo","type":"system"}`,
			Metadata{Name: "Foo", Entrypoint: "Foo", Type: "system"},
		},
		{
			"unknown keys ignored",
			`{"name":"Foo","entrypoint":"Foo","homepage":"https://example.com","stars":42}`,
			Metadata{Name: "Foo", Entrypoint: "Foo"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			md, err := ParseMetadata([]byte(test.input))
			require.NoError(t, err)
			assert.Equal(t, test.expected, *md)
		})
	}
}

func TestParseMetadataInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing name", `{"entrypoint":"Foo"}`},
		{"empty name", `{"name":"","entrypoint":"Foo"}`},
		{"missing entrypoint", `{"name":"Foo"}`},
		{"empty entrypoint", `{"name":"Foo","entrypoint":""}`},
		{"bad type", `{"name":"Foo","entrypoint":"Foo","type":"global"}`},
		{"version not a scalar", `{"name":"Foo","entrypoint":"Foo","version":["1"]}`},
		{"not json", `name = Foo`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			md, err := ParseMetadata([]byte(test.input))
			assert.Nil(t, md)
			var verr *ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
}

func TestReadMetadata(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, MetadataFile), []byte(`{"name":"Foo","entrypoint":"Foo","version":"0.3"}`), 0644))

	md, err := ReadMetadata(dir)
	require.NoError(t, err)
	assert.Equal(t, "Foo", md.Name)
	assert.Equal(t, "0.3", md.Version)

	_, err = ReadMetadata(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}
