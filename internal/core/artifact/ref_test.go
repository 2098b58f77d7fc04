package artifact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRef(t *testing.T) {
	cases := []struct {
		in   string
		want Ref
	}{
		{"tokenizer.json", Ref{Raw: "tokenizer.json", Scheme: SchemeFile, Path: "tokenizer.json"}},
		{" ./models/../lstm.json.gz ", Ref{Raw: "./models/../lstm.json.gz", Scheme: SchemeFile, Path: "lstm.json.gz", Gzip: true}},
		{"file:///srv/m.json", Ref{Raw: "file:///srv/m.json", Scheme: SchemeFile, Path: "/srv/m.json"}},
		{"s3://models/v1/model.JSON.GZ", Ref{Raw: "s3://models/v1/model.JSON.GZ", Scheme: SchemeS3, Bucket: "models", Path: "v1/model.JSON.GZ", Gzip: true}},
		{"https://cdn.test/m/vec.json.gz?sig=1", Ref{Raw: "https://cdn.test/m/vec.json.gz?sig=1", Scheme: SchemeHTTP, Path: "https://cdn.test/m/vec.json.gz?sig=1", Gzip: true}},
		{"http://cdn.test/m/model.json", Ref{Raw: "http://cdn.test/m/model.json", Scheme: SchemeHTTP, Path: "http://cdn.test/m/model.json"}},
	}
	for _, c := range cases {
		got, err := ParseRef(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, got, c.in)
	}
}

func TestParseRef_Errors(t *testing.T) {
	for _, in := range []string{"", "   ", "s3://", "s3://bucket", "s3://bucket/", "s3:///key", "ftp://host/model.json", "https:///nohost.json"} {
		_, err := ParseRef(in)
		assert.Error(t, err, in)
	}
}

func TestRef_Name(t *testing.T) {
	r, err := ParseRef("s3://b/a/b/c.json")
	require.NoError(t, err)
	assert.Equal(t, "c.json", r.Name())
	assert.Equal(t, "s3://b/a/b/c.json", r.String())

	r, err = ParseRef("/srv/models/tokenizer.json")
	require.NoError(t, err)
	assert.Equal(t, "tokenizer.json", r.Name())

	r, err = ParseRef("https://cdn.test/m/vec.json.gz?sig=1")
	require.NoError(t, err)
	assert.Equal(t, "vec.json.gz", r.Name())
}
