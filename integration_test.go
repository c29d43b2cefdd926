package gocodec_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gocodec/gocodec"
	"github.com/gocodec/gocodec/format"
	"github.com/gocodec/gocodec/format/binary"
	gcjson "github.com/gocodec/gocodec/format/json"
	"github.com/gocodec/gocodec/format/msgpack"
	"github.com/gocodec/gocodec/format/xml"
)

type Tag struct {
	Key   string
	Value string
}

type Document struct {
	Title string
	Count int32
	Tags  []Tag
}

var sample = Document{
	Title: "report",
	Count: 2,
	Tags:  []Tag{{Key: "env", Value: "prod"}, {Key: "owner", Value: "ops"}},
}

func TestEveryFormatAdapterRoundTripsTheSameValueThroughTheCore(t *testing.T) {
	core := gocodec.New()

	adapters := map[string]func() (format.Writer, func([]byte) (format.Reader, error)){
		"json-stream": func() (format.Writer, func([]byte) (format.Reader, error)) {
			w, err := gcjson.NewStreamWriter("")
			if err != nil {
				t.Fatalf("NewStreamWriter: %v", err)
			}
			return w, func(b []byte) (format.Reader, error) { return gcjson.NewStreamReader(b) }
		},
		"json-dom": func() (format.Writer, func([]byte) (format.Reader, error)) {
			return gcjson.NewDOMWriter(""), func(b []byte) (format.Reader, error) { return gcjson.NewDOMReader(b) }
		},
		"xml": func() (format.Writer, func([]byte) (format.Reader, error)) {
			return xml.NewWriter("document", "tag"), func(b []byte) (format.Reader, error) { return xml.NewReader(b) }
		},
		"binary": func() (format.Writer, func([]byte) (format.Reader, error)) {
			return binary.NewWriter(), func(b []byte) (format.Reader, error) { return binary.NewReader(b) }
		},
		"msgpack": func() (format.Writer, func([]byte) (format.Reader, error)) {
			return msgpack.NewWriter(), func(b []byte) (format.Reader, error) { return msgpack.NewReader(b) }
		},
	}

	for name, makeAdapter := range adapters {
		t.Run(name, func(t *testing.T) {
			w, makeReader := makeAdapter()
			if err := gocodec.Encode(core, sample, w); err != nil {
				t.Fatalf("Encode: %v", err)
			}

			data, err := bytesOf(w)
			if err != nil {
				t.Fatalf("rendering bytes: %v", err)
			}

			r, err := makeReader(data)
			if err != nil {
				t.Fatalf("building reader: %v", err)
			}
			defer r.Close()

			got, err := gocodec.Decode[Document](core, r)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if diff := cmp.Diff(sample, got); diff != "" {
				t.Fatalf("round-trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// bytesOf renders whichever writer kind produced w; each adapter exposes its
// own Bytes() with a slightly different signature ([]byte vs ([]byte, error)).
func bytesOf(w format.Writer) ([]byte, error) {
	switch v := w.(type) {
	case interface{ Bytes() ([]byte, error) }:
		return v.Bytes()
	case interface{ Bytes() []byte }:
		return v.Bytes(), nil
	default:
		panic("bytesOf: writer does not expose Bytes()")
	}
}
