package xml

import (
	"strings"
	"testing"

	"github.com/gocodec/gocodec/format"
)

func TestReaderFlattensObjectOfDistinctChildren(t *testing.T) {
	doc := []byte(`<person><name>Ada</name><age>36</age></person>`)
	r, err := NewReader(doc)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	if err := r.StartObject(); err != nil {
		t.Fatalf("StartObject: %v", err)
	}
	name, err := r.ReadFieldName()
	if err != nil || name != "name" {
		t.Fatalf("ReadFieldName = (%q, %v), want name", name, err)
	}
	s, err := r.ReadString()
	if err != nil || s != "Ada" {
		t.Fatalf("ReadString = (%q, %v), want Ada", s, err)
	}
	name, err = r.ReadFieldName()
	if err != nil || name != "age" {
		t.Fatalf("ReadFieldName = (%q, %v), want age", name, err)
	}
	age, err := r.ReadLong()
	if err != nil || age != 36 {
		t.Fatalf("ReadLong = (%d, %v), want 36", age, err)
	}
	if err := r.EndObject(); err != nil {
		t.Fatalf("EndObject: %v", err)
	}
}

func TestReaderFlattensRepeatedTagsAsArray(t *testing.T) {
	doc := []byte(`<tags><item>a</item><item>b</item><item>c</item></tags>`)
	r, err := NewReader(doc)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	if err := r.StartArray(); err != nil {
		t.Fatalf("StartArray: %v", err)
	}
	var got []string
	for r.NotEOF() {
		s, err := r.ReadString()
		if err != nil {
			t.Fatalf("ReadString: %v", err)
		}
		got = append(got, s)
	}
	if err := r.EndArray(); err != nil {
		t.Fatalf("EndArray: %v", err)
	}
	want := []string{"a", "b", "c"}
	for i, w := range want {
		if got[i] != w {
			t.Fatalf("got[%d] = %q, want %q", i, got[i], w)
		}
	}
}

func TestReaderNilAttribute(t *testing.T) {
	doc := []byte(`<home nil="true"></home>`)
	r, err := NewReader(doc)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	if err := r.ReadNull(); err != nil {
		t.Fatalf("ReadNull: %v", err)
	}
}

func TestReaderSniffsScalarTypes(t *testing.T) {
	cases := []struct {
		doc  string
		want format.EventType
	}{
		{`<v>true</v>`, format.EventBool},
		{`<v>42</v>`, format.EventNumber},
		{`<v>3.5</v>`, format.EventNumber},
		{`<v>hello</v>`, format.EventString},
		{`<v></v>`, format.EventString},
	}
	for _, c := range cases {
		r, err := NewReader([]byte(c.doc))
		if err != nil {
			t.Fatalf("NewReader(%s): %v", c.doc, err)
		}
		p, err := r.Peek(0)
		if err != nil {
			t.Fatalf("Peek(0): %v", err)
		}
		if p.Type != c.want {
			t.Errorf("doc %q: Peek(0).Type = %v, want %v", c.doc, p.Type, c.want)
		}
	}
}

func TestWriterRendersObjectAndArray(t *testing.T) {
	w := NewWriter("person", "tag")
	w.StartObject()
	w.WriteField("name")
	w.WriteString("Ada")
	w.WriteField("tags")
	w.StartArray()
	w.WriteString("x")
	w.WriteString("y")
	w.EndArray()
	w.EndObject()

	out, err := w.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	s := string(out)
	if !strings.Contains(s, "<person>") || !strings.Contains(s, "<name>Ada</name>") {
		t.Fatalf("rendered document missing expected elements: %s", s)
	}
	if !strings.Contains(s, "<tags><tag>x</tag><tag>y</tag></tags>") {
		t.Fatalf("rendered array shape unexpected: %s", s)
	}
}

func TestWriterRendersNilAttribute(t *testing.T) {
	w := NewWriter("home", "item")
	w.WriteNull()
	out, err := w.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	if !strings.Contains(string(out), `nil="true"`) {
		t.Fatalf("rendered document missing nil attribute: %s", out)
	}
}

func TestWriterThenReaderRoundTrip(t *testing.T) {
	w := NewWriter("doc", "item")
	w.StartObject()
	w.WriteField("count")
	w.WriteInt(3)
	w.WriteField("ok")
	w.WriteBool(true)
	w.EndObject()
	out, err := w.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}

	r, err := NewReader(out)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	if err := r.StartObject(); err != nil {
		t.Fatalf("StartObject: %v", err)
	}
	name, _ := r.ReadFieldName()
	if name != "count" {
		t.Fatalf("first field = %q, want count", name)
	}
	n, err := r.ReadLong()
	if err != nil || n != 3 {
		t.Fatalf("ReadLong = (%d, %v), want 3", n, err)
	}
	name, _ = r.ReadFieldName()
	if name != "ok" {
		t.Fatalf("second field = %q, want ok", name)
	}
	b, err := r.ReadBool()
	if err != nil || !b {
		t.Fatalf("ReadBool = (%v, %v), want true", b, err)
	}
}
