package main

import "testing"

func TestNewReaderDispatchesOnFormatName(t *testing.T) {
	cases := []struct {
		format string
		data   []byte
	}{
		{"json", []byte(`{"a":1}`)},
		{"jsonstream", []byte(`{"a":1}`)},
	}
	for _, c := range cases {
		r, err := newReader(c.format, c.data)
		if err != nil {
			t.Fatalf("newReader(%q): %v", c.format, err)
		}
		if r == nil {
			t.Fatalf("newReader(%q) returned nil reader", c.format)
		}
	}
}

func TestNewReaderRejectsUnknownFormat(t *testing.T) {
	if _, err := newReader("yaml", nil); err == nil {
		t.Fatalf("newReader(yaml) = nil error, want error for unsupported format")
	}
}

func TestFixturesRegistersKnownTypes(t *testing.T) {
	for _, name := range []string{"Person", "Event"} {
		if _, ok := fixtures[name]; !ok {
			t.Errorf("fixtures missing %q", name)
		}
	}
	if _, ok := fixtures["Nonexistent"]; ok {
		t.Errorf("fixtures contains unexpected entry Nonexistent")
	}
}
