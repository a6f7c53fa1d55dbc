package output

import (
	"bytes"
	"context"
	"os"
	"testing"
)

func TestWithPrinter_FromContext(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		p := FromContext(WithPrinter(context.Background(), &buf))
		if p.Writer() != &buf {
			t.Error("Writer() should return the buffer passed to WithPrinter")
		}
	})

	t.Run("default to stdout when not set", func(t *testing.T) {
		t.Parallel()
		if FromContext(context.Background()).Writer() != os.Stdout {
			t.Error("Writer() should default to os.Stdout")
		}
	})
}

func TestPrinter_Lines(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := New(&buf)
	p.Printf("%s:", "feat-a")
	p.Println(" version.txt")
	if got := buf.String(); got != "feat-a: version.txt\n" {
		t.Errorf("output = %q, want %q", got, "feat-a: version.txt\n")
	}
}

func TestPrinter_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := New(&buf).JSON(map[string]int{"succeeded": 2, "total": 3})
	if err != nil {
		t.Fatalf("JSON() error = %v", err)
	}
	want := "{\n  \"succeeded\": 2,\n  \"total\": 3\n}\n"
	if got := buf.String(); got != want {
		t.Errorf("JSON() wrote %q, want %q", got, want)
	}
}
