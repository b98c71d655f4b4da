package copydata

import (
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/vvka-141/tripload/pkg/tripload"
)

func TestReaderEncodesAllKinds(t *testing.T) {
	ds := &tripload.Dataset{
		Columns: []tripload.Column{
			{Name: "id", Kind: tripload.KindInt64, Values: []any{int64(1), nil}},
			{Name: "amount", Kind: tripload.KindFloat64, Values: []any{12.5, 0.10}},
			{Name: "ts", Kind: tripload.KindTimestamp, Values: []any{
				time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC), nil,
			}},
			{Name: "flag", Kind: tripload.KindBool, Values: []any{true, false}},
			{Name: "note", Kind: tripload.KindText, Values: []any{"", "a,b"}},
		},
	}

	data, err := io.ReadAll(NewReader(ds))
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}

	want := "1,12.5,2025-11-01 00:00:00,true,\n" +
		`\N,0.1,\N,false,"a,b"` + "\n"
	if string(data) != want {
		t.Errorf("encoded stream mismatch\ngot:  %q\nwant: %q", string(data), want)
	}
}

func TestReaderTimestampPrecision(t *testing.T) {
	ds := &tripload.Dataset{
		Columns: []tripload.Column{
			{Name: "ts", Kind: tripload.KindTimestamp, Values: []any{
				time.Date(2025, 11, 1, 8, 30, 15, 123456000, time.UTC),
				time.Date(2025, 11, 1, 8, 30, 15, 0, time.UTC),
			}},
		},
	}

	data, err := io.ReadAll(NewReader(ds))
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}

	// Microseconds appear only when the value carries them.
	want := "2025-11-01 08:30:15.123456\n2025-11-01 08:30:15\n"
	if string(data) != want {
		t.Errorf("got %q, want %q", string(data), want)
	}
}

func TestReaderNullVersusEmptyString(t *testing.T) {
	ds := &tripload.Dataset{
		Columns: []tripload.Column{
			{Name: "note", Kind: tripload.KindText, Values: []any{nil, ""}},
		},
	}

	data, err := io.ReadAll(NewReader(ds))
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}

	// NULL carries the sentinel, the empty string stays empty.
	want := "\\N\n\n"
	if string(data) != want {
		t.Errorf("got %q, want %q", string(data), want)
	}
}

func TestReaderInt32Encoding(t *testing.T) {
	ds := &tripload.Dataset{
		Columns: []tripload.Column{
			{Name: "count", Kind: tripload.KindInt32, Values: []any{int32(-7), int32(42)}},
		},
	}

	data, err := io.ReadAll(NewReader(ds))
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if string(data) != "-7\n42\n" {
		t.Errorf("got %q, want %q", string(data), "-7\n42\n")
	}
}

func TestReaderQuotesSpecialCharacters(t *testing.T) {
	ds := &tripload.Dataset{
		Columns: []tripload.Column{
			{Name: "note", Kind: tripload.KindText, Values: []any{
				`say "hi"`,
				"line1\nline2",
			}},
		},
	}

	data, err := io.ReadAll(NewReader(ds))
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}

	want := `"say ""hi"""` + "\n" + "\"line1\nline2\"\n"
	if string(data) != want {
		t.Errorf("got %q, want %q", string(data), want)
	}
}

func TestReaderChunkCap(t *testing.T) {
	// A single row larger than one chunk must be delivered across
	// multiple reads, each at most CopyChunkSize bytes.
	big := strings.Repeat("a", 9000)
	ds := &tripload.Dataset{
		Columns: []tripload.Column{
			{Name: "blob", Kind: tripload.KindText, Values: []any{big}},
		},
	}

	r := NewReader(ds)
	p := make([]byte, 64*1024)

	n, err := r.Read(p)
	if err != nil {
		t.Fatalf("first read failed: %v", err)
	}
	if n != tripload.CopyChunkSize {
		t.Errorf("first read returned %d bytes, want %d", n, tripload.CopyChunkSize)
	}

	total := n
	for {
		n, err = r.Read(p)
		if n > tripload.CopyChunkSize {
			t.Errorf("read returned %d bytes, cap is %d", n, tripload.CopyChunkSize)
		}
		total += n
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
	}

	if want := len(big) + 1; total != want {
		t.Errorf("streamed %d bytes total, want %d", total, want)
	}
}

func TestReaderSmallDestinationBuffer(t *testing.T) {
	ds := &tripload.Dataset{
		Columns: []tripload.Column{
			{Name: "id", Kind: tripload.KindInt64, Values: []any{int64(123456)}},
		},
	}

	r := NewReader(ds)
	var out strings.Builder
	p := make([]byte, 3)
	for {
		n, err := r.Read(p)
		out.Write(p[:n])
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
	}

	if out.String() != "123456\n" {
		t.Errorf("got %q, want %q", out.String(), "123456\n")
	}
}

func TestReaderEmptyDataset(t *testing.T) {
	ds := &tripload.Dataset{
		Columns: []tripload.Column{
			{Name: "id", Kind: tripload.KindInt64, Values: []any{}},
		},
	}

	n, err := NewReader(ds).Read(make([]byte, 16))
	if n != 0 {
		t.Errorf("expected no bytes, got %d", n)
	}
	if err != io.EOF {
		t.Errorf("expected io.EOF, got %v", err)
	}
}

func TestReaderTypeMismatchSurfacesMidStream(t *testing.T) {
	ds := &tripload.Dataset{
		Columns: []tripload.Column{
			{Name: "n", Kind: tripload.KindInt64, Values: []any{int64(1), "oops", int64(3)}},
		},
	}

	r := NewReader(ds)
	data, err := io.ReadAll(r)
	if err == nil {
		t.Fatal("expected an encoding error")
	}
	if !strings.Contains(err.Error(), `column "n" row 1`) {
		t.Errorf("error should name the offending cell, got: %v", err)
	}
	if string(data) != "1\n" {
		t.Errorf("rows before the bad cell should still stream, got %q", string(data))
	}

	// The error is sticky.
	if _, again := r.Read(make([]byte, 8)); again == nil || errors.Is(again, io.EOF) {
		t.Errorf("expected the same error on subsequent reads, got %v", again)
	}
}

func TestFormatValueMismatches(t *testing.T) {
	cases := []struct {
		name string
		kind tripload.Kind
		v    any
	}{
		{"int64 gets string", tripload.KindInt64, "1"},
		{"int32 gets int64", tripload.KindInt32, int64(1)},
		{"float gets int", tripload.KindFloat64, int64(1)},
		{"bool gets string", tripload.KindBool, "true"},
		{"timestamp gets string", tripload.KindTimestamp, "2025-11-01"},
		{"text gets int", tripload.KindText, int64(1)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := formatValue(tc.kind, tc.v); err == nil {
				t.Errorf("formatValue(%s, %T) should fail", tc.kind, tc.v)
			}
		})
	}
}
