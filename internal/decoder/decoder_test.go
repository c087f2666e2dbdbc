package decoder

import (
	"errors"
	"strings"
	"testing"
	"time"
)

const sampleRow = "2017-08-18 01:00:00,5749.5,5852.95,5749.5,5842.2,214402430,8753.33"

func TestDecode_SampleRow(t *testing.T) {
	p, err := Decode(sampleRow, "BTCUSD", DefaultOffset)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	wantTime := time.Date(2017, 8, 18, 21, 0, 0, 0, time.UTC)
	if !p.Timestamp.Equal(wantTime) {
		t.Errorf("timestamp = %s, want %s", p.Timestamp, wantTime)
	}
	if p.Symbol != "BTCUSD" {
		t.Errorf("symbol = %q, want BTCUSD", p.Symbol)
	}
	if p.Open != 5749.5 || p.High != 5852.95 || p.Low != 5749.5 || p.Close != 5842.2 {
		t.Errorf("OHLC = %v %v %v %v", p.Open, p.High, p.Low, p.Close)
	}
	if p.Value != p.Close {
		t.Errorf("value %v must equal close %v", p.Value, p.Close)
	}
}

func TestDecode_ZeroOffset(t *testing.T) {
	p, err := Decode(sampleRow, "X", 0)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := time.Date(2017, 8, 18, 1, 0, 0, 0, time.UTC)
	if !p.Timestamp.Equal(want) {
		t.Errorf("timestamp = %s, want unshifted %s", p.Timestamp, want)
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		line string
		want error
	}{
		{"too few fields", "2017-08-18 01:00:00,1,2,3", ErrMalformedRow},
		{"empty line", "", ErrMalformedRow},
		{"garbage timestamp", "yesterday,1,2,3,4,5,6", ErrBadTimestamp},
		{"wrong layout", "2017/08/18 01:00:00,1,2,3,4,5,6", ErrBadTimestamp},
		{"bad open", "2017-08-18 01:00:00,abc,2,3,4,5,6", ErrBadNumber},
		{"bad close", "2017-08-18 01:00:00,1,2,3,x,5,6", ErrBadNumber},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.line, "X", DefaultOffset)
			if !errors.Is(err, tt.want) {
				t.Errorf("decode(%q) = %v, want %v", tt.line, err, tt.want)
			}
		})
	}
}

func TestDecode_RoundTrip(t *testing.T) {
	rows := []string{
		sampleRow,
		"2017-08-18 02:00:00,5834.1,5904.35,5822.2,5898.85,144794030,5405.72",
		"2017-08-19 23:00:00,6000.5,6019,5951.15,6009,127707078,6591.27",
	}
	for _, row := range rows {
		p, err := Decode(row, "X", DefaultOffset)
		if err != nil {
			t.Fatalf("decode %q: %v", row, err)
		}
		want := strings.Join(strings.Split(row, ",")[1:5], ",")
		if got := EncodeFields(p); got != want {
			t.Errorf("round trip of %q = %q, want %q", row, got, want)
		}
	}
}

func TestDecodeAll_CRLFAndLF(t *testing.T) {
	crlf := "2017-08-18 01:00:00,1,2,3,4,5,6\r\n2017-08-18 02:00:00,1,2,3,4,5,6\r\n"
	lf := "2017-08-18 01:00:00,1,2,3,4,5,6\n2017-08-18 02:00:00,1,2,3,4,5,6\n"

	for _, payload := range []string{crlf, lf} {
		points, err := DecodeAll([]byte(payload), "X", DefaultOffset, PolicyAbort)
		if err != nil {
			t.Fatalf("decode all: %v", err)
		}
		if len(points) != 2 {
			t.Errorf("got %d points, want 2", len(points))
		}
	}
}

func TestDecodeAll_AbortPolicy(t *testing.T) {
	payload := sampleRow + "\r\nnot,a,row\r\n" + sampleRow

	_, err := DecodeAll([]byte(payload), "X", DefaultOffset, PolicyAbort)
	if !errors.Is(err, ErrMalformedRow) {
		t.Fatalf("want ErrMalformedRow, got %v", err)
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error should name the offending line: %v", err)
	}
}

func TestDecodeAll_SkipPolicy(t *testing.T) {
	payload := sampleRow + "\r\nnot,a,row\r\n" +
		"2017-08-18 02:00:00,5834.1,5904.35,5822.2,5898.85,144794030,5405.72"

	points, err := DecodeAll([]byte(payload), "X", DefaultOffset, PolicySkip)
	if err != nil {
		t.Fatalf("skip policy must not fail the load: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("got %d points, want 2 (bad row dropped)", len(points))
	}
	// Rows around the bad one decode untouched.
	if points[0].Close != 5842.2 || points[1].Close != 5898.85 {
		t.Errorf("neighbouring rows corrupted: %v %v", points[0].Close, points[1].Close)
	}
}

func TestDecode_ZeroCloseIsNotADecodeError(t *testing.T) {
	p, err := Decode("2017-08-18 01:00:00,1,2,3,0,5,6", "X", DefaultOffset)
	if err != nil {
		t.Fatalf("zero close must decode: %v", err)
	}
	if p.Value != 0 {
		t.Errorf("value = %v, want 0", p.Value)
	}
}
