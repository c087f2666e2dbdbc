package decoder

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"TickVault/internal/model"
)

// Row-level decode failures. Callers classify with errors.Is.
var (
	ErrMalformedRow = errors.New("malformed row")
	ErrBadTimestamp = errors.New("bad timestamp")
	ErrBadNumber    = errors.New("bad number")
)

// timeLayout is the naive timestamp pattern used by raw datasets.
const timeLayout = "2006-01-02 15:04:05"

// fieldCount is the number of comma-separated fields per row:
// timestamp, open, high, low, close, volume, extra.
const fieldCount = 7

// DefaultOffset shifts a row's nominal timestamp to its effective time.
// The sample datasets use an exchange-local hour convention 20 hours
// behind the effective time. Dataset-specific, hence configurable.
const DefaultOffset = 20 * time.Hour

// Policy controls what DecodeAll does with a row that fails to decode.
type Policy string

const (
	// PolicyAbort fails the whole load on the first bad row.
	PolicyAbort Policy = "abort"
	// PolicySkip logs bad rows and drops them.
	PolicySkip Policy = "skip"
)

// Decode parses one raw dataset line into a point. The symbol is taken
// from the caller, never from the line; offset is added to the parsed
// timestamp to obtain the effective time. Value duplicates Close. A zero
// closing value decodes fine; integrity checks belong to the consumer.
func Decode(line, symbol string, offset time.Duration) (model.TimeSeriesPoint, error) {
	fields := strings.Split(line, ",")
	if len(fields) < fieldCount {
		return model.TimeSeriesPoint{}, fmt.Errorf("%w: got %d fields, want %d", ErrMalformedRow, len(fields), fieldCount)
	}

	ts, err := time.Parse(timeLayout, fields[0])
	if err != nil {
		return model.TimeSeriesPoint{}, fmt.Errorf("%w: %q", ErrBadTimestamp, fields[0])
	}

	var ohlc [4]float64
	for i := 0; i < 4; i++ {
		v, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return model.TimeSeriesPoint{}, fmt.Errorf("%w: field %d %q", ErrBadNumber, i+1, fields[i+1])
		}
		ohlc[i] = v
	}

	return model.TimeSeriesPoint{
		Symbol:    symbol,
		Timestamp: ts.Add(offset),
		Value:     ohlc[3],
		Open:      ohlc[0],
		High:      ohlc[1],
		Low:       ohlc[2],
		Close:     ohlc[3],
	}, nil
}

// DecodeAll decodes a raw dataset blob into points, one per non-empty
// line. CRLF and LF delimited rows are both accepted. Under PolicyAbort
// the first bad row fails the load with its line number; under
// PolicySkip bad rows are logged and dropped.
func DecodeAll(payload []byte, symbol string, offset time.Duration, policy Policy) ([]model.TimeSeriesPoint, error) {
	lines := strings.Split(strings.ReplaceAll(string(payload), "\r\n", "\n"), "\n")

	points := make([]model.TimeSeriesPoint, 0, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		p, err := Decode(line, symbol, offset)
		if err != nil {
			if policy == PolicySkip {
				log.Printf("[WARN] skipping line %d: %v", i+1, err)
				continue
			}
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		points = append(points, p)
	}
	return points, nil
}

// EncodeFields renders a point's numeric fields back to comma-separated
// form, matching the source row's fields 1-4 exactly.
func EncodeFields(p model.TimeSeriesPoint) string {
	return strings.Join([]string{
		strconv.FormatFloat(p.Open, 'f', -1, 64),
		strconv.FormatFloat(p.High, 'f', -1, 64),
		strconv.FormatFloat(p.Low, 'f', -1, 64),
		strconv.FormatFloat(p.Close, 'f', -1, 64),
	}, ",")
}
