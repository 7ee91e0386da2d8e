package loader

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/finrefdata/secsync/internal/model"
	"github.com/finrefdata/secsync/internal/series"
)

// nullMarker is the COPY text-format token for an absent value, preserving
// the distinction between zero and null in the target column.
const nullMarker = `\N`

// ErrMissingField reports a bar whose required numeric field is absent.
var ErrMissingField = errors.New("required field missing")

// NewRecordReader adapts a BarStream to an io.Reader producing one
// pipe-delimited line per bar. Each Read pulls only as many bars as needed
// and returns at most maxRead bytes, holding no more than one partially
// consumed line between calls.
func NewRecordReader(stream series.BarStream, maxRead int) io.Reader {
	return &recordReader{stream: stream, maxRead: maxRead}
}

type recordReader struct {
	stream  series.BarStream
	maxRead int
	pending []byte
	done    bool
	err     error
}

func (r *recordReader) Read(p []byte) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	if len(p) == 0 {
		return 0, nil
	}
	if len(p) > r.maxRead {
		p = p[:r.maxRead]
	}

	n := 0
	for n < len(p) {
		if len(r.pending) == 0 {
			if !r.fill() {
				break
			}
		}
		c := copy(p[n:], r.pending)
		r.pending = r.pending[c:]
		n += c
	}

	if n == 0 {
		if r.err != nil {
			return 0, r.err
		}
		return 0, io.EOF
	}
	return n, nil
}

// fill pulls the next bar and formats it. Returns false at end of stream or
// on error, leaving r.err set for the latter.
func (r *recordReader) fill() bool {
	if r.done {
		return false
	}

	bar, ok := r.stream.Next()
	if !ok {
		r.done = true
		if err := r.stream.Err(); err != nil {
			r.err = err
		}
		return false
	}

	line, err := formatLine(bar)
	if err != nil {
		r.done = true
		r.err = err
		return false
	}
	r.pending = line
	return true
}

// formatLine renders one bar as a delimited row in the bulk-copy column
// order: security id, timestamp, o, h, l, c, volume, notional, trades.
// Nullable price fields serialize as the null marker; volume and trade count
// are required integer columns.
func formatLine(bar model.PriceBar) ([]byte, error) {
	volume, err := requiredInt(bar.Volume, "volume")
	if err != nil {
		return nil, fmt.Errorf("security %d at %s: %w", bar.SecurityID, bar.Timestamp, err)
	}
	trades, err := requiredInt(bar.Trades, "trades")
	if err != nil {
		return nil, fmt.Errorf("security %d at %s: %w", bar.SecurityID, bar.Timestamp, err)
	}

	fields := []string{
		strconv.FormatInt(bar.SecurityID, 10),
		bar.Timestamp.Format("2006-01-02 15:04:05"),
		nullableFloat(bar.Open),
		nullableFloat(bar.High),
		nullableFloat(bar.Low),
		nullableFloat(bar.Close),
		volume,
		nullableFloat(bar.Notional),
		trades,
	}
	return []byte(strings.Join(fields, "|") + "\n"), nil
}

func nullableFloat(v *float64) string {
	if v == nil {
		return nullMarker
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func requiredInt(v *float64, name string) (string, error) {
	if v == nil {
		return "", fmt.Errorf("%w: %s", ErrMissingField, name)
	}
	return strconv.FormatInt(int64(*v), 10), nil
}
