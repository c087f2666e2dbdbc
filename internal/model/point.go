package model

import "time"

// TimeSeriesPoint is one decoded row of a dataset. Timestamp is the
// effective time, after the decoder's fixed offset has been applied.
// Value always duplicates Close; consumers treat Value == 0 as a
// data-integrity fault, not a parse failure.
type TimeSeriesPoint struct {
	Symbol    string
	Timestamp time.Time
	Value     float64
	Open      float64
	High      float64
	Low       float64
	Close     float64
}

// Equal reports field-for-field equality with q.
func (p TimeSeriesPoint) Equal(q TimeSeriesPoint) bool {
	return p.Symbol == q.Symbol &&
		p.Timestamp.Equal(q.Timestamp) &&
		p.Value == q.Value &&
		p.Open == q.Open &&
		p.High == q.High &&
		p.Low == q.Low &&
		p.Close == q.Close
}
