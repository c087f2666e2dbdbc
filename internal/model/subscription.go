package model

// RequestKind distinguishes a live-like subscription from a historical replay.
type RequestKind string

const (
	RequestLive       RequestKind = "LIVE"
	RequestHistorical RequestKind = "HISTORICAL"
)

// TransportKind names the medium a dataset is read from.
type TransportKind string

const TransportObjectStore TransportKind = "OBJECT_STORE"

// FormatKind names the on-disk encoding of a dataset.
type FormatKind string

const FormatDelimitedText FormatKind = "DELIMITED_TEXT"

// Granularity is the bar resolution of a dataset. Only hourly data is exercised.
type Granularity string

const GranularityHour Granularity = "HOUR"

// SubscriptionContext binds a logical identifier to its resolved store key,
// transport, and format. Created at subscription time, read-only thereafter.
type SubscriptionContext struct {
	ID          string // unique per resolution
	Symbol      string // logical identifier
	Key         string // resolved object store key
	Transport   TransportKind
	Format      FormatKind
	Granularity Granularity
}
