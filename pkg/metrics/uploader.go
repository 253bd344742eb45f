package metrics

// Uploader is an interface for sending aggregated records into external
// media (like database or telemetry framework).
type Uploader interface {
	SendRecords(records []Record) error
}
