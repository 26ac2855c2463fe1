package enrichment

// Status is the outcome of one enrichment attempt.
type Status int

const (
	StatusNotFound Status = iota
	StatusFound
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusFound:
		return "found"
	case StatusFailed:
		return "failed"
	default:
		return "not_found"
	}
}

// Result of Service.Enrich. Attributes is set only for StatusFound, Err
// only for StatusFailed.
type Result struct {
	Status     Status
	Attributes map[string]string
	Err        error
}
