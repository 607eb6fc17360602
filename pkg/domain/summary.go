package domain

// IngestSummary reports the outcome of one or many feed runs
type IngestSummary struct {
	RunID   string `json:"run_id,omitempty"`
	Feeds   int    `json:"feeds,omitempty"`
	Created int    `json:"created"`
	Updated int    `json:"updated"`
	Errors  int    `json:"errors"`
}

// Add merges the counters of other into s
func (s *IngestSummary) Add(other IngestSummary) {
	s.Feeds += other.Feeds
	s.Created += other.Created
	s.Updated += other.Updated
	s.Errors += other.Errors
}

// BatchSummary reports the outcome of a bulk evaluation run
type BatchSummary struct {
	RunID     string `json:"run_id,omitempty"`
	Total     int    `json:"total"`
	Processed int    `json:"processed"`
	Skipped   int    `json:"skipped"`
	Errors    int    `json:"errors"`
}
