package ports

// SummaryCachePort - durable batch-index -> summary store. Entry existence is
// the single source of truth for "stage-1 work for this index is complete":
// Get must be consulted before any generative call for that index, and Put
// must never leave a partially written entry behind.
type SummaryCachePort interface {
	// Get returns the cached summary for a batch index, if present.
	Get(index int) (string, bool)

	// Put stores a summary durably. Entries are written once and never
	// mutated; there is no TTL, bound, or invalidation.
	Put(index int, summary string) error
}
