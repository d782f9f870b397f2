package models

// ScanSummary counts discovered entries per source type
type ScanSummary struct {
	Counts  map[SourceType]int // Entries found per source type
	Unknown int                // Entries whose date could not be inferred
	Total   int                // All entries
}

// Summarize builds a ScanSummary for a set of discovered files
func Summarize(files []DataFile) ScanSummary {
	summary := ScanSummary{Counts: make(map[SourceType]int, len(ScanTypeOrder))}
	for _, st := range ScanTypeOrder {
		summary.Counts[st] = 0
	}
	for _, f := range files {
		summary.Counts[f.Type]++
		if !f.HasKnownDate() {
			summary.Unknown++
		}
	}
	summary.Total = len(files)
	return summary
}
