package round

// Merge appends incoming rounds whose URL is not already present.
// Existing rounds keep their position; new rounds follow in incoming order.
// Rounds without a URL cannot be identified and are always appended.
func Merge(existing, incoming []*Round) (merged []*Round, added, skipped int) {
	merged = make([]*Round, 0, len(existing)+len(incoming))
	seen := make(map[string]bool, len(existing)+len(incoming))

	for _, r := range existing {
		if r.URL != "" {
			seen[r.URL] = true
		}
		merged = append(merged, r)
	}

	for _, r := range incoming {
		if r.URL != "" {
			if seen[r.URL] {
				skipped++
				continue
			}
			seen[r.URL] = true
		}
		merged = append(merged, r)
		added++
	}

	return merged, added, skipped
}
