package pipeline

// MergeFlags joins the stage flags with an enrichment-specific error list
// into one de-duplicated set, dropping empty entries. First-occurrence
// order is preserved.
func MergeFlags(primary, secondary []string) []string {
	seen := make(map[string]struct{}, len(primary)+len(secondary))
	out := make([]string, 0, len(primary)+len(secondary))
	for _, f := range append(append([]string{}, primary...), secondary...) {
		if f == "" {
			continue
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}
