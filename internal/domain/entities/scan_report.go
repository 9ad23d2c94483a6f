package entities

// Mismatch is a scanned version occurrence that disagrees with the declared
// current version.
type Mismatch struct {
	Source   string // file the occurrence was found in
	Expected string // declared current version
	Actual   string // version found in the file
}

// ScanReport is the result of a working-tree discovery scan: every version
// occurrence found, plus the subset that mismatches the declared current
// version, both in walk order.
type ScanReport struct {
	Occurrences []Occurrence
	Mismatches  []Mismatch
}

// HasMismatches reports whether any scanned file disagrees with the
// declared current version.
func (r *ScanReport) HasMismatches() bool {
	return len(r.Mismatches) > 0
}
