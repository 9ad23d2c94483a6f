package entities

// SyncRow is the outcome of checking one configured file. Versions are the
// raw strings found in the snapshots; an empty BaselineVersion means the
// file (or its version) did not exist at the baseline.
type SyncRow struct {
	File            string
	BaselineVersion string
	HeadVersion     string
	InSync          bool
	Err             error
}

// SyncReport is the ordered result of one drift check, one row per
// configured file in declaration order. The full set is always built; no
// early exit hides later offenders.
type SyncReport struct {
	Base string
	Head string
	Rows []SyncRow
}

// OK reports overall success: the logical AND of all row statuses.
func (r *SyncReport) OK() bool {
	for _, row := range r.Rows {
		if !row.InSync {
			return false
		}
	}
	return true
}

// Offenders returns the rows that are out of sync, preserving order.
func (r *SyncReport) Offenders() []SyncRow {
	var offenders []SyncRow
	for _, row := range r.Rows {
		if !row.InSync {
			offenders = append(offenders, row)
		}
	}
	return offenders
}
