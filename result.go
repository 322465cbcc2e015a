package acctocr

// Illegible marks a digit position that matched no template exactly.
const Illegible = '?'

// Status - outcome of reading one block
type Status int

const (
	// StatusUnchecked - raw read only, no checksum applied
	StatusUnchecked Status = iota
	// StatusClean - every digit legible and the checksum holds
	StatusClean
	// StatusCorrected - exactly one single-substitution repair was found
	StatusCorrected
	// StatusIllegible - unreadable digits remain
	StatusIllegible
	// StatusError - legible but the checksum fails with no repair
	StatusError
	// StatusAmbiguous - more than one repair passes the checksum
	StatusAmbiguous
)

var statusNames = [...]string{
	StatusUnchecked: "unchecked",
	StatusClean:     "clean",
	StatusCorrected: "corrected",
	StatusIllegible: "illegible",
	StatusError:     "error",
	StatusAmbiguous: "ambiguous",
}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return "unknown"
	}
	return statusNames[s]
}

// Result - classified outcome of one block.
//
// Raw is always the per-cell exact read. Digits is set for Clean and
// Corrected results. Candidates is set for Ambiguous results, in scan order.
type Result struct {
	Status     Status
	Raw        string
	Digits     string
	Candidates []string
}

// OK reports whether the result names a checksum-valid account number.
func (r Result) OK() bool {
	return r.Status == StatusClean || r.Status == StatusCorrected
}

// Account returns the digits to report: the repaired number when one was
// found, otherwise the raw read.
func (r Result) Account() string {
	if r.OK() {
		return r.Digits
	}
	return r.Raw
}

// Equal compares two results. Candidates compare as sets.
func (r Result) Equal(o Result) bool {
	if r.Status != o.Status || r.Raw != o.Raw || r.Digits != o.Digits {
		return false
	}
	return sameSet(r.Candidates, o.Candidates)
}

func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]int, len(a))
	for _, s := range a {
		seen[s]++
	}
	for _, s := range b {
		if seen[s] == 0 {
			return false
		}
		seen[s]--
	}
	return true
}
