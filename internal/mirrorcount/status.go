package mirrorcount

// Status is the outcome of comparing the three counts of a directory.
type Status string

const (
	// StatusOK means all three counts are equal.
	StatusOK Status = "OK"
	// StatusMismatch means the counts differ.
	StatusMismatch Status = "MISMATCH"
	// StatusMissingDir means the preview or thumbnail directory could not be counted.
	StatusMissingDir Status = "MISSING_DIR"
)

// Classify compares the counts of a directory and its two mirrors.
func Classify(orig, prev, thumb Count) Status {
	switch {
	case prev.IsMissing() || thumb.IsMissing():
		return StatusMissingDir
	case orig != prev || orig != thumb:
		return StatusMismatch
	default:
		return StatusOK
	}
}

// Reportable reports whether a directory holds at least one file in any of
// the three trees. Pure container directories are never compared.
func Reportable(orig, prev, thumb Count) bool {
	return orig > 0 || prev > 0 || thumb > 0
}
