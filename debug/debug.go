// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: debug.go — Cold-path error logging helper (zero-alloc)
//
// Purpose:
//   - Logs infrequent error paths without introducing heap pressure.
//   - Used only in cold paths: scenario load, trace store I/O, verdicts.
//
// Notes:
//   - Avoids fmt.Sprintf to minimize footprint and latency.
//   - Tag-style prefixes keep run logs grep-friendly ("RUN", "TRACE", ...).
//
// ⚠️ Never invoke from a domain tick — tick paths stay allocation-free.
// ─────────────────────────────────────────────────────────────────────────────

package debug

import "main/utils"

// DropError logs an error with its tag, or just the tag when err is nil.
//
//go:nosplit
//go:inline
func DropError(prefix string, err error) {
	if err != nil {
		utils.PrintWarning(prefix + ": " + err.Error() + "\n")
	} else {
		utils.PrintWarning(prefix + "\n")
	}
}

// DropMessage logs a tagged one-line message.
//
//go:nosplit
//go:inline
func DropMessage(prefix, message string) {
	utils.PrintWarning(prefix + ": " + message + "\n")
}
