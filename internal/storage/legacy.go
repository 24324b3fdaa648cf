package storage

import (
	"strings"

	"go.uber.org/zap"
)

// legacyEntry is one plaintext credential read from the legacy text format.
type legacyEntry struct {
	site     string
	username string
	password string
}

// isDelimiter reports whether line is the horizontal-rule separator between
// legacy blocks.
func isDelimiter(line string) bool {
	if len(line) < 4 {
		return false
	}
	for _, r := range line {
		if r != '-' {
			return false
		}
	}
	return true
}

// parseLegacy reads the old delimited text format: blocks of three
// "label: value" lines (site, username, password, in that order) separated
// by a horizontal-rule line. Labels are positional; the text before the
// first colon is never inspected. Blank lines between blocks are tolerated.
//
// A block missing any of the three lines is skipped with a warning. If the
// input yields zero valid entries, the caller is expected to treat the file
// as corrupt (see Store.Load).
func parseLegacy(raw []byte, log *zap.Logger) []legacyEntry {
	var entries []legacyEntry
	var block []string

	flush := func() {
		if len(block) == 0 {
			return
		}
		entry, ok := parseBlock(block)
		if !ok {
			log.Warn("skipping malformed legacy block",
				zap.Int("lines", len(block)),
				zap.Int("block", len(entries)+1),
			)
		} else {
			entries = append(entries, entry)
		}
		block = block[:0]
	}

	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimRight(line, "\r")
		switch {
		case isDelimiter(strings.TrimSpace(line)):
			flush()
		case strings.TrimSpace(line) == "":
			// Blank lines between blocks are noise; inside a block they
			// are simply not credential lines.
		default:
			block = append(block, line)
		}
	}
	flush()

	return entries
}

// parseBlock extracts the (site, username, password) triple from the
// labelled lines of one block. Lines without a colon do not count as
// credential lines.
func parseBlock(lines []string) (legacyEntry, bool) {
	var values []string
	for _, line := range lines {
		_, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		values = append(values, strings.TrimSpace(value))
	}
	if len(values) < 3 {
		return legacyEntry{}, false
	}
	return legacyEntry{site: values[0], username: values[1], password: values[2]}, true
}
