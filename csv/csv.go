// Package csv implements the dataset's file formats on top of encoding/csv:
// the address list read by the collector and the append-only output store.
package csv

import "strings"

// bom is the UTF-8 byte order mark some spreadsheet exports prepend.
const bom = "\ufeff"

// isHeader reports whether row looks like column names rather than data:
// either one cell is "url" or no cell contains a dot, which every address
// with a host name does.
func isHeader(row []string) bool {
	if urlIndex(row) >= 0 {
		return true
	}
	for _, cell := range row {
		if strings.Contains(cell, ".") {
			return false
		}
	}
	return true
}

// urlIndex returns the index of the "url" column in header, or -1.
func urlIndex(header []string) int {
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(name), "url") {
			return i
		}
	}
	return -1
}
