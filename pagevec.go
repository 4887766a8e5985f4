// Package pagevec turns lists of web addresses into a fixed-schema numeric
// dataset describing the structural shape of each page's markup.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, http/, csv/, sqlite/).
package pagevec
