// Package layout implements a flow-wrap layout: fixed-size items placed left
// to right in rows that wrap at a given width. Units are whatever the caller
// measures in (terminal cells, pixels).
package layout
