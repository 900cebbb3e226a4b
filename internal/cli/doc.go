// Package cli implements the commands of the parlor binary: playing the
// hall story and previewing choice layouts.
package cli
