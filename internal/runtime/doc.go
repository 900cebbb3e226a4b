// Package runtime implements the turn loop: the event pass, the choice pass,
// publication of grouped choices and the logical clock advance.
package runtime
