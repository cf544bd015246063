// Package executor runs approved shell commands and classifies their risk.
//
// Commands run through the user's login shell. With capture off the child
// inherits the terminal, so pagers and editors work. With capture on, stdout
// and stderr are collected and returned with the exit code. There is no
// execution timeout.
package executor
