// Package orchestration coordinates the concurrent execution of summation
// engines and the analysis of their results.
//
// It depends only on the domain packages and on small presenter interfaces,
// so the CLI and TUI front ends can both drive it without the orchestration
// layer knowing anything about terminals.
package orchestration
