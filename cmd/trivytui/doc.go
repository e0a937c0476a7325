// Package trivytui provides the command-line interface for trivy-tui. It
// parses flags, runs trivy against the requested image and hands the report
// to the terminal viewer, or prints it as a table when stdout is not a
// terminal.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/trivytui/trivy-tui/cmd/trivytui"
//	func main() { trivytui.Execute() }
package trivytui
