// Package cli implements the passy command line: generate, strength,
// preview and token subcommands, and an interactive prompt when run with
// no arguments.
//
// Commands are built per invocation by NewRootCommand so tests can drive
// them with their own reader and writers.
package cli
