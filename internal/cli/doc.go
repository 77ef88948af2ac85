// Package cli implements the xmdash command-line interface.
//
// The root command runs the full-screen dashboard from internal/monitor.
// The subcommands cover everything that does not need a terminal UI:
//
//	xmdash                  - Live dashboard (needs a TTY)
//	xmdash status           - Poll once and print text, JSON or HTML
//	xmdash history          - Show the persisted chart history
//	xmdash history clear    - Drop the persisted chart history
//	xmdash init             - Write ~/.config/xmdash/config.yaml
//	xmdash version          - Print build information
//
// Every command resolves its settings the same way: built-in defaults, the
// config file, XMDASH_* environment variables and finally explicit flags.
// Errors are structured (internal/errors) and printed by Execute.
package cli
