// Package ui holds the styled terminal output used by xmdash's one-shot
// commands: colors, status symbols, the title header, a request spinner
// and the aligned label/value report printed by `xmdash status`.
//
// The full-screen dashboard lives in internal/monitor and shares the neon
// palette defined here.
//
// Use DisableColors() to switch to monochrome output.
package ui
