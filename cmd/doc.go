// Package cmd implements the nova command tree.
//
//   - root.go: App, persistent flags, configuration and client setup
//   - command.go: nova command [-l] <prompt...>, which runs a command session
//   - chat.go: nova chat, the plain conversational REPL
//   - config.go: nova config init|show and nova version
//
// Every subcommand resolves the configuration once and builds one gateway
// client. Failures reach Execute, which prints a single "nova: error:" line
// and exits with status 1. A declined or aborted command is not a failure.
package cmd
