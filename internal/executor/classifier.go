package executor

import (
	"regexp"
	"strings"
)

// Risk is how much damage an approved command could do.
// It is informational: the user confirms every command regardless.
type Risk int

const (
	// Safe commands are read-only
	Safe Risk = iota
	// NeedsConfirm commands may modify state
	NeedsConfirm
	// Dangerous commands are potentially destructive
	Dangerous
)

// String returns the short label shown next to a command
func (r Risk) String() string {
	switch r {
	case Safe:
		return "safe"
	case NeedsConfirm:
		return "modifies state"
	case Dangerous:
		return "dangerous"
	default:
		return "unknown"
	}
}

// Read-only commands. curl and wget are not listed: they can exfiltrate data.
var safeCommands = []string{
	"ls", "cat", "pwd", "echo", "head", "tail", "grep", "find",
	"which", "whoami", "date", "wc", "sort", "uniq", "diff",
	"env", "printenv", "df", "du", "ps", "top", "tree",
	"file", "stat", "basename", "dirname", "realpath",
	"ping", "traceroute", "nslookup", "dig", "uname", "id",
	"hostname", "uptime", "free", "lsof", "less", "more",
}

// Read-only subcommands of common tools
var safePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^git\s+(status|log|diff|branch|show|remote)`),
	regexp.MustCompile(`^npm\s+(list|ls|view|info|outdated)`),
	regexp.MustCompile(`^pip\s+(list|show|freeze)`),
	regexp.MustCompile(`^cargo\s+(tree|search|check)`),
	regexp.MustCompile(`^go\s+(list|version|env)`),
	regexp.MustCompile(`^docker\s+(ps|images|inspect|logs)`),
	regexp.MustCompile(`^kubectl\s+(get|describe|logs)`),
	regexp.MustCompile(`^brew\s+(list|info|search)`),
	regexp.MustCompile(`^systemctl\s+(status|list-units)`),
}

// Destructive or privilege-changing patterns
var dangerousPatterns = []*regexp.Regexp{
	// privilege
	regexp.MustCompile(`\b(sudo|su|doas)\b`),
	// deleting from the root, home or a variable
	regexp.MustCompile(`rm\s+(-[rf]*\s+)?/`),
	regexp.MustCompile(`rm\s+-[a-z]*[rf][a-z]*\s+[~$*]`),
	// disks
	regexp.MustCompile(`\bdd\s+.*of=`),
	regexp.MustCompile(`\bmkfs`),
	regexp.MustCompile(`>\s*/dev/(sd|nvme|disk)`),
	regexp.MustCompile(`\b(fdisk|parted|wipefs)\b`),
	// system state
	regexp.MustCompile(`\b(shutdown|reboot|halt|poweroff)\b`),
	regexp.MustCompile(`>\s*/etc/`),
	regexp.MustCompile(`chmod\s+(-R\s+)?0?777`),
	regexp.MustCompile(`chown\s+.*-R\s+`),
	regexp.MustCompile(`\bkill\s+-9\s+(-1|1)\b`),
	// remote code
	regexp.MustCompile(`(curl|wget).*\|\s*(sh|bash|zsh|fish)\b`),
	regexp.MustCompile(`\|.*base64\s+(-d|--decode)`),
	regexp.MustCompile(`:\(\)\s*\{`), // fork bomb
	// history rewriting
	regexp.MustCompile(`git\s+push\s+.*(--force|-f)\b`),
	regexp.MustCompile(`git\s+reset\s+--hard`),
	regexp.MustCompile(`git\s+clean\s+-[a-z]*f`),
}

// commandChainingPattern matches ; & | and their doubled forms
var commandChainingPattern = regexp.MustCompile(`[;&|]{1,2}`)

// Classify determines the risk of a shell command
func Classify(cmd string) Risk {
	cmd = strings.TrimSpace(cmd)

	if cmd == "" {
		return Dangerous
	}

	for _, pattern := range dangerousPatterns {
		if pattern.MatchString(cmd) {
			return Dangerous
		}
	}

	// A chain may hide a modifying command behind a safe first word
	if commandChainingPattern.MatchString(cmd) {
		return NeedsConfirm
	}

	firstWord := strings.Fields(cmd)[0]
	for _, safe := range safeCommands {
		if firstWord == safe {
			return Safe
		}
	}

	for _, pattern := range safePatterns {
		if pattern.MatchString(cmd) {
			return Safe
		}
	}

	return NeedsConfirm
}

// Description returns a human-readable description of the risk
func (r Risk) Description() string {
	switch r {
	case Safe:
		return "Safe read-only command"
	case NeedsConfirm:
		return "Command may modify system state"
	case Dangerous:
		return "Potentially dangerous command"
	default:
		return "Unknown risk level"
	}
}
