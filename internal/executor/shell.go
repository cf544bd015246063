package executor

import (
	"os"
	"path/filepath"

	"github.com/quocvuong92/nova/internal/constants"
)

// Shell returns the user's shell from $SHELL, or the default shell
func Shell() string {
	if shell := os.Getenv("SHELL"); shell != "" {
		return shell
	}
	return constants.DefaultShell
}

// ShellArgs returns the arguments that make shell run command.
// Interactive login mode loads aliases and functions. capture mode uses a plain -c.
func ShellArgs(shell, command string, capture bool) []string {
	if capture {
		return []string{"-c", command}
	}

	switch filepath.Base(shell) {
	case "bash":
		return []string{"--login", "-i", "-c", command}
	case "zsh":
		return []string{"-l", "-i", "-c", command}
	case "fish":
		return []string{"--login", "--interactive", "-c", command}
	default:
		return []string{"-l", "-i", "-c", command}
	}
}

// shellEnv returns the child environment. Prompts are blanked so interactive
// shells don't print them; TERM=dumb only applies when output is captured.
func shellEnv(base []string, capture bool) []string {
	env := make([]string, 0, len(base)+3)
	env = append(env, base...)
	env = append(env, "PS1=", "PS2=")
	if capture {
		env = append(env, "TERM=dumb")
	}
	return env
}
