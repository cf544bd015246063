// Package session drives the command generation loop and the plain chat flow.
//
// A command Session turns a request into a shell command through the
// completion gateway, asks the user to confirm, revise or abort, and runs the
// approved command. In long mode the result is fed back to the model as a
// [COMMAND_RESULT] turn and the loop continues with the user's next question.
//
// The session performs one blocking operation at a time. The only concurrent
// work is the decorative progress indicator owned by the View, which is always
// stopped before the next prompt.
package session
