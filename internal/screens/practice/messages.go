package practice

import (
	sess "github.com/abhisek/mathmentor/internal/session"
)

// problemReadyMsg is sent when a problem has been generated.
type problemReadyMsg struct {
	State *sess.State
	Err   error
}

// hintReadyMsg carries the state with the new hint appended.
type hintReadyMsg struct {
	State *sess.State
	Err   error
}

// answerCheckedMsg carries the state after a step answer was validated.
type answerCheckedMsg struct {
	State  *sess.State
	Result sess.Result
	Err    error
}

// solutionReadyMsg carries the state with the worked solution attached.
type solutionReadyMsg struct {
	State *sess.State
	Err   error
}
