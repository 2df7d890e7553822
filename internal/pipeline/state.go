package pipeline

import "fmt"

// State is the position of a run in Running -> Success | InitFailed | InvokeFailed.
type State int

const (
	Running State = iota
	Success
	InitFailed
	InvokeFailed
)

var stateNames = map[State]string{
	Running:      "running",
	Success:      "success",
	InitFailed:   "init_failed",
	InvokeFailed: "invoke_failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("State(%d)", int(s))
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Terminal reports whether no further transition can happen.
func (s State) Terminal() bool {
	return s != Running
}

// Failed reports whether the run halted on a fatal engine error.
func (s State) Failed() bool {
	return s == InitFailed || s == InvokeFailed
}
