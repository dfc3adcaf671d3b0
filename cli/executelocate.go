package cli

import (
	"bytes"
)

// ExecuteLocate runs the homelocator command with the given arguments and returns what it
// printed. It's primarily intended for testing purposes
func ExecuteLocate(args ...string) (output []byte, err error) {
	logLevel = ``
	configPath = ``
	renderAs = ``
	deployment = ``
	separators = nil
	globs = nil

	cmd := NewCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)

	err = cmd.Execute()

	return buf.Bytes(), err
}
