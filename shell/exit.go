package shell

type exitCommand struct{}

func (exitCommand) Name() string { return "exit" }

// Run ignores operands; the session ends from a script just as interactively
func (exitCommand) Run(*Shell, []string) (string, error) {
	return "", errExit
}
