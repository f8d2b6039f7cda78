package shell

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/brettbedarf/vfsh"
)

// Command is one interpreter verb.
type Command interface {
	// Name returns the verb the command is dispatched on (e.g. "ls")
	Name() string

	// Run executes the command against s. args[0] is the verb, args[1:]
	// are its operands. A returned error is rendered as "<verb>: <msg>",
	// one line per joined error, after any output.
	Run(s *Shell, args []string) (string, error)
}

// errExit asks Execute to end the session
var errExit = errors.New("exit")

// Registry maps verbs to their Command. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]Command
}

func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]Command),
	}
}

// NewBuiltinRegistry returns a Registry holding every built-in verb
func NewBuiltinRegistry() *Registry {
	r := NewRegistry()
	for _, cmd := range []Command{
		exitCommand{},
		lsCommand{},
		cdCommand{},
		historyCommand{},
		calCommand{},
		headCommand{},
		touchCommand{},
		mkdirCommand{},
	} {
		r.Register(cmd)
	}
	return r
}

// Register adds a command to the registry.
// Panics if a command with the same name is already registered.
func (r *Registry) Register(cmd Command) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := cmd.Name()
	if name == "" {
		panic("shell: cannot register command with empty name")
	}
	if _, exists := r.commands[name]; exists {
		panic(fmt.Sprintf("shell: command %q already registered", name))
	}
	r.commands[name] = cmd
}

// Lookup retrieves a command by exact, case-sensitive name
func (r *Registry) Lookup(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cmd, ok := r.commands[name]
	return cmd, ok
}

// Names returns the names of all registered commands in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func invalidArgument(format string, a ...any) error {
	return vfsh.Errorf(vfsh.InvalidArgument, fmt.Sprintf(format, a...))
}
