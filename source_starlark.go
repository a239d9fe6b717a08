package config

import (
	"errors"
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// starlarkMaxSteps bounds the execution of config scripts.
const starlarkMaxSteps = 10_000_000

// starlarkSource executes a Starlark script in which every call of a free
// function, log_rotation(5), is an assignment. Scripts may use variables and
// helper functions; values are converted as in the line format.
type starlarkSource struct {
	name  string
	data  []byte
	calls []string
}

func newStarlarkSource(name string, data []byte) (Source, error) {
	f, err := syntax.Parse(name, data, 0)
	if err != nil {
		return nil, syntaxAt(name, starlarkLine(err), err)
	}
	env := literalEnv()
	seen := make(map[string]bool)
	// Functions and variables the script defines itself are not parameters.
	for _, stmt := range f.Stmts {
		switch st := stmt.(type) {
		case *syntax.DefStmt:
			seen[st.Name.Name] = true
		case *syntax.AssignStmt:
			if id, ok := st.LHS.(*syntax.Ident); ok {
				seen[id.Name] = true
			}
		}
	}
	var calls []string
	syntax.Walk(f, func(n syntax.Node) bool {
		call, ok := n.(*syntax.CallExpr)
		if !ok {
			return true
		}
		id, ok := call.Fn.(*syntax.Ident)
		if !ok || seen[id.Name] {
			return true
		}
		if _, builtin := starlark.Universe[id.Name]; builtin {
			return true
		}
		if _, literal := env[id.Name]; literal {
			return true
		}
		seen[id.Name] = true
		calls = append(calls, id.Name)
		return true
	})
	return &starlarkSource{name: name, data: data, calls: calls}, nil
}

func (s *starlarkSource) Name() string { return s.name }

// Walk executes the script, handing each assignment to fn as it is made. An
// error returned by fn stops the script and is returned unchanged.
func (s *starlarkSource) Walk(fn func(Assignment) error) error {
	var failed error
	predeclared := literalEnv()
	for _, name := range s.calls {
		name := name
		predeclared[name] = starlark.NewBuiltin(name, func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			if len(args) != 1 || len(kwargs) != 0 {
				return nil, fmt.Errorf("%s: want exactly one value, got %d", b.Name(), len(args)+len(kwargs))
			}
			v, err := fromStarlark(args[0])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", b.Name(), err)
			}
			asg := Assignment{Name: name, Value: v, Line: int(thread.CallFrame(1).Pos.Line)}
			if err := fn(asg); err != nil {
				failed = err
				return nil, err
			}
			return starlark.None, nil
		})
	}

	thread := &starlark.Thread{Name: s.name, Print: func(*starlark.Thread, string) {}}
	thread.SetMaxExecutionSteps(starlarkMaxSteps)
	if _, err := starlark.ExecFile(thread, s.name, s.data, predeclared); err != nil {
		if failed != nil {
			return failed
		}
		return syntaxAt(s.name, starlarkLine(err), err)
	}
	return nil
}

func starlarkLine(err error) int {
	var se syntax.Error
	if errors.As(err, &se) {
		return int(se.Pos.Line)
	}
	var ee *starlark.EvalError
	if errors.As(err, &ee) && len(ee.CallStack) > 0 {
		return int(ee.CallStack.At(0).Pos.Line)
	}
	return 0
}
