package cse

import (
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Machine is the CSE evaluator: a control sequence, a value stack and
// an append-only environment list, stepped until the control is empty.
// The top of both control and stack is the end of the slice.
//
// The machine is strictly single-threaded and deterministic. It never
// panics on bad programs: operator misuse produces Err symbols in the
// result position and evaluation continues. Only structural
// impossibilities (popping an empty stack) terminate the step loop,
// surfacing as an error from Execute.
type Machine struct {
	control []Symbol
	stack   []Symbol
	envs    []*Frame
	current *Frame
	nextEnv int
	out     io.Writer
	fatal   error
	ran     bool
}

// MachineOption configures a Machine at construction time.
type MachineOption func(*Machine)

// WithOutput routes the Print primitive's output to w. The default
// discards it; the final answer is always returned by Answer.
func WithOutput(w io.Writer) MachineOption {
	return func(m *Machine) {
		m.out = w
	}
}

func newMachine(control, stack []Symbol, envs []*Frame, opts ...MachineOption) *Machine {
	m := &Machine{
		control: control,
		stack:   stack,
		envs:    envs,
		current: envs[0],
		nextEnv: 1,
		out:     io.Discard,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// errStackUnderflow terminates the step loop when an operation needs
// more stack items than exist; the program is structurally broken.
var errStackUnderflow = errors.New("evaluation stack underflow")

// Execute runs the step loop to completion. It is idempotent: the
// machine runs once and subsequent calls return the recorded outcome.
func (m *Machine) Execute() error {
	if m.ran {
		return m.fatal
	}
	m.ran = true

	for len(m.control) > 0 && m.fatal == nil {
		m.step()
	}
	return m.fatal
}

// Answer executes the machine and formats the final stack top.
func (m *Machine) Answer() (string, error) {
	if err := m.Execute(); err != nil {
		return "", err
	}
	if len(m.stack) == 0 {
		return "", errStackUnderflow
	}
	return Format(m.top()), nil
}

// step consumes one control item and dispatches on its variant. The
// cases below are exhaustive over the symbols a control can hold.
func (m *Machine) step() {
	switch x := m.popControl().(type) {
	case *Identifier:
		m.push(m.current.Lookup(x.Name))

	case *Lambda:
		// Closure capture on a copy: the descriptor in a delta body is
		// shared between activations and must not be mutated.
		captured := *x
		captured.Env = m.current.Index
		m.push(&captured)

	case *Gamma:
		m.apply()

	case *Frame:
		// The application whose body just finished: drop the frame
		// token beneath the result and deactivate the frame.
		m.removeSecond()
		x.Removed = true
		for i := len(m.envs) - 1; i >= 0; i-- {
			if !m.envs[i].Removed {
				m.current = m.envs[i]
				break
			}
		}

	case *UnaryOp:
		rand := m.pop()
		m.push(applyUnary(x.Op, rand))

	case *BinaryOp:
		rand1 := m.pop()
		rand2 := m.pop()
		m.push(applyBinary(x.Op, rand1, rand2))

	case *Beta:
		m.branch()

	case *Tau:
		tup := &Tuple{Elems: make([]Symbol, 0, x.N)}
		for i := 0; i < x.N; i++ {
			tup.Elems = append(tup.Elems, m.pop())
		}
		m.push(tup)

	case *Delta:
		m.control = append(m.control, x.Body...)

	case *Cond:
		m.control = append(m.control, x.Body...)

	default:
		// Literals, tuples, Ystar: operands push verbatim.
		m.push(x)
	}
}

// apply performs a gamma reduction, dispatching on the rator variant.
func (m *Machine) apply() {
	switch rator := m.pop().(type) {
	case *Lambda:
		m.applyLambda(rator)

	case *Tuple:
		index := m.pop()
		i, ok := index.(*Int)
		if !ok {
			m.push(&Err{})
			return
		}
		n, err := strconv.Atoi(i.Value)
		if err != nil || n < 1 || n > len(rator.Elems) {
			m.push(&Err{})
			return
		}
		m.push(rator.Elems[n-1])

	case *Ystar:
		lam, ok := m.pop().(*Lambda)
		if !ok || len(lam.Params) != 1 {
			m.push(&Err{})
			return
		}
		m.push(&Eta{
			Index: lam.Index,
			Env:   lam.Env,
			Ident: lam.Params[0],
			Fn:    lam,
		})

	case *Eta:
		// Unfold the recursion knot: two more applications follow.
		// The lambda lands above the eta, so the first gamma applies
		// the lambda to the eta (binding the recursive name) and the
		// second applies the resulting closure to the original
		// argument, still below on the stack.
		m.control = append(m.control, &Gamma{}, &Gamma{})
		m.push(rator)
		m.push(rator.Fn)

	case *Identifier:
		m.applyBuiltin(rator.Name)

	default:
		// A non-applicable rator is its own result. Fully applied
		// binary primitives reach this case: Conc consumes both
		// operands at the inner gamma, so the outer gamma sees the
		// finished string. This also keeps Err-as-rator yielding Err.
		m.push(rator)
	}
}

// applyLambda activates a closure: a fresh frame bound to the argument,
// linked to the closure's captured environment, pushed onto control
// (as the return marker, beneath the body), stack and environment list.
func (m *Machine) applyLambda(lam *Lambda) {
	frame := NewFrame(m.nextEnv, m.findEnv(lam.Env))

	if len(lam.Params) == 1 {
		frame.Bind(lam.Params[0], m.pop())
	} else {
		arg := m.pop()
		tup, ok := arg.(*Tuple)
		if !ok || len(tup.Elems) != len(lam.Params) {
			m.push(&Err{})
			return
		}
		for i, name := range lam.Params {
			frame.Bind(name, tup.Elems[i])
		}
	}

	m.nextEnv++
	m.envs = append(m.envs, frame)
	m.current = frame
	m.control = append(m.control, frame, lam.Body)
	m.push(frame)
}

// findEnv returns the frame with the given index. The environment list
// is append-only, so a reverse scan always finds it.
func (m *Machine) findEnv(index int) *Frame {
	for i := len(m.envs) - 1; i >= 0; i-- {
		if m.envs[i].Index == index {
			return m.envs[i]
		}
	}
	return m.envs[0]
}

// branch implements the beta protocol. The control was built as
// [delta_then, delta_else, beta, cond-block]; with beta consumed the
// top is delta_else and delta_then sits beneath it. True drops the
// top (keeping then), false drops the second-from-top (keeping else).
func (m *Machine) branch() {
	cond, ok := m.peek().(*Bool)
	if !ok {
		// Not a truth value: discard both branches and the condition,
		// leaving Err as the conditional's result.
		m.popControl()
		m.popControl()
		m.pop()
		m.push(&Err{})
		return
	}
	if cond.True() {
		m.popControl()
	} else {
		m.removeControlSecond()
	}
	m.pop()
}

// applyBuiltin dispatches an application whose rator is an unresolved
// name. The recognized names are RPAL's primitives; anything else is
// an unresolved rator and yields Err.
func (m *Machine) applyBuiltin(name string) {
	switch name {
	case "Print":
		// The operand stays on the stack as the application's result;
		// its rendering goes to the machine's output writer.
		fmt.Fprintln(m.out, Format(m.peek()))

	case "Stem":
		s, ok := m.pop().(*Str)
		if !ok {
			m.push(&Err{})
			return
		}
		m.push(&Str{Value: firstRune(s.Value)})

	case "Stern":
		s, ok := m.pop().(*Str)
		if !ok {
			m.push(&Err{})
			return
		}
		m.push(&Str{Value: restRunes(s.Value)})

	case "Conc":
		s1, ok1 := m.pop().(*Str)
		s2, ok2 := m.pop().(*Str)
		if !ok1 || !ok2 {
			m.push(&Err{})
			return
		}
		m.push(&Str{Value: s1.Value + s2.Value})

	case "Order":
		tup, ok := m.pop().(*Tuple)
		if !ok {
			m.push(&Err{})
			return
		}
		m.push(IntFromInt64(int64(len(tup.Elems))))

	case "Null":
		tup, ok := m.pop().(*Tuple)
		if !ok {
			m.push(&Err{})
			return
		}
		m.push(BoolFrom(len(tup.Elems) == 0))

	case "Itos":
		v, ok := m.pop().(*Int)
		if !ok {
			m.push(&Err{})
			return
		}
		m.push(&Str{Value: v.Value})

	case "Isinteger":
		_, ok := m.pop().(*Int)
		m.push(BoolFrom(ok))

	case "Isstring":
		_, ok := m.pop().(*Str)
		m.push(BoolFrom(ok))

	case "Istuple":
		_, ok := m.pop().(*Tuple)
		m.push(BoolFrom(ok))

	case "Isdummy":
		_, ok := m.pop().(*Dummy)
		m.push(BoolFrom(ok))

	case "Istruthvalue":
		_, ok := m.pop().(*Bool)
		m.push(BoolFrom(ok))

	case "Isfunction":
		_, ok := m.pop().(*Lambda)
		m.push(BoolFrom(ok))

	default:
		m.pop()
		m.push(&Err{})
	}
}

// Stack and control helpers. The top of each is the end of the slice.

func (m *Machine) push(s Symbol) {
	m.stack = append(m.stack, s)
}

func (m *Machine) pop() Symbol {
	if len(m.stack) == 0 {
		m.fatal = errStackUnderflow
		return &Err{}
	}
	s := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return s
}

func (m *Machine) top() Symbol {
	return m.stack[len(m.stack)-1]
}

func (m *Machine) peek() Symbol {
	if len(m.stack) == 0 {
		m.fatal = errStackUnderflow
		return &Err{}
	}
	return m.stack[len(m.stack)-1]
}

// removeSecond drops the second-from-top stack item, keeping the top.
func (m *Machine) removeSecond() {
	n := len(m.stack)
	if n < 2 {
		m.fatal = errStackUnderflow
		return
	}
	m.stack = append(m.stack[:n-2], m.stack[n-1])
}

func (m *Machine) popControl() Symbol {
	if len(m.control) == 0 {
		m.fatal = errStackUnderflow
		return &Err{}
	}
	s := m.control[len(m.control)-1]
	m.control = m.control[:len(m.control)-1]
	return s
}

// removeControlSecond drops the second-from-top control item.
func (m *Machine) removeControlSecond() {
	n := len(m.control)
	if n < 2 {
		m.fatal = errStackUnderflow
		return
	}
	m.control = append(m.control[:n-2], m.control[n-1])
}

// firstRune returns the first character of s, or "" for an empty s.
func firstRune(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}

// restRunes returns s without its first character.
func restRunes(s string) string {
	for i := range s {
		if i > 0 {
			return s[i:]
		}
	}
	return ""
}
