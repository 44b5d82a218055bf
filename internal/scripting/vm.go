// Package scripting runs user-supplied JavaScript policies in a sandboxed
// goja runtime. A script defines decide(obs) and returns an action.
package scripting

import (
	"fmt"
	"strings"
	"time"

	"github.com/dop251/goja"
)

// LogEntry is a single log message emitted by the script.
type LogEntry struct {
	Time    time.Time `json:"time"`
	Message string    `json:"message"`
}

// VM wraps a goja runtime with sandbox restrictions and the blackjack
// globals injected. A VM drives one table session at a time and is not safe
// for concurrent use.
type VM struct {
	runtime *goja.Runtime

	logs    []LogEntry
	maxLogs int
}

// NewVM creates a sandboxed runtime with the action constants and log
// functions injected.
func NewVM() *VM {
	vm := &VM{
		runtime: goja.New(),
		maxLogs: 500,
	}
	vm.injectGlobals()
	return vm
}

func (vm *VM) injectGlobals() {
	// Action constants matching the table's closed enum.
	vm.runtime.Set("STAND", 0)
	vm.runtime.Set("HIT", 1)
	vm.runtime.Set("DOUBLE", 2)

	// log(...args) — appends to the ring buffer
	vm.runtime.Set("log", func(call goja.FunctionCall) goja.Value {
		parts := make([]string, len(call.Arguments))
		for i, arg := range call.Arguments {
			parts[i] = arg.String()
		}
		vm.appendLog(strings.Join(parts, " "))
		return goja.Undefined()
	})

	// console.log — alias for log
	console := vm.runtime.NewObject()
	console.Set("log", vm.runtime.Get("log"))
	vm.runtime.Set("console", console)

	// Block dangerous globals. Math stays available for strategy arithmetic.
	vm.runtime.Set("require", goja.Undefined())
	vm.runtime.Set("fetch", goja.Undefined())
	vm.runtime.Set("XMLHttpRequest", goja.Undefined())
	vm.runtime.Set("eval", goja.Undefined())
	vm.runtime.Set("Function", goja.Undefined())
}

func (vm *VM) appendLog(msg string) {
	if len(vm.logs) >= vm.maxLogs {
		vm.logs = vm.logs[1:]
	}
	vm.logs = append(vm.logs, LogEntry{Time: time.Now(), Message: msg})
}

// Logs returns a copy of the buffered script log.
func (vm *VM) Logs() []LogEntry {
	out := make([]LogEntry, len(vm.logs))
	copy(out, vm.logs)
	return out
}

// Execute runs the script source once, registering decide(). Called at the
// start of a session.
func (vm *VM) Execute(source string) error {
	if _, err := vm.runtime.RunString(source); err != nil {
		return fmt.Errorf("script execution error: %w", err)
	}

	fn := vm.runtime.Get("decide")
	if fn == nil || goja.IsUndefined(fn) || goja.IsNull(fn) {
		return fmt.Errorf("decide() function is not defined")
	}
	if _, ok := goja.AssertFunction(fn); !ok {
		return fmt.Errorf("decide is not a function")
	}
	return nil
}

// CallDecide invokes the script's decide(obs) with the observation fields and
// returns the raw value the script produced.
func (vm *VM) CallDecide(playerSum, dealerUpcard int, usableAce bool) (goja.Value, error) {
	fn := vm.runtime.Get("decide")
	callable, ok := goja.AssertFunction(fn)
	if !ok {
		return nil, fmt.Errorf("decide is not a function")
	}

	obs := vm.runtime.NewObject()
	obs.Set("playerSum", playerSum)
	obs.Set("dealerUpcard", dealerUpcard)
	obs.Set("usableAce", usableAce)

	result, err := callable(goja.Undefined(), obs)
	if err != nil {
		return nil, fmt.Errorf("decide() error: %w", err)
	}
	return result, nil
}
