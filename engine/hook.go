package engine

// HookPos identifies a point in a component's lifecycle where a Hook can be
// invoked.
type HookPos struct {
	Name string
}

// HookPosBeforeEvent fires immediately before an engine processes an event.
var HookPosBeforeEvent = &HookPos{Name: "BeforeEvent"}

// HookPosAfterEvent fires immediately after an engine processes an event.
var HookPosAfterEvent = &HookPos{Name: "AfterEvent"}

// HookCtx carries the information available at a hook site.
type HookCtx struct {
	Domain Hookable
	Pos    *HookPos
	Item   interface{}
	Detail interface{}
}

// Hookable is implemented by anything that accepts Hooks.
type Hookable interface {
	AcceptHook(hook Hook)
	NumHooks() int
}

// Hook is a small piece of logic invoked by a Hookable at a HookPos.
type Hook interface {
	Func(ctx HookCtx)
}

// HookableBase implements the bookkeeping side of Hookable.
type HookableBase struct {
	hooks []Hook
}

// AcceptHook registers a hook.
func (h *HookableBase) AcceptHook(hook Hook) {
	h.hooks = append(h.hooks, hook)
}

// NumHooks returns how many hooks are registered.
func (h *HookableBase) NumHooks() int {
	return len(h.hooks)
}

// InvokeHook runs every registered hook with the given context.
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.hooks {
		hook.Func(ctx)
	}
}
