package visibility

// Context carries the values a visibility condition is evaluated against.
// Keys are field or choice-group keys; values are the raw state values
// (strings for text and selections, bools for flags, ints for counters).
type Context struct {
	Values map[string]any
}

// Condition reports whether a field group should be visible for ctx.
type Condition interface {
	Visible(ctx Context) (bool, error)
}

// ConditionFunc adapts a function into a Condition.
type ConditionFunc func(ctx Context) (bool, error)

// Visible delegates to the underlying function.
func (fn ConditionFunc) Visible(ctx Context) (bool, error) {
	return fn(ctx)
}

// Always is the condition for groups without a visibility rule.
var Always Condition = ConditionFunc(func(Context) (bool, error) {
	return true, nil
})
