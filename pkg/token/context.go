package token

// Context carries the named root bindings for one render call: user,
// entry, system, site and whatever else the caller supplies. The engine
// never mutates or retains a Context; callers build a fresh one per call.
type Context struct {
	bindings map[string]Binding
}

// NewContext returns an empty Context.
func NewContext() *Context {
	return &Context{bindings: make(map[string]Binding)}
}

// Bind attaches a binding under the given namespace and returns the
// Context for chaining.
func (c *Context) Bind(namespace string, b Binding) *Context {
	c.bindings[namespace] = b
	return c
}

// BindValue attaches a plain value graph as a Static binding.
func (c *Context) BindValue(namespace string, value any) *Context {
	return c.Bind(namespace, Static(value))
}

// Namespaces returns the bound namespace names, for editor autocompletion.
func (c *Context) Namespaces() []string {
	if c == nil {
		return nil
	}
	names := make([]string, 0, len(c.bindings))
	for name := range c.bindings {
		names = append(names, name)
	}
	return names
}

func (c *Context) binding(namespace string) (Binding, bool) {
	if c == nil {
		return nil, false
	}
	b, ok := c.bindings[namespace]
	return b, ok
}
