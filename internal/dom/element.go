package dom

import (
	"slices"
	"strconv"
	"strings"
)

// Option configures a newly created element.
type Option func(*Element)

// WithRole sets the ARIA role attribute.
func WithRole(role string) Option {
	return func(e *Element) {
		if role != "" {
			e.SetAttr("role", role)
		}
	}
}

// WithText sets the element's own text content.
func WithText(text string) Option {
	return func(e *Element) {
		e.text = text
	}
}

// WithAttr sets an arbitrary attribute.
func WithAttr(name, value string) Option {
	return func(e *Element) {
		e.SetAttr(name, value)
	}
}

// WithLabel sets aria-label.
func WithLabel(label string) Option {
	return WithAttr("aria-label", label)
}

// Element is a node of the in-memory element tree. It models the subset of
// the browser DOM the grid needs: tag, class list, attributes, a text
// payload, children, tabindex and visibility.
//
// Elements are not safe for concurrent use; all mutation happens on the
// goroutine that owns the tree (see internal/eventloop).
type Element struct {
	tag      string
	classes  []string
	attrs    map[string]string
	text     string
	children []*Element
	parent   *Element
	hidden   bool

	// doc is only set on a document's root element.
	doc *Document
}

// NewElement creates a detached element. className is a space separated
// class list, as with the HTML class attribute.
func NewElement(tag, className string, opts ...Option) *Element {
	e := &Element{
		tag:     tag,
		classes: strings.Fields(className),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Element) Tag() string { return e.tag }

// Parent returns the parent element or nil for a detached or root element.
func (e *Element) Parent() *Element { return e.parent }

// Children returns a copy of the child list.
func (e *Element) Children() []*Element {
	return slices.Clone(e.children)
}

// Append adds children at the end, detaching them from any previous parent.
func (e *Element) Append(children ...*Element) {
	for _, c := range children {
		if c == nil {
			continue
		}
		c.detach()
		c.parent = e
		e.children = append(e.children, c)
	}
	e.notifyMutation()
}

// ReplaceChildren removes every child and appends the given ones.
func (e *Element) ReplaceChildren(children ...*Element) {
	for _, c := range e.children {
		c.parent = nil
	}
	e.children = nil
	for _, c := range children {
		if c == nil {
			continue
		}
		c.detach()
		c.parent = e
		e.children = append(e.children, c)
	}
	e.notifyMutation()
}

// Remove detaches the element from its parent.
func (e *Element) Remove() {
	p := e.parent
	if p == nil {
		return
	}
	e.detach()
	p.notifyMutation()
}

func (e *Element) detach() {
	p := e.parent
	if p == nil {
		return
	}
	if i := slices.Index(p.children, e); i >= 0 {
		p.children = slices.Delete(p.children, i, i+1)
	}
	e.parent = nil
}

// Root walks up to the topmost ancestor.
func (e *Element) Root() *Element {
	r := e
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// OwnerDocument returns the document the element is connected to, or nil.
func (e *Element) OwnerDocument() *Document {
	return e.Root().doc
}

// Contains reports whether other is e or one of its descendants.
func (e *Element) Contains(other *Element) bool {
	for n := other; n != nil; n = n.parent {
		if n == e {
			return true
		}
	}
	return false
}

// Classes returns a copy of the class list.
func (e *Element) Classes() []string { return slices.Clone(e.classes) }

// ClassName returns the class attribute value.
func (e *Element) ClassName() string { return strings.Join(e.classes, " ") }

func (e *Element) HasClass(class string) bool {
	return slices.Contains(e.classes, class)
}

func (e *Element) AddClass(classes ...string) {
	for _, c := range classes {
		if c != "" && !e.HasClass(c) {
			e.classes = append(e.classes, c)
		}
	}
}

func (e *Element) RemoveClass(class string) {
	if i := slices.Index(e.classes, class); i >= 0 {
		e.classes = slices.Delete(e.classes, i, i+1)
	}
}

// Attr returns the value of an attribute.
func (e *Element) Attr(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

func (e *Element) SetAttr(name, value string) {
	if e.attrs == nil {
		e.attrs = make(map[string]string)
	}
	e.attrs[name] = value
}

func (e *Element) RemoveAttr(name string) {
	delete(e.attrs, name)
}

// Role returns the ARIA role, if any.
func (e *Element) Role() string {
	return e.attrs["role"]
}

// Label returns aria-label, if any.
func (e *Element) Label() string {
	return e.attrs["aria-label"]
}

// Text returns the element's own text, excluding descendants.
func (e *Element) Text() string { return e.text }

func (e *Element) SetText(text string) { e.text = text }

// TextContent concatenates the text of the element and all descendants in
// document order, as Node.textContent does.
func (e *Element) TextContent() string {
	var b strings.Builder
	e.walk(func(n *Element) bool {
		b.WriteString(n.text)
		return true
	})
	return b.String()
}

// TabIndex returns the tabindex attribute and whether it is set.
func (e *Element) TabIndex() (int, bool) {
	v, ok := e.attrs["tabindex"]
	if !ok {
		return 0, false
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return i, true
}

func (e *Element) SetTabIndex(i int) {
	e.SetAttr("tabindex", strconv.Itoa(i))
}

// Tabbable reports whether the element is reachable with the tab key.
func (e *Element) Tabbable() bool {
	i, ok := e.TabIndex()
	return ok && i >= 0
}

// SetHidden collapses the element, like display: none.
func (e *Element) SetHidden(hidden bool) { e.hidden = hidden }

// Visible reports whether neither the element nor an ancestor is hidden.
func (e *Element) Visible() bool {
	for n := e; n != nil; n = n.parent {
		if n.hidden {
			return false
		}
	}
	return true
}

// Focus makes the element the active element of its document. It is a
// no-op for detached elements.
func (e *Element) Focus() {
	if d := e.OwnerDocument(); d != nil {
		d.active = e
	}
}

// Focused reports whether the element is its document's active element.
func (e *Element) Focused() bool {
	d := e.OwnerDocument()
	return d != nil && d.active == e
}

// QueryAll returns descendants (excluding e) carrying class, in document
// order. An empty tag matches any tag.
func (e *Element) QueryAll(tag, class string) []*Element {
	var out []*Element
	for _, c := range e.children {
		c.walk(func(n *Element) bool {
			if (tag == "" || n.tag == tag) && (class == "" || n.HasClass(class)) {
				out = append(out, n)
			}
			return true
		})
	}
	return out
}

// Query returns the first match of QueryAll or nil.
func (e *Element) Query(tag, class string) *Element {
	var found *Element
	for _, c := range e.children {
		c.walk(func(n *Element) bool {
			if found != nil {
				return false
			}
			if (tag == "" || n.tag == tag) && (class == "" || n.HasClass(class)) {
				found = n
				return false
			}
			return true
		})
		if found != nil {
			break
		}
	}
	return found
}

// Closest returns the nearest inclusive ancestor matching tag and class.
func (e *Element) Closest(tag, class string) *Element {
	for n := e; n != nil; n = n.parent {
		if (tag == "" || n.tag == tag) && (class == "" || n.HasClass(class)) {
			return n
		}
	}
	return nil
}

// walk visits e and its descendants depth first. Returning false from fn
// skips the node's children.
func (e *Element) walk(fn func(*Element) bool) {
	if !fn(e) {
		return
	}
	for _, c := range e.children {
		c.walk(fn)
	}
}

func (e *Element) notifyMutation() {
	if d := e.OwnerDocument(); d != nil {
		d.notify()
	}
}
