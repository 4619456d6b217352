package dom

import "slices"

// Document owns a root element and tracks the active (focused) element and
// mutation observers, standing in for the browser document.
type Document struct {
	body      *Element
	active    *Element
	observers []*observer
	nextID    int
}

type observer struct {
	id int
	fn func()
}

// NewDocument creates a document with an empty body element.
func NewDocument() *Document {
	d := &Document{}
	d.body = NewElement("body", "")
	d.body.doc = d
	return d
}

// Body returns the document's root element.
func (d *Document) Body() *Element { return d.body }

// Contains reports whether el is connected to this document.
func (d *Document) Contains(el *Element) bool {
	return el != nil && el.Root() == d.body
}

// ActiveElement returns the focused element, or nil when focus was lost
// because the element left the document.
func (d *Document) ActiveElement() *Element {
	if d.active != nil && !d.Contains(d.active) {
		d.active = nil
	}
	return d.active
}

// Observe registers fn to be called after every child-list change anywhere
// in the document's subtree. The returned function unregisters it.
func (d *Document) Observe(fn func()) (disconnect func()) {
	d.nextID++
	id := d.nextID
	d.observers = append(d.observers, &observer{id: id, fn: fn})
	return func() {
		d.observers = slices.DeleteFunc(d.observers, func(o *observer) bool { return o.id == id })
	}
}

// ObserverCount is the number of registered mutation observers.
func (d *Document) ObserverCount() int { return len(d.observers) }

func (d *Document) notify() {
	// Observers may disconnect themselves while being notified.
	for _, o := range slices.Clone(d.observers) {
		o.fn()
	}
}
