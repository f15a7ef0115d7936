package dom

// MutationKind identifies what changed in a Mutation.
type MutationKind uint8

const (
	MutationChildList MutationKind = iota + 1
	MutationAttributes
	MutationCharacterData
	MutationProperty
)

// String returns the string representation of the MutationKind.
func (k MutationKind) String() string {
	switch k {
	case MutationChildList:
		return "childList"
	case MutationAttributes:
		return "attributes"
	case MutationCharacterData:
		return "characterData"
	case MutationProperty:
		return "property"
	default:
		return "unknown"
	}
}

// Mutation describes a single change to the tree.
type Mutation struct {
	Kind   MutationKind
	Target Node

	// Name is the attribute or property name for attribute and property
	// mutations. Empty otherwise.
	Name string
}

type observer struct {
	id uint64
	fn func(Mutation)
}

// Document creates nodes and fans out mutation records.
type Document struct {
	observers []observer
	nextID    uint64
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{}
}

// CreateElement creates an element with the given tag name. The tag is
// kept verbatim.
func (d *Document) CreateElement(tag string) *Element {
	e := &Element{tag: tag}
	e.doc = d
	e.style = &Style{owner: e, decls: make(map[string]*styleDecl)}
	e.classList = &ClassList{owner: e}
	return e
}

// CreateTextNode creates a detached text node.
func (d *Document) CreateTextNode(data string) *Text {
	t := &Text{data: data}
	t.doc = d
	return t
}

// CreateComment creates a detached comment node.
func (d *Document) CreateComment(data string) *Comment {
	c := &Comment{data: data}
	c.doc = d
	return c
}

// Observe registers fn to receive every mutation made to nodes owned by this
// document. The returned function stops delivery; calling it twice is safe.
func (d *Document) Observe(fn func(Mutation)) (stop func()) {
	if fn == nil {
		return func() {}
	}
	d.nextID++
	id := d.nextID
	d.observers = append(d.observers, observer{id: id, fn: fn})

	return func() {
		for i, o := range d.observers {
			if o.id == id {
				d.observers = append(d.observers[:i:i], d.observers[i+1:]...)
				return
			}
		}
	}
}

// notify delivers a mutation record to all observers.
func (d *Document) notify(m Mutation) {
	if d == nil || len(d.observers) == 0 {
		return
	}
	// Copy so observers may stop themselves during delivery.
	obs := make([]observer, len(d.observers))
	copy(obs, d.observers)
	for _, o := range obs {
		o.fn(m)
	}
}
