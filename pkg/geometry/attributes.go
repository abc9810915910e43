package geometry

import (
	"fmt"
	"sort"

	"github.com/chazu/geograph/pkg/attribute"
)

// An attribute name lives in at most one domain; storing a name in a new
// domain removes it from the old one.

func (d *Data) put(a attribute.Attribute) {
	for i := range d.attributes {
		delete(d.attributes[i], a.Name())
	}
	d.attributes[a.Domain()][a.Name()] = a
}

// HasAttribute reports whether an attribute named name exists. With no
// domains given every domain is searched.
func (d *Data) HasAttribute(name string, domains ...attribute.Domain) bool {
	_, ok := d.lookup(name, domains...)
	return ok
}

func (d *Data) lookup(name string, domains ...attribute.Domain) (attribute.Attribute, bool) {
	if d == nil {
		return nil, false
	}
	if len(domains) == 0 {
		domains = attribute.Domains
	}
	for _, domain := range domains {
		if a, ok := d.attributes[domain][name]; ok {
			return a, true
		}
	}
	return nil, false
}

// Attribute returns the stored attribute named name in domain. The result
// is the live attribute, not a copy.
func (d *Data) Attribute(name string, domain attribute.Domain) (attribute.Attribute, bool) {
	return d.lookup(name, domain)
}

// FindAttribute returns the attribute named name from whichever domain
// holds it.
func (d *Data) FindAttribute(name string) (attribute.Attribute, bool) {
	return d.lookup(name)
}

// StoreAttribute stores a in its own domain, replacing any attribute of the
// same name. The length must match the domain's element count.
func (d *Data) StoreAttribute(a attribute.Attribute) error {
	if want := d.ElementCount(a.Domain()); a.Len() != want {
		return fmt.Errorf("%w: %q has %d values, %s has %d elements", ErrAttributeLength, a.Name(), a.Len(), a.Domain(), want)
	}
	d.put(a)
	return nil
}

// StoreAttributeAs converts a to domain and stores it.
func (d *Data) StoreAttributeAs(a attribute.Attribute, domain attribute.Domain) error {
	return d.StoreAttribute(d.ConvertDomain(a, domain))
}

// RequestAttribute returns a copy of the attribute named name, converted to
// typ and domain. The requested domain is searched first, then the others.
func (d *Data) RequestAttribute(name string, typ attribute.Type, domain attribute.Domain) (attribute.Attribute, bool) {
	a, ok := d.lookup(name, domain)
	if !ok {
		a, ok = d.lookup(name)
		if !ok {
			return nil, false
		}
		a = d.ConvertDomain(a, domain)
	}
	if a.Type() != typ {
		return attribute.Into(a, typ), true
	}
	return a.Clone(), true
}

// RemoveAttribute deletes the attribute named name from every domain, or
// from the given domains only.
func (d *Data) RemoveAttribute(name string, domains ...attribute.Domain) bool {
	if len(domains) == 0 {
		domains = attribute.Domains
	}
	removed := false
	for _, domain := range domains {
		if _, ok := d.attributes[domain][name]; ok {
			delete(d.attributes[domain], name)
			removed = true
		}
	}
	return removed
}

// AttributeNames returns the names stored in domain, sorted.
func (d *Data) AttributeNames(domain attribute.Domain) []string {
	names := make([]string, 0, len(d.attributes[domain]))
	for name := range d.attributes[domain] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Attributes returns every stored attribute, ordered by domain then name.
func (d *Data) Attributes() []attribute.Attribute {
	var out []attribute.Attribute
	for _, domain := range attribute.Domains {
		for _, name := range d.AttributeNames(domain) {
			out = append(out, d.attributes[domain][name])
		}
	}
	return out
}

// AttributeOrDefault returns the named attribute converted to T's type in
// domain, or a new attribute filled with def when it does not exist.
func AttributeOrDefault[T attribute.Element](d *Data, name string, domain attribute.Domain, def T) *attribute.Of[T] {
	if a, ok := d.lookup(name); ok {
		if a.Domain() != domain {
			a = d.ConvertDomain(a, domain)
		}
		return attribute.As[T](a)
	}
	values := make([]T, d.ElementCount(domain))
	for i := range values {
		values[i] = def
	}
	return attribute.New(name, domain, attribute.TypeOf[T](), values)
}
