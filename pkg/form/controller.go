// Package form holds the draft of a create/edit submission and validates it against a rule set.
package form

import "maps"

// Controller holds the draft field values of one form and the errors recorded by the
// last validation. It is not safe for concurrent use; each submission owns one.
type Controller struct {
	defaults map[string]string
	values   map[string]string
	errors   map[string]string
}

// New returns a Controller initialized with defaults
func New(defaults map[string]string) *Controller {
	c := &Controller{}
	c.Initialize(defaults)
	return c
}

// Initialize replaces the defaults and resets the draft to them
func (c *Controller) Initialize(defaults map[string]string) {
	c.defaults = maps.Clone(defaults)
	if c.defaults == nil {
		c.defaults = map[string]string{}
	}
	c.Reset()
}

// SetField overwrites one field and clears any error recorded for it. The field is not
// re-validated until the next Validate call.
func (c *Controller) SetField(name, value string) {
	c.values[name] = value
	delete(c.errors, name)
}

// Field returns the current draft value of name
func (c *Controller) Field(name string) string {
	return c.values[name]
}

// Values returns a copy of the draft
func (c *Controller) Values() map[string]string {
	return maps.Clone(c.values)
}

// Reset restores the draft to the last supplied defaults and clears all errors
func (c *Controller) Reset() {
	c.values = maps.Clone(c.defaults)
	c.errors = map[string]string{}
}

// Validate runs every rule against the draft, replaces the recorded errors with the
// failures and reports whether the draft passed.
func (c *Controller) Validate(rules Rules) bool {
	c.errors = rules.Check(c.values)
	return len(c.errors) == 0
}

// Errors returns a copy of the per-field error messages from the last Validate
func (c *Controller) Errors() map[string]string {
	return maps.Clone(c.errors)
}

// Error returns the recorded error message of name, or "" when the field is valid
func (c *Controller) Error(name string) string {
	return c.errors[name]
}
