// Package pins records which blocks claim which physical resources during a
// generation pass and reports incompatible reuse.
package pins

import "fmt"

// Kind is the usage a resource is claimed for.
type Kind string

const (
	Input   Kind = "INPUT"
	Output  Kind = "OUTPUT"
	PWM     Kind = "PWM"
	Servo   Kind = "SERVO"
	Stepper Kind = "STEPPER"
	Serial  Kind = "SERIAL"
	I2C     Kind = "I2C/TWI"
	SPI     Kind = "SPI"
)

// Claim is the first reservation recorded for a resource.
type Claim struct {
	Resource string
	Kind     Kind
	Owner    string
	Label    string
}

// Conflict describes a reservation whose kind differs from the existing
// claim on the same resource.
type Conflict struct {
	Resource string
	Kind     Kind
	Owner    string
	Label    string
	Existing Claim
}

func (c *Conflict) Error() string {
	return fmt.Sprintf("pin %s claimed as %s by block %s, already used as %s by block %s",
		c.Resource, c.Kind, c.Owner, c.Existing.Kind, c.Existing.Owner)
}

// Message is the annotation text attached to the block that made the
// conflicting reservation.
func (c *Conflict) Message() string {
	return fmt.Sprintf("Pin %s is needed for %s as pin %s. Already used as %s by block %s.",
		c.Resource, c.Label, c.Kind, c.Existing.Kind, c.Existing.Owner)
}

// ExistingMessage is the annotation text attached to the block holding the
// original claim.
func (c *Conflict) ExistingMessage() string {
	return fmt.Sprintf("Pin %s is used for %s as pin %s. Also needed as %s by %s in block %s.",
		c.Resource, c.Existing.Label, c.Existing.Kind, c.Kind, c.Label, c.Owner)
}

// Ledger is the per-pass claim table. The zero value is ready to use.
type Ledger struct {
	claims map[string]Claim
	order  []string
}

// Reserve records owner's use of resource as kind. Reusing a resource for
// the same kind is legal and returns nil; any other kind returns a Conflict.
// The first claim always stands.
func (l *Ledger) Reserve(resource string, kind Kind, owner, label string) *Conflict {
	if l.claims == nil {
		l.claims = make(map[string]Claim)
	}
	existing, ok := l.claims[resource]
	if !ok {
		l.claims[resource] = Claim{Resource: resource, Kind: kind, Owner: owner, Label: label}
		l.order = append(l.order, resource)
		return nil
	}
	if existing.Kind == kind {
		return nil
	}
	return &Conflict{Resource: resource, Kind: kind, Owner: owner, Label: label, Existing: existing}
}

func (l *Ledger) Lookup(resource string) (Claim, bool) {
	c, ok := l.claims[resource]
	return c, ok
}

// Claims lists the recorded claims in reservation order.
func (l *Ledger) Claims() []Claim {
	out := make([]Claim, 0, len(l.order))
	for _, r := range l.order {
		out = append(out, l.claims[r])
	}
	return out
}

func (l *Ledger) Reset() {
	l.claims = nil
	l.order = nil
}
