package pins

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReserveSameKindShares(t *testing.T) {
	var l Ledger
	if c := l.Reserve("PA_5", Output, "b1", "Digital Write"); c != nil {
		t.Fatalf("first Reserve returned %v", c)
	}
	if c := l.Reserve("PA_5", Output, "b2", "Digital Write"); c != nil {
		t.Fatalf("same-kind Reserve returned %v", c)
	}
	want := []Claim{{Resource: "PA_5", Kind: Output, Owner: "b1", Label: "Digital Write"}}
	if diff := cmp.Diff(want, l.Claims()); diff != "" {
		t.Errorf("claims mismatch (-want +got):\n%s", diff)
	}
}

func TestReserveDifferentKindConflicts(t *testing.T) {
	var l Ledger
	l.Reserve("PA_5", Output, "b1", "Digital Write")
	c := l.Reserve("PA_5", SPI, "b2", "SPI SCK")
	if c == nil {
		t.Fatal("different-kind Reserve returned no conflict")
	}
	want := &Conflict{
		Resource: "PA_5", Kind: SPI, Owner: "b2", Label: "SPI SCK",
		Existing: Claim{Resource: "PA_5", Kind: Output, Owner: "b1", Label: "Digital Write"},
	}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Errorf("conflict mismatch (-want +got):\n%s", diff)
	}
	if got := c.Message(); got != "Pin PA_5 is needed for SPI SCK as pin SPI. Already used as OUTPUT by block b1." {
		t.Errorf("Message() = %q", got)
	}
	if got := c.ExistingMessage(); got != "Pin PA_5 is used for Digital Write as pin OUTPUT. Also needed as SPI by SPI SCK in block b2." {
		t.Errorf("ExistingMessage() = %q", got)
	}

	var err error = c
	var target *Conflict
	if !errors.As(err, &target) || target.Owner != "b2" {
		t.Errorf("errors.As failed on %v", err)
	}

	if claim, _ := l.Lookup("PA_5"); claim.Kind != Output {
		t.Errorf("first claim overwritten: %+v", claim)
	}
}

func TestReset(t *testing.T) {
	var l Ledger
	l.Reserve("p5", Input, "b1", "Digital Read")
	l.Reset()
	if len(l.Claims()) != 0 {
		t.Fatalf("claims survived Reset: %v", l.Claims())
	}
	if c := l.Reserve("p5", Output, "b2", "Digital Write"); c != nil {
		t.Errorf("Reserve after Reset returned %v", c)
	}
}
