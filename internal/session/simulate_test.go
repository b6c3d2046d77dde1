package session

import (
	"testing"
)

func TestSimulateWinsEveryWord(t *testing.T) {
	s := testSolver(t)
	for _, secret := range s.Allowed() {
		o, err := Simulate(s, secret, 20)
		if err != nil {
			t.Fatal(err)
		}
		if o.Status != Won {
			t.Errorf("secret %d: status %v after %d steps", secret, o.Status, len(o.Steps))
			continue
		}
		if last := o.Steps[len(o.Steps)-1]; last.Guess != secret {
			t.Errorf("secret %d: last guess %d", secret, last.Guess)
		}
		if len(o.Steps) > len(s.Allowed()) {
			t.Errorf("secret %d: %d steps", secret, len(o.Steps))
		}
	}
}

func TestSimulateStepLimit(t *testing.T) {
	s := testSolver(t)
	// With one step allowed only a lucky first guess wins.
	for _, secret := range s.Allowed() {
		o, err := Simulate(s, secret, 1)
		if err != nil {
			t.Fatal(err)
		}
		if len(o.Steps) != 1 {
			t.Errorf("secret %d: %d steps, want 1", secret, len(o.Steps))
		}
		if (o.Status == Won) != (o.Steps[0].Guess == secret) {
			t.Errorf("secret %d: status %v with first guess %d", secret, o.Status, o.Steps[0].Guess)
		}
	}
}
