package jerkplanner

import (
	"errors"
	"testing"

	"go.viam.com/test"
)

func TestQPErrorUnwrap(t *testing.T) {
	err := newQPError(Infeasible, "no solution for %d timesteps", 5)
	test.That(t, err.Kind, test.ShouldEqual, Infeasible)
	test.That(t, err.Error(), test.ShouldContainSubstring, "5")

	var target *QPError
	test.That(t, errors.As(error(err), &target), test.ShouldBeTrue)
	test.That(t, target.Kind, test.ShouldEqual, Infeasible)
}
