package footsteps

import (
	"testing"

	"go.viam.com/test"
)

func TestSideOther(t *testing.T) {
	test.That(t, Left.Other(), test.ShouldEqual, Right)
	test.That(t, Right.Other(), test.ShouldEqual, Left)
	test.That(t, Both.Other(), test.ShouldEqual, Both)
}

func TestSideString(t *testing.T) {
	test.That(t, Left.String(), test.ShouldEqual, "left")
	test.That(t, Right.String(), test.ShouldEqual, "right")
	test.That(t, Both.String(), test.ShouldEqual, "both")
}
