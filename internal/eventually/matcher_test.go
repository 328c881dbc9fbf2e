package eventually

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEquals(t *testing.T) {
	assert.True(t, Equals(true).Match(true))
	assert.False(t, Equals(true).Match(false))
	assert.True(t, Equals(1.0).Match(1.0))
	assert.False(t, Equals(1.0).Match(0.99))
	assert.True(t, Equals("Camera").Match("Camera"))
	assert.True(t, Equals([]int{1, 2}).Match([]int{1, 2}))

	assert.Equal(t, `Equals("Camera")`, Equals("Camera").String())
	assert.Equal(t, "Equals(true)", Equals(true).String())
}

func TestNot(t *testing.T) {
	m := Not(Equals(0))
	assert.True(t, m.Match(1))
	assert.False(t, m.Match(0))
	assert.Equal(t, "Not(Equals(0))", m.String())
}

func TestApprox(t *testing.T) {
	m := Approx(1.0, 0.01)
	assert.True(t, m.Match(0.995))
	assert.True(t, m.Match(1.0))
	assert.False(t, m.Match(0.9))
	assert.Contains(t, m.String(), "Approx(1")
}

func TestAssertion_String(t *testing.T) {
	assert.Equal(t, "Eventually(Equals(true))", Eventually(Equals(true)).String())
}
