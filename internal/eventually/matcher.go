package eventually

import (
	"fmt"
	"math"

	"github.com/stretchr/testify/assert"
)

// Matcher is a predicate with a description.
type Matcher[T any] interface {
	Match(v T) bool
	String() string
}

// Equals matches values equal to want, using the same comparison as
// testify's assert.Equal.
func Equals[T any](want T) Matcher[T] {
	return equals[T]{want: want}
}

type equals[T any] struct {
	want T
}

func (m equals[T]) Match(v T) bool {
	return assert.ObjectsAreEqual(m.want, v)
}

func (m equals[T]) String() string {
	return fmt.Sprintf("Equals(%#v)", m.want)
}

// Not inverts a matcher.
func Not[T any](m Matcher[T]) Matcher[T] {
	return not[T]{m: m}
}

type not[T any] struct {
	m Matcher[T]
}

func (m not[T]) Match(v T) bool { return !m.m.Match(v) }
func (m not[T]) String() string  { return "Not(" + m.m.String() + ")" }

// Approx matches floats within epsilon of want.
func Approx(want, epsilon float64) Matcher[float64] {
	return approx{want: want, epsilon: epsilon}
}

type approx struct {
	want    float64
	epsilon float64
}

func (m approx) Match(v float64) bool {
	return math.Abs(v-m.want) <= m.epsilon
}

func (m approx) String() string {
	return fmt.Sprintf("Approx(%v, ±%v)", m.want, m.epsilon)
}
