package coloring

import (
	"strconv"
	"strings"

	"github.com/zeu5/coloring-rl/types"
)

// Uncolored marks a node without a color
const Uncolored = -1

// State is the color of every node in node id order
type State []int

var _ types.State = State{}

func (s State) Hash() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, c := range s {
		if i > 0 {
			b.WriteString(", ")
		}
		if c == Uncolored {
			b.WriteString("_")
		} else {
			b.WriteString(strconv.Itoa(c))
		}
	}
	b.WriteByte(')')
	return b.String()
}

func (s State) Len() int {
	return len(s)
}

func (s State) Eq(other State) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Colored counts the nodes holding a color
func (s State) Colored() int {
	count := 0
	for _, c := range s {
		if c != Uncolored {
			count++
		}
	}
	return count
}
