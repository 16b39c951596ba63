package mcfg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Agenda_FIFO(t *testing.T) {
	assert := assert.New(t)

	a := NewAgenda()
	assert.True(a.Empty())

	first := &Item{NonTerminal: "A", Spans: []Span{{0, 1}}}
	second := &Item{NonTerminal: "B", Spans: []Span{{1, 2}}}

	a.Push(first)
	a.Push(second)
	assert.False(a.Empty())

	assert.Same(first, a.Pop())
	assert.Same(second, a.Pop())
	assert.True(a.Empty())
}
