package savequote

import (
	"math/rand"
	"sync"
	"time"
)

// IDGenerator hands out quote identification numbers.
type IDGenerator interface {
	NextID() int
}

// RandomIDGenerator draws uniformly from [min, max].
type RandomIDGenerator struct {
	mu       sync.Mutex
	rnd      *rand.Rand
	min, max int
}

func NewRandomIDGenerator(min, max int) *RandomIDGenerator {
	return &RandomIDGenerator{
		rnd: rand.New(rand.NewSource(time.Now().UnixNano())),
		min: min,
		max: max,
	}
}

func (g *RandomIDGenerator) NextID() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.min + g.rnd.Intn(g.max-g.min+1)
}

// SequenceIDGenerator returns the given ids in order, then repeats the last one.
type SequenceIDGenerator struct {
	mu  sync.Mutex
	ids []int
	pos int
}

func NewSequenceIDGenerator(ids ...int) *SequenceIDGenerator {
	return &SequenceIDGenerator{ids: ids}
}

func (g *SequenceIDGenerator) NextID() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.ids) == 0 {
		return 0
	}
	id := g.ids[g.pos]
	if g.pos < len(g.ids)-1 {
		g.pos++
	}
	return id
}
