package service

import (
	"fmt"
	"iter"
	"sync"
	"sync/atomic"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/msomdec/user-records/internal/domain"
	"github.com/msomdec/user-records/internal/metrics"
)

const (
	generatedMinAge = 0
	generatedMaxAge = 100

	// DefaultMaxGenerateCount bounds a single Generate call.
	DefaultMaxGenerateCount = 1000
)

// Generator produces synthetic users. It is safe for concurrent use.
type Generator struct {
	mu       sync.Mutex
	faker    *gofakeit.Faker
	maxCount int
}

// NewGenerator creates a Generator drawing from faker. A nil faker gets a
// randomly seeded one; pass gofakeit.New(seed) for reproducible output.
// maxCount <= 0 selects DefaultMaxGenerateCount.
func NewGenerator(faker *gofakeit.Faker, maxCount int) *Generator {
	if faker == nil {
		faker = gofakeit.New(0)
	}
	if maxCount <= 0 {
		maxCount = DefaultMaxGenerateCount
	}
	return &Generator{faker: faker, maxCount: maxCount}
}

// One returns a single synthetic user.
func (g *Generator) One() domain.UserBase {
	g.mu.Lock()
	defer g.mu.Unlock()

	return domain.UserBase{
		Name: g.faker.FirstName(),
		Age:  g.faker.Number(generatedMinAge, generatedMaxAge),
	}
}

// Generate returns a lazy sequence of count users. Nothing is sampled until
// the sequence is ranged over. The sequence is single-use: count users are
// produced in total across all ranges, so a range after an early break
// resumes and a range after exhaustion yields nothing. Call Generate again
// for a new batch.
func (g *Generator) Generate(count int) (iter.Seq[domain.UserBase], error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: count must not be negative, got %d", domain.ErrInvalidArgument, count)
	}
	if count > g.maxCount {
		return nil, fmt.Errorf("%w: count must not exceed %d, got %d", domain.ErrInvalidArgument, g.maxCount, count)
	}

	var remaining atomic.Int64
	remaining.Store(int64(count))

	return func(yield func(domain.UserBase) bool) {
		for remaining.Add(-1) >= 0 {
			u := g.One()
			metrics.RecordGenerated()
			if !yield(u) {
				return
			}
		}
	}, nil
}

// MaxCount reports the largest count Generate accepts.
func (g *Generator) MaxCount() int {
	return g.maxCount
}
