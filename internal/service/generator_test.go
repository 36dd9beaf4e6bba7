package service_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/msomdec/user-records/internal/domain"
	"github.com/msomdec/user-records/internal/service"
)

func TestGenerator_Generate_Count(t *testing.T) {
	gen := service.NewGenerator(nil, 0)

	for _, count := range []int{0, 1, 7, 100} {
		seq, err := gen.Generate(count)
		if err != nil {
			t.Fatalf("Generate(%d): %v", count, err)
		}

		users := slices.Collect(seq)
		if len(users) != count {
			t.Fatalf("Generate(%d) yielded %d users", count, len(users))
		}
		for _, u := range users {
			if u.Name == "" {
				t.Fatal("expected non-empty name")
			}
			if u.Age < 0 || u.Age > 100 {
				t.Fatalf("age %d out of [0, 100]", u.Age)
			}
		}
	}
}

func TestGenerator_Generate_InvalidCount(t *testing.T) {
	gen := service.NewGenerator(nil, 50)

	if _, err := gen.Generate(-1); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for -1, got %v", err)
	}
	if _, err := gen.Generate(51); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument above max, got %v", err)
	}
	if _, err := gen.Generate(50); err != nil {
		t.Fatalf("expected max count to be accepted, got %v", err)
	}
}

func TestGenerator_Deterministic(t *testing.T) {
	a := service.NewGenerator(gofakeit.New(42), 0)
	b := service.NewGenerator(gofakeit.New(42), 0)

	seqA, _ := a.Generate(20)
	seqB, _ := b.Generate(20)

	if !slices.Equal(slices.Collect(seqA), slices.Collect(seqB)) {
		t.Fatal("expected identical output for identical seeds")
	}
}

func TestGenerator_SingleUse(t *testing.T) {
	gen := service.NewGenerator(gofakeit.New(7), 0)
	seq, _ := gen.Generate(20)

	first := slices.Collect(seq)
	if len(first) != 20 {
		t.Fatalf("expected first pass to yield 20 users, got %d", len(first))
	}
	if second := slices.Collect(seq); len(second) != 0 {
		t.Fatalf("expected an exhausted sequence to yield nothing, got %d users", len(second))
	}

	again, _ := gen.Generate(20)
	fresh := slices.Collect(again)
	if len(fresh) != 20 {
		t.Fatalf("expected a new Generate call to yield 20 users, got %d", len(fresh))
	}
	if slices.Equal(first, fresh) {
		t.Fatal("expected a new Generate call to sample new users")
	}
}

func TestGenerator_ResumesAfterBreak(t *testing.T) {
	gen := service.NewGenerator(nil, 0)
	seq, _ := gen.Generate(5)

	for range seq {
		break
	}
	if rest := slices.Collect(seq); len(rest) != 4 {
		t.Fatalf("expected the remaining 4 users after an early break, got %d", len(rest))
	}
}

func TestGenerator_Lazy(t *testing.T) {
	lazy := service.NewGenerator(gofakeit.New(99), 0)
	reference := service.NewGenerator(gofakeit.New(99), 0)

	seq, err := lazy.Generate(1000)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	taken := 0
	for range seq {
		taken++
		if taken == 3 {
			break
		}
	}

	// Only the three consumed users may have been drawn from the source.
	for range 3 {
		reference.One()
	}
	if got, want := lazy.One(), reference.One(); got != want {
		t.Fatalf("expected next user %+v, got %+v: generation ran ahead of the consumer", want, got)
	}
}
