package internal

import (
	"math/rand"
	"time"
)

// RandomSource provides the bytes consumed by RND Vx, nn
type RandomSource interface {
	RandomByte() uint8
}

type mathRandSource struct {
	r *rand.Rand
}

// NewMathRandSource returns a RandomSource backed by math/rand with the given seed
func NewMathRandSource(seed int64) RandomSource {
	return &mathRandSource{r: rand.New(rand.NewSource(seed))}
}

func (s *mathRandSource) RandomByte() uint8 {
	return uint8(s.r.Intn(256))
}

func defaultRandomSource() RandomSource {
	return NewMathRandSource(time.Now().UnixNano())
}
