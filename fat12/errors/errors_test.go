package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindIsBareError(t *testing.T) {
	var err error = BadBootSector
	assert.Equal(t, string(BadBootSector), err.Error())
}

func TestWithMessageFormatsKindAndDetail(t *testing.T) {
	se := ChainTooLong.WithMessage("cluster 9 truncated")
	assert.Contains(t, se.Error(), string(ChainTooLong))
	assert.Contains(t, se.Error(), "cluster 9 truncated")
}

func TestWrapErrorKeepsUnderlying(t *testing.T) {
	underlying := errors.New("boom")
	se := BadBootSector.WrapError(underlying)
	assert.Equal(t, underlying, se.Unwrap())
}

func TestIsMatchesOwnKindOnly(t *testing.T) {
	se := CycleDetected.WithMessage("x")
	assert.True(t, CycleDetected.Is(se))
	assert.False(t, ChainTooLong.Is(se))
	assert.False(t, CycleDetected.Is(errors.New("plain")))
}

func TestKindOfExtractsKind(t *testing.T) {
	se := OrphanRecovered.WithMessage("x")
	kind, ok := KindOf(se)
	assert.True(t, ok)
	assert.Equal(t, OrphanRecovered, kind)

	_, ok = KindOf(errors.New("plain"))
	assert.False(t, ok)
}
