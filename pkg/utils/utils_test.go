package utils

import (
	"testing"
	"time"

	"goodwill-valuation/pkg/logger"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestToPointer(t *testing.T) {
	p := ToPointer(2.5)
	assert.Equal(t, 2.5, *p)

	*p = 3
	assert.Equal(t, 3.0, *ToPointer(3.0))
}

func TestGoSafe(t *testing.T) {
	core, recorded := observer.New(zap.ErrorLevel)
	done := make(chan struct{})

	GoSafe(logger.Wrap(zap.New(core)), func() {
		defer close(done)
		panic("boom")
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("goroutine did not run")
	}
	assert.Eventually(t, func() bool {
		return recorded.FilterMessage("Panic recovered").Len() == 1
	}, time.Second, 10*time.Millisecond)
}
