package utils

import (
	"fmt"

	"goodwill-valuation/pkg/logger"

	"go.uber.org/zap"
)

// GoSafe runs the given function in a new goroutine and recovers from any panic.
func GoSafe(log *logger.Logger, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error("Panic recovered", zap.String("panic", fmt.Sprint(r)), zap.Stack("stack"))
			}
		}()
		fn()
	}()
}

func ToPointer[T any](value T) *T {
	return &value
}
