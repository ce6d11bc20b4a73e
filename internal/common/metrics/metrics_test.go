package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	apperrors "calculators/internal/common/errors"
)

func TestObserveCalculation(t *testing.T) {
	completed := CalculationsCompleted.WithLabelValues("metrics-test")
	failedDiv := CalculationsFailed.WithLabelValues("metrics-test", string(apperrors.ErrCodeDivisionByZero))
	failedInternal := CalculationsFailed.WithLabelValues("metrics-test", string(apperrors.ErrCodeInternal))

	beforeOK := testutil.ToFloat64(completed)
	beforeDiv := testutil.ToFloat64(failedDiv)
	beforeInternal := testutil.ToFloat64(failedInternal)

	ObserveCalculation("metrics-test", time.Now(), nil)
	ObserveCalculation("metrics-test", time.Now(), apperrors.NewDivisionByZeroError())
	ObserveCalculation("metrics-test", time.Now(), errors.New("boom"))

	assert.Equal(t, beforeOK+1, testutil.ToFloat64(completed))
	assert.Equal(t, beforeDiv+1, testutil.ToFloat64(failedDiv))
	assert.Equal(t, beforeInternal+1, testutil.ToFloat64(failedInternal))
}

func TestObserveStore(t *testing.T) {
	ok := StoreOperations.WithLabelValues("memory", "metrics-test", "ok")
	failed := StoreOperations.WithLabelValues("memory", "metrics-test", "error")
	beforeOK := testutil.ToFloat64(ok)
	beforeFailed := testutil.ToFloat64(failed)

	ObserveStore("memory", "metrics-test", nil)
	ObserveStore("memory", "metrics-test", errors.New("down"))
	ObserveStore("memory", "metrics-test", nil)

	assert.Equal(t, beforeOK+2, testutil.ToFloat64(ok))
	assert.Equal(t, beforeFailed+1, testutil.ToFloat64(failed))
}
