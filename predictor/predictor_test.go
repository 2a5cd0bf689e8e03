package predictor

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPredictor struct {
	mu       sync.Mutex
	calls    int
	closed   bool
	closeErr error
}

func (s *stubPredictor) Predict(input []float32) ([]float32, float32, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	return []float32{1, 2}, 0.5, nil
}

func (s *stubPredictor) Close() error {
	s.closed = true
	return s.closeErr
}

func TestShared_DelegatesPredictToInner(t *testing.T) {
	inner := &stubPredictor{}
	shared := NewShared(inner)

	logits, value, err := shared.Predict([]float32{0, 0})
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2}, logits)
	assert.Equal(t, float32(0.5), value)
	assert.Equal(t, 1, inner.calls)
}

func TestShared_ConcurrentPredictCallsAllReachInner(t *testing.T) {
	inner := &stubPredictor{}
	shared := NewShared(inner)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := shared.Predict([]float32{0})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, inner.calls)
}

func TestShared_CloseDelegatesToInner(t *testing.T) {
	inner := &stubPredictor{}
	shared := NewShared(inner)
	require.NoError(t, shared.Close())
	assert.True(t, inner.closed)
}

func TestShared_CloseReturnsInnerError(t *testing.T) {
	inner := &stubPredictor{closeErr: errors.New("boom")}
	shared := NewShared(inner)
	err := shared.Close()
	assert.Error(t, err)
}

func TestConfig_IsValid(t *testing.T) {
	assert.True(t, Config{InputSize: 1, Hidden: 1, ActionSpace: 1}.IsValid())
	assert.False(t, Config{InputSize: 0, Hidden: 1, ActionSpace: 1}.IsValid())
	assert.False(t, Config{InputSize: 1, Hidden: 0, ActionSpace: 1}.IsValid())
	assert.False(t, Config{InputSize: 1, Hidden: 1, ActionSpace: 0}.IsValid())
}
