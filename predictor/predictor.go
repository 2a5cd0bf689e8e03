// Package predictor defines the capability an mcts.Evaluator needs from a
// trained model, and a couple of concrete implementations: a fixed-weight
// reference network built on gorgonia, and a sharing wrapper that lets
// several players use one (possibly large) model. Players do not clone
// themselves; sharing happens only where a caller hands the same Shared
// value to each player.
package predictor

import "github.com/hashicorp/go-multierror"

// Predictor turns an encoded state into policy logits (one per action id,
// indexed the way the caller's encode.ActionEncoder assigns ids) and a
// scalar value. It plays the same role the teacher's Inferer interface
// played for its Agent.Infer.
type Predictor interface {
	Predict(input []float32) (policyLogits []float32, value float32, err error)
	Close() error
}

// Shared lets several MCTS searches reuse one Predictor without racing on
// it. The teacher's Agent.SwitchToInference handed out a pool of
// independent VM copies through a buffered channel used as a semaphore;
// this engine is single-threaded per search, so a plain mutex is enough to
// let one predictor be shared by, say, two players in the same match.
type Shared struct {
	inner Predictor
	mu    chan struct{}
}

// NewShared wraps inner for safe reuse across players. The one-buffered
// channel is used purely as a mutex (acquire by send, release by receive);
// it keeps the same "channel as a lock" idiom the teacher used for its
// inferer pool, rather than introducing sync.Mutex for a single-owner lock.
func NewShared(inner Predictor) *Shared {
	s := &Shared{inner: inner, mu: make(chan struct{}, 1)}
	s.mu <- struct{}{}
	return s
}

func (s *Shared) Predict(input []float32) ([]float32, float32, error) {
	<-s.mu
	defer func() { s.mu <- struct{}{} }()
	return s.inner.Predict(input)
}

func (s *Shared) Close() error {
	var errs error
	if err := s.inner.Close(); err != nil {
		errs = multierror.Append(errs, err)
	}
	if errs != nil {
		return errs
	}
	return nil
}
