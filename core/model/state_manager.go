// Package model defines the interfaces shared by the lfd classifiers and the
// label-encoding boundary between the experiment harness and the models.
package model

import (
	"sync"

	"github.com/statlearn/lfd/pkg/errors"
)

// StateManager manages the fitted state of a model in a thread-safe manner.
// Models hold one by composition and consult it before predicting.
type StateManager struct {
	mu     sync.RWMutex
	name   string
	fitted bool

	nFeatures int
	nSamples  int
}

// NewStateManager creates a StateManager for the named model. The name is
// used in NotFittedError messages.
func NewStateManager(name string) *StateManager {
	return &StateManager{name: name}
}

// Name returns the model name given at construction.
func (s *StateManager) Name() string {
	return s.name
}

// IsFitted returns whether the model has been fitted.
func (s *StateManager) IsFitted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fitted
}

// SetFitted marks the model as fitted and records the training shape.
// nFeatures excludes the bias column.
func (s *StateManager) SetFitted(nFeatures, nSamples int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fitted = true
	s.nFeatures = nFeatures
	s.nSamples = nSamples
}

// Reset returns the model to the unfitted state.
func (s *StateManager) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fitted = false
	s.nFeatures = 0
	s.nSamples = 0
}

// Dimensions returns the number of features and samples seen during fitting.
func (s *StateManager) Dimensions() (nFeatures, nSamples int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nFeatures, s.nSamples
}

// RequireFitted returns a NotFittedError naming method if the model has not
// been fitted.
func (s *StateManager) RequireFitted(method string) error {
	if !s.IsFitted() {
		return errors.NewNotFittedError(s.name, method)
	}
	return nil
}

// RequireFeatures checks that a prediction input has as many columns as the
// training data. It also fails if the model is not fitted.
func (s *StateManager) RequireFeatures(op string, got int) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.fitted {
		return errors.NewNotFittedError(s.name, op)
	}
	if got != s.nFeatures {
		return errors.NewDimensionError(s.name+"."+op, s.nFeatures, got, 1)
	}
	return nil
}
