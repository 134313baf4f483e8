package mocks

import (
	"testing"

	"go.uber.org/mock/gomock"
)

// NewMockSourceForTest creates a new mock rule source for testing
func NewMockSourceForTest(t *testing.T) *MockSource {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockSource(ctrl)
}
