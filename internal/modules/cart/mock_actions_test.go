package cart

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type mockActions struct {
	mock.Mock
}

func (m *mockActions) LinesAdd(ctx context.Context, lines []LineInput) error {
	args := m.Called(ctx, lines)
	return args.Error(0)
}

func (m *mockActions) CartCreate(ctx context.Context, in CreateInput) error {
	args := m.Called(ctx, in)
	return args.Error(0)
}
