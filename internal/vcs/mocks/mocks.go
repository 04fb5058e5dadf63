// Package mocks provides testify mocks for the vcs interfaces.
package mocks

import (
	"context"

	"github.com/panbanda/bubbles/internal/vcs"
	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockOpener is a mock implementation of vcs.Opener.
type MockOpener struct {
	mock.Mock
}

// NewMockOpener creates a MockOpener whose expectations are asserted at cleanup.
func NewMockOpener(t testingT) *MockOpener {
	m := &MockOpener{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockOpener) PlainOpen(path string) (vcs.Repository, error) {
	args := m.Called(path)
	repo, _ := args.Get(0).(vcs.Repository)
	return repo, args.Error(1)
}

// MockRepository is a mock implementation of vcs.Repository.
type MockRepository struct {
	mock.Mock
}

// NewMockRepository creates a MockRepository whose expectations are asserted at cleanup.
func NewMockRepository(t testingT) *MockRepository {
	m := &MockRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockRepository) Commits(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

func (m *MockRepository) Parents(ctx context.Context, id string) ([]string, error) {
	args := m.Called(ctx, id)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

func (m *MockRepository) Show(ctx context.Context, id string) ([]byte, error) {
	args := m.Called(ctx, id)
	raw, _ := args.Get(0).([]byte)
	return raw, args.Error(1)
}

func (m *MockRepository) RepoPath() string {
	args := m.Called()
	return args.String(0)
}

var (
	_ vcs.Opener     = (*MockOpener)(nil)
	_ vcs.Repository = (*MockRepository)(nil)
)
