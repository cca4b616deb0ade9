package doctor

import "github.com/stretchr/testify/mock"

// MockCheck is a mock implementation of Check.
type MockCheck struct {
	mock.Mock
}

// MockCheck_Expecter records typed expectations.
type MockCheck_Expecter struct {
	mock *mock.Mock
}

// EXPECT returns the typed expectation builder.
func (_m *MockCheck) EXPECT() *MockCheck_Expecter {
	return &MockCheck_Expecter{mock: &_m.Mock}
}

// NewMockCheck creates a MockCheck whose expectations are asserted on cleanup.
func NewMockCheck(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCheck {
	m := &MockCheck{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *MockCheck) Name() string {
	ret := _m.Called()
	return ret.String(0)
}

func (_m *MockCheck) Category() string {
	ret := _m.Called()
	return ret.String(0)
}

func (_m *MockCheck) Run() *CheckResult {
	ret := _m.Called()
	if r, ok := ret.Get(0).(*CheckResult); ok {
		return r
	}
	return nil
}

type MockCheck_Name_Call struct{ *mock.Call }

func (_e *MockCheck_Expecter) Name() *MockCheck_Name_Call {
	return &MockCheck_Name_Call{Call: _e.mock.On("Name")}
}

func (_c *MockCheck_Name_Call) Return(name string) *MockCheck_Name_Call {
	_c.Call.Return(name)
	return _c
}

type MockCheck_Category_Call struct{ *mock.Call }

func (_e *MockCheck_Expecter) Category() *MockCheck_Category_Call {
	return &MockCheck_Category_Call{Call: _e.mock.On("Category")}
}

func (_c *MockCheck_Category_Call) Return(category string) *MockCheck_Category_Call {
	_c.Call.Return(category)
	return _c
}

type MockCheck_Run_Call struct{ *mock.Call }

func (_e *MockCheck_Expecter) Run() *MockCheck_Run_Call {
	return &MockCheck_Run_Call{Call: _e.mock.On("Run")}
}

func (_c *MockCheck_Run_Call) Return(result *CheckResult) *MockCheck_Run_Call {
	_c.Call.Return(result)
	return _c
}
