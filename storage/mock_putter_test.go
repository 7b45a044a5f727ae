package storage

import (
	reflect "reflect"

	aws "github.com/aws/aws-sdk-go/aws"
	request "github.com/aws/aws-sdk-go/aws/request"
	s3 "github.com/aws/aws-sdk-go/service/s3"
	gomock "github.com/golang/mock/gomock"
)

// MockObjectPutter is a mock of ObjectPutter interface.
type MockObjectPutter struct {
	ctrl     *gomock.Controller
	recorder *MockObjectPutterMockRecorder
}

// MockObjectPutterMockRecorder is the mock recorder for MockObjectPutter.
type MockObjectPutterMockRecorder struct {
	mock *MockObjectPutter
}

// NewMockObjectPutter creates a new mock instance.
func NewMockObjectPutter(ctrl *gomock.Controller) *MockObjectPutter {
	mock := &MockObjectPutter{ctrl: ctrl}
	mock.recorder = &MockObjectPutterMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockObjectPutter) EXPECT() *MockObjectPutterMockRecorder {
	return m.recorder
}

// PutObjectWithContext mocks base method.
func (m *MockObjectPutter) PutObjectWithContext(ctx aws.Context, input *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error) {
	m.ctrl.T.Helper()
	varargs := []interface{}{ctx, input}
	for _, a := range opts {
		varargs = append(varargs, a)
	}
	ret := m.ctrl.Call(m, "PutObjectWithContext", varargs...)
	ret0, _ := ret[0].(*s3.PutObjectOutput)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// PutObjectWithContext indicates an expected call of PutObjectWithContext.
func (mr *MockObjectPutterMockRecorder) PutObjectWithContext(ctx, input interface{}, opts ...interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	varargs := append([]interface{}{ctx, input}, opts...)
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PutObjectWithContext", reflect.TypeOf((*MockObjectPutter)(nil).PutObjectWithContext), varargs...)
}
