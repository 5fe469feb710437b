package mocks

import (
	"mime/multipart"

	"github.com/stretchr/testify/mock"
)

type MockImageStore struct {
	mock.Mock
}

func (m *MockImageStore) Save(fh *multipart.FileHeader) (string, error) {
	args := m.Called(fh)
	return args.String(0), args.Error(1)
}

func (m *MockImageStore) Remove(publicPath string) error {
	args := m.Called(publicPath)
	return args.Error(0)
}
