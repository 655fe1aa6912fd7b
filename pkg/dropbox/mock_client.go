// Copyright © 2026 dropbox-data-science authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dropbox

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockClient is a testify mock of Client for unit tests.
type MockClient struct {
	mock.Mock
}

var _ Client = (*MockClient)(nil)

// NewMockClient creates a MockClient bound to the test's lifecycle:
// expectations are asserted automatically on cleanup.
func NewMockClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockClient {
	m := &MockClient{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockClient) ListFolder(ctx context.Context, path string, recursive bool, limit int) ([]Entry, string, bool, error) {
	ret := m.Called(ctx, path, recursive, limit)

	var entries []Entry
	if v := ret.Get(0); v != nil {
		entries = v.([]Entry)
	}
	return entries, ret.String(1), ret.Bool(2), ret.Error(3)
}

func (m *MockClient) ListFolderContinue(ctx context.Context, cursor string) ([]Entry, string, bool, error) {
	ret := m.Called(ctx, cursor)

	var entries []Entry
	if v := ret.Get(0); v != nil {
		entries = v.([]Entry)
	}
	return entries, ret.String(1), ret.Bool(2), ret.Error(3)
}

func (m *MockClient) Longpoll(ctx context.Context, cursor string, timeout time.Duration) (bool, error) {
	ret := m.Called(ctx, cursor, timeout)
	return ret.Bool(0), ret.Error(1)
}

func (m *MockClient) CreateFolder(ctx context.Context, path string) error {
	return m.Called(ctx, path).Error(0)
}

func (m *MockClient) Delete(ctx context.Context, path string) error {
	return m.Called(ctx, path).Error(0)
}

func (m *MockClient) GetMetadata(ctx context.Context, path string) (Entry, error) {
	ret := m.Called(ctx, path)

	var entry Entry
	if v := ret.Get(0); v != nil {
		entry = v.(Entry)
	}
	return entry, ret.Error(1)
}

func (m *MockClient) GetTemporaryLink(ctx context.Context, path string) (string, error) {
	ret := m.Called(ctx, path)
	return ret.String(0), ret.Error(1)
}

func (m *MockClient) FetchLink(ctx context.Context, link string) ([]byte, error) {
	ret := m.Called(ctx, link)

	var data []byte
	if v := ret.Get(0); v != nil {
		data = v.([]byte)
	}
	return data, ret.Error(1)
}

func (m *MockClient) Upload(ctx context.Context, path string, data []byte) (Entry, error) {
	ret := m.Called(ctx, path, data)

	var entry Entry
	if v := ret.Get(0); v != nil {
		entry = v.(Entry)
	}
	return entry, ret.Error(1)
}

func (m *MockClient) Move(ctx context.Context, fromPath, toPath string) (Entry, error) {
	ret := m.Called(ctx, fromPath, toPath)

	var entry Entry
	if v := ret.Get(0); v != nil {
		entry = v.(Entry)
	}
	return entry, ret.Error(1)
}

func (m *MockClient) Copy(ctx context.Context, fromPath, toPath string) (Entry, error) {
	ret := m.Called(ctx, fromPath, toPath)

	var entry Entry
	if v := ret.Get(0); v != nil {
		entry = v.(Entry)
	}
	return entry, ret.Error(1)
}
