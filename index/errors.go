// Copyright 2025 Poiesic Systems
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


package index

import "errors"

var (
	// ErrUserScopeRequired indicates a query or delete was attempted
	// without a user scope. Unscoped reads would leak other tenants'
	// items, so they are rejected outright.
	ErrUserScopeRequired = errors.New("vector index operation requires a user scope")

	// ErrDimensionMismatch indicates a vector's length does not match
	// the index dimension.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrNilIndex indicates a gateway was constructed without an index.
	ErrNilIndex = errors.New("index cannot be nil")

	// ErrNilEmbedder indicates a gateway was constructed without an
	// embedder.
	ErrNilEmbedder = errors.New("embedder cannot be nil")

	// ErrIndexUnavailable wraps transport or server failures from the
	// index backend.
	ErrIndexUnavailable = errors.New("vector index unavailable")
)
