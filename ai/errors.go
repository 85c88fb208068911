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


package ai

import "errors"

var (
	// ErrNoEmbeddingTiers is returned when a fallback chain is built with
	// no tiers.
	ErrNoEmbeddingTiers = errors.New("at least one embedding tier required")

	// ErrNilEmbeddingTier is returned when a fallback chain is built with
	// a nil tier.
	ErrNilEmbeddingTier = errors.New("embedding tier cannot be nil")

	// ErrBadEmbeddingDim is returned when a tier produces a vector of the
	// wrong length.
	ErrBadEmbeddingDim = errors.New("unexpected embedding dimension")
)
