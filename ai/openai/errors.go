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


package openai

import "errors"

var (
	// ErrEmptyEmbedding indicates the provider returned no embedding
	// vectors for a non-empty input.
	ErrEmptyEmbedding = errors.New("provider returned empty embedding")

	// ErrEmptyCompletion indicates the model returned a response with
	// no choices or empty content.
	ErrEmptyCompletion = errors.New("model returned empty completion")

	// ErrNoValidFeatures indicates the feature completion contained no
	// parseable numeric values.
	ErrNoValidFeatures = errors.New("completion contained no valid feature values")
)
