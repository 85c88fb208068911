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


// Package ingestion orchestrates saving content: classification,
// metadata extraction, AI annotation, durable storage and vector
// indexing.
//
// The pipeline degrades rather than fails. A dead extractor, annotator
// or vector index still yields a stored item; only validation errors
// and storage failures abort a save. Batch saves run items in parallel
// on a worker pool, since items never depend on one another.
package ingestion
