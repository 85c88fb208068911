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


// Package search retrieves a user's saved items for free-text queries.
//
// The primary path is semantic: the query is embedded and matched
// against the vector index, hits are deduplicated by item and hydrated
// from the durable store. When the semantic path yields nothing, either
// because the index is down or because only degraded embeddings exist,
// a keyword scan over the user's recent items takes over. Search
// reports degradation through its logger, never through its return
// values.
package search
