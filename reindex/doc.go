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


// Package reindex rebuilds a user's vector index from the item store.
//
// Two situations call for it: items saved while only degraded embedding
// tiers were available, and the duplicate points that additive upserts
// accumulate over re-saves. A reindex run compacts both, deleting each
// item's old points before writing one fresh embedding.
package reindex
