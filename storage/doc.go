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


// Package storage defines the durable item store abstraction.
//
// The item store is the source of truth for saved content. The vector
// index only ever holds derived data; anything in the index can be
// rebuilt from this store. The badger subpackage provides the embedded
// implementation.
//
// All read operations are user-scoped. An item fetched with the wrong
// user scope behaves exactly like a missing item, so the storage layer
// never reveals that another tenant's item exists.
package storage
