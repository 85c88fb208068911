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


// Package index defines the vector index abstraction and the gateway
// that all embedding reads and writes go through.
//
// The Index interface is implemented by the qdrant subpackage for
// production and by the memory subpackage for tests and single-process
// deployments. The Gateway layers tenancy rules on top: every query
// carries a user scope and a minimum similarity score, and every upsert
// indexes a bounded slice of the item's searchable text.
package index
