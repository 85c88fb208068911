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


// Package extract fetches URLs and derives page metadata: title,
// description, thumbnail and boilerplate-stripped body text.
//
// Extraction is deliberately fault-tolerant. A dead link, a timeout or a
// hostile page must not block saving the item, so Extract absorbs every
// failure and returns whatever subset of metadata it could recover.
package extract
