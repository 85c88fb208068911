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


// Package chat answers questions grounded in the user's saved content.
//
// Each turn retrieves a handful of relevant items, renders them into
// the system prompt and completes the conversation with the chat model.
// The responder absorbs every failure, retrieval and completion alike,
// into a fixed apology so a conversational surface never sees an error.
package chat
