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


// Package ai provides abstractions for the AI services used in recall.
//
// It defines interfaces for text embeddings (Embedder), LLM-backed
// content annotation (Annotator) and conversational completion (Chatter),
// so the ingestion and retrieval pipelines depend on abstractions rather
// than concrete providers.
//
// # Embedding availability
//
// Network embedding providers fail, rate-limit and stall. The package
// therefore ships a FallbackEmbedder that walks an ordered tier list:
//
//  1. a real embedding provider (ai/openai.Embedder)
//  2. LLM-derived pseudo-features (ai/openai.FeatureEmbedder)
//  3. a deterministic digest expansion (HashEmbedder), which always
//     succeeds offline
//
// Tier 3 trades semantic quality for availability: with it in place,
// EmbedText is a total function of its input and ingestion/search never
// fail for lack of an upstream provider.
//
// # Implementation packages
//
//   - ai/openai: production implementations over OpenAI-compatible APIs
//   - ai/mock: test doubles for unit testing without external services
//
// Public constructors return interface types to enforce abstraction;
// mock constructors return concrete types so tests can inject behavior
// and make assertions.
package ai
