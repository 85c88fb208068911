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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidSubmission indicates a Submission failed validation.
	ErrInvalidSubmission = errors.New("invalid submission")

	// ErrInvalidItem indicates an Item failed validation.
	ErrInvalidItem = errors.New("invalid item")

	// ErrEmptyContent indicates the Content field is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrContentTooLarge indicates the Content field exceeds the size cap.
	ErrContentTooLarge = errors.New("content exceeds maximum size")

	// ErrEmptyUserID indicates a user identifier was not supplied.
	ErrEmptyUserID = errors.New("user id cannot be empty")

	// ErrInvalidPlatform indicates an unknown Platform value.
	ErrInvalidPlatform = errors.New("invalid platform")

	// ErrInvalidContentType indicates an unknown ContentType value.
	ErrInvalidContentType = errors.New("invalid content type")
)
