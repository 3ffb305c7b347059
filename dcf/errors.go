// Copyright 2025-2026
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dcf

import "errors"

var (
	// ErrInvalidParameter indicates an input failed type or range validation
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrMissingField indicates a required statement line item is absent
	ErrMissingField = errors.New("missing statement field")

	// ErrDegenerate indicates the requested computation has no meaningful
	// numeric result, e.g. a capitalization rate at or below the perpetual
	// growth rate or a zero denominator
	ErrDegenerate = errors.New("degenerate valuation arithmetic")
)
