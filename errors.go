// SPDX-License-Identifier: EPL-2.0

package onda

import (
	"github.com/ik5/onda/lpcm"
	"github.com/ik5/onda/samples"
	"github.com/ik5/onda/signal"
	"github.com/ik5/onda/storage"
	"github.com/ik5/onda/timespan"
)

// Errors returned by onda packages, collected here so callers need a single
// import for errors.Is checks.
var (
	ErrValidation    = signal.ErrValidation
	ErrDuplicateKey  = signal.ErrDuplicateKey
	ErrDomain        = timespan.ErrDomain
	ErrEmptyInput    = timespan.ErrEmptyInput
	ErrShapeMismatch = samples.ErrShapeMismatch
	ErrFormat        = lpcm.ErrFormat
	ErrUnknownFormat = lpcm.ErrUnknownFormat
	ErrFinalized     = lpcm.ErrFinalized
	ErrNotFound      = storage.ErrNotFound
)
