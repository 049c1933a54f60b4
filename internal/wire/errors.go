// Copyright 2026 The Fossilize Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import "errors"

// ErrUnsupportedVersion is returned when a document's schema version
// tag does not match [SchemaVersion].
var ErrUnsupportedVersion = errors.New("wire: unsupported schema version")

// ErrMalformedHandle is returned when a handle record's kind tag is
// neither "external" nor "hash".
var ErrMalformedHandle = errors.New("wire: malformed handle record")
