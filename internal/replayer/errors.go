// Copyright 2026 The Fossilize Authors
// SPDX-License-Identifier: Apache-2.0

package replayer

import "errors"

// ErrHashMismatch is returned (wrapped) when the replayer's own
// recompute of an object's hash disagrees with the hash stored in the
// document (§7 "Consistency (replay hash mismatch between header and
// recomputed hash) — object skipped; replay continues").
var ErrHashMismatch = errors.New("replayer: recomputed hash does not match stored hash")
