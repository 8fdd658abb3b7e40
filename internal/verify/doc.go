// Package verify checks downloaded archives against their .CHECKSUM
// sidecar files.
//
// Each sidecar names its data file implicitly (sidecar key minus the
// suffix) and carries the expected SHA-256 digest as the first token of
// its first line. A pass classifies every sidecar into verified,
// corrupted, missing, invalid_checksum, or read_error, and aggregates a
// report whose OK predicate (no failures, no missing files) drives the
// process exit status.
//
// Hashing is compute-bound and embarrassingly parallel, so the default
// mode uses a bounded pool; sequential mode produces the same
// classifications in deterministic order.
package verify
