// Package distribution loads the launcher's distribution manifest.
//
// Acquisition tries the remote endpoint and persists successful pulls to
// distribution.json in the launcher directory; when the remote fails the
// persisted copy is served instead. In dev mode the remote is never called and
// only the operator-provided distribution_dev.json is read. The manifest is
// treated as opaque JSON and stored verbatim.
package distribution
