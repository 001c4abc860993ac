// Package preflight provides readiness checks for the filesystem paths and
// the API server that creditscores depends on.
//
// These checks run in two contexts:
//   - The daemon calls CheckDirectoryAccess on the data directory before
//     opening the store and refuses to start when it fails.
//   - The CLI "creditscores health" command uses RunAll to display health.
package preflight
