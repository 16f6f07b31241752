// Package manifest implements the store manifest: its schema, its JSON
// persistence and the compatibility gates applied before a store is served.
//
// # File
//
// The manifest lives at <root>/manifest.json and is written once when the store
// is created. It is pretty-printed so that it diffs cleanly:
//
//	{
//	  "schema": 1,
//	  "name": "Orders",
//	  "id": "orders",
//	  "version": {"major": 0, "minor": 1, "patch": 0},
//	  "kind": "live",
//	  "ordering": false,
//	  "checksumming": true,
//	  "logging": "normal",
//	  "defaults": {
//	    "verbosity": false,
//	    "api_port": 7900,
//	    "api_scan": false,
//	    "cluster_port": 7979,
//	    "cluster_scan": false
//	  }
//	}
//
// "schema" discriminates the manifest layout itself and is independent of the
// engine version recorded under "version". Manifests without it are schema 1.
//
// Save replaces the file atomically (temporary file, fsync, rename).
//
// # Gates
//
// [Gate] compares the store version with the running engine:
//
//   - different major: fatal ([ErrStoreTooOld] or [ErrEngineTooOld])
//   - older minor: [DecisionWarn]
//   - newer minor: [DecisionConfirm], the operator must agree to continue
//   - same major and minor: [DecisionProceed]
//
// [CheckServable] rejects backup and archive stores, which only exist for
// retention and restore workflows.
package manifest
