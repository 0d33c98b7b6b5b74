// Package unpack provides a persistent on-disk cache of extracted archives,
// shared safely across concurrent processes.
//
// Archives are extracted exactly once into a per-user cache directory keyed
// by a content fingerprint. Concurrent extraction requests for the same
// archive serialize on an advisory file lock, so cooperating processes never
// duplicate work: the first caller extracts, later callers observe the
// completion sentinel and reuse the cached tree.
//
// # Quick Start
//
// Walk the files inside an archive, extracting it on first use:
//
//	c, err := unpack.New(unpack.WithTTL(24 * time.Hour))
//	if err != nil {
//	    return err
//	}
//	if !c.IsArchive(ctx, path) {
//	    return readPlainFile(path)
//	}
//	err = c.Walk(ctx, path, nil, func(root, p string, d fs.DirEntry) error {
//	    return openExtracted(p)
//	})
//
// # Cache layout
//
// Each archive occupies one entry directory named arc-<fingerprint>-<basename>
// under the cache root. Two sentinel files sit alongside it: <entry>.lck is
// the cross-process lock handle and <entry>.done marks the entry complete,
// with its modification time recording the last access. A directory without
// its .done sentinel is a partial extraction and is never read.
//
// # Eviction
//
// SweepOnce removes entries whose .done sentinel is older than the
// configured TTL. The package provides no scheduler; run the sweep from
// whatever periodic trigger the host application already has.
package unpack
