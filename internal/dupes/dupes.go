// Package dupes detects byte-identical duplicate files through a three-stage
// progressive pipeline that bounds expensive I/O: files are partitioned by
// size, then by a 64-bit xxHash of their first 4 KiB, and finally by a full
// content hash. Each stage only consults the survivors of the previous one;
// absence from the next stage's input is the "not a duplicate" signal.
package dupes

import (
	"context"
	"io"
	"os"
	"sort"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"

	"fclean/internal/scanner"
)

const (
	// quickHashSize bounds stage-2 reads to the first 4 KiB of each file.
	quickHashSize = 4096
	// chunkSize is the read buffer used for full-content hashing.
	chunkSize = 64 * 1024

	defaultWorkers = 4
)

// Group is a set of two or more files verified to share identical size and
// identical full-content hash. Members are ordered by path.
type Group struct {
	Hash  uint64
	Size  int64
	Files []scanner.FileRecord
}

// Count returns the number of files in the group.
func (g Group) Count() int {
	return len(g.Files)
}

// WastedBytes is the space reclaimable by keeping a single copy.
func (g Group) WastedBytes() int64 {
	return g.Size * int64(len(g.Files)-1)
}

// Detector finds duplicate groups among scanned records. Hashing runs over a
// bounded worker pool; grouping is a single-threaded reduction afterwards,
// so output ordering is deterministic.
type Detector struct {
	// Workers bounds concurrent file hashing. Zero or negative selects a
	// small default.
	Workers int
}

type hashKey struct {
	size int64
	sum  uint64
}

// Find groups the given records into duplicate sets. Records smaller than
// minSize are rejected up front without any file reads. Files that cannot be
// read during hashing are dropped from detection and reported as skipped
// entries; they never abort the run. The returned error is non-nil only when
// ctx is cancelled between files.
func (d Detector) Find(ctx context.Context, records []scanner.FileRecord, minSize int64) ([]Group, []scanner.EntryError, error) {
	if minSize < 1 {
		minSize = 1
	}

	// Stage 1: partition by exact size. A file whose size is unique cannot
	// have a duplicate, and is discarded with zero reads.
	bySize := make(map[int64][]scanner.FileRecord)
	for _, r := range records {
		if r.IsDir || r.Size < minSize {
			continue
		}
		bySize[r.Size] = append(bySize[r.Size], r)
	}
	var candidates []scanner.FileRecord
	for _, group := range bySize {
		if len(group) >= 2 {
			candidates = append(candidates, group...)
		}
	}
	if len(candidates) == 0 {
		return nil, nil, nil
	}

	// Stage 2: hash the first 4 KiB, keyed by (size, hash) so equal prefixes
	// of different-size files can never collide into one bucket.
	var skipped []scanner.EntryError
	survivors, stageSkipped, err := d.partition(ctx, candidates, hashQuick)
	if err != nil {
		return nil, nil, err
	}
	skipped = append(skipped, stageSkipped...)
	if len(survivors) == 0 {
		return nil, skipped, nil
	}

	// Stage 3: full-content hash over the files that agreed in size and
	// first 4 KiB. This is the only stage reading entire files.
	byFull := make(map[hashKey][]scanner.FileRecord)
	sums, stageSkipped, err := d.hashAll(ctx, survivors, hashFull)
	if err != nil {
		return nil, nil, err
	}
	skipped = append(skipped, stageSkipped...)
	for i, r := range survivors {
		if sums[i].ok {
			byFull[hashKey{r.Size, sums[i].sum}] = append(byFull[hashKey{r.Size, sums[i].sum}], r)
		}
	}

	var groups []Group
	for key, members := range byFull {
		if len(members) < 2 {
			continue
		}
		sort.Slice(members, func(i, j int) bool { return members[i].Path < members[j].Path })
		groups = append(groups, Group{Hash: key.sum, Size: key.size, Files: members})
	}

	// Largest reclaimable savings first; ties broken by path so repeated
	// runs over the same tree produce identical reports.
	sort.Slice(groups, func(i, j int) bool {
		wi, wj := groups[i].WastedBytes(), groups[j].WastedBytes()
		if wi != wj {
			return wi > wj
		}
		return groups[i].Files[0].Path < groups[j].Files[0].Path
	})
	return groups, skipped, nil
}

// partition hashes every record with fn and returns the members of all
// non-singleton (size, hash) buckets.
func (d Detector) partition(ctx context.Context, records []scanner.FileRecord, fn func(string) (uint64, error)) ([]scanner.FileRecord, []scanner.EntryError, error) {
	sums, skipped, err := d.hashAll(ctx, records, fn)
	if err != nil {
		return nil, nil, err
	}

	buckets := make(map[hashKey][]scanner.FileRecord)
	for i, r := range records {
		if sums[i].ok {
			buckets[hashKey{r.Size, sums[i].sum}] = append(buckets[hashKey{r.Size, sums[i].sum}], r)
		}
	}
	var survivors []scanner.FileRecord
	for _, members := range buckets {
		if len(members) >= 2 {
			survivors = append(survivors, members...)
		}
	}
	return survivors, skipped, nil
}

type hashResult struct {
	sum uint64
	ok  bool
	err error
}

// hashAll applies fn to every record across the worker pool. Results land in
// a preallocated slice indexed by record position, so workers share no
// mutable state. Hashing a single file is an atomic unit of work; ctx is
// only checked between files.
func (d Detector) hashAll(ctx context.Context, records []scanner.FileRecord, fn func(string) (uint64, error)) ([]hashResult, []scanner.EntryError, error) {
	workers := d.Workers
	if workers < 1 {
		workers = defaultWorkers
	}

	results := make([]hashResult, len(records))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, r := range records {
		i, r := i, r
		if err := gctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			sum, err := fn(r.Path)
			if err != nil {
				results[i] = hashResult{err: err}
				return nil
			}
			results[i] = hashResult{sum: sum, ok: true}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	var skipped []scanner.EntryError
	for i, res := range results {
		if res.err != nil {
			skipped = append(skipped, scanner.EntryError{Path: records[i].Path, Err: res.err})
		}
	}
	return results, skipped, nil
}

// hashQuick hashes at most the first 4 KiB of the file.
func hashQuick(path string) (uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	buf := make([]byte, quickHashSize)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return 0, err
	}
	return xxhash.Sum64(buf[:n]), nil
}

// hashFull hashes the entire file content in fixed-size chunks.
func hashFull(path string) (uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	h := xxhash.New()
	buf := make([]byte, chunkSize)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return 0, err
	}
	return h.Sum64(), nil
}
