package verify

import (
	"bufio"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"gocloud.dev/blob"
	"golang.org/x/sync/errgroup"
)

// ChecksumSuffix marks sidecar files holding expected digests.
const ChecksumSuffix = ".CHECKSUM"

// ErrNoChecksums is returned when the target contains no sidecar files.
var ErrNoChecksums = errors.New("verify: no checksum files found")

// Status classifies the outcome of verifying one data file.
type Status string

const (
	StatusVerified        Status = "verified"
	StatusCorrupted       Status = "corrupted"
	StatusMissing         Status = "missing"
	StatusInvalidChecksum Status = "invalid_checksum"
	StatusReadError       Status = "read_error"
	StatusUnknown         Status = "unknown"

	// StatusMissingChecksum is only produced by the single-file entry
	// point, where the sidecar itself may be absent.
	StatusMissingChecksum Status = "missing_checksum"
)

// Result is the immutable outcome for one sidecar file.
type Result struct {
	File     string // data file name
	Path     string // data file key/path
	Status   Status
	Expected string
	Actual   string
}

// Report aggregates results across a verification pass. Failed combines
// corrupted, invalid_checksum, and read_error.
type Report struct {
	Results  []Result
	Verified int
	Failed   int
	Missing  int
}

// OK is the overall success predicate: no failures and no missing files.
func (r *Report) OK() bool {
	return r.Failed == 0 && r.Missing == 0
}

// Total returns the number of sidecar files processed.
func (r *Report) Total() int {
	return len(r.Results)
}

// Print writes the per-file lines and the summary block.
func (r *Report) Print(out io.Writer) {
	for _, res := range r.Results {
		switch res.Status {
		case StatusVerified:
			fmt.Fprintf(out, "VERIFIED: %s\n", res.File)
		case StatusCorrupted:
			fmt.Fprintf(out, "CORRUPTED: %s\n", res.Path)
			fmt.Fprintf(out, "  expected: %s\n", res.Expected)
			fmt.Fprintf(out, "  actual:   %s\n", res.Actual)
		case StatusMissing:
			fmt.Fprintf(out, "MISSING: %s\n", res.Path)
		case StatusInvalidChecksum:
			fmt.Fprintf(out, "INVALID CHECKSUM FILE: %s%s\n", res.Path, ChecksumSuffix)
		case StatusReadError:
			fmt.Fprintf(out, "READ ERROR: %s\n", res.Path)
		}
	}

	fmt.Fprintln(out, "\nVerification summary:")
	fmt.Fprintf(out, "  Total files: %d\n", r.Total())
	fmt.Fprintf(out, "  Verified: %d\n", r.Verified)
	fmt.Fprintf(out, "  Failed:   %d\n", r.Failed)
	fmt.Fprintf(out, "  Missing:  %d\n", r.Missing)
	if r.Total() > 0 {
		fmt.Fprintf(out, "  Success rate: %.1f%%\n", float64(r.Verified)/float64(r.Total())*100)
	}
}

// Options configures a verification pass.
type Options struct {
	// Workers bounds the parallel pool. Zero means
	// min(GOMAXPROCS, file count).
	Workers int

	// Sequential processes files one at a time on the calling goroutine.
	// Classification is identical to parallel mode; only throughput and
	// result ordering differ.
	Sequential bool
}

// Verify checks every .CHECKSUM sidecar in the bucket against a streamed
// SHA-256 digest of its paired data file. It returns ErrNoChecksums when
// the bucket holds no sidecars.
func Verify(ctx context.Context, bucket *blob.Bucket, opts Options) (*Report, error) {
	keys, err := listChecksumKeys(ctx, bucket)
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, ErrNoChecksums
	}

	results := make([]Result, len(keys))

	if opts.Sequential {
		for i, key := range keys {
			results[i] = verifyOne(ctx, bucket, key)
		}
	} else {
		workers := opts.Workers
		if workers <= 0 {
			workers = runtime.GOMAXPROCS(0)
		}
		if workers > len(keys) {
			workers = len(keys)
		}

		var g errgroup.Group
		g.SetLimit(workers)
		for i, key := range keys {
			i, key := i, key
			g.Go(func() error {
				results[i] = verifyOne(ctx, bucket, key)
				return nil
			})
		}
		_ = g.Wait()
	}

	report := &Report{Results: results}
	for _, res := range results {
		switch res.Status {
		case StatusVerified:
			report.Verified++
		case StatusMissing:
			report.Missing++
		default:
			report.Failed++
		}
	}
	return report, nil
}

// listChecksumKeys walks the bucket and collects sidecar keys.
func listChecksumKeys(ctx context.Context, bucket *blob.Bucket) ([]string, error) {
	var keys []string
	iter := bucket.List(nil)
	for {
		obj, err := iter.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("verify: list bucket: %w", err)
		}
		if strings.HasSuffix(obj.Key, ChecksumSuffix) {
			keys = append(keys, obj.Key)
		}
	}
	return keys, nil
}

// verifyOne classifies a single sidecar file. It never returns an error;
// every failure mode is a terminal Status.
func verifyOne(ctx context.Context, bucket *blob.Bucket, checksumKey string) Result {
	dataKey := strings.TrimSuffix(checksumKey, ChecksumSuffix)
	result := Result{
		File:   baseName(dataKey),
		Path:   dataKey,
		Status: StatusUnknown,
	}

	exists, err := bucket.Exists(ctx, dataKey)
	if err != nil || !exists {
		result.Status = StatusMissing
		return result
	}

	expected, err := readExpectedDigest(ctx, bucket, checksumKey)
	if err != nil {
		result.Status = StatusInvalidChecksum
		return result
	}

	actual, err := digestObject(ctx, bucket, dataKey)
	if err != nil {
		result.Status = StatusReadError
		return result
	}

	result.Expected = expected
	result.Actual = actual
	if strings.EqualFold(expected, actual) {
		result.Status = StatusVerified
	} else {
		result.Status = StatusCorrupted
	}
	return result
}

// readExpectedDigest reads the first whitespace-delimited token of the
// sidecar's first line. Format: "<hex-digest>  <filename>".
func readExpectedDigest(ctx context.Context, bucket *blob.Bucket, key string) (string, error) {
	data, err := bucket.ReadAll(ctx, key)
	if err != nil {
		return "", err
	}
	return parseChecksumLine(data)
}

func parseChecksumLine(data []byte) (string, error) {
	scanner := bufio.NewScanner(strings.NewReader(string(data)))
	if !scanner.Scan() {
		return "", errors.New("empty checksum file")
	}
	fields := strings.Fields(scanner.Text())
	if len(fields) == 0 {
		return "", errors.New("malformed checksum file")
	}
	return fields[0], nil
}

// digestObject streams the object through SHA-256 with a fixed-size
// buffer; the file is never held in memory whole.
func digestObject(ctx context.Context, bucket *blob.Bucket, key string) (string, error) {
	r, err := bucket.NewReader(ctx, key, nil)
	if err != nil {
		return "", err
	}
	defer r.Close()

	h := sha256.New()
	buf := make([]byte, 32*1024)
	if _, err := io.CopyBuffer(h, r, buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func baseName(key string) string {
	if i := strings.LastIndexByte(key, '/'); i >= 0 {
		return key[i+1:]
	}
	return key
}

// VerifyFile verifies one local data file against its sidecar, located by
// appending the checksum suffix.
func VerifyFile(path string) Result {
	result := Result{
		File:   baseName(path),
		Path:   path,
		Status: StatusUnknown,
	}

	if _, err := os.Stat(path); err != nil {
		result.Status = StatusMissing
		return result
	}

	data, err := os.ReadFile(path + ChecksumSuffix)
	if err != nil {
		result.Status = StatusMissingChecksum
		return result
	}
	expected, err := parseChecksumLine(data)
	if err != nil {
		result.Status = StatusInvalidChecksum
		return result
	}

	actual, err := digestFile(path)
	if err != nil {
		result.Status = StatusReadError
		return result
	}

	result.Expected = expected
	result.Actual = actual
	if strings.EqualFold(expected, actual) {
		result.Status = StatusVerified
	} else {
		result.Status = StatusCorrupted
	}
	return result
}

func digestFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	buf := make([]byte, 32*1024)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
