// Package fingerprint computes the content-addressed deduplication hash for
// a recognition ingress and provides the local-file snapshot reader the
// hash folds in when a locator names a readable file.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"strconv"
	"time"
)

// Window is the quantization period (seconds) used to bucket captured_at
// into the fingerprint. Two events for the same employee/device/locator
// landing in the same W-second bucket fingerprint identically.
const Window = 300

// UnknownEmployeeCode is folded into the hash when the ingress carries no
// resolvable top-candidate employee.
const UnknownEmployeeCode = "unknown"

// maxSnapshotReadBytes bounds how much of a local snapshot file gets
// hashed, per spec.md §5's requirement that the read be bounded.
const maxSnapshotReadBytes = 32 << 20 // 32 MiB

// SnapshotReader resolves a snapshot locator to bytes when it names
// something the core can read locally. It returns ok=false (not an error)
// when the locator isn't a local, readable file — callers then fall back
// to hashing the locator string itself.
type SnapshotReader interface {
	ReadIfLocal(locator string) (data []byte, ok bool)
}

// LocalFileSnapshotReader reads snapshots that are plain local file paths.
// Production deployments that keep snapshots in object storage should
// implement SnapshotReader against their own client and return ok=false,
// letting the caller fall back to hashing the locator string.
type LocalFileSnapshotReader struct{}

func (LocalFileSnapshotReader) ReadIfLocal(locator string) ([]byte, bool) {
	if locator == "" {
		return nil, false
	}
	f, err := os.Open(locator)
	if err != nil {
		return nil, false
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxSnapshotReadBytes+1))
	if err != nil {
		return nil, false
	}
	if len(data) > maxSnapshotReadBytes {
		data = data[:maxSnapshotReadBytes]
	}
	return data, true
}

// Fingerprint computes the 256-bit content hash of a recognition ingress
// per spec.md §4.2: SHA-256 over the content seed (file bytes or locator
// string), employee code (or "unknown"), device id, and the decimal
// time-bucket number, each component contributing nothing when absent.
func Fingerprint(reader SnapshotReader, snapshotLocator, employeeCodeOrUnknown, deviceID string, capturedAt time.Time) string {
	h := sha256.New()

	if snapshotLocator != "" {
		if data, ok := reader.ReadIfLocal(snapshotLocator); ok {
			sum := sha256.Sum256(data)
			h.Write([]byte(hex.EncodeToString(sum[:])))
		} else {
			h.Write([]byte(snapshotLocator))
		}
	}

	if employeeCodeOrUnknown != "" {
		h.Write([]byte(employeeCodeOrUnknown))
	}

	if deviceID != "" {
		h.Write([]byte(deviceID))
	}

	bucket := capturedAt.Unix() / Window
	h.Write([]byte(strconv.FormatInt(bucket, 10)))

	return hex.EncodeToString(h.Sum(nil))
}

// WithinDedupWindow reports whether a and b fall within the dedup window of
// each other — exposed for tests, per spec.md §4.2.
func WithinDedupWindow(a, b time.Time) bool {
	diff := a.Unix() - b.Unix()
	if diff < 0 {
		diff = -diff
	}
	return diff <= Window
}

