package fingerprint_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/hasanuzzaman/attendance-core/internal/fingerprint"
)

func TestFingerprint(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "fingerprint suite")
}

type noLocalFiles struct{}

func (noLocalFiles) ReadIfLocal(string) ([]byte, bool) { return nil, false }

var _ = Describe("Fingerprint", func() {
	reader := noLocalFiles{}
	base := time.Date(2024, 1, 15, 3, 0, 0, 0, time.UTC)

	It("is deterministic", func() {
		a := fingerprint.Fingerprint(reader, "https://x/1.jpg", "E001", "dev-1", base)
		b := fingerprint.Fingerprint(reader, "https://x/1.jpg", "E001", "dev-1", base)
		Expect(a).To(Equal(b))
		Expect(a).To(HaveLen(64))
	})

	It("is sensitive to employee code", func() {
		a := fingerprint.Fingerprint(reader, "https://x/1.jpg", "E001", "dev-1", base)
		b := fingerprint.Fingerprint(reader, "https://x/1.jpg", "E002", "dev-1", base)
		Expect(a).NotTo(Equal(b))
	})

	It("is sensitive to device id", func() {
		a := fingerprint.Fingerprint(reader, "https://x/1.jpg", "E001", "dev-1", base)
		b := fingerprint.Fingerprint(reader, "https://x/1.jpg", "E001", "dev-2", base)
		Expect(a).NotTo(Equal(b))
	})

	It("is sensitive to the snapshot locator", func() {
		a := fingerprint.Fingerprint(reader, "https://x/1.jpg", "E001", "dev-1", base)
		b := fingerprint.Fingerprint(reader, "https://x/2.jpg", "E001", "dev-1", base)
		Expect(a).NotTo(Equal(b))
	})

	It("buckets timestamps within the same window identically", func() {
		t1 := base
		t2 := base.Add(50 * time.Second)
		Expect(t1.Unix()/fingerprint.Window).To(Equal(t2.Unix() / fingerprint.Window))

		a := fingerprint.Fingerprint(reader, "", "E001", "dev-1", t1)
		b := fingerprint.Fingerprint(reader, "", "E001", "dev-1", t2)
		Expect(a).To(Equal(b))
	})

	It("produces a different hash across a bucket boundary", func() {
		t1 := time.Unix(0, 0).UTC()
		t2 := time.Unix(fingerprint.Window, 0).UTC()
		Expect(t1.Unix() / fingerprint.Window).NotTo(Equal(t2.Unix() / fingerprint.Window))

		a := fingerprint.Fingerprint(reader, "", "E001", "dev-1", t1)
		b := fingerprint.Fingerprint(reader, "", "E001", "dev-1", t2)
		Expect(a).NotTo(Equal(b))
	})

	It("is well defined for an empty locator", func() {
		h := fingerprint.Fingerprint(reader, "", fingerprint.UnknownEmployeeCode, "dev-1", base)
		Expect(h).To(HaveLen(64))
	})

	It("does not treat a missing component as the literal string null", func() {
		withEmpty := fingerprint.Fingerprint(reader, "", "E001", "dev-1", base)
		withNullWord := fingerprint.Fingerprint(reader, "null", "E001", "dev-1", base)
		Expect(withEmpty).NotTo(Equal(withNullWord))
	})
})

var _ = Describe("WithinDedupWindow", func() {
	It("is true for instants at most W seconds apart", func() {
		a := time.Unix(1000, 0)
		b := a.Add(fingerprint.Window * time.Second)
		Expect(fingerprint.WithinDedupWindow(a, b)).To(BeTrue())
	})

	It("is false beyond W seconds", func() {
		a := time.Unix(1000, 0)
		b := a.Add((fingerprint.Window + 1) * time.Second)
		Expect(fingerprint.WithinDedupWindow(a, b)).To(BeFalse())
	})

	It("is symmetric", func() {
		a := time.Unix(1000, 0)
		b := a.Add(100 * time.Second)
		Expect(fingerprint.WithinDedupWindow(a, b)).To(Equal(fingerprint.WithinDedupWindow(b, a)))
	})
})

var _ = Describe("LocalFileSnapshotReader", func() {
	It("reports ok=false for a non-existent path", func() {
		r := fingerprint.LocalFileSnapshotReader{}
		_, ok := r.ReadIfLocal("/does/not/exist/on/this/machine.jpg")
		Expect(ok).To(BeFalse())
	})

	It("reports ok=false for an empty locator", func() {
		r := fingerprint.LocalFileSnapshotReader{}
		_, ok := r.ReadIfLocal("")
		Expect(ok).To(BeFalse())
	})
})
