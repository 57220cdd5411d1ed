package ingestion

import (
	"hash/fnv"
	"sync"

	"github.com/google/uuid"
)

// EmployeeLocker serializes concurrent ingests for the same employee so the
// policy evaluator's cooldown check — which reads then decides, with no
// storage-level lock of its own — can't race itself into admitting two
// double-punches. Per spec this is the default concurrency strategy;
// in_transaction_recheck is the alternative (re-read last_for inside the
// transaction) and doesn't need this locker at all.
type EmployeeLocker struct {
	shards []sync.Mutex
}

// NewEmployeeLocker builds a locker with shardCount independent mutexes.
// Two employees landing in the same shard serialize against each other too
// — an acceptable, bounded amount of false contention in exchange for O(1)
// memory instead of one mutex per employee ever seen.
func NewEmployeeLocker(shardCount int) *EmployeeLocker {
	if shardCount < 1 {
		shardCount = 1
	}
	return &EmployeeLocker{shards: make([]sync.Mutex, shardCount)}
}

func (l *EmployeeLocker) shardFor(employeeID uuid.UUID) *sync.Mutex {
	h := fnv.New32a()
	h.Write(employeeID[:])
	return &l.shards[h.Sum32()%uint32(len(l.shards))]
}

// Lock acquires the shard guarding employeeID and returns the unlock func.
func (l *EmployeeLocker) Lock(employeeID uuid.UUID) func() {
	m := l.shardFor(employeeID)
	m.Lock()
	return m.Unlock
}
