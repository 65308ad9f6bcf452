package inmemory

import "sync"

type Snapshot struct {
	CommandTotal    uint64            `json:"command_total"`
	CommandAccepted uint64            `json:"command_accepted"`
	CommandRejected uint64            `json:"command_rejected"`
	CommandFailure  uint64            `json:"command_failure"`
	ByKind          map[string]uint64 `json:"by_kind"`
	ByRejectCode    map[string]uint64 `json:"by_reject_code"`
}

// Recorder counts commands in process. It backs the ops KPI endpoint.
type Recorder struct {
	mu       sync.Mutex
	accepted uint64
	rejected uint64
	failure  uint64
	byKind   map[string]uint64
	byCode   map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byKind: map[string]uint64{},
		byCode: map[string]uint64{},
	}
}

func (r *Recorder) RecordAccepted(kind string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accepted++
	r.byKind[kind]++
}

func (r *Recorder) RecordRejected(kind string, code string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rejected++
	r.byKind[kind]++
	r.byCode[code]++
}

func (r *Recorder) RecordFailure(kind string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failure++
	r.byKind[kind]++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		CommandAccepted: r.accepted,
		CommandRejected: r.rejected,
		CommandFailure:  r.failure,
		CommandTotal:    r.accepted + r.rejected + r.failure,
		ByKind:          make(map[string]uint64, len(r.byKind)),
		ByRejectCode:    make(map[string]uint64, len(r.byCode)),
	}
	for k, v := range r.byKind {
		out.ByKind[k] = v
	}
	for k, v := range r.byCode {
		out.ByRejectCode[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
