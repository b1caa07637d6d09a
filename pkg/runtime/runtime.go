// Package runtime specifies the host-runtime contract the Table and
// Hand state machines are written against, plus one in-memory
// reference implementation used by tests and the local demo.
//
// A production host is explicitly out of scope; what belongs here is
// only the seam: partition/application addressing, the envelope
// shape, and the three delivery properties the core code assumes —
// per-(source,destination) FIFO ordering, unforgeable sender identity,
// and at-most-once delivery per (source, nonce). Memory satisfies all
// three synchronously, which is sufficient to drive Table and Hand
// through a full game without a real replicated backend.
package runtime

import "github.com/privatehold/engine/pkg/protocol"

// PartitionID addresses a host-runtime partition (chain/shard). It is
// opaque to application code beyond equality comparison.
type PartitionID string

// ApplicationID addresses a deployed application within a partition. A
// message can only be routed to an application sharing the same
// ApplicationID on the destination partition — this is exactly what
// makes the relay pattern (pkg/hand) necessary: Hand and Table have
// different ApplicationIDs, so a player-partition Hand cannot reach
// Table directly.
type ApplicationID string

// Envelope is one point-to-point, addressed message. Source and
// SourceApp are populated by the runtime at delivery time from the
// identity of the caller that invoked Send — a Handler can inspect
// them but never set or forge them for an inbound Envelope.
type Envelope struct {
	Source      PartitionID
	SourceApp   ApplicationID
	Destination PartitionID
	DestApp     ApplicationID
	Nonce       uint64
	Payload     protocol.Message
}

// Handler receives envelopes addressed to one (partition, application)
// pair. Implementations must not mutate state for an Envelope they
// don't recognize or don't authenticate (see pkg/hand's relay).
type Handler interface {
	Deliver(env Envelope) error
}

// Outbox is how an application emits a cross-partition message on its
// own behalf; the runtime stamps Source/SourceApp/Nonce itself. Memory
// delivers synchronously inside Send, before Send returns; it does not
// defer delivery until the caller's current operation has finished, so
// a caller must not hold a lock its own Deliver needs while sending.
type Outbox interface {
	Send(destination PartitionID, destApp ApplicationID, payload protocol.Message) error
}

// Clock exposes the runtime's current block height, the only notion
// of "now" state transitions are permitted to read (wall-clock and
// thread-local RNG are prohibited inside state transitions per §5).
type Clock interface {
	BlockHeight() uint64
}
