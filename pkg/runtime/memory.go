package runtime

import (
	"fmt"
	"sync"

	"github.com/decred/slog"

	"github.com/privatehold/engine/pkg/protocol"
)

type registryKey struct {
	partition PartitionID
	app       ApplicationID
}

// Memory is an in-memory, single-process stand-in for the host
// runtime. It is a test/demo harness, not a production replicator: all
// delivery happens synchronously on the caller's goroutine, which
// trivially gives the per-(source,destination) FIFO ordering §5
// requires (there is no concurrency to reorder). It still enforces
// sender authentication and at-most-once delivery the way a real
// runtime would, so code written against Handler/Outbox exercises the
// same contract it would in production.
type Memory struct {
	mu       sync.Mutex
	handlers map[registryKey]Handler
	nonces   map[PartitionID]uint64          // next nonce to assign per source partition
	seen     map[PartitionID]map[uint64]bool // delivered (source, nonce) pairs, per destination
	block    uint64
	log      slog.Logger
}

// NewMemory constructs an empty in-memory runtime.
func NewMemory(log slog.Logger) *Memory {
	return &Memory{
		handlers: make(map[registryKey]Handler),
		nonces:   make(map[PartitionID]uint64),
		seen:     make(map[PartitionID]map[uint64]bool),
		log:      log,
	}
}

// BlockHeight implements Clock. The harness has no real consensus
// clock, so height only moves forward when a caller calls Tick.
func (m *Memory) BlockHeight() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.block
}

// Tick advances the harness's block height, simulating the passage of
// runtime-observable time so tests can exercise TriggerTimeoutCheck.
func (m *Memory) Tick(blocks uint64) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.block += blocks
	return m.block
}

// Register installs the Handler that receives envelopes addressed to
// (partition, app). Registering twice for the same key replaces the
// prior handler; this harness does not support multiple handlers per
// address, matching a real runtime's single-application-per-id rule.
func (m *Memory) Register(partition PartitionID, app ApplicationID, h Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[registryKey{partition, app}] = h
}

// Outbox returns an Outbox that stamps every send as originating from
// (partition, app) — this is the unforgeable half of sender
// authentication: a Handler only ever learns Source/SourceApp as set
// here, never from caller-supplied fields.
func (m *Memory) Outbox(partition PartitionID, app ApplicationID) Outbox {
	return &boundOutbox{memory: m, partition: partition, app: app}
}

type boundOutbox struct {
	memory    *Memory
	partition PartitionID
	app       ApplicationID
}

func (o *boundOutbox) Send(destination PartitionID, destApp ApplicationID, payload protocol.Message) error {
	return o.memory.send(o.partition, o.app, destination, destApp, payload)
}

func (m *Memory) send(source PartitionID, sourceApp ApplicationID, destination PartitionID, destApp ApplicationID, payload protocol.Message) error {
	m.mu.Lock()
	nonce := m.nonces[source]
	m.nonces[source] = nonce + 1

	h, ok := m.handlers[registryKey{destination, destApp}]
	m.mu.Unlock()

	if !ok {
		m.log.Warnf("runtime: no handler registered for %s/%s, dropping %s from %s", destination, destApp, payload.Kind(), source)
		return nil
	}

	env := Envelope{
		Source:      source,
		SourceApp:   sourceApp,
		Destination: destination,
		DestApp:     destApp,
		Nonce:       nonce,
		Payload:     payload,
	}

	if m.duplicate(destination, destApp, source, nonce) {
		m.log.Warnf("runtime: dropping duplicate (source=%s, nonce=%d) delivery to %s/%s", source, nonce, destination, destApp)
		return nil
	}

	m.log.Debugf("runtime: %s (%s/%s -> %s/%s, nonce=%d)", payload.Kind(), source, sourceApp, destination, destApp, nonce)
	return h.Deliver(env)
}

// duplicate records and checks (source, nonce) pairs per destination
// (partition, application) address, giving at-most-once delivery.
func (m *Memory) duplicate(destination PartitionID, destApp ApplicationID, source PartitionID, nonce uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := PartitionID(fmt.Sprintf("%s/%s<-%s", destination, destApp, source))
	if m.seen[key] == nil {
		m.seen[key] = make(map[uint64]bool)
	}
	if m.seen[key][nonce] {
		return true
	}
	m.seen[key][nonce] = true
	return false
}
