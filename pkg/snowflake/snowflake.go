package snowflake

import (
	"errors"
	"sync"
	"time"
)

const (
	// Epoch custom epoch in milliseconds (2024-01-01T00:00:00Z)
	Epoch int64 = 1704067200000

	// NodeBits bits reserved for the node ID
	NodeBits uint8 = 10

	// StepBits bits reserved for the per-millisecond sequence
	StepBits uint8 = 12

	nodeMask  = -1 ^ (-1 << NodeBits)
	stepMask  = -1 ^ (-1 << StepBits)
	timeShift = NodeBits + StepBits
	nodeShift = StepBits
)

// IDGenerator snowflake-style unique ID generator. IDs are time-ordered,
// which keeps order numbers roughly chronological.
type IDGenerator struct {
	mu        sync.Mutex
	timestamp int64
	nodeID    int64
	step      int64
}

// NewIDGenerator creates a generator for the given node
func NewIDGenerator(nodeID int64) (*IDGenerator, error) {
	if nodeID < 0 || nodeID > nodeMask {
		return nil, errors.New("invalid node ID")
	}
	return &IDGenerator{nodeID: nodeID}, nil
}

// NextID generates a new unique ID
func (g *IDGenerator) NextID() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now().UnixMilli()

	if g.timestamp == now {
		g.step = (g.step + 1) & stepMask
		if g.step == 0 {
			// sequence exhausted for this millisecond
			for now <= g.timestamp {
				now = time.Now().UnixMilli()
			}
		}
	} else {
		g.step = 0
	}
	g.timestamp = now

	return ((now - Epoch) << timeShift) | (g.nodeID << nodeShift) | g.step
}

// ParseID extracts timestamp, node ID and step from an ID
func ParseID(id int64) (timestamp, nodeID, step int64) {
	step = id & stepMask
	nodeID = (id >> nodeShift) & nodeMask
	timestamp = (id >> timeShift) + Epoch
	return
}
