// Package snowflake mints the 64-bit monotonic ids spec §3 requires for
// every row except ClientNotifyTemplate (which keeps a DB serial id). It
// wraps github.com/bwmarrin/snowflake, deriving the node id from the pod's
// own address the way spec §3 calls for ("node bits derived from host
// identity").
package snowflake

import (
	"hash/fnv"

	"github.com/bwmarrin/snowflake"
)

// Generator mints ids for one process. Safe for concurrent use; the
// underlying snowflake.Node already serializes Generate() internally.
type Generator struct {
	node *snowflake.Node
}

// NewFromPodIP builds a Generator whose node id is derived deterministically
// from podIP (an FNV-1a hash taken mod 1024), so a pod restarting with the
// same address reuses the same node id. Two distinct addresses can hash to
// the same node id.
func NewFromPodIP(podIP string) (*Generator, error) {
	h := fnv.New32a()
	_, _ = h.Write([]byte(podIP))
	nodeID := int64(h.Sum32() % 1024) // snowflake.Node accepts 0-1023

	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, err
	}
	return &Generator{node: node}, nil
}

// Next mints the next id for this process.
func (g *Generator) Next() int64 {
	return g.node.Generate().Int64()
}
