package routing

import "github.com/rotisserie/eris"

// walkParents follows parent pointers from a node back to the chain root
// (the node with no parent entry) and returns the chain in root-to-node
// order. The walk is capped at maxSteps so a malformed parent chain cannot
// loop forever.
func walkParents(parents map[int64]int64, from int64, maxSteps int) ([]int64, error) {
	chain := []int64{from}
	cur := from
	for {
		p, ok := parents[cur]
		if !ok {
			break
		}
		chain = append(chain, p)
		cur = p
		if len(chain) > maxSteps {
			return nil, eris.Errorf("routing: parent chain exceeds %d nodes, cycle suspected", maxSteps)
		}
	}
	// reverse in place: root first
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain, nil
}
