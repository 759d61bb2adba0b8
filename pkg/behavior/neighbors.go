package behavior

import "github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"

// Perceives reports whether an agent at selfPos moving along selfVel can see a
// sibling at otherPos: the sibling must be closer than MinNeighborDistance and
// inside the field of view. An agent without a velocity has no forward
// direction and therefore sees nobody.
func Perceives(selfPos, selfVel, otherPos geometry.Vector3D, r Rules) bool {
	toOther := otherPos.Sub(selfPos)
	if !(toOther.Len() < r.MinNeighborDistance) {
		return false
	}

	forward := selfVel.Normalize()
	if forward.IsZero() {
		return false
	}
	if r.Omnidirectional {
		return true
	}
	return forward.Dot(toOther.Normalize()) > r.ViewThreshold
}

// Neighbors appends to dst the indices of every agent that agents[self] perceives,
// in index order, and returns the extended slice. The agent itself is skipped.
// The scan is brute force: O(n) per agent.
func Neighbors(self int, agents []Agent, r Rules, dst []int) []int {
	me := agents[self]
	for j := range agents {
		if j == self {
			continue
		}
		if Perceives(me.Position, me.Velocity, agents[j].Position, r) {
			dst = append(dst, j)
		}
	}
	return dst
}

// SumNeighborsAt runs the neighbor scan of agent self over a population of n
// agents stored anywhere: position and velocity return the state of agent j.
// Agents are visited in index order and self is skipped, so every layout that
// calls it adds the same floats in the same order.
func SumNeighborsAt(self, n int, position, velocity func(j int) geometry.Vector3D, r Rules) NeighborSums {
	pos, vel := position(self), velocity(self)

	var sums NeighborSums
	for j := 0; j < n; j++ {
		if j == self {
			continue
		}
		other := position(j)
		if Perceives(pos, vel, other, r) {
			sums.Add(pos, other, velocity(j))
		}
	}
	return sums
}

// NeighborSums accumulates what separation, alignment and cohesion need from
// the neighbor set, so the set itself never has to be materialized.
type NeighborSums struct {
	Count    int
	Away     geometry.Vector3D // sum of normalize(self - neighbor)
	Velocity geometry.Vector3D // sum of neighbor velocities
	Position geometry.Vector3D // sum of neighbor positions
}

// Add folds one neighbor into the sums.
func (s *NeighborSums) Add(selfPos, otherPos, otherVel geometry.Vector3D) {
	s.Count++
	s.Away = s.Away.Add(selfPos.Sub(otherPos).Normalize())
	s.Velocity = s.Velocity.Add(otherVel)
	s.Position = s.Position.Add(otherPos)
}

// SumNeighbors builds the sums for a materialized neighbor list.
func SumNeighbors(self Agent, neighbors []Agent) NeighborSums {
	var s NeighborSums
	for _, n := range neighbors {
		s.Add(self.Position, n.Position, n.Velocity)
	}
	return s
}
