package graph

import (
	"fmt"
)

//*******************************************
// weighting interface
//*******************************************

type IWeighting interface {
	GetEdgeWeight(edge int32) float64
	Type() WeightType
}

type WeightType byte

const (
	DISTANCE_WEIGHT WeightType = 0
	TIME_WEIGHT     WeightType = 1
)

//*******************************************
// distance weighting
//*******************************************

// Edge weight is the edge length in meters.
type DistanceWeighting struct {
	base *GraphBase
}

func BuildDistanceWeighting(base *GraphBase) *DistanceWeighting {
	return &DistanceWeighting{base: base}
}

func (self *DistanceWeighting) GetEdgeWeight(edge int32) float64 {
	return self.base.edges[edge].Length
}
func (self *DistanceWeighting) Type() WeightType {
	return DISTANCE_WEIGHT
}

//*******************************************
// travel-time weighting
//*******************************************

// Edge weight is the traversal time in seconds at a constant speed.
type TimeWeighting struct {
	edge_weights []float64
	speed        float64
}

// speed in meters per second
func BuildTimeWeighting(base *GraphBase, speed float64) (*TimeWeighting, error) {
	if !(speed > 0) {
		return nil, fmt.Errorf("invalid walking speed %v, must be positive", speed)
	}
	weights := make([]float64, base.EdgeCount())
	for i, edge := range base.edges {
		weights[i] = edge.Length / speed
	}
	return &TimeWeighting{
		edge_weights: weights,
		speed:        speed,
	}, nil
}

func (self *TimeWeighting) GetEdgeWeight(edge int32) float64 {
	return self.edge_weights[edge]
}
func (self *TimeWeighting) Type() WeightType {
	return TIME_WEIGHT
}
func (self *TimeWeighting) Speed() float64 {
	return self.speed
}
