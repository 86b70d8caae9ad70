package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/paulmach/orb"
	"github.com/ttpr0/isomap/isochrone"
	. "github.com/ttpr0/isomap/util"
)

//**********************************************************
// isochrone handler
//**********************************************************

// Computes the isochrones of every requested location as a single geojson collection.
func HandleIsochroneRequest(manager *MapManager) func(*gin.Context, IsochroneRequest) Result {
	return func(c *gin.Context, req IsochroneRequest) Result {
		settings := manager.GetConfig().DefaultSettings()
		if len(req.Range) > 0 {
			settings.TimeRanges = req.Range
		}
		if req.WalkingSpeed != 0 {
			settings.WalkingSpeed = req.WalkingSpeed
		}
		if req.Dist != 0 {
			settings.Dist = req.Dist
		}
		if req.Tolerance != nil {
			settings.Tolerance = *req.Tolerance
		}
		settings.Simplify = req.Simplify
		settings = settings.Normalize()
		if err := settings.Validate(); err != nil {
			return BadRequest(err.Error())
		}

		isochrones := NewList[isochrone.Isochrone](len(req.Locations) * len(settings.TimeRanges))
		for _, loc := range req.Locations {
			location := orb.Point{loc[0], loc[1]}
			if loc[0] < -180 || loc[0] > 180 || loc[1] < -90 || loc[1] > 90 {
				return BadRequest(fmt.Sprintf("invalid location %v", loc))
			}
			result, err := manager.GetGenerator().ComputeIsochrones(c.Request.Context(), location, settings)
			if err != nil {
				return Unprocessable(fmt.Sprintf("failed to compute isochrones at %v: %v", loc, err))
			}
			isochrones = append(isochrones, result...)
		}
		return OK(isochrone.ToFeatureCollection(isochrones))
	}
}
