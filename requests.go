package main

//**********************************************************
// isochrone request
//**********************************************************

type IsochroneRequest struct {
	// [lon, lat] pairs
	Locations    [][]float64 `json:"locations" binding:"required,min=1,dive,len=2"`
	Range        []int       `json:"range"`
	WalkingSpeed float64     `json:"walking_speed"`
	Dist         float64     `json:"dist"`
	Simplify     bool        `json:"simplify"`
	Tolerance    *float64    `json:"tolerance"`
}
