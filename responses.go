package main

import (
	"github.com/ttpr0/isomap/generator"
	. "github.com/ttpr0/isomap/structs"
)

type ErrorResponse struct {
	Request string `json:"request"`
	Error   any    `json:"error"`
}

func NewErrorResponse(request string, error any) ErrorResponse {
	return ErrorResponse{
		Request: request,
		Error:   error,
	}
}

type HealthResponse struct {
	Status string `json:"status"`
}

//**********************************************************
// html pages
//**********************************************************

type RangeOption struct {
	Value    int
	Selected bool
}

// Data of the upload and result pages.
type PageData struct {
	Title        string
	Info         string
	Errors       []string
	Warnings     []string
	Settings     generator.Settings
	RangeOptions []RangeOption
	MapID        string
	RouteCount   int
	StopCount    int
}

func NewPageData(settings generator.Settings) PageData {
	selected := make(map[int]bool, len(settings.TimeRanges))
	for _, t := range settings.TimeRanges {
		selected[t] = true
	}
	options := make([]RangeOption, 0, len(generator.TIME_RANGE_OPTIONS))
	for _, t := range generator.TIME_RANGE_OPTIONS {
		options = append(options, RangeOption{Value: t, Selected: selected[t]})
	}
	return PageData{
		Title:        "Isochrone Map Generator",
		Settings:     settings,
		RangeOptions: options,
	}
}

func WarningMessages(warnings []Warning) []string {
	messages := make([]string, 0, len(warnings))
	for _, warning := range warnings {
		messages = append(messages, warning.String())
	}
	return messages
}
