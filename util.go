package main

import (
	"fmt"
	"io"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ttpr0/isomap/generator"
	"github.com/ttpr0/isomap/ingest"
	. "github.com/ttpr0/isomap/util"
)

// Reads the settings fields of the upload form, missing or empty fields keep the defaults.
func ParseSettingsForm(c *gin.Context, defaults generator.Settings) (generator.Settings, error) {
	settings := defaults
	var err error
	if settings.WalkingSpeed, err = _FormFloat(c, "walking_speed", defaults.WalkingSpeed); err != nil {
		return settings, err
	}
	if settings.Dist, err = _FormFloat(c, "dist", defaults.Dist); err != nil {
		return settings, err
	}
	if settings.Tolerance, err = _FormFloat(c, "tolerance", defaults.Tolerance); err != nil {
		return settings, err
	}
	if values, ok := c.GetPostFormArray("range"); ok {
		ranges, err := ParseRanges(values)
		if err != nil {
			return settings, err
		}
		settings.TimeRanges = ranges
	}
	if value, ok := c.GetPostForm("simplify"); ok {
		settings.Simplify = value == "on" || value == "true" || value == "1"
	}
	return settings.Normalize(), nil
}

// Parses time ranges given as separate values or comma separated lists.
func ParseRanges(values []string) ([]int, error) {
	ranges := make([]int, 0, len(values))
	for _, value := range values {
		for _, token := range strings.Split(value, ",") {
			token = strings.TrimSpace(token)
			if token == "" {
				continue
			}
			t, err := strconv.Atoi(token)
			if err != nil {
				return nil, fmt.Errorf("invalid time range %q", token)
			}
			ranges = append(ranges, t)
		}
	}
	return ranges, nil
}

func _FormFloat(c *gin.Context, key string, fallback float64) (float64, error) {
	value := strings.TrimSpace(c.PostForm(key))
	if value == "" {
		return fallback, nil
	}
	num, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %v %q", key, value)
	}
	return num, nil
}

// Reads all uploaded files of the given form field in upload order.
func ReadUploadedFiles(headers []*multipart.FileHeader) (List[ingest.File], error) {
	files := NewList[ingest.File](len(headers))
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open upload %v: %w", header.Filename, err)
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read upload %v: %w", header.Filename, err)
		}
		files.Add(ingest.File{Name: header.Filename, Data: data})
	}
	return files, nil
}
