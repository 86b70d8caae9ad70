package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slog"
)

type Result struct {
	result any
	status int
}

func OK[T any](value T) Result {
	return Result{
		result: value,
		status: http.StatusOK,
	}
}

func BadRequest[T any](value T) Result {
	return Result{
		result: value,
		status: http.StatusBadRequest,
	}
}

func Unprocessable[T any](value T) Result {
	return Result{
		result: value,
		status: http.StatusUnprocessableEntity,
	}
}

func InternalError[T any](value T) Result {
	return Result{
		result: value,
		status: http.StatusInternalServerError,
	}
}

func WriteResponse[T any](c *gin.Context, resp T, status int) {
	c.JSON(status, resp)
}

// Registers a json endpoint, the request body is decoded into F.
func MapPost[F any](app gin.IRoutes, path string, handler func(*gin.Context, F) Result) {
	app.POST(path, func(c *gin.Context) {
		slog.Info("POST " + path)
		var body F
		if err := c.ShouldBindJSON(&body); err != nil {
			slog.Error("failed POST " + path + ": " + err.Error())
			WriteResponse(c, NewErrorResponse(path, err.Error()), http.StatusBadRequest)
			return
		}
		res := handler(c, body)
		if res.status != http.StatusOK {
			slog.Error("failed POST " + path)
			WriteResponse(c, NewErrorResponse(path, res.result), res.status)
		} else {
			slog.Info("successfully finished POST")
			WriteResponse(c, res.result, res.status)
		}
	})
}

// Registers a json endpoint without request body.
func MapGet(app gin.IRoutes, path string, handler func(*gin.Context) Result) {
	app.GET(path, func(c *gin.Context) {
		slog.Debug("GET " + path)
		res := handler(c)
		if res.status != http.StatusOK {
			slog.Error("failed GET " + path)
			WriteResponse(c, NewErrorResponse(path, res.result), res.status)
		} else {
			WriteResponse(c, res.result, res.status)
		}
	})
}
