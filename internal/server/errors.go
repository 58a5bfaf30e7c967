package server

import (
	"errors"
	"net/http"

	"github.com/aetherlearn/pathweaver/internal/pipeline"
	"github.com/aetherlearn/pathweaver/internal/types"
)

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var notFound *pipeline.NotFoundError
	if errors.As(err, &notFound) {
		return http.StatusNotFound
	}
	var validation *types.ValidationError
	if errors.As(err, &validation) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
