package service

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/antonio-alexander/go-employee-seeder/internal"
	"github.com/antonio-alexander/go-employee-seeder/internal/data"
	"github.com/antonio-alexander/go-employee-seeder/internal/logic"

	"github.com/pkg/errors"
)

func getCorrelationId(request *http.Request) string {
	if correlationId := request.Header.Get("Correlation-Id"); correlationId != "" {
		return correlationId
	}
	return internal.GenerateId()
}

func statusCodeFromError(err error) int {
	switch {
	default:
		return http.StatusInternalServerError
	case errors.Is(err, logic.ErrInvalid), errors.Is(err, errRequest):
		return http.StatusBadRequest
	case errors.Is(err, logic.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, logic.ErrMutationDisabled):
		return http.StatusForbidden
	}
}

func decodeRequest(request *http.Request, v any) error {
	bytes, err := io.ReadAll(request.Body)
	defer request.Body.Close()
	if err != nil {
		return errors.Wrap(errRequest, err.Error())
	}
	if err := json.Unmarshal(bytes, v); err != nil {
		return errors.Wrap(errRequest, err.Error())
	}
	return nil
}

func handleResponse(writer http.ResponseWriter, statusCode int, err error, message string, item any) {
	response := &data.Response{Message: message, Data: item}
	if err != nil {
		statusCode = statusCodeFromError(err)
		response = &data.Response{Message: err.Error()}
	}
	bytes, err := json.Marshal(response)
	if err != nil {
		writer.WriteHeader(http.StatusInternalServerError)
		fmt.Printf("error handling response: %s\n", err)
		return
	}
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	if _, err := writer.Write(bytes); err != nil {
		fmt.Printf("error handling response: %s\n", err)
	}
}
