package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestFieldErrors(t *testing.T) {
	var fe FieldErrors
	if fe.Err() != nil {
		t.Fatal("empty collector must not produce an error")
	}

	fe.Add("name", "Name is required")
	fe.Add("price1", "Price 1 must be 0 or greater")
	if !fe.Has("name") || fe.Has("cost") {
		t.Errorf("unexpected Has results for %+v", fe)
	}

	appErr := GetAppError(fe.Err())
	if appErr.Code != http.StatusUnprocessableEntity || len(appErr.Errors) != 2 {
		t.Errorf("unexpected error %+v", appErr)
	}
}

func TestGetAppError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"app error", NewNotFoundError("Sale"), http.StatusNotFound},
		{"wrapped", fmt.Errorf("record sale: %w", NewConflictError("dup")), http.StatusConflict},
		{"plain", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetAppError(tt.err).Code; got != tt.want {
				t.Errorf("code = %d, want %d", got, tt.want)
			}
		})
	}
}
