package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestFromStatus(t *testing.T) {
	tests := []struct {
		status int
		code   Code
	}{
		{status: http.StatusBadRequest, code: CodeValidation},
		{status: http.StatusUnauthorized, code: CodeUnauthorized},
		{status: http.StatusForbidden, code: CodeForbidden},
		{status: http.StatusNotFound, code: CodeNotFound},
		{status: http.StatusConflict, code: CodeConflict},
		{status: http.StatusTooManyRequests, code: CodeRateLimit},
		{status: http.StatusUnprocessableEntity, code: CodeValidation},
		{status: http.StatusInternalServerError, code: CodeDependency},
		{status: http.StatusBadGateway, code: CodeDependency},
	}

	for _, tt := range tests {
		if got := FromStatus(tt.status); got != tt.code {
			t.Fatalf("status %d expected code %s got %s", tt.status, tt.code, got)
		}
	}
}

func TestRetryable(t *testing.T) {
	if Retryable(CodeValidation) {
		t.Fatal("validation errors must not be retryable")
	}
	if !Retryable(CodeDependency) {
		t.Fatal("dependency errors must be retryable")
	}
	if !Retryable(CodeRateLimit) {
		t.Fatal("rate limit errors must be retryable")
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("socket closed")
	err := Wrap(CodeDependency, cause, "fetch products")

	if !stdErrors.Is(err, cause) {
		t.Fatal("wrapped error should match its cause")
	}
	if err.Code() != CodeDependency {
		t.Fatalf("unexpected code: %s", err.Code())
	}
	if err.Error() != "DEPENDENCY_ERROR: fetch products" {
		t.Fatalf("unexpected message: %s", err.Error())
	}
}

func TestAsThroughWrapping(t *testing.T) {
	inner := New(CodeNotFound, "order missing")
	outer := fmt.Errorf("loading order: %w", inner)

	typed := As(outer)
	if typed == nil || typed.Code() != CodeNotFound {
		t.Fatalf("expected NOT_FOUND through wrap, got %v", typed)
	}
	if !IsCode(outer, CodeNotFound) {
		t.Fatal("IsCode should match through wrapping")
	}
}

func TestWithDetails(t *testing.T) {
	err := New(CodeValidation, "bad promocode").WithDetails(map[string]string{"field": "promocode"})
	details, ok := err.Details().(map[string]string)
	if !ok || details["field"] != "promocode" {
		t.Fatalf("unexpected details: %v", err.Details())
	}
}
