package database

import (
	"errors"
	"strings"
	"testing"
)

func TestConnectErrorSanitizesCredentials(t *testing.T) {
	cause := errors.New(`failed to connect to host=localhost user=prospera password=s3cret database=prospera`)

	err := connectError(cause)
	if err == nil {
		t.Fatal("expected an error")
	}

	msg := err.Error()
	if strings.Contains(msg, "s3cret") {
		t.Errorf("error message leaks the password: %s", msg)
	}
	if strings.Contains(msg, "%!") {
		t.Errorf("error message has a formatting verb mismatch: %s", msg)
	}
	if !strings.Contains(msg, "failed to connect to database") {
		t.Errorf("unexpected error message: %s", msg)
	}
}
