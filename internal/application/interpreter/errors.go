package interpreter

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/doeshing/termsim/internal/domain"
)

var errProbeUnavailable = errors.New("system probe unavailable")

// expectedFailure maps an anticipated OS error to the handler's message.
// An empty message disables that mapping. The second return is false when
// err is not one the handler anticipates.
func expectedFailure(err error, notFound, denied string) (domain.Result, bool) {
	switch {
	case notFound != "" && errors.Is(err, fs.ErrNotExist):
		return domain.OSFailure(notFound), true
	case denied != "" && errors.Is(err, fs.ErrPermission):
		return domain.OSFailure(denied), true
	}
	return domain.Result{}, false
}

func notFoundMessage(kind, path string) string {
	return fmt.Sprintf("%s not found: %s", kind, path)
}

func deniedMessage(path string) string {
	return fmt.Sprintf("Permission denied: %s", path)
}

func probeFailure(subject string, err error) domain.Result {
	return domain.OSFailure(fmt.Sprintf("Error getting %s: %v", subject, err))
}
