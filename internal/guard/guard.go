// Package guard implements the ordered validation pipeline that every
// question upsert must pass before any write is attempted. Each guard
// returns a typed Violation on business failure, never an exception;
// infrastructure faults are reported separately so the orchestrator can
// map them to a persistence error.
package guard

import (
	"context"
	"fmt"

	"github.com/quizforge/qbank-backend/internal/model"
	"github.com/quizforge/qbank-backend/internal/response"
)

// Violation is a typed guard failure carrying a stable error code and a
// human-readable detail safe to surface to the caller.
type Violation struct {
	Code   response.ErrCode
	Detail string
}

func (v *Violation) Error() string {
	return fmt.Sprintf("%s: %s", v.Code, v.Detail)
}

// Violationf builds a Violation with a formatted detail message.
func Violationf(code response.ErrCode, format string, args ...interface{}) *Violation {
	return &Violation{Code: code, Detail: fmt.Sprintf(format, args...)}
}

// Guard is one stage of the validation pipeline. Check must treat the
// request as read-only. A non-nil Violation is a business rejection; a
// non-nil error is an infrastructure fault (lookup failed, store down).
type Guard interface {
	Name() string
	Check(ctx context.Context, req *model.UpsertRequest) (*Violation, error)
}
