package api

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophtasks/internal/auth"
	"github.com/dmitrijs2005/gophtasks/internal/common"
	"github.com/dmitrijs2005/gophtasks/internal/tasks"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrUnavailable is returned by clients when the server cannot be reached.
var ErrUnavailable = errors.New("server unavailable")

// sentinels are the domain errors that survive a round-trip. The status
// message starts with the sentinel text, which is how FromStatus finds it.
var sentinels = []struct {
	err  error
	code codes.Code
}{
	{auth.ErrDuplicateUser, codes.AlreadyExists},
	{auth.ErrInvalidCredentials, codes.Unauthenticated},
	{auth.ErrNotAuthenticated, codes.Unauthenticated},
	{tasks.ErrEmptyTitle, codes.InvalidArgument},
	{tasks.ErrInvalidStatus, codes.InvalidArgument},
	{tasks.ErrInvalidPriority, codes.InvalidArgument},
	{tasks.ErrInvalidDueDate, codes.InvalidArgument},
	{tasks.ErrEmptyCategory, codes.InvalidArgument},
	{common.ErrorNotFound, codes.NotFound},
}

// ToStatus converts a store error into a gRPC status error. Unknown errors
// become Internal without leaking their text.
func ToStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	for _, s := range sentinels {
		if errors.Is(err, s.err) {
			return status.Error(s.code, err.Error())
		}
	}
	switch {
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}
	return status.Error(codes.Internal, common.ErrorInternal.Error())
}

// FromStatus maps a status error back onto the sentinel it was built from,
// keeping any detail after the sentinel text.
func FromStatus(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	msg := st.Message()
	for _, s := range sentinels {
		if st.Code() != s.code {
			continue
		}
		text := s.err.Error()
		if msg == text {
			return s.err
		}
		if rest, ok := strings.CutPrefix(msg, text); ok {
			return fmt.Errorf("%w%s", s.err, rest)
		}
	}

	switch st.Code() {
	case codes.Unavailable:
		return fmt.Errorf("%w: %s", ErrUnavailable, msg)
	case codes.DeadlineExceeded:
		return context.DeadlineExceeded
	case codes.Canceled:
		return context.Canceled
	case codes.Internal:
		return fmt.Errorf("%w: %s", common.ErrorInternal, msg)
	}
	return fmt.Errorf("rpc error: %w", err)
}
