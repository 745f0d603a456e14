package rpc

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/arda-labs/notify-core/internal/domain"
)

// StatusFromError translates the service's typed error taxonomy (spec §7)
// into the gRPC status every unary/streaming handler returns at its
// boundary. Unrecognized errors map to Internal rather than leaking
// internal detail to the wire.
func StatusFromError(err error) error {
	if err == nil {
		return nil
	}

	switch err.(type) {
	case *domain.ArgumentError:
		return status.Error(codes.InvalidArgument, err.Error())
	case *domain.DataNotFoundError:
		return status.Error(codes.NotFound, err.Error())
	case *domain.ConnectionError:
		return status.Error(codes.Unavailable, err.Error())
	case *domain.StatusError:
		return status.Error(codes.FailedPrecondition, err.Error())
	case *domain.InvalidPhoneNumberError:
		return status.Error(codes.InvalidArgument, err.Error())
	case *domain.InternalError:
		return status.Error(codes.Internal, err.Error())
	default:
		return status.Error(codes.Internal, "internal error")
	}
}
