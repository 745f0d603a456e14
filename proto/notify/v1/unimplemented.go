package notifyv1

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func grpcUnimplemented(method string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", method)
}
