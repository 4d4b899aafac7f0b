package warehousepb

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/encoding"
)

// jsonCodec carries the message types in this package over a real
// google.golang.org/grpc connection without a protobuf compiler: it
// registers under the name "proto", which is the name grpc.Server and
// grpc.ClientConn look up by default, so no per-call codec option is
// needed at either end.
type jsonCodec struct{}

func (jsonCodec) Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v interface{}) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return "proto"
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// errUnexpectedType is returned by generated-style handler shims when a
// gRPC request arrives decoded into the wrong Go type.
func errUnexpectedType(want, got interface{}) error {
	return fmt.Errorf("warehousepb: expected %T, got %T", want, got)
}
