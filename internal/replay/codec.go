package replay

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"
)

var (
	encoder = must(zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault)))
	decoder = must(zstd.NewReader(nil))
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(fmt.Sprintf("replay: zstd setup: %v", err))
	}
	return v
}

// Encode serializes a replay as zstd-compressed YAML.
func Encode(r Replay) ([]byte, error) {
	data, err := yaml.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("replay: failed to marshal: %w", err)
	}
	return encoder.EncodeAll(data, nil), nil
}

// Decode is the inverse of Encode.
func Decode(data []byte) (Replay, error) {
	var r Replay
	raw, err := decoder.DecodeAll(data, nil)
	if err != nil {
		return r, fmt.Errorf("replay: failed to decompress: %w", err)
	}
	if err := yaml.Unmarshal(raw, &r); err != nil {
		return r, fmt.Errorf("replay: failed to unmarshal: %w", err)
	}
	return r, nil
}
