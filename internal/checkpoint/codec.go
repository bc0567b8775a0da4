package checkpoint

import (
	"encoding/json"
	"fmt"

	"github.com/klauspost/compress/zstd"

	"pkg.jsn.cam/brc/pkg/brc"
)

// codec turns partial results into compressed JSON and back.
// EncodeAll and DecodeAll are safe for concurrent use.
type codec struct {
	enc *zstd.Encoder
	dec *zstd.Decoder
}

func newCodec() (*codec, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	return &codec{enc: enc, dec: dec}, nil
}

func (c *codec) encode(res brc.Result) ([]byte, error) {
	data, err := json.Marshal(res)
	if err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}

	return c.enc.EncodeAll(data, nil), nil
}

func (c *codec) decode(data []byte) (brc.Result, error) {
	raw, err := c.dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress partial: %w", err)
	}

	var res brc.Result
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, fmt.Errorf("failed to decode JSON: %w", err)
	}

	return res, nil
}

func (c *codec) close() {
	c.enc.Close()
	c.dec.Close()
}
