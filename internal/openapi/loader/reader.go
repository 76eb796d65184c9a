package loader

import (
	"context"
	"errors"
	"fmt"
	"io"

	pkgopenapi "github.com/goliatone/go-formflow/pkg/openapi"
)

func loadFromReader(ctx context.Context, src pkgopenapi.Source, maxSize int64) ([]byte, error) {
	carrier, ok := src.(pkgopenapi.ReaderSource)
	if !ok {
		return nil, errors.New("openapi loader: reader source does not expose a reader")
	}
	reader := carrier.Reader()
	if reader == nil {
		return nil, errors.New("openapi loader: reader source has a nil reader")
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if maxSize <= 0 {
		return io.ReadAll(reader)
	}

	data, err := io.ReadAll(io.LimitReader(reader, maxSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxSize {
		return nil, fmt.Errorf("openapi loader: %s exceeds the %d byte document cap", src.Location(), maxSize)
	}
	return data, nil
}
