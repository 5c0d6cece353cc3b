package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"

	"github.com/arloliu/bytecol/block"
	"github.com/arloliu/bytecol/container"
	"github.com/arloliu/bytecol/format"
)

// stdinName selects standard input for --input.
const stdinName = "-"

func requireString(v *viper.Viper, key string) (string, error) {
	s := v.GetString(key)
	if s == "" {
		return "", fmt.Errorf("required flag --%s not set", key)
	}

	return s, nil
}

func openInput(name string, stdin io.Reader) (io.ReadCloser, error) {
	if name == "" || name == stdinName {
		return io.NopCloser(stdin), nil
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}

	return f, nil
}

// readBlockFile loads a block file and returns it with its compression and on-disk size.
func readBlockFile(name string, opts ...block.LoadOption) (*block.Block, format.CompressionType, int64, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to read block file: %w", err)
	}

	b, compression, err := container.Decode(data, opts...)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("%s: %w", name, err)
	}

	return b, compression, int64(len(data)), nil
}

// writeBlockFile writes b to a new file at name.
func writeBlockFile(name string, b *block.Block, compression format.CompressionType) (int64, error) {
	f, err := os.Create(name)
	if err != nil {
		return 0, fmt.Errorf("failed to create output: %w", err)
	}

	bw := bufio.NewWriterSize(f, humanize.MiByte)
	stats, err := container.Write(bw, b, compression)
	if err == nil {
		err = bw.Flush()
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(name)
		return 0, err
	}

	return stats.CompressedSize + container.HeaderSize, nil
}
