package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type arenaConfig struct {
	blockSize int
	name      string
	calls     []string
}

var errBadBlockSize = errors.New("block size must be positive")

func withBlockSize(n int) Option[*arenaConfig] {
	return New(func(c *arenaConfig) error {
		if n <= 0 {
			return errBadBlockSize
		}
		c.blockSize = n
		c.calls = append(c.calls, "blockSize")

		return nil
	})
}

func withName(name string) Option[*arenaConfig] {
	return NoError(func(c *arenaConfig) {
		c.name = name
		c.calls = append(c.calls, "name")
	})
}

func TestApply_InOrder(t *testing.T) {
	cfg := &arenaConfig{}

	err := Apply(cfg, withName("rows"), withBlockSize(64), withName("items"))
	require.NoError(t, err)
	require.Equal(t, 64, cfg.blockSize)
	require.Equal(t, "items", cfg.name)
	require.Equal(t, []string{"name", "blockSize", "name"}, cfg.calls)
}

func TestApply_StopsAtFirstError(t *testing.T) {
	cfg := &arenaConfig{}

	err := Apply(cfg, withBlockSize(16), withBlockSize(0), withName("never"))
	require.ErrorIs(t, err, errBadBlockSize)
	require.Equal(t, 16, cfg.blockSize)
	require.Empty(t, cfg.name)
}

func TestApply_Empty(t *testing.T) {
	cfg := &arenaConfig{blockSize: 8}

	require.NoError(t, Apply(cfg))
	require.NoError(t, Apply[*arenaConfig](cfg, nil))
	require.Equal(t, 8, cfg.blockSize)
}

func TestOption_PrimitiveTarget(t *testing.T) {
	var n int
	opt := NoError(func(p *int) { *p = 42 })

	require.NoError(t, opt.apply(&n))
	require.Equal(t, 42, n)
}
