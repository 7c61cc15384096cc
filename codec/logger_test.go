package codec

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSetLogger(t *testing.T) {
	t.Cleanup(func() { SetLogger(nil) })

	dev, err := zap.NewDevelopment()
	require.NoError(t, err)
	SetLogger(dev)
	require.Same(t, dev, Logger())
	require.True(t, debug, "development logger enables debug tracing")

	SetLogger(nil)
	require.NotNil(t, Logger())
	require.False(t, debug)
}
