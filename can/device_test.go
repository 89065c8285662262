package can

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// sudo ip link set can0 down && sudo /sbin/ip link set can0 up type can bitrate 250000

func xTestDeviceAgainstRealBus(t *testing.T) {
	dev := NewDevice("can0", nil)
	if err := dev.Initialize(); err != nil {
		assert.NoError(t, err)
		return
	}
	defer dev.Close()

	for i := 0; i < 100; i++ {
		batch, err := dev.Next()
		if err != nil {
			assert.NoError(t, err)
			return
		}
		fmt.Printf("message: %+v\n", *batch.N2k)
	}
}
