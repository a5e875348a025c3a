package limitio_test

import (
	"bytes"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/creativeprojects/mailpurge/limitio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const burst = 1024

var transfers = []struct {
	size int
	rate float64
}{
	{32 * 1024, 128 * 1024},
	{64 * 1024, 256 * 1024},
	{128 * 1024, 512 * 1024},
}

// expectedDuration ignores the first burst, available straight away
func expectedDuration(size int, rate float64) time.Duration {
	return time.Duration(float64(size-burst) / rate * float64(time.Second))
}

func assertDuration(t *testing.T, expected, elapsed time.Duration) {
	t.Helper()
	t.Logf("expected %s, took %s", expected, elapsed)
	assert.GreaterOrEqual(t, elapsed, expected*95/100)
	assert.Less(t, elapsed, expected*3/2+100*time.Millisecond)
}

func TestReaderRate(t *testing.T) {
	t.Parallel()
	if testing.Short() {
		t.Skip("skipping test in short mode.")
	}

	for _, transfer := range transfers {
		transfer := transfer
		t.Run(fmt.Sprintf("%dKiB at %.0fKiB/s", transfer.size/1024, transfer.rate/1024), func(t *testing.T) {
			t.Parallel()
			reader := limitio.NewReader(bytes.NewReader(bytes.Repeat([]byte{'a'}, transfer.size)))
			reader.SetRateLimit(transfer.rate, burst)

			start := time.Now()
			n, err := io.Copy(io.Discard, reader)
			elapsed := time.Since(start)
			require.NoError(t, err)
			assert.Equal(t, int64(transfer.size), n)
			assertDuration(t, expectedDuration(transfer.size, transfer.rate), elapsed)
		})
	}
}

func TestWriterRate(t *testing.T) {
	t.Parallel()
	if testing.Short() {
		t.Skip("skipping test in short mode.")
	}

	for _, transfer := range transfers {
		transfer := transfer
		t.Run(fmt.Sprintf("%dKiB at %.0fKiB/s", transfer.size/1024, transfer.rate/1024), func(t *testing.T) {
			t.Parallel()
			writer := limitio.NewWriter(io.Discard)
			writer.SetRateLimit(transfer.rate, burst)

			// a single large write is split into bursts
			start := time.Now()
			n, err := writer.Write(bytes.Repeat([]byte{'a'}, transfer.size))
			elapsed := time.Since(start)
			require.NoError(t, err)
			assert.Equal(t, transfer.size, n)
			assertDuration(t, expectedDuration(transfer.size, transfer.rate), elapsed)
		})
	}
}

func TestReaderWithoutLimit(t *testing.T) {
	reader := limitio.NewReader(bytes.NewReader([]byte("* OK IMAP4rev1 Service Ready\r\n")))
	content, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "* OK IMAP4rev1 Service Ready\r\n", string(content))
}

func TestReaderCapsReadToBurst(t *testing.T) {
	reader := limitio.NewReader(bytes.NewReader(bytes.Repeat([]byte{'a'}, 4*burst)))
	reader.SetRateLimit(1024*1024, burst)

	buffer := make([]byte, 4*burst)
	n, err := reader.Read(buffer)
	require.NoError(t, err)
	assert.Equal(t, burst, n)
}
