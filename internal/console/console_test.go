package console

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConsole(colored bool) (*Console, *bytes.Buffer, *clock.Mock) {
	var buf bytes.Buffer
	clk := clock.NewMock()
	clk.Set(time.Date(2025, 3, 7, 9, 5, 4, 0, time.Local))
	return New(&buf, clk, colored), &buf, clk
}

func TestTimestamp(t *testing.T) {
	ts := Timestamp(time.Date(2024, 12, 31, 23, 59, 1, 0, time.UTC))
	assert.Equal(t, "[31.12.2024, 23:59:01]", ts)
}

func TestConsole_InfoFormat(t *testing.T) {
	c, buf, _ := newTestConsole(false)

	c.Info("Barcode detected: %s (Type: %s)", "ABC123", "CODE128")

	assert.Equal(t, "[07.03.2025, 09:05:04] Barcode detected: ABC123 (Type: CODE128)\n", buf.String())
}

func TestConsole_ErrorFormatPlain(t *testing.T) {
	c, buf, clk := newTestConsole(false)
	clk.Add(time.Minute)

	c.Error("Error: Failed to capture image")

	assert.Equal(t, "[07.03.2025, 09:06:04] Error: Failed to capture image\n", buf.String())
}

func TestConsole_ErrorColored(t *testing.T) {
	c, buf, _ := newTestConsole(true)

	c.Error("boom")

	out := buf.String()
	require.Contains(t, out, "\x1b[36m[07.03.2025, 09:05:04]")
	require.Contains(t, out, "\x1b[31mboom")
	// Stripping ANSI codes must give back the exact plain line.
	plain := stripANSI(out)
	assert.Equal(t, "[07.03.2025, 09:05:04] boom\n", plain)
}

func TestConsole_BannerAndPlainLines(t *testing.T) {
	c, buf, _ := newTestConsole(false)

	c.Banner()
	c.Println("%d. Camera %d", 1, 0)

	out := buf.String()
	assert.Contains(t, out, "██████╗")
	assert.True(t, strings.HasSuffix(out, "1. Camera 0\n"))
}

func stripANSI(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == 0x1b {
			for i < len(s) && s[i] != 'm' {
				i++
			}
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
