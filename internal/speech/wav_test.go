package speech

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestPCMToWAV(t *testing.T) {
	for _, n := range []int{0, 1, 2, 4800, 48001} {
		pcm := bytes.Repeat([]byte{0x7f}, n)
		wav := PCMToWAV(pcm, 24000)

		if len(wav) != 44+n {
			t.Fatalf("n=%d: len = %d, want %d", n, len(wav), 44+n)
		}
		if string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
			t.Fatalf("n=%d: bad magic %q %q", n, wav[0:4], wav[8:12])
		}
		if string(wav[12:16]) != "fmt " || string(wav[36:40]) != "data" {
			t.Fatalf("n=%d: bad chunk ids", n)
		}

		le := binary.LittleEndian
		if got := le.Uint32(wav[4:8]); got != uint32(36+n) {
			t.Errorf("n=%d: riff size = %d", n, got)
		}
		if got := le.Uint16(wav[20:22]); got != 1 {
			t.Errorf("format = %d", got)
		}
		if got := le.Uint16(wav[22:24]); got != 1 {
			t.Errorf("channels = %d", got)
		}
		if got := le.Uint32(wav[24:28]); got != 24000 {
			t.Errorf("rate = %d", got)
		}
		if got := le.Uint32(wav[28:32]); got != 48000 {
			t.Errorf("byte rate = %d", got)
		}
		if got := le.Uint16(wav[32:34]); got != 2 {
			t.Errorf("block align = %d", got)
		}
		if got := le.Uint16(wav[34:36]); got != 16 {
			t.Errorf("bits = %d", got)
		}
		if got := le.Uint32(wav[40:44]); got != uint32(n) {
			t.Errorf("n=%d: data len = %d", n, got)
		}
		if !bytes.Equal(wav[44:], pcm) {
			t.Errorf("n=%d: payload altered", n)
		}
	}
}

func TestPCMToWAVDefaultRate(t *testing.T) {
	wav := PCMToWAV([]byte{1, 2}, 0)
	if got := binary.LittleEndian.Uint32(wav[24:28]); got != DefaultSampleRate {
		t.Errorf("rate = %d", got)
	}
}
