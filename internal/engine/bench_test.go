package engine

import (
	"fmt"
	"strings"
	"testing"

	"github.com/bytebaker/stego/internal/cache"
	"github.com/bytebaker/stego/internal/types"
)

func BenchmarkEngineProcessChunk(b *testing.B) {
	cfg := Config{Threads: 4}
	payload := []byte(strings.Repeat("plain words (and) some *markup* ", 8))

	chunkSizes := []int{16, 64, 256}
	for _, size := range chunkSizes {
		b.Run(fmt.Sprintf("chunk_%d", size), func(b *testing.B) {
			chunk := make([]pendingScan, size)
			for i := range chunk {
				chunk[i] = pendingScan{
					path:   fmt.Sprintf("file-%d.txt", i),
					data:   payload,
					digest: fastHash(payload),
				}
			}

			var emitted int
			emit := func(fs []types.Finding) {
				emitted += len(fs)
			}

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				updated := map[string]cache.Entry{}
				res := Result{}
				processChunk(cfg, chunk, nil, emit, updated, &res)
			}
			b.SetBytes(int64(len(payload) * len(chunk)))
		})
	}
}
