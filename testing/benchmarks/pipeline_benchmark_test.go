package benchmarks

import (
	"context"
	"errors"
	"testing"

	signalz "github.com/zoobzio/signalz"
)

var errBench = errors.New("bench failure")

// BenchmarkPipeline_SubjectFanOut benchmarks multicast delivery to several
// observers.
func BenchmarkPipeline_SubjectFanOut(b *testing.B) {
	subject := signalz.NewSubject[int]()
	for i := 0; i < 4; i++ {
		subject.Subscribe(signalz.Observer[int]{OnValue: func(int) {}})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		subject.Emit(i)
	}
}

// BenchmarkPipeline_CoalescingThroughput measures end-to-end throughput of
// subject -> BufferWhileRunning -> observer with synchronous selections.
func BenchmarkPipeline_CoalescingThroughput(b *testing.B) {
	source := signalz.NewSubject[int]()
	result := signalz.BufferWhileRunning(source.Stream(), func(batch []int) *signalz.Stream[int] {
		return signalz.Just(len(batch))
	})
	result.Subscribe(signalz.Observer[int]{OnValue: func(int) {}})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		source.Emit(i)
	}
	source.Complete()
}

// BenchmarkPipeline_ChannelBridge measures the FromChannel -> ToChannel
// round trip.
func BenchmarkPipeline_ChannelBridge(b *testing.B) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	input := make(chan int, 256)
	out := signalz.ToChannel(ctx, signalz.FromChannel(ctx, input))

	b.ResetTimer()
	go func() {
		for i := 0; i < b.N; i++ {
			input <- i
		}
		close(input)
	}()

	for range out {
	}
}

// BenchmarkPipeline_ErrorTermination benchmarks the teardown path: a failing
// selection shutting the whole operator down.
func BenchmarkPipeline_ErrorTermination(b *testing.B) {
	for i := 0; i < b.N; i++ {
		source := signalz.NewSubject[int]()
		result := signalz.BufferWhileRunning(source.Stream(), func([]int) *signalz.Stream[int] {
			return signalz.Fail[int](errBench)
		})
		result.Subscribe(signalz.Observer[int]{OnError: func(error) {}})
		source.Emit(i)
	}
}
