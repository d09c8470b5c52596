package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MrEthical07/passy"
	"github.com/MrEthical07/passy/internal/rate"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func main() {
	var (
		concurrency = flag.Int("concurrency", 64, "number of concurrent workers")
		ops         = flag.Int("ops", 200000, "operations per phase")
		length      = flag.Int("length", 20, "password length for the generate phase")
		source      = flag.String("source", passy.SourceChaCha, "random source: chacha, crypto or seeded")
		clients     = flag.Int("clients", 32, "distinct client keys for the rate-limit phase")
		redisAddr   = flag.String("redis-addr", "", "redis address; if empty, PASSY_REDIS_ADDR env or miniredis is used")
	)
	flag.Parse()

	if *concurrency <= 0 || *ops <= 0 || *clients <= 0 {
		fmt.Fprintln(os.Stderr, "concurrency, ops, and clients must be > 0")
		os.Exit(2)
	}

	ctx := context.Background()

	cfg := passy.DefaultConfig()
	cfg.Generator.Source = *source
	engine, err := passy.New().WithConfig(cfg).Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "engine: %v\n", err)
		os.Exit(1)
	}
	defer engine.Close()

	policy := passy.Policy{Length: *length, UseLower: true, UseUpper: true, UseDigits: true, UseSymbols: true}
	fastPolicy := passy.Policy{Length: *length, UseLower: true, UseUpper: true, UseDigits: true}

	// Strength inputs are generated up front so the phase measures the
	// estimator alone.
	corpus := make([]string, 1024)
	for i := range corpus {
		corpus[i] = engine.GeneratePassword(ctx, policy)
	}

	generateStats := runPhase(*ops, *concurrency, func(i int) error {
		_ = engine.GeneratePassword(ctx, policy)
		return nil
	})
	fastStats := runPhase(*ops, *concurrency, func(i int) error {
		_ = engine.GeneratePassword(ctx, fastPolicy)
		return nil
	})
	strengthStats := runPhase(*ops, *concurrency, func(i int) error {
		_ = engine.EstimateStrength(ctx, corpus[i%len(corpus)])
		return nil
	})

	client, cleanup, err := redisClient(*redisAddr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "redis: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	// The budget lets roughly half of each client's requests through.
	budget := max(*ops / *clients / 2, 1)
	limiter := rate.New(client, rate.Config{Limit: budget, Window: time.Minute})
	// Counters left over from an earlier run against a real Redis would
	// skew the limited count.
	for c := 0; c < *clients; c++ {
		if err := limiter.Reset(ctx, loadtestKey(c)); err != nil {
			fmt.Fprintf(os.Stderr, "reset: %v\n", err)
			os.Exit(1)
		}
	}
	var limited int64
	limitStats := runPhase(*ops, *concurrency, func(i int) error {
		err := limiter.Allow(ctx, loadtestKey(i%*clients))
		if errors.Is(err, rate.ErrRateLimited) {
			atomic.AddInt64(&limited, 1)
			return nil
		}
		return err
	})

	fmt.Println("---- results ----")
	printStats("generate", generateStats)
	printStats("generate-fast", fastStats)
	printStats("strength", strengthStats)
	printStats("rate-limit", limitStats)
	fmt.Printf("rate-limit: budget=%d/client limited=%d\n", limiter.Limit(), limited)

	snap := engine.MetricsSnapshot()
	fmt.Printf("engine: generated=%d fast=%d general=%d\n",
		snap.Counters[passy.MetricGenerateTotal],
		snap.Counters[passy.MetricGenerateFastPath],
		snap.Counters[passy.MetricGenerateGeneralPath],
	)
}

func loadtestKey(client int) string {
	return fmt.Sprintf("loadtest:%d", client)
}

func redisClient(addr string) (redis.UniversalClient, func(), error) {
	if addr == "" {
		addr = os.Getenv("PASSY_REDIS_ADDR")
	}
	if addr != "" {
		client := redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs: []string{addr},
		})
		fmt.Printf("using redis at %s\n", addr)
		return client, func() { _ = client.Close() }, nil
	}

	mr, err := miniredis.Run()
	if err != nil {
		return nil, nil, fmt.Errorf("start miniredis: %w", err)
	}
	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs: []string{mr.Addr()},
	})
	fmt.Printf("using miniredis at %s\n", mr.Addr())
	return client, func() {
		_ = client.Close()
		mr.Close()
	}, nil
}

func runPhase(ops, concurrency int, op func(i int) error) phaseStats {
	var (
		wg        sync.WaitGroup
		cursor    int64
		failures  int64
		latencies = make([]time.Duration, 0, ops)
		mu        sync.Mutex
	)

	start := time.Now()
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := make([]time.Duration, 0, ops/concurrency+1)
			for {
				i := int(atomic.AddInt64(&cursor, 1)) - 1
				if i >= ops {
					break
				}
				t0 := time.Now()
				err := op(i)
				local = append(local, time.Since(t0))
				if err != nil {
					atomic.AddInt64(&failures, 1)
				}
			}
			mu.Lock()
			latencies = append(latencies, local...)
			mu.Unlock()
		}()
	}
	wg.Wait()
	total := time.Since(start)
	return computeStats(total, latencies, failures)
}

type phaseStats struct {
	total    time.Duration
	ops      int
	failures int64
	p50      time.Duration
	p95      time.Duration
	p99      time.Duration
	opsPerS  float64
}

func computeStats(total time.Duration, samples []time.Duration, failures int64) phaseStats {
	if len(samples) == 0 {
		return phaseStats{total: total}
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i] < samples[j] })
	return phaseStats{
		total:    total,
		ops:      len(samples),
		failures: failures,
		p50:      percentile(samples, 50),
		p95:      percentile(samples, 95),
		p99:      percentile(samples, 99),
		opsPerS:  float64(len(samples)) / total.Seconds(),
	}
}

func percentile(samples []time.Duration, p int) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	if p <= 0 {
		return samples[0]
	}
	if p >= 100 {
		return samples[len(samples)-1]
	}
	idx := (len(samples) - 1) * p / 100
	return samples[idx]
}

func printStats(name string, s phaseStats) {
	fmt.Printf("%s: ops=%d failures=%d total=%s ops/sec=%.0f p50=%s p95=%s p99=%s\n",
		name,
		s.ops,
		s.failures,
		s.total.Round(time.Millisecond),
		s.opsPerS,
		s.p50.Round(time.Microsecond),
		s.p95.Round(time.Microsecond),
		s.p99.Round(time.Microsecond),
	)
}
