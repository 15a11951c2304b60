package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/patrickgombert/bloom"
	"github.com/patrickgombert/bloom/common"
	"github.com/patrickgombert/bloom/config"
	"github.com/patrickgombert/bloom/hasher"
)

const usage = `usage: bloom [-v] <command> [flags]

commands:
  example   build the reference filter and print its set bit count
  bench     time hashing and bulk insertion
`

func main() {
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	var err error
	switch flag.Arg(0) {
	case "example":
		err = runExample(flag.Args()[1:])
	case "bench":
		err = runBench(flag.Args()[1:])
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Str("command", flag.Arg(0)).Msg("command failed")
	}
}

func runExample(args []string) error {
	fs := flag.NewFlagSet("example", flag.ExitOnError)
	capacity := fs.Int64("n", 10000, "expected number of elements")
	rounds := fs.Int64("k", 10, "hash rounds per element")
	fs.Parse(args)

	s := "hello"
	fmt.Printf("The fnv_1 hash of %s is %d\n", s, bloom.Fnv1(s))

	bf, err := bloom.New(*capacity, *rounds)
	if err != nil {
		return err
	}
	defer bloom.Release(bf)

	for _, s := range []string{"hello", "hi", "another string"} {
		if err := bloom.Add(bf, bloom.Fnv1(s)); err != nil {
			return err
		}
	}

	for _, s := range []string{"hello", "hi", "another string"} {
		present, err := bloom.Present(bf, bloom.Fnv1(s))
		if err != nil {
			return err
		}
		if !present {
			return fmt.Errorf("expected %q to be present", s)
		}
	}
	present, err := bloom.Present(bf, bloom.Fnv1("not present"))
	if err != nil {
		return err
	}
	if present {
		log.Warn().Str("value", "not present").Msg("false positive")
	}

	count, err := bloom.Count(bf)
	if err != nil {
		return err
	}
	fmt.Printf("The number of set bits is %d\n", count)
	return nil
}

func runBench(args []string) error {
	fs := flag.NewFlagSet("bench", flag.ExitOnError)
	options := config.DefaultOptions()
	fs.Int64Var(&options.Capacity, "n", 10_000_000, "number of elements to insert")
	fs.Int64Var(&options.Rounds, "k", 30, "hash rounds per element")
	fs.Float64Var(&options.FalsePositiveRate, "p", 0, "size for this false positive rate instead of -k")
	fs.StringVar(&options.Hasher, "hash", hasher.FNV1Name, "hasher: fnv1, murmur3 or xxhash")
	hashes := fs.Int("hashes", 1_000_000, "number of hashes per hashing repeat")
	repeat := fs.Int("repeat", 5, "number of repeats")
	fs.Parse(args)

	if *repeat <= 0 || *hashes < 0 {
		return fmt.Errorf("repeat must be positive and hashes must not be negative, got %d and %d", *repeat, *hashes)
	}
	if errs := options.Validate(); len(errs) > 0 {
		for _, err := range errs {
			log.Error().Err(err).Msg("invalid bench options")
		}
		return common.ERR_INVALID_ARGUMENT
	}
	hash, err := options.HashFunc()
	if err != nil {
		return err
	}

	var total time.Duration
	for r := 0; r < *repeat; r++ {
		start := time.Now()
		for i := 0; i < *hashes; i++ {
			hash.SumString("hello")
		}
		total += time.Since(start)
	}
	fmt.Printf("Benchmark %s (%d times): %.5fsec\n", options.Hasher, *hashes, (total / time.Duration(*repeat)).Seconds())

	total = 0
	var filter *common.BloomFilter
	for r := 0; r < *repeat; r++ {
		start := time.Now()
		filter, err = options.NewFilter()
		if err != nil {
			return err
		}
		for i := int64(0); i < options.Capacity; i++ {
			filter.Add(hash.SumString(strconv.FormatFloat(float64(i)+0.5, 'f', -1, 64)))
		}
		total += time.Since(start)
	}
	fmt.Printf("Benchmark Bloom Filter: %.5fsec\n", (total / time.Duration(*repeat)).Seconds())

	log.Info().
		Uint64("bits", filter.Len()).
		Uint64("rounds", filter.Rounds()).
		Uint64("set", filter.Count()).
		Float64("estimated_fp_rate", filter.EstimatedFalsePositiveRate()).
		Msg("final filter")
	return nil
}
