package bench

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rcrowley/go-metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tbruckmaier/redsim/cmd/util"
	"github.com/tbruckmaier/redsim/lib/client"
)

var (
	// BenchCmd represents the in-process latency benchmark command
	BenchCmd = &cobra.Command{
		Use:     "bench",
		Short:   "Latency benchmark for the in-process command surface",
		RunE:    run,
		PreRunE: processBenchConfig,
	}

	benchKeyPrefix = "__bench"
	benchOps       = 100000
	benchKeySpread = 100
	benchSkip      = make([]string, 0)
)

func init() {
	cobra.OnInitialize(util.InitConfig)

	// add flags
	key := "skip"
	BenchCmd.Flags().String(key, "", util.WrapString("Benchmarks to skip (comma separated - e.g. set,get)"))
	key = "ops"
	BenchCmd.Flags().Int(key, 100000, util.WrapString("Number of operations per benchmark"))
	key = "keys"
	BenchCmd.Flags().Int(key, 100, util.WrapString("How many different keys to use for the tests"))
	key = "csv"
	BenchCmd.Flags().String(key, "", util.WrapString("Optional path to save benchmark results as CSV"))
}

func processBenchConfig(cmd *cobra.Command, _ []string) error {
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	// Read the configuration from the command line flags and environment variables
	benchOps = viper.GetInt("ops")
	benchKeySpread = viper.GetInt("keys")
	if skip := viper.GetString("skip"); skip != "" {
		benchSkip = strings.Split(skip, ",")
	}

	return nil
}

// benchmark is one timed scenario running against a shared client
type benchmark struct {
	name string
	fn   func(c *client.Client, key string, i int)
}

var benchmarks = []benchmark{
	{"set", func(c *client.Client, key string, i int) {
		_, _ = c.Do("set", key, "test")
	}},
	{"get", func(c *client.Client, key string, i int) {
		_, _ = c.Do("get", key)
	}},
	{"exists", func(c *client.Client, key string, i int) {
		_, _ = c.Do("exists", key)
	}},
	{"incr", func(c *client.Client, key string, i int) {
		_, _ = c.Do("incr", key+"-counter")
	}},
	{"del", func(c *client.Client, key string, i int) {
		_, _ = c.Do("set", key, "test")
		_, _ = c.Do("del", key)
	}},
	{"lpush-lpop", func(c *client.Client, key string, i int) {
		_, _ = c.Do("lpush", key+"-list", "item")
		_, _ = c.Do("lpop", key+"-list")
	}},
	{"sadd", func(c *client.Client, key string, i int) {
		_, _ = c.Do("sadd", key+"-set", strconv.Itoa(i))
	}},
	{"hset", func(c *client.Client, key string, i int) {
		_, _ = c.Do("hset", key+"-hash", strconv.Itoa(i%16), "v")
	}},
	{"mixed", func(c *client.Client, key string, i int) {
		switch i % 4 {
		case 0:
			_, _ = c.Do("set", key, "test")
		case 1:
			_, _ = c.Do("get", key)
		case 2:
			_, _ = c.Do("exists", key)
		case 3:
			_, _ = c.Do("del", key)
		}
	}},
}

func run(_ *cobra.Command, _ []string) error {
	fmt.Println("In-process latency benchmark")
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Printf("Operations per benchmark: %d\n", benchOps)
	fmt.Printf("Key spread: %d\n", benchKeySpread)
	fmt.Println()

	c := client.New(nil)

	// Create results map
	results := make(map[string]metrics.Timer)

	for _, b := range benchmarks {
		if shouldSkip(b.name) {
			fmt.Printf("%-20sskipped\n", b.name)
			continue
		}

		getKey := getKeys(b.name)

		// pre-populate so read benchmarks hit existing keys
		for i := 0; i < benchKeySpread; i++ {
			_, _ = c.Do("set", getKey(i), "test")
		}

		timer := metrics.NewTimer()
		for i := 0; i < benchOps; i++ {
			key := getKey(i)
			start := time.Now()
			b.fn(c, key, i)
			timer.UpdateSince(start)
		}

		// cleanup via pattern delete keeps scenarios independent
		if raw, err := c.Do("keys", fmt.Sprintf("%s*", benchKeyPrefix)); err == nil {
			if keys, ok := raw.([]string); ok && len(keys) > 0 {
				_, _ = c.Do("del", keys...)
			}
		}

		results[b.name] = timer
		printResult(b.name, timer)
	}

	// Write results to csv if specified
	if csvPath := viper.GetString("csv"); csvPath != "" {
		fmt.Printf("\nExporting results to CSV: %s\n", csvPath)
		if err := writeResultsToCSV(csvPath, results); err != nil {
			return fmt.Errorf("failed to export results to CSV: %v", err)
		}
		fmt.Println("Export complete")
	}

	return nil
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

func shouldSkip(test string) bool {
	// Check if the test is in the skip list
	for _, skip := range benchSkip {
		if test == skip {
			return true
		}
	}
	return false
}

// getKeys returns a function resolving an iteration index to a test key
func getKeys(prefix string) func(int) string {
	keys := make([]string, benchKeySpread)
	for i := 0; i < benchKeySpread; i++ {
		keys[i] = fmt.Sprintf("%s-%s-%d", benchKeyPrefix, prefix, i)
	}

	return func(i int) string {
		return keys[i%benchKeySpread]
	}
}

// printResult prints the result of a benchmark test in a formatted way
func printResult(test string, timer metrics.Timer) {
	meanNs := timer.Mean()
	if meanNs == 0 {
		fmt.Printf("%-20sskipped\n", test)
		return
	}

	opsPerSec := 1.0 / (meanNs / 1e9)
	p99 := time.Duration(timer.Percentile(0.99))

	fmt.Printf("%-20s%.0fns/op (%s/op)\tp99 %s\t%.0f ops/sec\n",
		test, meanNs, time.Duration(meanNs), p99, opsPerSec)
}

// writeResultsToCSV writes benchmark results to a CSV file
func writeResultsToCSV(csvPath string, results map[string]metrics.Timer) error {
	file, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	header := []string{
		"Test", "Count", "MeanNs", "DurationPerOp", "P99Ns", "OpsPerSec",
		"Ops", "Keys Count",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %v", err)
	}

	// Write test results
	for test, timer := range results {
		meanNs := timer.Mean()
		opsPerSec := 0.0
		if meanNs > 0 {
			opsPerSec = 1.0 / (meanNs / 1e9)
		}

		row := []string{
			test,
			strconv.FormatInt(timer.Count(), 10),
			fmt.Sprintf("%.0f", meanNs),
			time.Duration(meanNs).String(),
			fmt.Sprintf("%.0f", timer.Percentile(0.99)),
			fmt.Sprintf("%.0f", opsPerSec),
			strconv.Itoa(benchOps),
			strconv.Itoa(benchKeySpread),
		}

		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row for test %s: %v", test, err)
		}
	}

	return nil
}
