// Command bookfeed is a demo harness around the book engine: it plays the
// role of the external producer and observer, scripting a small fragmented
// feed through the transport FIFO and printing market data after each tick.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	lob "github.com/quanta-dev/bookfabric"
	"github.com/quanta-dev/bookfabric/config"
	"github.com/quanta-dev/bookfabric/fabric"
	"github.com/quanta-dev/bookfabric/protocol"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	lob.SetLogger(logger)

	fifo, err := fabric.New(cfg.FIFODepthBytes)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	engine := lob.NewEngine(fifo)
	aggregated := lob.NewAggregatedBook()
	engine.SetEventCallback(func(ev lob.Event) {
		aggregated.Apply(ev)
		fmt.Printf("[EVENT] %c order=%d price=%s qty=%d side=%s\n",
			ev.Type, ev.Order.ID, ev.Order.PriceDecimal(), ev.Order.Quantity, ev.Order.Side)
	})

	fmt.Println("--- Fragmented add ---")
	msg := protocol.BuildAdd(12345, 10000, 50, 'B', 1000000)
	fifo.WriteChunk(msg[:10])
	engine.Process()
	fmt.Printf("after chunk 1: %d live orders\n", engine.ActiveOrderCount())
	fifo.WriteChunk(msg[10:])
	engine.Process()
	fmt.Printf("after chunk 2: %d live orders\n", engine.ActiveOrderCount())

	fmt.Println("--- Build a two-sided book ---")
	fifo.WriteChunk(protocol.BuildAdd(12346, 10050, 100, 'S', 1000100))
	fifo.WriteChunk(protocol.BuildAdd(12347, 9990, 25, 'B', 1000200))
	fifo.WriteChunk(protocol.BuildAdd(12348, 10060, 40, 'S', 1000300))
	engine.Process()
	printBook(engine, cfg.DepthLevels)

	fmt.Println("--- Partial execute ---")
	fifo.WriteChunk(protocol.BuildExecute(12345, 20))
	engine.Process()
	if order, ok := engine.FindOrder(12345); ok {
		fmt.Printf("order 12345 remaining qty: %d\n", order.Quantity)
	}

	fmt.Println("--- Cancel ---")
	fifo.WriteChunk(protocol.BuildCancel(12346, 0))
	engine.Process()
	printBook(engine, cfg.DepthLevels)

	fmt.Println("--- Replace re-parents to a new level ---")
	fifo.WriteChunk(protocol.BuildReplace(12347, 12350, 10010, 30, 1000200))
	engine.Process()
	printBook(engine, cfg.DepthLevels)

	stats := engine.ErrorStats()
	fmt.Printf("engine errors: unknown=%d overflows=%d incomplete=%d invalid=%d\n",
		stats.UnknownMessageTypes, stats.BufferOverflows,
		stats.IncompleteMessages, stats.InvalidOperations)
	fstats := fifo.Stats()
	fmt.Printf("fifo: written=%d read=%d dropped=%d backpressure=%d high-water=%d\n",
		fstats.BytesWritten, fstats.BytesRead, fstats.BytesDropped,
		fstats.BackpressureEvents, fstats.MaxDepthReached)
}

func printBook(engine *lob.Engine, levels int) {
	depth := engine.Depth(levels)

	fmt.Println("  asks:")
	for i := len(depth.Asks) - 1; i >= 0; i-- {
		pq := depth.Asks[i]
		fmt.Printf("    %s x %d\n", tickString(pq.Price), pq.Quantity)
	}
	fmt.Println("  bids:")
	for _, pq := range depth.Bids {
		fmt.Printf("    %s x %d\n", tickString(pq.Price), pq.Quantity)
	}

	if spread, ok := engine.Spread(); ok {
		fmt.Printf("  spread: %d ticks\n", spread)
	} else {
		fmt.Println("  spread: n/a")
	}
}

func tickString(price uint32) string {
	return lob.Order{Price: price}.PriceDecimal().StringFixed(4)
}
