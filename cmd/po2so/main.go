package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"po2so/internal/config"
	"po2so/internal/pipeline"
	"po2so/internal/storage"
	"po2so/internal/util"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	db, err := storage.Open(cfg.DBPath)
	must(err)
	defer db.Close()

	processor := pipeline.NewProcessingService(db, cfg, logger)

	cmd := os.Args[1]
	switch cmd {
	case "convert":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "document to convert")
		out := fs.String("out", "", "output directory override")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*input) == "" {
			must(fmt.Errorf("--input is required"))
		}
		if strings.TrimSpace(*out) != "" {
			cfg.OutputDir = *out
			processor = pipeline.NewProcessingService(db, cfg, logger)
		}
		res, err := processor.ProcessFile(*input)
		must(err)
		fmt.Printf("converted %s so=%s lineItems=%d\n", *input, res.SONumber, res.LineItems)
		fmt.Printf("  %s\n  %s\n", res.Paths.ClientInfo, res.Paths.LineItems)
		if res.XLSXPath != "" {
			fmt.Printf("  %s\n", res.XLSXPath)
		}
	case "process":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		dir := fs.String("dir", "", "directory of documents")
		batch := fs.Int("batch", cfg.ProcessBatch, "max documents per run")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*dir) == "" {
			must(fmt.Errorf("--dir is required"))
		}
		processed, failed, err := processor.ProcessDir(*dir, *batch)
		must(err)
		fmt.Printf("processed=%d failed=%d\n", processed, failed)
	case "export":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		so := fs.String("so", "", "sales order number")
		xlsx := fs.Bool("xlsx", cfg.ExportXLSX, "also write combined workbook")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*so) == "" {
			must(fmt.Errorf("--so is required"))
		}
		paths, xlsxPath, err := processor.ExportOrder(*so, *xlsx)
		must(err)
		fmt.Printf("exported %s\n  %s\n  %s\n", *so, paths.ClientInfo, paths.LineItems)
		if xlsxPath != "" {
			fmt.Printf("  %s\n", xlsxPath)
		}
	case "orders":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		limit := fs.Int("limit", 50, "max orders to list")
		_ = fs.Parse(os.Args[2:])
		orders, err := db.ListOrders(*limit)
		must(err)
		for _, row := range orders {
			fmt.Printf("%s  %s  po=%s  client=%s  items=%d\n",
				row.SONumber, row.SODate,
				util.DerefString(row.Order.Record.PODetails.PONumber),
				util.DerefString(row.Order.Record.ClientInfo.Name),
				len(row.Order.Record.LineItems))
		}
		if len(orders) == 0 {
			fmt.Println("no orders")
		}
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("usage: po2so <command>")
	fmt.Println("commands:")
	fmt.Println("  convert --input=./po.pdf [--out=./out]")
	fmt.Println("  process --dir=./inbox [--batch=20]")
	fmt.Println("  export --so=SO-000001 [--xlsx]")
	fmt.Println("  orders [--limit=50]")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
