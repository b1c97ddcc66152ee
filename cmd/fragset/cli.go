package main

import (
	"context"
	"io"

	"github.com/mzalewski/fragset"
	"github.com/mzalewski/fragset/crawl"
	"github.com/mzalewski/fragset/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	DB        *sqlite.DB
	Index     fragset.FragmentIndex
	Sitemaps  fragset.SitemapService
	Sampler   fragset.IndexSampler
	Collector *crawl.Collector
	Pages     *crawl.Sampler
	Analyzer  fragset.PageAnalyzer
	MainText  fragset.MainTextExtractor
	Tokens    fragset.TokenCounter
	Augmenter fragset.Augmenter

	// NewReclassifier builds a reclassifier rooted at a seeds directory.
	// Injected so tests can substitute a fake.
	NewReclassifier func(seedsDir string) fragset.NegativeReclassifier
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Debug bool `help:"Log service activity to stderr"`

	Collect     CollectCmd     `cmd:"" help:"Collect and classify fragments per the seed plan"`
	Sample      SampleCmd      `cmd:"" help:"Sample diverse pages from the Common Crawl index"`
	Filter      FilterCmd      `cmd:"" help:"Score sampled pages and select the best fragment sources"`
	Reclassify  ReclassifyCmd  `cmd:"" help:"Re-run classification over stored negative fragments"`
	Consolidate ConsolidateCmd `cmd:"" help:"Aggregate verified annotations into the golden dataset"`
	Split       SplitCmd       `cmd:"" help:"Split the golden dataset into train/val/test partitions"`
	Augment     AugmentCmd     `cmd:"" help:"Expand train and val partitions with synthetic variations"`
	Chat        ChatCmd        `cmd:"" help:"Convert partitions to the chat fine-tuning format"`
	Stats       StatsCmd       `cmd:"" help:"Show fragment index statistics"`
}

// CollectCmd is the "collect" subcommand.
type CollectCmd struct {
	Plan       string   `short:"p" help:"Seed plan YAML path (built-in plan when omitted)"`
	Categories []string `short:"c" help:"Collect only the named categories (repeatable)"`
	Seeds      string   `default:"seeds" help:"Seeds directory for stored fragments"`
	Rate       float64  `default:"1.0" help:"Requests per second per domain"`
}

// SampleCmd is the "sample" subcommand.
type SampleCmd struct {
	Output      string `short:"o" default:"data/raw_html" help:"Output directory for fetched pages"`
	PerPattern  int    `default:"75" help:"URLs to sample per TLD pattern"`
	Seed        int64  `default:"42" help:"Shuffle seed"`
	Concurrency int    `default:"10" help:"Concurrent fetch limit"`
}

// FilterCmd is the "filter" subcommand.
type FilterCmd struct {
	Dir    string `short:"d" default:"data/raw_html" help:"Directory holding fetched pages and manifest"`
	TopN   int    `short:"n" default:"50" help:"Number of pages to select"`
	Output string `short:"o" default:"data/selected_url_list.txt" help:"Selected URL list path"`
}

// ReclassifyCmd is the "reclassify" subcommand.
type ReclassifyCmd struct {
	Seeds string `default:"seeds" help:"Seeds directory holding stored fragments"`
}

// ConsolidateCmd is the "consolidate" subcommand.
type ConsolidateCmd struct {
	Manual string `default:"data/manual_review" help:"Directory of verified annotation files"`
	Output string `short:"o" default:"data/processed/golden.jsonl" help:"Golden dataset path"`
}

// SplitCmd is the "split" subcommand.
type SplitCmd struct {
	Input      string  `short:"i" default:"data/processed/golden.jsonl" help:"Golden dataset path"`
	OutputDir  string  `short:"o" default:"data/processed" help:"Directory for partition files"`
	Seed       int64   `default:"42" help:"Shuffle seed"`
	TrainRatio float64 `default:"0.8" help:"Train partition ratio"`
	ValRatio   float64 `default:"0.1" help:"Validation partition ratio"`
	TestRatio  float64 `default:"0.1" help:"Test partition ratio"`
}

// AugmentCmd is the "augment" subcommand.
type AugmentCmd struct {
	Dir         string `short:"d" default:"data/processed" help:"Directory holding partition files"`
	TrainTarget int    `default:"400" help:"Target train partition size"`
	ValTarget   int    `default:"50" help:"Target val partition size"`
	Seed        int64  `default:"42" help:"Augmentation seed"`
}

// ChatCmd is the "chat" subcommand.
type ChatCmd struct {
	Dir string `short:"d" default:"data/processed" help:"Directory holding partition files"`
}

// StatsCmd is the "stats" subcommand.
type StatsCmd struct{}
