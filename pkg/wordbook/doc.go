// Package wordbook provides an English vocabulary lookup service with
// pluggable dictionary providers, tiered caching, and file processing.
//
// wordbook resolves definitions and pronunciations for English words
// through a prioritized chain of dictionary services, caches every answer
// in a memory-plus-persistent cache, and can process whole text files
// into markdown or PDF vocabulary reports.
//
// # Features
//
//   - Provider Chain: prioritized dictionary services with health
//     tracking, automatic failover, and recovery probing
//   - Tiered Cache: in-memory LRU in front of a file or Redis store,
//     with TTL expiry on both tiers
//   - File Processing: extract, normalize, and resolve every word of a
//     text, markdown, or HTML file into a vocabulary report
//   - Resilience: transient provider failures retried with backoff,
//     failing providers benched and probed again later
//   - Observability: metrics tracking with structured-log or DataDog
//     publishing
//
// # Quick Start
//
// Create a client with default configuration:
//
//	client, err := wordbook.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	ctx := context.Background()
//	fmt.Println(client.GetDefinition(ctx, "hello"))
//
// # Lookups
//
// Single words resolve to a definition, a pronunciation, or a full
// record:
//
//	definition := client.GetDefinition(ctx, "computer")
//	pronunciation := client.GetPronunciation(ctx, "computer")
//
//	record := client.Lookup(ctx, "computer")
//	if record.Complete() {
//	    fmt.Println(record.Definition, record.Pronunciation)
//	}
//
// Many words resolve in one call; the result is keyed by normalized word:
//
//	records := client.BatchLookup(ctx, []string{"hello", "world"})
//	fmt.Println(records["hello"].Definition)
//
// # File Processing
//
// Process a document into a vocabulary report:
//
//	result, err := client.ProcessFile(ctx, "essay.txt", "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d unique words, report at %s\n", result.UniqueWords, result.OutputFile)
//
//	pdfPath, err := client.RenderPDF(result.OutputFile)
//
// # Providers
//
// The configured provider set registers automatically: the builtin local
// dictionary as the fallback, Free Dictionary when enabled, and
// EasyPronunciation when an API key is configured. Custom providers
// implement the Provider interface:
//
//	client.RegisterProvider("mydict", myProvider, wordbook.PriorityPrimary, true)
//
// Providers can be benched and returned by hand:
//
//	err := client.DisableService("freedict")
//	err = client.EnableService("freedict")
//
// # Configuration
//
// Load configuration from a JSON file, with WORDBOOK_* environment
// variables applied on top:
//
//	client, err := wordbook.NewFromFile("config.json")
//
// Or use the default configuration:
//
//	cfg := wordbook.Config()
//	cfg.Providers.FreeDictionary.Enabled = true
//	client, err := wordbook.NewFromConfig(cfg)
//
// For testing, use the test configuration:
//
//	cfg := wordbook.TestConfig()
//
// # Options
//
// Construction options override configuration:
//
//	client, err := wordbook.New(
//	    wordbook.WithLogger(logger),
//	    wordbook.WithCachePath("/var/cache/wordbook.json"),
//	    wordbook.WithoutRetries(),
//	)
//
// # Errors
//
// Provider failures carry a taxonomy class; the Is helpers classify them:
//
//	if wordbook.IsWordNotFound(err) {
//	    // no dictionary had an entry
//	}
//
// # Thread Safety
//
// All client operations are thread-safe and can be used concurrently from
// multiple goroutines.
package wordbook
