package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"simscreen/api"
	"simscreen/common"
	"simscreen/extract"
	"simscreen/kafka"
	"simscreen/provider"
	"simscreen/similarity"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	screener := similarity.NewScreener(similarity.ScreenerConfig{
		Provider:  initializeProvider(),
		Extractor: initializeExtractor(),
		Filter:    initializeFilter(),
	})
	scanner := similarity.NewScanner(similarity.ScannerConfig{})

	consumer := startScreeningPipeline(screener)
	if consumer != nil {
		defer consumer.Close()
	}

	r := api.NewRouter(api.Dependencies{Screener: screener, Scanner: scanner})
	log.Printf("Starting API server on %s", addr)
	log.Println("API endpoints available:")
	log.Println("  GET  /api/health")
	log.Println("  POST /api/screening/check")
	log.Println("  POST /api/screening/compare")
	log.Println("  POST /api/screening/scan")
	log.Println("  POST /api/screening/report")

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// initializeProvider picks the corpus score provider from the environment.
// COHERE_API_KEY selects the embedding provider (with an optional reference
// corpus file), CORPUS_API_URL selects the remote HTTP provider. With
// neither, submissions go unchecked and screening reports say so.
func initializeProvider() similarity.ScoreProvider {
	if key := strings.TrimSpace(os.Getenv("COHERE_API_KEY")); key != "" {
		p, err := provider.NewCohereProvider(context.Background(), provider.CohereConfig{
			APIKey:     key,
			Model:      strings.TrimSpace(os.Getenv("COHERE_MODEL")),
			References: loadReferenceCorpus(),
		})
		if err != nil {
			log.Printf("Warning: failed to init Cohere provider: %v (corpus scoring disabled)", err)
			return nil
		}
		log.Println("Using Cohere embedding provider for corpus scoring")
		return p
	}

	if endpoint := strings.TrimSpace(os.Getenv("CORPUS_API_URL")); endpoint != "" {
		p, err := provider.NewRemoteProvider(endpoint, strings.TrimSpace(os.Getenv("CORPUS_API_KEY")))
		if err != nil {
			log.Printf("Warning: failed to init remote provider: %v (corpus scoring disabled)", err)
			return nil
		}
		log.Printf("Using remote corpus provider at %s", endpoint)
		return p
	}

	log.Println("No corpus provider configured; submissions will be reported as not checked")
	return nil
}

// loadReferenceCorpus reads the JSON reference corpus file named by
// REFERENCE_CORPUS. Missing or unreadable corpora are non-fatal: the Cohere
// provider scores a clean zero against an empty corpus.
func loadReferenceCorpus() []provider.ReferenceDoc {
	path := strings.TrimSpace(os.Getenv("REFERENCE_CORPUS"))
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Warning: failed to read reference corpus %s: %v", path, err)
		return nil
	}

	var refs []provider.ReferenceDoc
	if err := json.Unmarshal(data, &refs); err != nil {
		log.Printf("Warning: failed to parse reference corpus %s: %v", path, err)
		return nil
	}

	log.Printf("Loaded %d reference documents from %s", len(refs), path)
	return refs
}

// initializeFilter wires the RedisBloom resubmission filter when REDIS_ADDR
// is set. Without it the exact-resubmission fast path is disabled.
func initializeFilter() similarity.ResubmissionFilter {
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil
	}

	filter, err := similarity.NewRedisBloom(similarity.BloomConfig{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	if err != nil {
		log.Printf("Warning: failed to init resubmission filter: %v (fast path disabled)", err)
		return nil
	}

	log.Printf("Resubmission filter enabled via Redis at %s", addr)
	return filter
}

// initializeExtractor wires S3-backed file text extraction when S3_ENABLED
// is true. Optional: S3_REGION, S3_PROFILE, S3_USE_PATH_STYLE=true
func initializeExtractor() similarity.FileTextExtractor {
	if !strings.EqualFold(strings.TrimSpace(os.Getenv("S3_ENABLED")), "true") {
		return nil
	}

	store, err := common.NewFileStore(context.Background(), common.S3Config{
		Region:       strings.TrimSpace(os.Getenv("S3_REGION")),
		Profile:      strings.TrimSpace(os.Getenv("S3_PROFILE")),
		UsePathStyle: strings.EqualFold(strings.TrimSpace(os.Getenv("S3_USE_PATH_STYLE")), "true"),
	})
	if err != nil {
		log.Printf("Warning: failed to init S3 file store: %v (file extraction disabled)", err)
		return nil
	}

	log.Println("S3 file text extraction enabled")
	return extract.NewS3Extractor(store)
}

// startScreeningPipeline starts the Kafka screening worker when
// KAFKA_BROKERS is set. Submission events are consumed from
// KAFKA_SUBMISSIONS_TOPIC and outcomes published to KAFKA_SCREENING_TOPIC.
func startScreeningPipeline(screener *similarity.Screener) *kafka.Consumer {
	brokersEnv := strings.TrimSpace(os.Getenv("KAFKA_BROKERS"))
	if brokersEnv == "" {
		return nil
	}
	brokers := strings.Split(brokersEnv, ",")

	submissionsTopic := envOrDefault("KAFKA_SUBMISSIONS_TOPIC", "submissions.received")
	screeningTopic := envOrDefault("KAFKA_SCREENING_TOPIC", "screening.completed")
	groupID := envOrDefault("KAFKA_GROUP_ID", "simscreen-screening")

	producer, err := kafka.NewProducer(kafka.ProducerConfig{Brokers: brokers, Topic: screeningTopic})
	if err != nil {
		log.Printf("Warning: failed to init Kafka producer: %v (screening pipeline disabled)", err)
		return nil
	}

	consumer, err := kafka.NewScreeningConsumer(kafka.ScreeningConsumerConfig{
		Brokers:   brokers,
		Topic:     submissionsTopic,
		GroupID:   groupID,
		Screener:  screener,
		Publisher: producer,
	})
	if err != nil {
		producer.Close()
		log.Printf("Warning: failed to init Kafka consumer: %v (screening pipeline disabled)", err)
		return nil
	}

	// Stop consuming on SIGINT/SIGTERM; the producer lives for the process.
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		<-sigs
		cancel()
	}()

	if err := consumer.Start(ctx); err != nil {
		cancel()
		producer.Close()
		log.Printf("Warning: failed to start screening consumer: %v (screening pipeline disabled)", err)
		return nil
	}

	log.Printf("Screening pipeline consuming %s, publishing %s", submissionsTopic, screeningTopic)
	return consumer
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
