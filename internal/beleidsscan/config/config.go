package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI    string
	Port        string
	DBName      string
	RedisURL    string
	GeoCacheTTL time.Duration

	DocumentsCollection     string
	GraphVersionsCollection string
	KGBranchesCollection    string
	KGCommitsCollection     string
	KGStashesCollection     string
	ETLJobsCollection       string

	PDOKBaseURL         string
	CommonCrawlIndexURL string
	GraphDBBaseURL      string
	GraphDBRepository   string

	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	HTTPClientTimeout time.Duration
}

func LoadConfig() (*Config, error) {
	// .env is optional; env vars take precedence when both are set.
	_ = godotenv.Load()

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	cfg := &Config{
		MongoURI:    mongoURI,
		Port:        port,
		DBName:      getEnv("DB_NAME", "beleidsscan"),
		RedisURL:    getEnv("REDIS_URL", ""),
		GeoCacheTTL: getEnvDuration("GEO_CACHE_TTL", 24*time.Hour),

		DocumentsCollection:     getEnv("COLLECTION_DOCUMENTS", "canonical_documents"),
		GraphVersionsCollection: getEnv("COLLECTION_GRAPH_VERSIONS", "scraper_graph_versions"),
		KGBranchesCollection:    getEnv("COLLECTION_KG_BRANCHES", "kg_branches"),
		KGCommitsCollection:     getEnv("COLLECTION_KG_COMMITS", "kg_commits"),
		KGStashesCollection:     getEnv("COLLECTION_KG_STASHES", "kg_stashes"),
		ETLJobsCollection:       getEnv("COLLECTION_ETL_JOBS", "etl_jobs"),

		PDOKBaseURL:         getEnv("PDOK_BASE_URL", "https://api.pdok.nl/bzk/locatieserver/search/v3_1"),
		CommonCrawlIndexURL: getEnv("COMMONCRAWL_INDEX_URL", "https://index.commoncrawl.org/CC-MAIN-2025-30-index"),
		GraphDBBaseURL:      getEnv("GRAPHDB_BASE_URL", "http://localhost:7200"),
		GraphDBRepository:   getEnv("GRAPHDB_REPOSITORY", "beleidsscan"),

		ReadTimeout:       getEnvDuration("SERVER_READ_TIMEOUT", 10*time.Second),
		WriteTimeout:      getEnvDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
		HTTPClientTimeout: getEnvDuration("HTTP_CLIENT_TIMEOUT", 15*time.Second),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.MongoURI == "" {
		return fmt.Errorf("MONGO_URI is required")
	}
	if c.GraphDBRepository == "" {
		return fmt.Errorf("GRAPHDB_REPOSITORY is required")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	valStr := os.Getenv(key)
	if valStr == "" {
		return fallback
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		d, err := time.ParseDuration(valStr)
		if err == nil {
			return d
		}
		return fallback
	}
	return time.Duration(val) * time.Second
}
