package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"recipe-rag/internal/config"
	"recipe-rag/internal/corpus"
	"recipe-rag/internal/domain"
	"recipe-rag/internal/embedding/tfidf"
	"recipe-rag/internal/generation"
	"recipe-rag/internal/generation/cache"
	"recipe-rag/internal/generation/openai"
	"recipe-rag/internal/index"
	"recipe-rag/internal/logging"
	"recipe-rag/internal/render"
	"recipe-rag/internal/sampler"
	"recipe-rag/internal/server"
	"recipe-rag/internal/service"
	"recipe-rag/internal/tui"
	"recipe-rag/internal/vectorstore/memory"
)

func main() {
	_ = godotenv.Load()

	var (
		cfgPath  string
		serve    bool
		keywords string
		diet     string
		model    string
		logFile  string
		plain    bool
	)
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/recipegen/config.yaml if not provided)")
	flag.BoolVar(&serve, "serve", false, "Run the HTTP API instead of the interactive prompt")
	flag.StringVar(&keywords, "keywords", "", "Comma separated ingredients; generates one recipe and exits")
	flag.StringVar(&diet, "diet", "", "Dietary restrictions for -keywords")
	flag.StringVar(&model, "model", "", "Override the configured model")
	flag.StringVar(&logFile, "log-file", "", "Log file for the interactive prompt (default: recipegen.log in the temp dir)")
	flag.BoolVar(&plain, "plain", false, "Use a line-based prompt instead of the full-screen UI")
	flag.Parse()

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if flag.NArg() > 0 {
		cfg.Corpus.Path = flag.Arg(0)
	}
	if model != "" {
		cfg.Generator.Model = model
	}

	interactive := !serve && keywords == ""
	var logger *zap.Logger
	if interactive && !plain {
		if logFile == "" {
			logFile = filepath.Join(os.TempDir(), "recipegen.log")
		}
		logger, err = logging.NewFileLogger(cfg.Debug, logFile)
	} else {
		logger, err = logging.NewLogger(cfg.Debug)
	}
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	completer, closeCompleter := buildCompleter(cfg, logger)
	defer closeCompleter()

	adapter := generation.NewAdapter(completer, generation.Config{
		Model:        cfg.Generator.Model,
		SystemPrompt: cfg.Generator.SystemPrompt,
	}, logger)
	svc := service.NewRecipeService(
		corpus.NewLoader(logger),
		index.New(tfidf.NewEmbedder(), memory.NewStorage()),
		sampler.New(cfg.Sampler.PerEntry, cfg.Sampler.MaxTotal),
		adapter,
		cfg.Index.TopN,
		logger,
	)
	stats, err := svc.IngestFile(cfg.Corpus.Path)
	if err != nil {
		logger.Fatal("ingest failed", zap.String("path", cfg.Corpus.Path), zap.Error(err))
	}
	logger.Info("corpus loaded",
		zap.String("path", cfg.Corpus.Path),
		zap.Int("rows", stats.Rows),
		zap.Int("ingredient_fallbacks", stats.IngredientFallbacks),
		zap.Int("instruction_fallbacks", stats.InstructionFallbacks),
	)

	timeout := time.Duration(cfg.Generator.TimeoutSecs) * time.Second
	switch {
	case serve:
		runServer(svc, cfg, timeout, logger)
	case keywords != "":
		out := svc.Generate(context.Background(), service.GenerateRequest{
			Keywords:            service.SplitKeywords(keywords),
			DietaryRestrictions: diet,
			Model:               model,
		})
		printOutcome(out)
	case plain:
		runPrompt(svc)
	default:
		m := tui.New(svc, svc.Stats().Summary.String(), timeout)
		if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
			log.Fatal(err)
		}
	}
}

// buildCompleter assembles the chat client and optional cache. A missing API
// key leaves the completer nil, so every generation reports a failure recipe.
func buildCompleter(cfg *config.AppConfig, logger *zap.Logger) (generation.ChatCompleter, func()) {
	client, err := openai.NewClient(openai.Config{
		BaseURL: cfg.Generator.BaseURL,
		APIKey:  cfg.Generator.APIKey(),
		Timeout: time.Duration(cfg.Generator.TimeoutSecs) * time.Second,
	})
	if err != nil {
		logger.Warn("generation client unavailable",
			zap.String("api_key_env", cfg.Generator.APIKeyEnv), zap.Error(err))
		return nil, func() {}
	}
	logger.Info("generation client ready",
		zap.String("base_url", cfg.Generator.BaseURL),
		zap.String("model", cfg.Generator.Model),
		zap.String("api_key", config.MaskSecret(cfg.Generator.APIKey())),
	)

	ttl := time.Duration(cfg.Cache.TTLSecs) * time.Second
	var store cache.Store
	switch cfg.Cache.Type {
	case config.CacheMemory:
		store = cache.NewMemoryStore(cfg.Cache.MaxEntries)
	case config.CacheRedis:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		rs, err := cache.NewRedisStore(ctx, cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
		if err != nil {
			logger.Warn("redis cache disabled", zap.Error(err))
			break
		}
		store = rs
	}
	if store == nil {
		return client, func() { _ = client.Close() }
	}
	logger.Info("response cache enabled", zap.String("type", cfg.Cache.Type), zap.Duration("ttl", ttl))
	return cache.New(client, store, ttl, logger), func() {
		_ = store.Close()
		_ = client.Close()
	}
}

func runServer(svc *service.RecipeService, cfg *config.AppConfig, timeout time.Duration, logger *zap.Logger) {
	srv := server.NewServer(svc, &cfg.Server, timeout+5*time.Second, logger)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}
}

func runPrompt(svc *service.RecipeService) {
	in := bufio.NewScanner(os.Stdin)
	fmt.Println("----Recipe Generator----")
	fmt.Println("Hi, I am your personal chef. ")
	fmt.Println("I would be happy to provide a recipe based on your ingredients and preferences: ")
	fmt.Print("Enter ingredients (comma-separated): ")
	if !in.Scan() {
		return
	}
	kws := service.SplitKeywords(in.Text())
	fmt.Print("Any dietary restrictions? (optional): ")
	var diet string
	if in.Scan() {
		diet = in.Text()
	}
	fmt.Println("\nGenerating your recipe...")
	printOutcome(svc.Generate(context.Background(), service.GenerateRequest{Keywords: kws, DietaryRestrictions: diet}))
}

func printOutcome(out domain.Outcome) {
	if out.Kind == domain.KindFailed {
		fmt.Fprintln(os.Stderr, "generation failed:", out.Reason)
	}
	if err := render.Write(os.Stdout, out.Recipe); err != nil {
		log.Fatal(err)
	}
}
