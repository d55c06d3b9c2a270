// qrgen generates QR code images.
//
// Usage:
//
//	qrgen "data to encode" [flags]
//	qrgen -i                 interactive mode
//	qrgen serve              HTTP facade
//	qrgen history [-n 20]    recent generations
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/prasetyowira/qrgen/api"
	"github.com/prasetyowira/qrgen/config"
	"github.com/prasetyowira/qrgen/constant"
	"github.com/prasetyowira/qrgen/domain/generator"
	"github.com/prasetyowira/qrgen/infrastructure/db"
	"github.com/prasetyowira/qrgen/infrastructure/encoder"
	appLogger "github.com/prasetyowira/qrgen/infrastructure/logger"
	"github.com/prasetyowira/qrgen/infrastructure/render"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg := config.LoadConfig()

	isProduction := cfg.LogLevel == "INFO"
	log, err := appLogger.New(isProduction)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize logger:", err)
		return 1
	}
	defer log.Close()

	if len(args) >= 1 {
		switch args[0] {
		case "serve":
			return runServe(cfg, log, args[1:])
		case "history":
			return runHistory(cfg, log, args[1:])
		case "help", "-h", "--help":
			printUsage()
			return 0
		}
	}

	return runGenerate(cfg, log, args)
}

func runGenerate(cfg config.Config, log *appLogger.Logger, args []string) int {
	fs := flag.NewFlagSet("qrgen", flag.ExitOnError)

	var (
		interactive bool
		filename    string
		outputDir   string
		version     int
		level       string
		boxSize     int
		border      int
		styled      bool
		drawer      string
		colorMask   string
		foreground  string
		background  string
	)

	fs.BoolVar(&interactive, "i", false, "Run in interactive mode")
	fs.BoolVar(&interactive, "interactive", false, "Run in interactive mode")
	fs.StringVar(&filename, "o", "", "Output filename (default: generated from data)")
	fs.StringVar(&filename, "output", "", "Output filename (default: generated from data)")
	fs.StringVar(&outputDir, "d", cfg.OutputDir, "Directory to save QR codes")
	fs.StringVar(&outputDir, "output-dir", cfg.OutputDir, "Directory to save QR codes")
	fs.IntVar(&version, "v", 0, "QR code version (1-40, default: auto)")
	fs.IntVar(&version, "version", 0, "QR code version (1-40, default: auto)")
	fs.StringVar(&level, "e", constant.DefaultErrorCorrection, "Error correction level (L, M, Q, H)")
	fs.StringVar(&level, "error-correction", constant.DefaultErrorCorrection, "Error correction level (L, M, Q, H)")
	fs.IntVar(&boxSize, "b", constant.DefaultBoxSize, "Size of each box in pixels")
	fs.IntVar(&boxSize, "box-size", constant.DefaultBoxSize, "Size of each box in pixels")
	fs.IntVar(&border, "border", constant.DefaultBorder, "Border size in boxes")
	fs.BoolVar(&styled, "s", false, "Generate styled QR code")
	fs.BoolVar(&styled, "styled", false, "Generate styled QR code")
	fs.StringVar(&drawer, "drawer", constant.DefaultDrawerStyle, "Module drawer style for styled QR")
	fs.StringVar(&colorMask, "color", constant.DefaultColorMask, "Color mask style for styled QR")
	fs.StringVar(&foreground, "foreground", constant.DefaultForeground, "Foreground color (for solid masks)")
	fs.StringVar(&background, "background", constant.DefaultBackground, "Background color (for solid masks)")

	fs.Usage = printUsage
	if err := fs.Parse(args); err != nil {
		return 1
	}

	req := generator.Request{
		Data:            fs.Arg(0),
		Filename:        filename,
		Version:         version,
		ErrorCorrection: level,
		BoxSize:         boxSize,
		Border:          border,
		Styled:          styled,
		DrawerStyle:     drawer,
		ColorMask:       colorMask,
		ForegroundColor: foreground,
		BackgroundColor: background,
	}

	if interactive || req.Data == "" {
		prompted, dir, err := promptRequest(os.Stdin, outputDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "\nInput error: %v\n", err)
			return 1
		}
		req = prompted
		outputDir = dir
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Info(constant.MsgApplicationStarting, appLogger.LoggerInfo{
		ContextFunction: constant.CtxMain,
		Data: map[string]interface{}{
			constant.DataOutputDir:   outputDir,
			constant.DataDBPath:      cfg.DatabaseURL,
			constant.DataEnvironment: cfg.LogLevel,
		},
	})

	svc, repo, err := buildService(cfg, log, outputDir)
	if err != nil {
		return reportError(err)
	}
	if repo != nil {
		defer repo.Close()
	}

	path, err := svc.Generate(ctx, req)
	if err != nil {
		return reportError(err)
	}

	fmt.Printf("\nSuccessfully generated QR code: %s\n", path)
	if abs, absErr := filepath.Abs(outputDir); absErr == nil {
		fmt.Printf("Saved in directory: %s\n", abs)
	}
	return 0
}

func runServe(cfg config.Config, log *appLogger.Logger, args []string) int {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	port := fs.Int("port", cfg.Port, "Port to listen on")
	outputDir := fs.String("d", cfg.OutputDir, "Directory to save QR codes")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	svc, repo, err := buildService(cfg, log, *outputDir)
	if err != nil {
		return reportError(err)
	}
	if repo != nil {
		defer repo.Close()
	}

	handler := api.NewHandler(svc, log)
	router := api.NewRouter(handler, cfg.AuthUser, cfg.AuthPass, log)
	router.SetupRoutes()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(constant.MsgServerStarting, appLogger.LoggerInfo{
			ContextFunction: constant.CtxMain,
			Data: map[string]interface{}{
				constant.DataPort: *port,
			},
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)

	select {
	case err := <-errCh:
		log.Error(constant.MsgServerFailedToStart, appLogger.LoggerInfo{
			ContextFunction: constant.CtxMain,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAppServerStart,
				Message: err.Error(),
				Type:    constant.ErrTypeApp,
			},
		})
		return 1
	case <-quit:
	}

	log.Info(constant.MsgServerShuttingDown, appLogger.LoggerInfo{
		ContextFunction: constant.CtxMain,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error(constant.MsgServerShutdownError, appLogger.LoggerInfo{
			ContextFunction: constant.CtxMain,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAppServerStart,
				Message: err.Error(),
				Type:    constant.ErrTypeApp,
			},
		})
	}

	log.Info(constant.MsgServerStopped, appLogger.LoggerInfo{
		ContextFunction: constant.CtxMain,
	})
	return 0
}

func runHistory(cfg config.Config, log *appLogger.Logger, args []string) int {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	limit := fs.Int("n", 20, "Number of generations to show")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	repo, err := db.NewSQLiteRepository(cfg.DatabaseURL, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "\nGeneration error: %v\n", err)
		return 1
	}
	defer repo.Close()

	generations, err := repo.FindRecent(context.Background(), *limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "\nGeneration error: %v\n", err)
		return 1
	}

	if len(generations) == 0 {
		fmt.Println("No generations recorded yet")
		return 0
	}

	for _, gen := range generations {
		style := "plain"
		if gen.Styled {
			style = gen.DrawerStyle + "/" + gen.ColorMask
		}
		fmt.Printf("%s  %-8s  %s\n", gen.CreatedAt.Format(time.RFC3339), style, gen.Path)
	}
	return 0
}

// buildService wires the pipeline. The history store is optional: if the
// database cannot be opened, generation proceeds without recording.
func buildService(cfg config.Config, log *appLogger.Logger, outputDir string) (*generator.Service, *db.SQLiteRepository, error) {
	var repo generator.Repository
	sqlRepo, err := db.NewSQLiteRepository(cfg.DatabaseURL, log)
	if err != nil {
		log.Warn(constant.MsgFailedToInitDB, appLogger.LoggerInfo{
			ContextFunction: constant.CtxMain,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAppDBInit,
				Message: err.Error(),
				Type:    constant.ErrTypeApp,
			},
			Data: map[string]interface{}{
				constant.DataDBPath: cfg.DatabaseURL,
			},
		})
		sqlRepo = nil
	} else {
		repo = sqlRepo
	}

	svc, err := generator.NewService(
		outputDir,
		encoder.NewEncoder(cfg.CacheSize, log),
		render.NewRenderer(log),
		render.NewFileSink(),
		repo,
		log,
	)
	if err != nil {
		if sqlRepo != nil {
			sqlRepo.Close()
		}
		return nil, nil, err
	}

	return svc, sqlRepo, nil
}

// reportError prints a classified error and returns the process exit
// code: 0 for user cancellation, 1 otherwise.
func reportError(err error) int {
	if errors.Is(err, context.Canceled) {
		fmt.Println("\n" + constant.MsgCancelledByUser)
		return 0
	}
	if generator.IsInputValidation(err) {
		fmt.Fprintf(os.Stderr, "\nInput error: %v\n", err)
		return 1
	}
	fmt.Fprintf(os.Stderr, "\nGeneration error: %v\n", err)
	return 1
}

func printUsage() {
	fmt.Fprint(os.Stderr, `qrgen - Create customizable QR codes

Usage:
  qrgen "data to encode" [flags]
  qrgen -i                          Interactive mode
  qrgen serve [--port 8080]         Serve QR generation over HTTP
  qrgen history [-n 20]             Show recent generations

Flags:
  -o, -output           Output filename (default: generated from data)
  -d, -output-dir       Directory to save QR codes (default: qr_codes)
  -v, -version          QR code version (1-40, default: auto)
  -e, -error-correction Error correction level L, M, Q, H (default: L)
  -b, -box-size         Size of each box in pixels (default: 10)
  -border               Border size in boxes (default: 4)
  -s, -styled           Generate styled QR code
  -drawer               Drawer style: square, rounded, gapped, circle, vertical, horizontal
  -color                Color mask: radial, square, horizontal, vertical, solid
  -foreground           Foreground color for solid masks (default: black)
  -background           Background color for solid masks (default: white)

Examples:
  qrgen "https://example.com" -o example.png
  qrgen "https://example.com" -s -drawer rounded -color radial
  qrgen "My Data" -o custom.png -v 5 -e H -b 15 -border 2 -s -drawer circle -color vertical
`)
}
