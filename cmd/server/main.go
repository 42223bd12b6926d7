package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"

	"content_pilot/internal/api/aigen"
	"content_pilot/internal/api/publisher"
	"content_pilot/internal/global"
	"content_pilot/internal/logger"
	"content_pilot/internal/utility"
	"content_pilot/internal/worker"
)

// initLogger khởi tạo và cấu hình logger cho toàn bộ ứng dụng
func initLogger() {
	// Khởi tạo logger với cấu hình mặc định
	// Logger sẽ tự động đọc environment variables để cấu hình
	if err := logger.Init(nil); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	// Log thông tin khởi tạo bằng logger mới
	log := logger.GetAppLogger()
	log.Info("Logger system initialized successfully")
}

// main_thread khởi tạo và chạy Fiber server
func main_thread(generator aigen.Generator, onShutdown func()) {
	// Khởi tạo app với cấu hình
	app := InitFiberApp(generator)

	// Graceful shutdown: SIGINT/SIGTERM dừng worker trước rồi mới đóng server
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		sig := <-sigCh

		log := logger.GetAppLogger()
		log.WithFields(map[string]interface{}{
			"signal": sig.String(),
		}).Info("Received shutdown signal, stopping server...")

		if onShutdown != nil {
			onShutdown()
		}
		if err := app.Shutdown(); err != nil {
			log.WithError(err).Error("Error during server shutdown")
		}
	}()

	// Khởi động server với cấu hình listen
	cfg := global.MongoDB_ServerConfig
	address := cfg.Address

	log := logger.GetAppLogger()
	log.Info("Starting Fiber server...")

	// Helper function để resolve đường dẫn từ thư mục gốc
	resolvePath := func(path string) string {
		if filepath.IsAbs(path) {
			return path
		}
		currentDir, err := os.Getwd()
		if err != nil {
			return path
		}
		for {
			envDir := filepath.Join(currentDir, "config", "env")
			if _, err := os.Stat(envDir); err == nil {
				return filepath.Join(currentDir, path)
			}
			parentDir := filepath.Dir(currentDir)
			if parentDir == currentDir {
				return path
			}
			currentDir = parentDir
		}
	}

	// Kiểm tra xem có bật TLS không
	if cfg.EnableTLS && cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		// Resolve đường dẫn certificate và key
		certPath := resolvePath(cfg.TLSCertFile)
		keyPath := resolvePath(cfg.TLSKeyFile)

		// Kiểm tra file certificate và key tồn tại
		if _, err := os.Stat(certPath); os.IsNotExist(err) {
			log.Fatalf("TLS certificate file not found: %s (resolved from: %s)", certPath, cfg.TLSCertFile)
		}
		if _, err := os.Stat(keyPath); os.IsNotExist(err) {
			log.Fatalf("TLS key file not found: %s (resolved from: %s)", keyPath, cfg.TLSKeyFile)
		}

		// Load certificate và key
		cert, err := tls.LoadX509KeyPair(certPath, keyPath)
		if err != nil {
			log.Fatalf("Error loading TLS certificate: %v", err)
		}

		// Tạo listener với TLS
		ln, err := net.Listen("tcp", address)
		if err != nil {
			log.Fatalf("Error creating listener: %v", err)
		}

		// Cấu hình TLS
		tlsConfig := &tls.Config{
			Certificates: []tls.Certificate{cert},
			MinVersion:   tls.VersionTLS12,
		}

		// Wrap listener với TLS
		tlsListener := tls.NewListener(ln, tlsConfig)

		log.WithFields(map[string]interface{}{
			"address": address,
			"cert":    certPath,
			"key":     keyPath,
		}).Info("Starting server with HTTPS/TLS")

		// Khởi động server với TLS listener
		if err := app.Listener(tlsListener); err != nil {
			log.Fatalf("Error in Fiber Listener with TLS: %v", err)
		}
	} else {
		// Khởi động server HTTP thông thường
		log.WithFields(map[string]interface{}{
			"address":  address,
			"protocol": "HTTP",
		}).Info("Starting server with HTTP")

		listenConfig := fiber.ListenConfig{}
		if err := app.Listen(address, listenConfig); err != nil {
			log.Fatalf("Error in Fiber Listen: %v", err)
		}
	}
}

// Hàm main
func main() {
	// Khởi tạo logger
	initLogger()

	// Khởi tạo các biến toàn cục
	InitGlobal()

	// Khởi tạo registry
	InitRegistry()

	// Đăng ký các event handler cho data change events
	InitEventHandlers()

	// Khởi tạo dữ liệu mặc định
	InitDefaultData()

	cfg := global.MongoDB_ServerConfig
	log := logger.GetAppLogger()

	// Khởi tạo các collaborator bên ngoài
	generator := aigen.NewHTTPGenerator(cfg)
	pub := publisher.NewHTTPPublisher(cfg)

	// Khởi tạo và chạy Publish Scan Worker (scheduling trigger)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	scanWorker, err := worker.NewPublishScanWorker(pub,
		time.Duration(cfg.PublishScanInterval)*time.Second,
		int64(cfg.PublishScanBatch),
		time.Duration(cfg.PublishTimeout)*time.Second,
	)
	if err != nil {
		log.WithError(err).Error("Failed to create publish scan worker, continuing without scheduling trigger")
	} else {
		// Chạy worker trong goroutine riêng, GoProtect bắt panic để không sập server
		go utility.GoProtect(func() {
			scanWorker.Start(ctx)
			log.Warn("🚀 [PUBLISH_SCAN] Worker đã dừng (có thể do context cancelled)")
		})

		log.Info("🚀 [PUBLISH_SCAN] Publish Scan Worker started successfully")
	}

	// Chạy Fiber server trên main thread; shutdown hủy context của worker
	main_thread(generator, cancel)
}
