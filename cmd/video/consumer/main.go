// Command consumer runs extra media.delete consumers next to the API so the
// storage cleanup can scale on its own. The API process keeps relaying the
// outbox; this worker only deletes objects and closes outbox rows.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"TubeFuss.com/cmd/video/common"
	"TubeFuss.com/cmd/video/dal/db"
	"TubeFuss.com/config"
	"TubeFuss.com/pkg/database"
	"TubeFuss.com/pkg/mq"
	"TubeFuss.com/pkg/oss"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

func main() {
	// 初始化日志
	hlog.SetLevel(hlog.LevelInfo)

	config.Init()
	cfg := config.ConfigInfo
	rabbitmqURL := config.RabbitURL()
	if rabbitmqURL == "" {
		hlog.Fatal("rabbitmq.addr is not configured, nothing to consume")
	}

	gdb, err := database.Open(config.MysqlDSN(), database.DefaultOptions)
	if err != nil {
		hlog.Fatalf("connect mysql failed: %v", err)
	}
	defer database.Close(gdb)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	media, err := oss.NewMinioStorage(ctx, oss.Options{
		Endpoint:    cfg.Minio.Endpoint,
		AccessKey:   cfg.Minio.AccessKey,
		SecretKey:   cfg.Minio.SecretKey,
		UseSSL:      cfg.Minio.UseSSL,
		PublicURL:   cfg.Minio.PublicURL,
		ImageBucket: cfg.Minio.ImageBucket,
		VideoBucket: cfg.Minio.VideoBucket,
	})
	if err != nil {
		hlog.Fatalf("connect minio failed: %v", err)
	}

	consumer, err := mq.NewConsumer(rabbitmqURL)
	if err != nil {
		hlog.Fatalf("Failed to create consumer: %v", err)
	}
	defer consumer.Close()

	handler := common.NewMediaSyncService(db.NewOutboxDao(gdb), media, nil,
		config.Duration(cfg.Outbox.Interval, 10*time.Second), cfg.Outbox.BatchSize)
	if err := consumer.ConsumeMediaDelete(ctx, handler); err != nil {
		hlog.Fatalf("Failed to start media delete consumer: %v", err)
	}
	hlog.Info("Media delete consumer started, waiting for messages...")

	// 等待中断信号
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	hlog.Info("Shutting down media delete consumer...")
	cancel()
	time.Sleep(2 * time.Second) // in-flight deliveries
}
