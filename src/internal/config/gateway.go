package config

import (
	"context"
	"time"

	"marketplace-service/src/internal/gateway/payment"
	"marketplace-service/src/internal/gateway/storage"
	"marketplace-service/src/internal/usecase"
	"marketplace-service/src/pkg/log"

	"github.com/spf13/viper"
)

// NewBlobStorage connects to minio when enabled. Without it document uploads are refused.
func NewBlobStorage(v *viper.Viper, log log.Log) usecase.BlobStorage {
	if !v.GetBool("minio.enabled") {
		log.Info("storage-config", "Blob storage is disabled in configuration", "minio", "")
		return nil
	}
	blobs, err := storage.NewMinioStorage(storage.ConfigFromViper(v), log)
	if err != nil {
		panic(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := blobs.EnsureBucket(ctx); err != nil {
		log.Error("storage-config", err.Error(), "minio", blobs.Bucket)
	}
	return blobs
}

// NewPaymentProvider returns the stripe provider when enabled, nil otherwise.
func NewPaymentProvider(v *viper.Viper, log log.Log) usecase.PaymentProvider {
	if !v.GetBool("stripe.enabled") {
		return nil
	}
	return payment.NewStripeProvider(v.GetString("stripe.secret_key"), v.GetString("stripe.currency"), log)
}
