package minioinfra

import (
	"testing"

	"github.com/homefix-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicBase(t *testing.T) {
	assert.Equal(t, "http://localhost:9000/media",
		publicBase(&config.Config{MinIOEndpoint: "localhost:9000"}, "media"))
	assert.Equal(t, "https://files.example.com/images",
		publicBase(&config.Config{MinIOEndpoint: "files.example.com", MinIOUseSSL: true}, "images"))
	assert.Equal(t, "http://minio:9000/media",
		publicBase(&config.Config{MinIOEndpoint: "http://minio:9000/"}, "media"))
	assert.Equal(t, "https://cdn.example.com/media",
		publicBase(&config.Config{MinIOEndpoint: "localhost:9000", PublicBaseURL: "https://cdn.example.com"}, "media"))
}

func TestNewClient_StripsScheme(t *testing.T) {
	client, err := NewClient(&config.Config{
		MinIOEndpoint:  "http://localhost:9000",
		MinIOAccessKey: "minio",
		MinIOSecretKey: "minio123",
	})
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", client.EndpointURL().Host)
}
