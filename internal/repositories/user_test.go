package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func setupMongoContainer(t *testing.T) (*mongo.Database, func()) {
	t.Helper()

	req := tc.ContainerRequest{
		Image:        "mongo:7",
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor:   wait.ForListeningPort("27017/tcp"),
	}

	container, err := tc.GenericContainer(context.Background(), tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	assert.NoError(t, err)

	host, _ := container.Host(context.Background())
	port, _ := container.MappedPort(context.Background(), "27017")

	uri := fmt.Sprintf("mongodb://%s:%d", host, port.Int())

	var client *mongo.Client
	for i := 0; i < 10; i++ {
		client, err = mongo.Connect(context.Background(), options.Client().ApplyURI(uri))
		if err == nil {
			err = client.Ping(context.Background(), nil)
		}
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	assert.NoError(t, err)

	db := client.Database("testdb")

	teardown := func() {
		client.Disconnect(context.Background())
		container.Terminate(context.Background())
	}

	return db, teardown
}

func TestUserWriteRepository_Save(t *testing.T) {
	db, teardown := setupMongoContainer(t)
	defer teardown()

	repo := NewUserWriteRepository(db)
	ctx := context.Background()

	user, err := repo.Save(ctx, "alice@example.com", "digest123", "Alice")
	assert.NoError(t, err)
	assert.NotNil(t, user)
	assert.False(t, user.ID.IsZero())
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, "digest123", user.Password)
	assert.Equal(t, "Alice", user.Name)
	assert.False(t, user.CreatedAt.IsZero())
}

func TestUserWriteRepository_UniqueEmail(t *testing.T) {
	db, teardown := setupMongoContainer(t)
	defer teardown()

	repo := NewUserWriteRepository(db)
	ctx := context.Background()

	err := repo.EnsureIndexes(ctx)
	assert.NoError(t, err)

	_, err = repo.Save(ctx, "bob@example.com", "digest", "Bob")
	assert.NoError(t, err)

	_, err = repo.Save(ctx, "bob@example.com", "other", "Imposter")
	assert.Error(t, err)
	assert.True(t, mongo.IsDuplicateKeyError(err))
}

func TestUserReadRepository_GetByEmail(t *testing.T) {
	db, teardown := setupMongoContainer(t)
	defer teardown()

	writeRepo := NewUserWriteRepository(db)
	readRepo := NewUserReadRepository(db)
	ctx := context.Background()

	saved, err := writeRepo.Save(ctx, "charlie@example.com", "digest", "Charlie")
	assert.NoError(t, err)

	t.Run("Found", func(t *testing.T) {
		user, err := readRepo.GetByEmail(ctx, "charlie@example.com")
		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.Equal(t, saved.ID, user.ID)
		assert.Equal(t, "Charlie", user.Name)
	})

	t.Run("NotFound", func(t *testing.T) {
		user, err := readRepo.GetByEmail(ctx, "nobody@example.com")
		assert.NoError(t, err)
		assert.Nil(t, user)
	})
}
