package storage

import (
	"context"
	"fmt"

	"github.com/cyverse-de/notification-preferences/common"
	"github.com/cyverse-de/notification-preferences/db"
	"github.com/pkg/errors"
	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/afero"
)

// New creates the storage backend described by the settings.
func New(ctx context.Context, settings *common.StorageSettings) (Backend, error) {
	wrapMsg := fmt.Sprintf("unable to create the %s storage backend", settings.Backend)

	switch settings.Backend {
	case common.BackendMemory:
		return NewMemory(), nil

	case common.BackendFile:
		return NewFile(afero.NewOsFs(), settings.FilePath), nil

	case common.BackendPostgres:
		conn, err := db.InitDatabase(ctx, "postgres", settings.DatabaseURI, settings.DBTimeout)
		if err != nil {
			return nil, errors.Wrap(err, wrapMsg)
		}
		return NewSQL(conn), nil

	case common.BackendRedis:
		client := goredis.NewClient(&goredis.Options{
			Addr:     settings.Redis.Address,
			Password: settings.Redis.Password,
			DB:       settings.Redis.DB,
		})
		return NewRedis(client), nil

	default:
		return nil, fmt.Errorf("%s: unsupported storage backend", wrapMsg)
	}
}
