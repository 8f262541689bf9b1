package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"healthcare-portal/internal/domain/entity"
	"healthcare-portal/internal/domain/repository"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	RedisDoctorDirectoryKey        = "directory:doctors"
	RedisDoctorDirectoryVersionKey = "directory:doctors:version"
)

var errDirectoryChanged = errors.New("doctor directory changed while loading")

// DoctorDirectory serves the doctor list from Redis, falling back to the
// identity store. Cache failures are logged and never returned.
type DoctorDirectory interface {
	List(ctx context.Context) ([]entity.User, error)
	Refresh(ctx context.Context) error
	Invalidate(ctx context.Context) error
}

type doctorDirectory struct {
	userRepo    repository.UserRepository
	redisClient *redis.Client
	ttl         time.Duration
	log         *logrus.Logger
}

func NewDoctorDirectory(userRepo repository.UserRepository, redisClient *redis.Client, ttl time.Duration, log *logrus.Logger) DoctorDirectory {
	return &doctorDirectory{
		userRepo:    userRepo,
		redisClient: redisClient,
		ttl:         ttl,
		log:         log,
	}
}

func (d *doctorDirectory) List(ctx context.Context) ([]entity.User, error) {
	raw, err := d.redisClient.Get(ctx, RedisDoctorDirectoryKey).Bytes()
	switch {
	case err == nil:
		var doctors []entity.User
		if err := json.Unmarshal(raw, &doctors); err == nil {
			return doctors, nil
		}
		d.log.Warnf("Failed to decode cached doctor directory, reloading: %+v", err)
	case !errors.Is(err, redis.Nil):
		d.log.Warnf("Failed to read doctor directory from Redis: %+v", err)
		return d.load(ctx)
	}

	return d.reload(ctx)
}

// Refresh reloads the directory from the store unconditionally.
func (d *doctorDirectory) Refresh(ctx context.Context) error {
	_, err := d.reload(ctx)
	return err
}

// Invalidate drops the cached list and bumps the version, so a load that
// started before the bump is never written back.
func (d *doctorDirectory) Invalidate(ctx context.Context) error {
	_, err := d.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, RedisDoctorDirectoryVersionKey)
		pipe.Del(ctx, RedisDoctorDirectoryKey)
		return nil
	})
	if err != nil {
		d.log.Warnf("Failed to invalidate doctor directory: %+v", err)
		return err
	}
	return nil
}

// reload reads the version, loads from the store and caches the result
// only if the version is unchanged.
func (d *doctorDirectory) reload(ctx context.Context) ([]entity.User, error) {
	version, versionErr := d.version(ctx)

	doctors, err := d.load(ctx)
	if err != nil {
		return nil, err
	}

	if versionErr != nil {
		d.log.Warnf("Failed to read doctor directory version: %+v", versionErr)
		return doctors, nil
	}
	d.store(ctx, doctors, version)
	return doctors, nil
}

func (d *doctorDirectory) version(ctx context.Context) (int64, error) {
	version, err := d.redisClient.Get(ctx, RedisDoctorDirectoryVersionKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return version, err
}

func (d *doctorDirectory) load(ctx context.Context) ([]entity.User, error) {
	doctors, err := d.userRepo.FindByRole(ctx, entity.RoleDoctor)
	if err != nil {
		d.log.Warnf("Failed to load doctors: %+v", err)
		return nil, err
	}
	for i := range doctors {
		doctors[i].Password = ""
	}
	return doctors, nil
}

func (d *doctorDirectory) store(ctx context.Context, doctors []entity.User, version int64) {
	payload, err := json.Marshal(doctors)
	if err != nil {
		d.log.Warnf("Failed to encode doctor directory: %+v", err)
		return
	}

	err = d.redisClient.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, RedisDoctorDirectoryVersionKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != version {
			return errDirectoryChanged
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, RedisDoctorDirectoryKey, payload, d.ttl)
			return nil
		})
		return err
	}, RedisDoctorDirectoryVersionKey)

	switch {
	case err == nil:
	case errors.Is(err, errDirectoryChanged), errors.Is(err, redis.TxFailedErr):
		d.log.Debug("Doctor directory changed while loading, not caching")
	default:
		d.log.Warnf("Failed to cache doctor directory: %+v", err)
	}
}
