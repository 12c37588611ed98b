package errx

import (
	"errors"
	"net/http"

	"github.com/redis/go-redis/v9"
)

// WrapRedis maps Redis errors to AppError with appropriate status codes and a
// connection kind so session persistence failures count as recoverable.
func WrapRedis(err error) *AppError {
	if err == nil {
		return nil
	}

	if errors.Is(err, redis.Nil) {
		appErr := New(err, http.StatusNotFound, RedisNotFoundMessage)
		return appErr
	}

	return &AppError{
		Err:     err,
		Kind:    KindConnection,
		Status:  http.StatusBadGateway,
		Message: RedisErrorMessage,
	}
}
