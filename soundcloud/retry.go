package soundcloud

// withRetry runs op up to attempts times. After a failure, retryable decides
// whether another attempt is allowed; the last error is returned unchanged so
// callers can still inspect it with errors.As.
func withRetry[T any](attempts int, retryable func(error) bool, op func() (T, error)) (T, error) {
	var zero T

	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 0; i < attempts; i++ {
		var out T
		out, err = op()
		if err == nil {
			return out, nil
		}

		if !retryable(err) {
			break
		}
	}

	return zero, err
}
