package logger

// LogRequest logs HTTP request information
func LogRequest(method, url string, statusCode int, durationMS float64) {
	fields := map[string]interface{}{
		"method":      method,
		"url":         url,
		"status_code": statusCode,
		"duration_ms": durationMS,
	}

	if statusCode >= 200 && statusCode < 300 {
		GetLogger().InfoWithFields("HTTP request completed", fields)
	} else if statusCode >= 400 && statusCode < 500 {
		GetLogger().WarnWithFields("HTTP request client error", fields)
	} else if statusCode >= 500 {
		GetLogger().ErrorWithFields("HTTP request server error", fields)
	}
}

// LogDownload logs a single image fetch inside an archive job
func LogDownload(query, photoID string, success bool, err error) {
	fields := map[string]interface{}{
		"query":    query,
		"photo_id": photoID,
		"success":  success,
	}

	log := GetLogger().WithFields(fields)

	if err != nil {
		log.WithError(err).Error("Download failed")
	} else if success {
		log.Info("Download completed")
	} else {
		log.Warn("Download skipped")
	}
}

// LogSearchProgress logs paginated search progress
func LogSearchProgress(query string, collected, requested int) {
	GetLogger().WithFields(map[string]interface{}{
		"query":     query,
		"collected": collected,
		"requested": requested,
	}).Debug("Search progress")
}
